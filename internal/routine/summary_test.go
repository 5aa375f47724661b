package routine_test

import (
	"testing"
	"time"

	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/routine"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	r := domain.Routine{ID: "1", Name: "Full", CreatedAt: created}
	for _, name := range []string{"Push-ups", "Plank", "Lunges", "Deadlift", "Pull-ups"} {
		r.Entries = append(r.Entries, domain.RoutineEntry{Exercise: domain.Exercise{Name: name, MuscleGroup: domain.MuscleGroupCore}})
	}

	s := routine.Summarize(r, routine.DefaultPreviewSize)
	assert.Equal(t, "1", s.ID)
	assert.Equal(t, 5, s.EntryCount)
	assert.Equal(t, created, s.CreatedAt)
	assert.Len(t, s.Preview, 3)
	assert.Equal(t, "Lunges", s.Preview[2].Name)
	assert.Equal(t, 2, s.More)
}

func TestSummarize_ShortRoutine(t *testing.T) {
	r := domain.Routine{ID: "2", Name: "Quick", Entries: []domain.RoutineEntry{{Exercise: domain.Exercise{Name: "Plank"}}}}

	s := routine.Summarize(r, routine.DefaultPreviewSize)
	assert.Len(t, s.Preview, 1)
	assert.Equal(t, 0, s.More)

	all := routine.SummarizeAll([]domain.Routine{r, r}, 0)
	assert.Len(t, all, 2)
	assert.Empty(t, all[0].Preview)
	assert.Equal(t, 1, all[0].More)
}
