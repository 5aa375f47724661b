package routine

import (
	"time"

	"fitbuilder/server/internal/domain"
)

// DefaultPreviewSize is how many exercises a collection card lists.
const DefaultPreviewSize = 3

type PreviewItem struct {
	Name        string             `json:"name"`
	MuscleGroup domain.MuscleGroup `json:"muscleGroup"`
}

// Summary is the collection-view rendering of a stored routine.
type Summary struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	EntryCount int           `json:"exerciseCount"`
	CreatedAt  time.Time     `json:"createdAt"`
	Preview    []PreviewItem `json:"preview"`
	More       int           `json:"more"` // Entries not shown in Preview
}

// Summarize previews the first n entries of r.
func Summarize(r domain.Routine, n int) Summary {
	if n < 0 {
		n = 0
	}
	shown := min(n, len(r.Entries))
	preview := make([]PreviewItem, 0, shown)
	for _, e := range r.Entries[:shown] {
		preview = append(preview, PreviewItem{Name: e.Exercise.Name, MuscleGroup: e.Exercise.MuscleGroup})
	}
	return Summary{
		ID:         r.ID,
		Name:       r.Name,
		EntryCount: len(r.Entries),
		CreatedAt:  r.CreatedAt,
		Preview:    preview,
		More:       len(r.Entries) - shown,
	}
}

func SummarizeAll(routines []domain.Routine, n int) []Summary {
	out := make([]Summary, 0, len(routines))
	for _, r := range routines {
		out = append(out, Summarize(r, n))
	}
	return out
}
