package routine_test

import (
	"fmt"
	"testing"

	"fitbuilder/server/internal/catalog"
	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/routine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("e%d", n)
	}
}

func entryIDs(entries []domain.RoutineEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.EntryID
	}
	return out
}

func exercise(t *testing.T, id int) domain.Exercise {
	t.Helper()
	ex, err := catalog.Default().Get(id)
	require.NoError(t, err)
	return ex
}

func entries(ids ...string) []domain.RoutineEntry {
	out := make([]domain.RoutineEntry, len(ids))
	for i, id := range ids {
		out[i] = domain.RoutineEntry{EntryID: id}
	}
	return out
}

func TestDraft_AddExerciseUsesDefaults(t *testing.T) {
	d := routine.NewDraft(routine.WithIDGenerator(sequentialIDs()))

	entry := d.AddExercise(exercise(t, 5))
	assert.Equal(t, "e1", entry.EntryID)
	assert.Equal(t, "Plank", entry.Exercise.Name)
	assert.Equal(t, "3", entry.Sets)
	assert.Equal(t, "10", entry.Reps)
	assert.Equal(t, "60s", entry.RestTime)
	assert.Equal(t, "", entry.Notes)
	assert.Equal(t, []domain.RoutineEntry{entry}, d.Entries())
}

func TestDraft_DuplicateExercisesGetIndependentEntries(t *testing.T) {
	d := routine.NewDraft(routine.WithIDGenerator(sequentialIDs()))
	squat := exercise(t, 2)

	first := d.AddExercise(squat)
	second := d.AddExercise(squat)
	require.NotEqual(t, first.EntryID, second.EntryID)

	require.NoError(t, d.UpdateField(second.EntryID, routine.FieldReps, "AMRAP"))
	got := d.Entries()
	assert.Equal(t, "10", got[0].Reps)
	assert.Equal(t, "AMRAP", got[1].Reps)
}

func TestDraft_UpdateField(t *testing.T) {
	d := routine.NewDraft(routine.WithIDGenerator(sequentialIDs()))
	d.AddExercise(exercise(t, 1))
	d.AddExercise(exercise(t, 5))

	require.NoError(t, d.UpdateField("e2", routine.FieldRestTime, "30s"))
	require.NoError(t, d.UpdateField("e2", routine.FieldNotes, "slow tempo"))
	require.NoError(t, d.UpdateField("e2", routine.FieldSets, "4"))

	got := d.Entries()
	assert.Equal(t, []string{"e1", "e2"}, entryIDs(got))
	assert.Equal(t, "60s", got[0].RestTime)
	assert.Equal(t, "30s", got[1].RestTime)
	assert.Equal(t, "slow tempo", got[1].Notes)
	assert.Equal(t, "4", got[1].Sets)

	assert.ErrorIs(t, d.UpdateField("missing", routine.FieldSets, "1"), routine.ErrEntryNotFound)
	assert.ErrorIs(t, d.UpdateField("e1", routine.Field("weight"), "1"), routine.ErrUnknownField)
}

func TestDraft_AddRemoveRoundTrip(t *testing.T) {
	d := routine.NewDraft(routine.WithIDGenerator(sequentialIDs()))
	d.AddExercise(exercise(t, 1))
	d.AddExercise(exercise(t, 2))
	require.NoError(t, d.UpdateField("e1", routine.FieldNotes, "warm up"))
	before := d.Entries()

	added := d.AddExercise(exercise(t, 3))
	require.NoError(t, d.RemoveEntry(added.EntryID))
	assert.Equal(t, before, d.Entries())

	next := d.AddExercise(exercise(t, 3))
	assert.NotEqual(t, added.EntryID, next.EntryID)
}

func TestDraft_RemoveMissingEntry(t *testing.T) {
	d := routine.NewDraft(routine.WithIDGenerator(sequentialIDs()))
	d.AddExercise(exercise(t, 1))

	assert.ErrorIs(t, d.RemoveEntry("nope"), routine.ErrEntryNotFound)
	assert.Equal(t, 1, d.Len())
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name           string
		source, target string
		want           []string
	}{
		{name: "move up", source: "D", target: "B", want: []string{"A", "D", "B", "C"}},
		{name: "move down", source: "A", target: "C", want: []string{"B", "C", "A", "D"}},
		{name: "to end", source: "B", target: "D", want: []string{"A", "C", "D", "B"}},
		{name: "to front", source: "C", target: "A", want: []string{"C", "A", "B", "D"}},
		{name: "adjacent", source: "B", target: "C", want: []string{"A", "C", "B", "D"}},
		{name: "same id", source: "A", target: "A", want: []string{"A", "B", "C", "D"}},
		{name: "missing source", source: "X", target: "B", want: []string{"A", "B", "C", "D"}},
		{name: "missing target", source: "A", target: "X", want: []string{"A", "B", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := entries("A", "B", "C", "D")
			got := routine.Reorder(in, tt.source, tt.target)
			assert.Equal(t, tt.want, entryIDs(got))
			assert.Equal(t, []string{"A", "B", "C", "D"}, entryIDs(in))
		})
	}
}

func TestDraft_Reorder(t *testing.T) {
	d := routine.NewDraft(routine.WithIDGenerator(sequentialIDs()))
	for _, id := range []int{1, 2, 3, 4} {
		d.AddExercise(exercise(t, id))
	}

	require.NoError(t, d.Reorder("e4", "e2"))
	assert.Equal(t, []string{"e1", "e4", "e2", "e3"}, entryIDs(d.Entries()))

	require.NoError(t, d.Reorder("e1", "e1"))
	assert.Equal(t, []string{"e1", "e4", "e2", "e3"}, entryIDs(d.Entries()))

	assert.ErrorIs(t, d.Reorder("e9", "e1"), routine.ErrEntryNotFound)
	assert.Equal(t, []string{"e1", "e4", "e2", "e3"}, entryIDs(d.Entries()))
}

func TestParseField(t *testing.T) {
	f, err := routine.ParseField("restTime")
	require.NoError(t, err)
	assert.Equal(t, routine.FieldRestTime, f)

	_, err = routine.ParseField("exercise")
	assert.ErrorIs(t, err, routine.ErrUnknownField)
}

func TestDraft_Snapshot(t *testing.T) {
	d := routine.NewDraft(routine.WithIDGenerator(sequentialIDs()))
	d.SetName("Leg Day")
	d.AddExercise(exercise(t, 2))

	snap := d.Snapshot()
	assert.Equal(t, "Leg Day", snap.Name)
	require.Len(t, snap.Entries, 1)

	snap.Entries[0].Sets = "99"
	assert.Equal(t, "3", d.Entries()[0].Sets)
}
