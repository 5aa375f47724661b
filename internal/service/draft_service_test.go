package service_test

import (
	"context"
	"testing"

	"fitbuilder/server/internal/catalog"
	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/metrics"
	"fitbuilder/server/internal/repository/local"
	"fitbuilder/server/internal/routine"
	"fitbuilder/server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftFixture(t *testing.T, maxDrafts int) (service.DraftService, service.RoutineService) {
	t.Helper()
	m := metrics.NewTestManager()
	store := local.NewStore(local.NewMemorySlot(), local.DefaultKey, local.WithFallbackHook(m.StoreFallbackHook()))
	routines := service.NewRoutineService(store, nil, m)
	return service.NewDraftService(catalog.Default(), routines, m, maxDrafts), routines
}

func TestDraftService_BuildAndSave(t *testing.T) {
	drafts, routines := newDraftFixture(t, 0)
	ctx := context.Background()

	d, err := drafts.Create(ctx)
	require.NoError(t, err)
	assert.Empty(t, d.Entries)

	first, err := drafts.AddExercise(ctx, d.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Push-ups", first.Exercise.Name)
	assert.Equal(t, routine.DefaultSets, first.Sets)
	assert.Equal(t, routine.DefaultReps, first.Reps)
	assert.Equal(t, routine.DefaultRestTime, first.RestTime)

	second, err := drafts.AddExercise(ctx, d.ID, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.EntryID, second.EntryID, "same exercise twice gives two entries")

	third, err := drafts.AddExercise(ctx, d.ID, 5)
	require.NoError(t, err)

	view, err := drafts.UpdateField(ctx, d.ID, second.EntryID, "reps", "AMRAP")
	require.NoError(t, err)
	assert.Equal(t, "AMRAP", view.Entries[1].Reps)
	assert.Equal(t, routine.DefaultReps, view.Entries[0].Reps)

	view, err = drafts.Reorder(ctx, d.ID, third.EntryID, first.EntryID)
	require.NoError(t, err)
	assert.Equal(t, []string{third.EntryID, first.EntryID, second.EntryID},
		[]string{view.Entries[0].EntryID, view.Entries[1].EntryID, view.Entries[2].EntryID})

	// nameless save is rejected and leaves the draft intact
	_, err = drafts.Save(ctx, service.Guest(), d.ID)
	assert.ErrorIs(t, err, domain.ErrRoutineNameRequired)
	view, err = drafts.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, view.Entries, 3)

	_, err = drafts.Rename(ctx, d.ID, "Upper + Core")
	require.NoError(t, err)
	saved, err := drafts.Save(ctx, service.Guest(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Upper + Core", saved.Name)
	assert.Len(t, saved.Entries, 3)
	assert.Equal(t, "AMRAP", saved.Entries[2].Reps)

	_, err = drafts.Get(ctx, d.ID)
	assert.ErrorIs(t, err, service.ErrDraftNotFound)

	stored, err := routines.Get(ctx, service.Guest(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Entries, stored.Entries)
}

func TestDraftService_EmptySaveRejected(t *testing.T) {
	drafts, routines := newDraftFixture(t, 0)
	ctx := context.Background()

	d, err := drafts.Create(ctx)
	require.NoError(t, err)
	_, err = drafts.Rename(ctx, d.ID, "Nothing yet")
	require.NoError(t, err)

	_, err = drafts.Save(ctx, service.Guest(), d.ID)
	assert.ErrorIs(t, err, domain.ErrRoutineEntriesRequired)

	list, err := routines.List(ctx, service.Guest())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDraftService_Errors(t *testing.T) {
	drafts, _ := newDraftFixture(t, 0)
	ctx := context.Background()

	_, err := drafts.Get(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrDraftNotFound)
	assert.ErrorIs(t, drafts.Discard(ctx, "missing"), service.ErrDraftNotFound)

	d, err := drafts.Create(ctx)
	require.NoError(t, err)

	_, err = drafts.AddExercise(ctx, d.ID, 999)
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)

	entry, err := drafts.AddExercise(ctx, d.ID, 2)
	require.NoError(t, err)

	_, err = drafts.UpdateField(ctx, d.ID, entry.EntryID, "weight", "100")
	assert.ErrorIs(t, err, routine.ErrUnknownField)

	_, err = drafts.UpdateField(ctx, d.ID, "nope", "sets", "5")
	assert.ErrorIs(t, err, routine.ErrEntryNotFound)

	_, err = drafts.RemoveEntry(ctx, d.ID, "nope")
	assert.ErrorIs(t, err, routine.ErrEntryNotFound)

	view, err := drafts.RemoveEntry(ctx, d.ID, entry.EntryID)
	require.NoError(t, err)
	assert.Empty(t, view.Entries)

	require.NoError(t, drafts.Discard(ctx, d.ID))
	_, err = drafts.Get(ctx, d.ID)
	assert.ErrorIs(t, err, service.ErrDraftNotFound)
}

func TestDraftService_EvictsLeastRecentlyUsed(t *testing.T) {
	drafts, _ := newDraftFixture(t, 2)
	ctx := context.Background()

	a, err := drafts.Create(ctx)
	require.NoError(t, err)
	b, err := drafts.Create(ctx)
	require.NoError(t, err)

	// touch a so b becomes the oldest
	_, err = drafts.Rename(ctx, a.ID, "keep me")
	require.NoError(t, err)

	_, err = drafts.Create(ctx)
	require.NoError(t, err)

	_, err = drafts.Get(ctx, a.ID)
	assert.NoError(t, err)
	_, err = drafts.Get(ctx, b.ID)
	assert.ErrorIs(t, err, service.ErrDraftNotFound)
}
