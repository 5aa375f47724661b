package main

import (
	"bytes"
	"context"
	"testing"

	"fitbuilder/server/internal/catalog"
	"fitbuilder/server/internal/config"
	"fitbuilder/server/internal/repository/local"
	"fitbuilder/server/internal/routine"
	"fitbuilder/server/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileBackedEnv points the config at a fresh file slot and returns a store
// over the same directory.
func fileBackedEnv(t *testing.T) *local.Store {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORAGE_BACKEND", config.BackendFile)
	t.Setenv("STORAGE_DIR", dir)
	t.Setenv("STORAGE_KEY", "cli-test")
	t.Setenv("LOG_LEVEL", "error")
	return local.NewStore(local.NewFileSlot(dir), "cli-test")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append(args, "--config", t.TempDir()))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seed(t *testing.T, store *local.Store, name string, ids ...int) string {
	t.Helper()
	cat := catalog.Default()
	d := routine.NewDraft()
	d.SetName(name)
	for _, id := range ids {
		ex, err := cat.Get(id)
		require.NoError(t, err)
		d.AddExercise(ex)
	}
	r, err := store.Save(context.Background(), "", d.Snapshot())
	require.NoError(t, err)
	return r.ID
}

func TestRoutinesList(t *testing.T) {
	store := fileBackedEnv(t)

	out, err := execute(t, "routines", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no saved routines")

	id := seed(t, store, "Upper Body", 1, 3, 4, 7)
	out, err = execute(t, "routines", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Upper Body")
	assert.Contains(t, out, "4 exercises")
	assert.Contains(t, out, "Push-ups, Dumbbell Shoulder Press, Pull-ups +1 more")
}

func TestRoutinesShow(t *testing.T) {
	store := fileBackedEnv(t)
	id := seed(t, store, "Legs", 2, 8)

	out, err := execute(t, "routines", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Legs ("+id+")")
	assert.Contains(t, out, "1. Barbell Squat [Legs]")
	assert.Contains(t, out, "2. Lunges [Legs]")

	_, err = execute(t, "routines", "show", "missing")
	assert.ErrorContains(t, err, "routine missing not found")
}

func TestRoutinesDeleteRequiresConfirmation(t *testing.T) {
	store := fileBackedEnv(t)
	id := seed(t, store, "Core", 5)

	_, err := execute(t, "routines", "delete", id)
	assert.ErrorIs(t, err, errDeleteNotConfirmed)
	remaining, err := store.LoadAll(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	out, err := execute(t, "routines", "delete", id, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted routine "+id)
	remaining, err = store.LoadAll(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = execute(t, "routines", "delete", id, "--yes")
	assert.ErrorContains(t, err, "not found")
}

func TestInvalidConfigFailsBeforeRunning(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "floppy")
	_, err := execute(t, "routines", "list")
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}

func TestOpenSlot(t *testing.T) {
	ctx := context.Background()

	c := &clients{cfg: config.Config{Storage: config.StorageConfig{Backend: config.BackendMemory}}}
	slot, err := c.openSlot(ctx)
	require.NoError(t, err)
	assert.IsType(t, &local.MemorySlot{}, slot)

	c = &clients{cfg: config.Config{Storage: config.StorageConfig{Backend: config.BackendFile, Dir: t.TempDir()}}}
	slot, err = c.openSlot(ctx)
	require.NoError(t, err)
	assert.IsType(t, &local.FileSlot{}, slot)

	c = &clients{cfg: config.Config{Storage: config.StorageConfig{Backend: "tape"}}}
	_, err = c.openSlot(ctx)
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
	assert.NoError(t, c.closers.Close())
}

func TestOpenMedia_PassthroughWithoutBucket(t *testing.T) {
	c := &clients{cfg: config.Config{}}
	media, err := c.openMedia(context.Background())
	require.NoError(t, err)
	assert.Equal(t, storage.PassthroughMedia{}, media)
}

func TestClosersRunInReverseAndCombineErrors(t *testing.T) {
	var order []int
	var cs closers
	cs.add(func() error { order = append(order, 1); return assert.AnError })
	cs.add(func() error { order = append(order, 2); return nil })
	cs.add(func() error { order = append(order, 3); return context.Canceled })

	err := cs.Close()
	assert.Equal(t, []int{3, 2, 1}, order)
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorIs(t, err, context.Canceled)
}
