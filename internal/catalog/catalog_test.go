package catalog_test

import (
	"errors"
	"testing"

	"fitbuilder/server/internal/catalog"
	"fitbuilder/server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_AddAssignsNextSequentialID(t *testing.T) {
	c := catalog.Default()

	added, err := c.Add(domain.Exercise{
		ID:          42,
		Name:        "Band Pull-Apart",
		MuscleGroup: domain.MuscleGroupShoulders,
		Equipment:   domain.EquipmentResistanceBands,
		Difficulty:  domain.DifficultyBeginner,
		Location:    domain.LocationHome,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, added.ID)

	all := c.All()
	require.Len(t, all, 9)
	assert.Equal(t, "Band Pull-Apart", all[8].Name)
	assert.Len(t, c.Additions(), 1)

	got, err := c.Get(9)
	require.NoError(t, err)
	assert.Equal(t, added, got)
}

func TestCatalog_AddRejectsInvalidExercise(t *testing.T) {
	c := catalog.Default()

	_, err := c.Add(domain.Exercise{Name: "", MuscleGroup: "Neck"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Len(t, c.All(), 8)
}

func TestCatalog_GetMissing(t *testing.T) {
	_, err := catalog.Default().Get(100)
	assert.ErrorIs(t, err, catalog.ErrExerciseNotFound)
}

func TestCatalog_ReturnedExercisesAreCopies(t *testing.T) {
	c := catalog.Default()

	all := c.All()
	all[0].Name = "mutated"
	all[0].Instructions[0] = "mutated"

	got, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Push-ups", got.Name)
	assert.NotEqual(t, "mutated", got.Instructions[0])
}
