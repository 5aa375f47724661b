package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"fitbuilder/server/internal/catalog"
	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prefixMedia signs every reference under "media/".
type prefixMedia struct{}

func (prefixMedia) ResolveMediaURL(_ context.Context, ref string) (string, error) {
	if strings.HasPrefix(ref, "media/") {
		return "https://signed.example/" + ref, nil
	}
	return ref, nil
}

func (prefixMedia) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://signed.example/put/" + key, nil
}

func TestCatalogService_ListExercises(t *testing.T) {
	svc := service.NewCatalogService(catalog.Default(), nil)
	ctx := context.Background()

	all, err := svc.ListExercises(ctx, catalog.Facets{})
	require.NoError(t, err)
	assert.Equal(t, 8, all.Total)
	assert.Equal(t, 8, all.Filtered)

	legs, err := svc.ListExercises(ctx, catalog.Facets{MuscleGroup: "Legs"})
	require.NoError(t, err)
	assert.Equal(t, 8, legs.Total)
	assert.Equal(t, len(legs.Exercises), legs.Filtered)
	for _, ex := range legs.Exercises {
		assert.Equal(t, domain.MuscleGroupLegs, ex.MuscleGroup)
	}

	none, err := svc.ListExercises(ctx, catalog.Facets{Search: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, none.Exercises)
	assert.Equal(t, 0, none.Filtered)
}

func TestCatalogService_AddAndResolveMedia(t *testing.T) {
	svc := service.NewCatalogService(catalog.Default(), prefixMedia{})
	ctx := context.Background()

	added, err := svc.AddExercise(ctx, domain.Exercise{
		Name:        "Cable Fly",
		MuscleGroup: domain.MuscleGroupChest,
		Equipment:   domain.EquipmentCableMachine,
		Difficulty:  domain.DifficultyIntermediate,
		Location:    domain.LocationGym,
		VideoURL:    "media/cable-fly.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, 9, added.ID)

	got, err := svc.GetExercise(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/media/cable-fly.mp4", got.VideoURL)

	list, err := svc.ListExercises(ctx, catalog.Facets{Search: "cable"})
	require.NoError(t, err)
	require.Len(t, list.Exercises, 1)
	assert.Equal(t, "https://signed.example/media/cable-fly.mp4", list.Exercises[0].VideoURL)

	_, err = svc.GetExercise(ctx, 100)
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)

	_, err = svc.AddExercise(ctx, domain.Exercise{Name: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	url, err := svc.MediaUploadURL(ctx, "clip.mp4", "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/put/clip.mp4", url)
}
