package service

import (
	"context"
	"errors"

	"fitbuilder/server/internal/catalog"
	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/storage"

	log "github.com/sirupsen/logrus"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// ExerciseList is a filtered catalog view. Total counts the whole catalog
// so a client can render "showing N of M".
type ExerciseList struct {
	Exercises []domain.Exercise `json:"exercises"`
	Total     int               `json:"total"`
	Filtered  int               `json:"filtered"`
	Facets    catalog.Facets    `json:"facets"`
}

type CatalogService interface {
	ListExercises(ctx context.Context, facets catalog.Facets) (*ExerciseList, error)
	GetExercise(ctx context.Context, id int) (*domain.Exercise, error)
	AddExercise(ctx context.Context, ex domain.Exercise) (*domain.Exercise, error)
	MediaUploadURL(ctx context.Context, fileName, contentType string) (string, error)
}

type catalogService struct {
	catalog *catalog.Catalog
	media   storage.MediaStorage
}

func NewCatalogService(c *catalog.Catalog, media storage.MediaStorage) CatalogService {
	if media == nil {
		media = storage.PassthroughMedia{}
	}
	return &catalogService{catalog: c, media: media}
}

func (s *catalogService) ListExercises(ctx context.Context, facets catalog.Facets) (*ExerciseList, error) {
	all := s.catalog.All()
	filtered := catalog.Filter(all, facets)
	for i := range filtered {
		if err := s.resolveMedia(ctx, &filtered[i]); err != nil {
			return nil, err
		}
	}
	return &ExerciseList{
		Exercises: filtered,
		Total:     len(all),
		Filtered:  len(filtered),
		Facets:    facets,
	}, nil
}

func (s *catalogService) GetExercise(ctx context.Context, id int) (*domain.Exercise, error) {
	ex, err := s.catalog.Get(id)
	if errors.Is(err, catalog.ErrExerciseNotFound) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.resolveMedia(ctx, &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

// AddExercise adds a user-defined exercise for the lifetime of the process.
func (s *catalogService) AddExercise(_ context.Context, ex domain.Exercise) (*domain.Exercise, error) {
	added, err := s.catalog.Add(ex)
	if err != nil {
		return nil, err
	}
	log.Infof("added exercise %d %q to catalog", added.ID, added.Name)
	return &added, nil
}

func (s *catalogService) MediaUploadURL(ctx context.Context, fileName, contentType string) (string, error) {
	return s.media.GeneratePresignedUploadURL(ctx, fileName, contentType, 0)
}

func (s *catalogService) resolveMedia(ctx context.Context, ex *domain.Exercise) error {
	url, err := s.media.ResolveMediaURL(ctx, ex.VideoURL)
	if err != nil {
		log.Errorf("resolve media for exercise %d: %v", ex.ID, err)
		return err
	}
	ex.VideoURL = url
	return nil
}
