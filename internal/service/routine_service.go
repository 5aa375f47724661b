package service

import (
	"context"
	"errors"

	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/metrics"
	"fitbuilder/server/internal/repository"
	"fitbuilder/server/internal/routine"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=mocks_test.go -package=service_test fitbuilder/server/internal/repository RoutineRepository,UserRepository

var (
	ErrRoutineNotFound        = errors.New("routine not found")
	ErrServerStoreUnavailable = errors.New("server-side routine storage is not configured")
	ErrUnauthenticated        = errors.New("authentication required")
)

const (
	backendLocal  = "local"
	backendServer = "server"
)

type RoutineService interface {
	// List returns summaries of the routines visible to ident, in store order.
	List(ctx context.Context, ident Identity) ([]routine.Summary, error)
	// ListServer returns the signed-in user's server-stored routines, newest first.
	ListServer(ctx context.Context, ident Identity) ([]domain.Routine, error)
	Get(ctx context.Context, ident Identity, id string) (*domain.Routine, error)
	Save(ctx context.Context, ident Identity, draft domain.RoutineDraft) (*domain.Routine, error)
	Delete(ctx context.Context, ident Identity, id string) error
}

// routineService routes guests to the local store and signed-in users to
// the server store when one is configured.
type routineService struct {
	local   repository.RoutineRepository
	server  repository.RoutineRepository
	metrics *metrics.Manager
}

// NewRoutineService creates the service. server may be nil for a
// guest-only deployment.
func NewRoutineService(local, server repository.RoutineRepository, m *metrics.Manager) RoutineService {
	return &routineService{
		local:   local,
		server:  server,
		metrics: m,
	}
}

func (s *routineService) backend(ident Identity) (repository.RoutineRepository, string) {
	if !ident.IsGuest() && s.server != nil {
		return s.server, backendServer
	}
	return s.local, backendLocal
}

func (s *routineService) List(ctx context.Context, ident Identity) ([]routine.Summary, error) {
	repo, _ := s.backend(ident)
	routines, err := repo.LoadAll(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	return routine.SummarizeAll(routines, routine.DefaultPreviewSize), nil
}

func (s *routineService) ListServer(ctx context.Context, ident Identity) ([]domain.Routine, error) {
	if ident.IsGuest() {
		return nil, ErrUnauthenticated
	}
	if s.server == nil {
		return nil, ErrServerStoreUnavailable
	}
	return s.server.LoadAll(ctx, ident.UserID)
}

func (s *routineService) Get(ctx context.Context, ident Identity, id string) (*domain.Routine, error) {
	repo, _ := s.backend(ident)
	r, err := repo.GetByID(ctx, ident.UserID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRoutineNotFound
	}
	return r, err
}

func (s *routineService) Save(ctx context.Context, ident Identity, draft domain.RoutineDraft) (*domain.Routine, error) {
	repo, backend := s.backend(ident)
	saved, err := repo.Save(ctx, ident.UserID, draft)
	if err != nil {
		return nil, err
	}
	s.metrics.CounterRoutinesSaved.WithLabelValues(backend).Inc()
	log.Infof("saved routine %s (%q, %d exercises) to %s store", saved.ID, saved.Name, len(saved.Entries), backend)
	return saved, nil
}

func (s *routineService) Delete(ctx context.Context, ident Identity, id string) error {
	repo, backend := s.backend(ident)
	err := repo.DeleteByID(ctx, ident.UserID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRoutineNotFound
	}
	if err != nil {
		return err
	}
	s.metrics.CounterRoutinesDeleted.WithLabelValues(backend).Inc()
	log.Infof("deleted routine %s from %s store", id, backend)
	return nil
}
