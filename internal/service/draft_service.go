package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"fitbuilder/server/internal/catalog"
	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/metrics"
	"fitbuilder/server/internal/routine"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrDraftNotFound = errors.New("draft not found")

// DefaultMaxDrafts bounds the drafts held in memory. Creating one more
// evicts the draft that was touched least recently.
const DefaultMaxDrafts = 1000

// DraftView is the state of a draft as returned to clients.
type DraftView struct {
	ID      string                `json:"id"`
	Name    string                `json:"name"`
	Entries []domain.RoutineEntry `json:"exercises"`
}

type DraftService interface {
	Create(ctx context.Context) (*DraftView, error)
	Get(ctx context.Context, draftID string) (*DraftView, error)
	Rename(ctx context.Context, draftID, name string) (*DraftView, error)
	// AddExercise appends a snapshot of the catalog exercise with default values.
	AddExercise(ctx context.Context, draftID string, exerciseID int) (*domain.RoutineEntry, error)
	UpdateField(ctx context.Context, draftID, entryID, field, value string) (*DraftView, error)
	RemoveEntry(ctx context.Context, draftID, entryID string) (*DraftView, error)
	Reorder(ctx context.Context, draftID, sourceID, targetID string) (*DraftView, error)
	Discard(ctx context.Context, draftID string) error
	// Save stores the draft for ident and discards it. A draft that fails
	// validation is left untouched.
	Save(ctx context.Context, ident Identity, draftID string) (*domain.Routine, error)
}

type heldDraft struct {
	draft   *routine.Draft
	touched time.Time
}

type draftService struct {
	catalog  *catalog.Catalog
	routines RoutineService
	metrics  *metrics.Manager
	maxHeld  int
	newID    func() string
	now      func() time.Time

	mu     sync.Mutex
	drafts map[string]*heldDraft
}

func NewDraftService(c *catalog.Catalog, routines RoutineService, m *metrics.Manager, maxDrafts int) DraftService {
	if maxDrafts <= 0 {
		maxDrafts = DefaultMaxDrafts
	}
	return &draftService{
		catalog:  c,
		routines: routines,
		metrics:  m,
		maxHeld:  maxDrafts,
		newID:    uuid.NewString,
		now:      time.Now,
		drafts:   make(map[string]*heldDraft),
	}
}

func (s *draftService) Create(_ context.Context) (*DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.drafts) >= s.maxHeld {
		s.evictOldest()
	}
	id := s.newID()
	held := &heldDraft{draft: routine.NewDraft(), touched: s.now()}
	s.drafts[id] = held
	s.metrics.CounterDraftsCreated.Inc()
	s.metrics.GaugeOpenDrafts.Set(float64(len(s.drafts)))
	return view(id, held.draft), nil
}

func (s *draftService) Get(_ context.Context, draftID string) (*DraftView, error) {
	return s.withDraft(draftID, func(*routine.Draft) error { return nil })
}

func (s *draftService) Rename(_ context.Context, draftID, name string) (*DraftView, error) {
	return s.withDraft(draftID, func(d *routine.Draft) error {
		d.SetName(name)
		return nil
	})
}

func (s *draftService) AddExercise(_ context.Context, draftID string, exerciseID int) (*domain.RoutineEntry, error) {
	ex, err := s.catalog.Get(exerciseID)
	if errors.Is(err, catalog.ErrExerciseNotFound) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}

	var entry domain.RoutineEntry
	_, err = s.withDraft(draftID, func(d *routine.Draft) error {
		entry = d.AddExercise(ex)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *draftService) UpdateField(_ context.Context, draftID, entryID, field, value string) (*DraftView, error) {
	f, err := routine.ParseField(field)
	if err != nil {
		return nil, err
	}
	return s.withDraft(draftID, func(d *routine.Draft) error {
		return d.UpdateField(entryID, f, value)
	})
}

func (s *draftService) RemoveEntry(_ context.Context, draftID, entryID string) (*DraftView, error) {
	return s.withDraft(draftID, func(d *routine.Draft) error {
		return d.RemoveEntry(entryID)
	})
}

func (s *draftService) Reorder(_ context.Context, draftID, sourceID, targetID string) (*DraftView, error) {
	return s.withDraft(draftID, func(d *routine.Draft) error {
		return d.Reorder(sourceID, targetID)
	})
}

func (s *draftService) Discard(_ context.Context, draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[draftID]; !ok {
		return ErrDraftNotFound
	}
	delete(s.drafts, draftID)
	s.metrics.GaugeOpenDrafts.Set(float64(len(s.drafts)))
	return nil
}

func (s *draftService) Save(ctx context.Context, ident Identity, draftID string) (*domain.Routine, error) {
	var snapshot domain.RoutineDraft
	if _, err := s.withDraft(draftID, func(d *routine.Draft) error {
		snapshot = d.Snapshot()
		return nil
	}); err != nil {
		return nil, err
	}

	// The store call may block; the draft lock is not held across it.
	saved, err := s.routines.Save(ctx, ident, snapshot)
	if err != nil {
		return nil, err
	}

	if err := s.Discard(ctx, draftID); err != nil && !errors.Is(err, ErrDraftNotFound) {
		return nil, err
	}
	return saved, nil
}

// withDraft runs fn on the draft under the service lock and returns the
// resulting view. fn's error is returned as is.
func (s *draftService) withDraft(draftID string, fn func(*routine.Draft) error) (*DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	held, ok := s.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if err := fn(held.draft); err != nil {
		return nil, err
	}
	held.touched = s.now()
	return view(draftID, held.draft), nil
}

func (s *draftService) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, held := range s.drafts {
		if oldestID == "" || held.touched.Before(oldest) {
			oldestID, oldest = id, held.touched
		}
	}
	if oldestID != "" {
		delete(s.drafts, oldestID)
		log.Debugf("evicted idle draft %s", oldestID)
	}
}

func view(id string, d *routine.Draft) *DraftView {
	return &DraftView{ID: id, Name: d.Name(), Entries: d.Entries()}
}
