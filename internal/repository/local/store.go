// Package local implements the routine store over a single named slot.
// The whole collection is read and rewritten on every mutation.
package local

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/repository"

	log "github.com/sirupsen/logrus"
)

// DefaultKey is the slot name routines are stored under.
const DefaultKey = "fitbuilder-routines"

const maxWriteAttempts = 3

var _ repository.RoutineRepository = (*Store)(nil)

// Store keeps every routine of one guest collection in one slot.
type Store struct {
	slot       repository.Slot
	key        string
	now        func() time.Time
	onFallback func(key, reason string)

	// serializes read-modify-write within this process
	mu sync.Mutex
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithFallbackHook is called whenever stored data is unreadable and an
// empty collection is used instead.
func WithFallbackHook(fn func(key, reason string)) Option {
	return func(s *Store) {
		s.onFallback = fn
	}
}

func NewStore(slot repository.Slot, key string, opts ...Option) *Store {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{
		slot:       slot,
		key:        key,
		now:        time.Now,
		onFallback: func(string, string) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadAll returns routines in the order they were saved. Unparseable data
// yields an empty collection, not an error.
func (s *Store) LoadAll(ctx context.Context, _ string) ([]domain.Routine, error) {
	c, _, _, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return c.routines, nil
}

func (s *Store) GetByID(ctx context.Context, _ string, id string) (*domain.Routine, error) {
	c, _, _, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range c.routines {
		if c.routines[i].ID == id {
			return &c.routines[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// Save validates the draft, assigns id and creation time and appends it.
// Nothing is written when validation fails.
func (s *Store) Save(ctx context.Context, _ string, draft domain.RoutineDraft) (*domain.Routine, error) {
	if err := domain.ValidateRoutine(draft); err != nil {
		return nil, err
	}

	var saved domain.Routine
	err := s.mutate(ctx, func(routines []domain.Routine) ([]domain.Routine, error) {
		now := s.now().UTC()
		saved = domain.Routine{
			ID:        nextRoutineID(now, routines),
			Name:      strings.TrimSpace(draft.Name),
			Entries:   domain.CloneEntries(draft.Entries),
			CreatedAt: now,
		}
		return append(routines, saved), nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteByID removes a routine. A missing id returns ErrNotFound and
// leaves the slot untouched.
func (s *Store) DeleteByID(ctx context.Context, _ string, id string) error {
	return s.mutate(ctx, func(routines []domain.Routine) ([]domain.Routine, error) {
		for i := range routines {
			if routines[i].ID == id {
				return append(routines[:i], routines[i+1:]...), nil
			}
		}
		return nil, repository.ErrNotFound
	})
}

// read loads and decodes the slot. raw is what was read, for a later
// compare-and-swap.
func (s *Store) read(ctx context.Context) (c collection, raw []byte, found bool, err error) {
	raw, found, err = s.slot.Load(ctx, s.key)
	if err != nil {
		return collection{}, nil, false, fmt.Errorf("load slot %q: %w", s.key, err)
	}
	if !found {
		return collection{routines: []domain.Routine{}}, nil, false, nil
	}

	c, reason, decodeErr := decode(raw)
	if decodeErr != nil {
		log.Warnf("routine store: slot %q unreadable (%s), using empty collection: %s", s.key, reason, decodeErr)
		s.onFallback(s.key, reason)
		return collection{routines: []domain.Routine{}}, raw, true, nil
	}
	return c, raw, true, nil
}

func (s *Store) mutate(ctx context.Context, apply func([]domain.Routine) ([]domain.Routine, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		c, raw, found, err := s.read(ctx)
		if err != nil {
			return err
		}

		routines, err := apply(c.routines)
		if err != nil {
			return err
		}

		data, err := encode(collection{revision: c.revision + 1, routines: routines})
		if err != nil {
			return fmt.Errorf("encode routines: %w", err)
		}

		cas, ok := s.slot.(repository.CASSlot)
		if !ok {
			if err := s.slot.Store(ctx, s.key, data); err != nil {
				return fmt.Errorf("store slot %q: %w", s.key, err)
			}
			return nil
		}

		var expected []byte
		if found {
			expected = raw
		}
		swapped, err := cas.CompareAndSwap(ctx, s.key, expected, data)
		if err != nil {
			return fmt.Errorf("store slot %q: %w", s.key, err)
		}
		if swapped {
			return nil
		}
		log.Warnf("routine store: slot %q changed concurrently, retrying (attempt %d/%d)", s.key, attempt, maxWriteAttempts)
	}
	return repository.ErrConcurrentModification
}

// nextRoutineID derives an id from the creation time in milliseconds,
// bumped until it is unique among stored routines.
func nextRoutineID(now time.Time, existing []domain.Routine) string {
	taken := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		taken[r.ID] = struct{}{}
	}
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if _, ok := taken[id]; !ok {
			return id
		}
		ms++
	}
}
