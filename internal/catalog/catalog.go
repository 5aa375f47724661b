// Package catalog holds the exercise library and the facet filter over it.
package catalog

import (
	"errors"
	"sync"

	"fitbuilder/server/internal/domain"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// Catalog is the seed exercise list plus any exercises added while the
// process runs. Additions are never persisted.
type Catalog struct {
	mu        sync.RWMutex
	exercises []domain.Exercise
	seedCount int
}

// New creates a catalog from the given seed list, keeping its order.
func New(seed []domain.Exercise) *Catalog {
	exercises := make([]domain.Exercise, len(seed))
	for i, ex := range seed {
		exercises[i] = ex.Clone()
	}
	return &Catalog{
		exercises: exercises,
		seedCount: len(seed),
	}
}

// Default returns a catalog built from SeedExercises.
func Default() *Catalog {
	return New(SeedExercises())
}

// All returns seed exercises followed by additions, in catalog order.
func (c *Catalog) All() []domain.Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.exercises)
}

// Additions returns only the exercises added after construction.
func (c *Catalog) Additions() []domain.Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.exercises[c.seedCount:])
}

// Get looks an exercise up by id.
func (c *Catalog) Get(id int) (domain.Exercise, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ex := range c.exercises {
		if ex.ID == id {
			return ex.Clone(), nil
		}
	}
	return domain.Exercise{}, ErrExerciseNotFound
}

// Add validates ex, assigns it the next sequential id and appends it.
// Any id set by the caller is ignored.
func (c *Catalog) Add(ex domain.Exercise) (domain.Exercise, error) {
	if err := ex.Validate(); err != nil {
		return domain.Exercise{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ex = ex.Clone()
	ex.ID = c.nextID()
	c.exercises = append(c.exercises, ex)
	return ex.Clone(), nil
}

func (c *Catalog) nextID() int {
	maxID := 0
	for _, ex := range c.exercises {
		if ex.ID > maxID {
			maxID = ex.ID
		}
	}
	return maxID + 1
}

func cloneAll(exercises []domain.Exercise) []domain.Exercise {
	out := make([]domain.Exercise, len(exercises))
	for i, ex := range exercises {
		out[i] = ex.Clone()
	}
	return out
}
