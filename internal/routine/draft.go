// Package routine implements the in-progress routine builder and the
// summaries shown in the routine collection.
package routine

import (
	"errors"
	"fmt"

	"fitbuilder/server/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrEntryNotFound = errors.New("routine entry not found")
	ErrUnknownField  = errors.New("unknown routine entry field")
)

// Defaults applied to every newly added entry.
const (
	DefaultSets     = "3"
	DefaultReps     = "10"
	DefaultRestTime = "60s"
)

// Field names the user-editable parts of an entry.
type Field string

const (
	FieldSets     Field = "sets"
	FieldReps     Field = "reps"
	FieldRestTime Field = "restTime"
	FieldNotes    Field = "notes"
)

// ParseField converts s to a Field, rejecting anything else.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldSets, FieldReps, FieldRestTime, FieldNotes:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Draft is an unsaved routine under construction. It is not safe for
// concurrent use; callers serialize access.
type Draft struct {
	name    string
	entries []domain.RoutineEntry
	newID   func() string
}

type Option func(*Draft)

// WithIDGenerator replaces the entry id generator (uuid by default).
func WithIDGenerator(fn func() string) Option {
	return func(d *Draft) {
		d.newID = fn
	}
}

func NewDraft(opts ...Option) *Draft {
	d := &Draft{
		entries: []domain.RoutineEntry{},
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Draft) Name() string { return d.name }

func (d *Draft) SetName(name string) { d.name = name }

func (d *Draft) Len() int { return len(d.entries) }

// Entries returns a copy of the entries in their current order.
func (d *Draft) Entries() []domain.RoutineEntry {
	return domain.CloneEntries(d.entries)
}

// Snapshot returns the draft in the shape a store saves.
func (d *Draft) Snapshot() domain.RoutineDraft {
	return domain.RoutineDraft{Name: d.name, Entries: d.Entries()}
}

// AddExercise appends a snapshot of ex with default set/rep/rest values.
// Adding the same exercise twice yields two independent entries.
func (d *Draft) AddExercise(ex domain.Exercise) domain.RoutineEntry {
	entry := domain.RoutineEntry{
		EntryID:  d.newID(),
		Exercise: ex.Clone(),
		Sets:     DefaultSets,
		Reps:     DefaultReps,
		RestTime: DefaultRestTime,
		Notes:    "",
	}
	d.entries = append(d.entries, entry)
	return entry
}

// UpdateField sets one field of one entry.
func (d *Draft) UpdateField(entryID string, field Field, value string) error {
	i := indexOf(d.entries, entryID)
	if i < 0 {
		return ErrEntryNotFound
	}
	e := &d.entries[i]
	switch field {
	case FieldSets:
		e.Sets = value
	case FieldReps:
		e.Reps = value
	case FieldRestTime:
		e.RestTime = value
	case FieldNotes:
		e.Notes = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// RemoveEntry drops an entry. Remaining entries keep their ids.
func (d *Draft) RemoveEntry(entryID string) error {
	i := indexOf(d.entries, entryID)
	if i < 0 {
		return ErrEntryNotFound
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	return nil
}

// Reorder moves sourceID to targetID's position. Equal ids are a no-op.
func (d *Draft) Reorder(sourceID, targetID string) error {
	if indexOf(d.entries, sourceID) < 0 || indexOf(d.entries, targetID) < 0 {
		return ErrEntryNotFound
	}
	d.entries = Reorder(d.entries, sourceID, targetID)
	return nil
}

// Reorder returns a new slice with the entry identified by sourceID moved
// to the index currently held by targetID; entries in between shift by one.
// If either id is missing or they are equal, the result equals the input.
func Reorder(entries []domain.RoutineEntry, sourceID, targetID string) []domain.RoutineEntry {
	out := make([]domain.RoutineEntry, len(entries))
	copy(out, entries)

	from, to := indexOf(out, sourceID), indexOf(out, targetID)
	if from < 0 || to < 0 || from == to {
		return out
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}

func indexOf(entries []domain.RoutineEntry, entryID string) int {
	for i, e := range entries {
		if e.EntryID == entryID {
			return i
		}
	}
	return -1
}
