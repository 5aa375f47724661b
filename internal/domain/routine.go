// internal/domain/routine.go
package domain

import (
	"strings"
	"time"
)

// RoutineEntry is one occurrence of an exercise inside a routine. The
// exercise is embedded as a snapshot taken when the entry was added, so a
// saved routine renders without the live catalog.
type RoutineEntry struct {
	EntryID  string   `bson:"uniqueId" json:"uniqueId"` // Stable across reorders; the same exercise may appear twice
	Exercise Exercise `bson:"exercise" json:"exercise"`
	Sets     string   `bson:"sets" json:"sets"`         // Free-form, e.g. "3"
	Reps     string   `bson:"reps" json:"reps"`         // Free-form, e.g. "10", "30s", "AMRAP"
	RestTime string   `bson:"restTime" json:"restTime"` // Free-form, e.g. "60s"
	Notes    string   `bson:"notes" json:"notes"`
}

// Routine is the unit of persistence: a named, ordered list of entries.
type Routine struct {
	ID        string         `bson:"_id" json:"id"`
	UserID    string         `bson:"userId,omitempty" json:"-"` // Set only for server-stored routines
	Name      string         `bson:"name" json:"name"`
	Entries   []RoutineEntry `bson:"exercises" json:"exercises"` // Execution order
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}

// RoutineDraft is what a store receives on save: everything but the
// identity and timestamp, which the store assigns.
type RoutineDraft struct {
	Name    string
	Entries []RoutineEntry
}

// ValidateRoutine checks the two save rules. Both are reported when both fail.
func ValidateRoutine(draft RoutineDraft) error {
	var fields []FieldError
	if strings.TrimSpace(draft.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Err: ErrRoutineNameRequired})
	}
	if len(draft.Entries) == 0 {
		fields = append(fields, FieldError{Field: "exercises", Err: ErrRoutineEntriesRequired})
	}
	if len(fields) > 0 {
		return &ValidationError{Errors: fields}
	}
	return nil
}

// CloneEntries deep-copies entries including their exercise snapshots.
func CloneEntries(entries []RoutineEntry) []RoutineEntry {
	if entries == nil {
		return nil
	}
	out := make([]RoutineEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		out[i].Exercise = e.Exercise.Clone()
	}
	return out
}
