package local

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/routine"
)

// currentSchemaVersion is written on every save. Version 0 is the legacy
// layout: a bare JSON array of routines.
const currentSchemaVersion = 1

// Reasons a stored blob is treated as empty.
const (
	fallbackCorrupt            = "corrupt"
	fallbackUnsupportedVersion = "unsupported_version"
)

var errUnsupportedVersion = errors.New("unsupported schema version")

type envelope struct {
	Version  int             `json:"version"`
	Revision int64           `json:"revision"`
	Routines []routineRecord `json:"routines"`
}

type routineRecord struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Exercises []entryRecord `json:"exercises"`
	CreatedAt string        `json:"createdAt"`
}

// Optional string fields are pointers so a missing field can get its
// default instead of "".
type entryRecord struct {
	UniqueID string          `json:"uniqueId"`
	Exercise domain.Exercise `json:"exercise"`
	Sets     *string         `json:"sets,omitempty"`
	Reps     *string         `json:"reps,omitempty"`
	RestTime *string         `json:"restTime,omitempty"`
	Notes    *string         `json:"notes,omitempty"`
}

// collection is the decoded slot content.
type collection struct {
	revision int64
	routines []domain.Routine
}

// decode parses raw slot data. An error means the data must be treated as
// absent; the string names the reason.
func decode(raw []byte) (collection, string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return collection{routines: []domain.Routine{}}, "", nil
	}

	switch raw[0] {
	case '[':
		var records []routineRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return collection{}, fallbackCorrupt, err
		}
		return collection{routines: fromRecords(records)}, "", nil
	case '{':
		var header struct {
			Version *int `json:"version"`
		}
		if err := json.Unmarshal(raw, &header); err != nil {
			return collection{}, fallbackCorrupt, err
		}
		if header.Version == nil || *header.Version != currentSchemaVersion {
			return collection{}, fallbackUnsupportedVersion, errUnsupportedVersion
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return collection{}, fallbackCorrupt, err
		}
		return collection{revision: env.Revision, routines: fromRecords(env.Routines)}, "", nil
	default:
		return collection{}, fallbackCorrupt, fmt.Errorf("unexpected leading byte %q", raw[0])
	}
}

func encode(c collection) ([]byte, error) {
	env := envelope{
		Version:  currentSchemaVersion,
		Revision: c.revision,
		Routines: toRecords(c.routines),
	}
	return json.Marshal(env)
}

// fromRecords migrates records into domain routines. Records without an id
// and repeated ids are dropped so the collection stays keyed by id.
func fromRecords(records []routineRecord) []domain.Routine {
	routines := make([]domain.Routine, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}

		entries := make([]domain.RoutineEntry, 0, len(rec.Exercises))
		for _, e := range rec.Exercises {
			entries = append(entries, domain.RoutineEntry{
				EntryID:  e.UniqueID,
				Exercise: e.Exercise,
				Sets:     valueOr(e.Sets, routine.DefaultSets),
				Reps:     valueOr(e.Reps, routine.DefaultReps),
				RestTime: valueOr(e.RestTime, routine.DefaultRestTime),
				Notes:    valueOr(e.Notes, ""),
			})
		}

		routines = append(routines, domain.Routine{
			ID:        rec.ID,
			Name:      rec.Name,
			Entries:   entries,
			CreatedAt: parseTime(rec.CreatedAt),
		})
	}
	return routines
}

func toRecords(routines []domain.Routine) []routineRecord {
	records := make([]routineRecord, 0, len(routines))
	for _, r := range routines {
		exercises := make([]entryRecord, 0, len(r.Entries))
		for _, e := range r.Entries {
			exercises = append(exercises, entryRecord{
				UniqueID: e.EntryID,
				Exercise: e.Exercise,
				Sets:     &e.Sets,
				Reps:     &e.Reps,
				RestTime: &e.RestTime,
				Notes:    &e.Notes,
			})
		}
		records = append(records, routineRecord{
			ID:        r.ID,
			Name:      r.Name,
			Exercises: exercises,
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return records
}

func valueOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
