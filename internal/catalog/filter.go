package catalog

import (
	"net/url"
	"strings"

	"fitbuilder/server/internal/domain"
)

// AnyFacet is the sentinel for "no constraint". An empty facet means the same.
const AnyFacet = "all"

// Facets are the independent filter dimensions. All active facets must match.
type Facets struct {
	MuscleGroup string `json:"muscleGroup,omitempty"`
	Equipment   string `json:"equipment,omitempty"`
	Location    string `json:"location,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Search      string `json:"search,omitempty"`
}

// ParseFacets reads facets from query parameters.
func ParseFacets(values url.Values) Facets {
	return Facets{
		MuscleGroup: values.Get("muscleGroup"),
		Equipment:   values.Get("equipment"),
		Location:    values.Get("location"),
		Difficulty:  values.Get("difficulty"),
		Search:      values.Get("search"),
	}
}

// IsZero reports whether no facet constrains the result.
func (f Facets) IsZero() bool {
	return unset(f.MuscleGroup) && unset(f.Equipment) && unset(f.Location) &&
		unset(f.Difficulty) && f.Search == ""
}

// Filter returns the exercises matching every active facet, in input order.
// The result is never nil.
func Filter(exercises []domain.Exercise, f Facets) []domain.Exercise {
	search := strings.ToLower(f.Search)
	out := make([]domain.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if !matchExact(f.MuscleGroup, string(ex.MuscleGroup)) ||
			!matchExact(f.Equipment, string(ex.Equipment)) ||
			!matchLocation(f.Location, ex.Location) ||
			!matchExact(f.Difficulty, string(ex.Difficulty)) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(ex.Name), search) {
			continue
		}
		out = append(out, ex)
	}
	return out
}

func unset(v string) bool {
	return v == "" || v == AnyFacet
}

func matchExact(want, have string) bool {
	return unset(want) || want == have
}

// An exercise doable in both places matches either location filter.
func matchLocation(want string, have domain.Location) bool {
	return unset(want) || have == domain.LocationBoth || string(have) == want
}
