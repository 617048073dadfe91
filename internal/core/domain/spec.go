package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Legal ranges for PlaylistSpec numeric fields.
const (
	TempoMin = 60.0
	TempoMax = 220.0

	MinGenres = 1
	MaxGenres = 5
)

// ErrInvalidSpec indicates a playlist spec failed schema validation.
var ErrInvalidSpec = errors.New("domain: invalid playlist spec")

// FieldViolation describes a single schema violation.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InvalidSpecError carries field-level detail for a failed validation.
type InvalidSpecError struct {
	Violations []FieldViolation
}

func (e *InvalidSpecError) Error() string {
	if len(e.Violations) == 0 {
		return ErrInvalidSpec.Error()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return fmt.Sprintf("domain: invalid playlist spec: %s", strings.Join(parts, "; "))
}

func (e *InvalidSpecError) Is(target error) bool {
	return target == ErrInvalidSpec
}

// TempoRange is a BPM window, min <= max, both within [TempoMin, TempoMax].
type TempoRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PlaylistSpec is the canonical structured representation of a playlist request.
// Values are treated as immutable once handed to the query or parameter
// builders; Clamp returns a fresh value rather than mutating in place.
type PlaylistSpec struct {
	Genres       []string   `json:"genres"`
	TempoRange   TempoRange `json:"tempoRange"`
	Energy       float64    `json:"energy"`
	Danceability float64    `json:"danceability"`
	Valence      *float64   `json:"valence,omitempty"`
	SeedArtists  []string   `json:"seedArtists,omitempty"`
	SeedTracks   []string   `json:"seedTracks"`
	Notes        string     `json:"notes,omitempty"`
}

// specPayload mirrors PlaylistSpec with pointer fields so that absent and
// zero-valued inputs can be told apart during validation.
type specPayload struct {
	Genres       *[]string `json:"genres"`
	TempoRange   *struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	} `json:"tempoRange"`
	Energy       *float64 `json:"energy"`
	Danceability *float64 `json:"danceability"`
	Valence      *float64 `json:"valence"`
	SeedArtists  []string `json:"seedArtists"`
	SeedTracks   []string `json:"seedTracks"`
	Notes        string   `json:"notes"`
}

// ParseSpec is the single gate through which externally sourced specs enter
// the system. It decodes raw JSON, checks required fields and sequence-length
// constraints, and clamps every numeric field into its legal range.
func ParseSpec(data []byte) (PlaylistSpec, error) {
	var payload specPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return PlaylistSpec{}, &InvalidSpecError{Violations: []FieldViolation{
				{Field: typeErr.Field, Message: fmt.Sprintf("expected %s", typeErr.Type)},
			}}
		}
		return PlaylistSpec{}, &InvalidSpecError{Violations: []FieldViolation{
			{Field: "", Message: "malformed JSON"},
		}}
	}

	var violations []FieldViolation
	spec := PlaylistSpec{
		SeedArtists: payload.SeedArtists,
		SeedTracks:  payload.SeedTracks,
		Notes:       payload.Notes,
		Valence:     payload.Valence,
	}

	if payload.Genres == nil {
		violations = append(violations, FieldViolation{Field: "genres", Message: "required"})
	} else {
		spec.Genres = *payload.Genres
	}
	if payload.TempoRange == nil || payload.TempoRange.Min == nil || payload.TempoRange.Max == nil {
		violations = append(violations, FieldViolation{Field: "tempoRange", Message: "required"})
	} else {
		spec.TempoRange = TempoRange{Min: *payload.TempoRange.Min, Max: *payload.TempoRange.Max}
	}
	if payload.Energy == nil {
		violations = append(violations, FieldViolation{Field: "energy", Message: "required"})
	} else {
		spec.Energy = *payload.Energy
	}
	if payload.Danceability == nil {
		violations = append(violations, FieldViolation{Field: "danceability", Message: "required"})
	} else {
		spec.Danceability = *payload.Danceability
	}
	if len(violations) > 0 {
		return PlaylistSpec{}, &InvalidSpecError{Violations: violations}
	}

	return ValidateSpec(spec)
}

// ValidateSpec checks an already-typed spec and returns a clamped copy.
// Stored or caller-supplied specs go through here again before use; trusted
// provenance does not exempt a value from the schema gate.
func ValidateSpec(spec PlaylistSpec) (PlaylistSpec, error) {
	var violations []FieldViolation

	if len(spec.Genres) < MinGenres || len(spec.Genres) > MaxGenres {
		violations = append(violations, FieldViolation{
			Field:   "genres",
			Message: fmt.Sprintf("must contain between %d and %d entries", MinGenres, MaxGenres),
		})
	}
	for i, g := range spec.Genres {
		if strings.TrimSpace(g) == "" {
			violations = append(violations, FieldViolation{
				Field:   fmt.Sprintf("genres[%d]", i),
				Message: "must not be empty",
			})
		}
	}
	if spec.TempoRange.Min > spec.TempoRange.Max {
		violations = append(violations, FieldViolation{
			Field:   "tempoRange",
			Message: "min must be less than or equal to max",
		})
	}

	if len(violations) > 0 {
		return PlaylistSpec{}, &InvalidSpecError{Violations: violations}
	}

	return spec.Clamp(), nil
}

// Clamp returns a copy of the spec with every numeric field forced into its
// legal range and genres truncated to the first MaxGenres entries. Seed lists
// are passed through unbounded; bounding happens in the seed resolver.
// Clamp is idempotent.
func (s PlaylistSpec) Clamp() PlaylistSpec {
	out := s

	genres := s.Genres
	if len(genres) > MaxGenres {
		genres = genres[:MaxGenres]
	}
	out.Genres = append([]string(nil), genres...)
	out.SeedArtists = append([]string(nil), s.SeedArtists...)
	out.SeedTracks = append([]string(nil), s.SeedTracks...)

	out.TempoRange.Min = clamp(s.TempoRange.Min, TempoMin, TempoMax)
	out.TempoRange.Max = clamp(s.TempoRange.Max, TempoMin, TempoMax)
	out.Energy = clamp(s.Energy, 0, 1)
	out.Danceability = clamp(s.Danceability, 0, 1)
	if s.Valence != nil {
		v := clamp(*s.Valence, 0, 1)
		out.Valence = &v
	}

	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
