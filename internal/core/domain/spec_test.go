package domain

import (
	"errors"
	"reflect"
	"testing"
)

func validSpecJSON() string {
	return `{
		"genres": ["lo-fi hip hop", "ambient"],
		"tempoRange": {"min": 70, "max": 95},
		"energy": 0.3,
		"danceability": 0.4,
		"valence": 0.6,
		"seedArtists": ["Nujabes"],
		"seedTracks": [],
		"notes": "late night"
	}`
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid spec",
			input:   validSpecJSON(),
			wantErr: false,
		},
		{
			name:    "malformed JSON",
			input:   `{"genres": [`,
			wantErr: true,
		},
		{
			name:      "missing genres",
			input:     `{"tempoRange":{"min":70,"max":95},"energy":0.3,"danceability":0.4}`,
			wantErr:   true,
			wantField: "genres",
		},
		{
			name:      "missing energy",
			input:     `{"genres":["ambient"],"tempoRange":{"min":70,"max":95},"danceability":0.4}`,
			wantErr:   true,
			wantField: "energy",
		},
		{
			name:      "missing tempo bounds",
			input:     `{"genres":["ambient"],"tempoRange":{"min":70},"energy":0.3,"danceability":0.4}`,
			wantErr:   true,
			wantField: "tempoRange",
		},
		{
			name:      "wrongly typed energy",
			input:     `{"genres":["ambient"],"tempoRange":{"min":70,"max":95},"energy":"high","danceability":0.4}`,
			wantErr:   true,
			wantField: "energy",
		},
		{
			name:      "empty genres",
			input:     `{"genres":[],"tempoRange":{"min":70,"max":95},"energy":0.3,"danceability":0.4}`,
			wantErr:   true,
			wantField: "genres",
		},
		{
			name:      "too many genres",
			input:     `{"genres":["a","b","c","d","e","f"],"tempoRange":{"min":70,"max":95},"energy":0.3,"danceability":0.4}`,
			wantErr:   true,
			wantField: "genres",
		},
		{
			name:      "tempo min greater than max",
			input:     `{"genres":["ambient"],"tempoRange":{"min":210,"max":70},"energy":0.3,"danceability":0.4}`,
			wantErr:   true,
			wantField: "tempoRange",
		},
		{
			name:    "absent seedTracks decodes as empty",
			input:   `{"genres":["ambient"],"tempoRange":{"min":70,"max":95},"energy":0.3,"danceability":0.4}`,
			wantErr: false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			spec, err := ParseSpec([]byte(tc.input))
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if len(spec.Genres) == 0 {
					t.Fatal("expected genres to be populated")
				}
				return
			}

			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
			if tc.wantField == "" {
				return
			}
			var specErr *InvalidSpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("expected InvalidSpecError, got %T", err)
			}
			found := false
			for _, v := range specErr.Violations {
				if v.Field == tc.wantField {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected violation on %q, got %+v", tc.wantField, specErr.Violations)
			}
		})
	}
}

func TestClamp_RangesAndTruncation(t *testing.T) {
	valence := 1.7
	spec := PlaylistSpec{
		Genres:       []string{"a", "b", "c", "d", "e", "f", "g"},
		TempoRange:   TempoRange{Min: 10, Max: 500},
		Energy:       -0.2,
		Danceability: 1.4,
		Valence:      &valence,
	}

	got := spec.Clamp()

	if len(got.Genres) != MaxGenres {
		t.Errorf("genres: got %d entries, want %d", len(got.Genres), MaxGenres)
	}
	if got.TempoRange.Min != TempoMin {
		t.Errorf("tempo min: got %v, want %v", got.TempoRange.Min, TempoMin)
	}
	if got.TempoRange.Max != TempoMax {
		t.Errorf("tempo max: got %v, want %v", got.TempoRange.Max, TempoMax)
	}
	if got.Energy != 0 {
		t.Errorf("energy: got %v, want 0", got.Energy)
	}
	if got.Danceability != 1 {
		t.Errorf("danceability: got %v, want 1", got.Danceability)
	}
	if got.Valence == nil || *got.Valence != 1 {
		t.Errorf("valence: got %v, want 1", got.Valence)
	}

	// The input value is never mutated.
	if spec.Energy != -0.2 || len(spec.Genres) != 7 {
		t.Error("Clamp mutated its receiver")
	}
}

func TestClamp_Idempotent(t *testing.T) {
	valence := -3.0
	specs := []PlaylistSpec{
		{
			Genres:       []string{"synthwave"},
			TempoRange:   TempoRange{Min: 80, Max: 120},
			Energy:       0.5,
			Danceability: 0.5,
		},
		{
			Genres:       []string{"a", "b", "c", "d", "e", "f"},
			TempoRange:   TempoRange{Min: -40, Max: 9000},
			Energy:       2.5,
			Danceability: -1,
			Valence:      &valence,
		},
	}

	for _, spec := range specs {
		once := spec.Clamp()
		twice := once.Clamp()
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("clamp not idempotent: %+v vs %+v", once, twice)
		}
		if once.Energy < 0 || once.Energy > 1 {
			t.Errorf("energy out of range after clamp: %v", once.Energy)
		}
		if once.Danceability < 0 || once.Danceability > 1 {
			t.Errorf("danceability out of range after clamp: %v", once.Danceability)
		}
	}
}

func TestValidateSpec_PassesSeedsThroughUnbounded(t *testing.T) {
	spec := PlaylistSpec{
		Genres:       []string{"jazz"},
		TempoRange:   TempoRange{Min: 80, Max: 140},
		Energy:       0.4,
		Danceability: 0.5,
		SeedArtists:  []string{"a", "b", "c", "d"},
		SeedTracks:   []string{"x", "y", "z"},
	}

	got, err := ValidateSpec(spec)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got.SeedArtists) != 4 || len(got.SeedTracks) != 3 {
		t.Errorf("seed lists were bounded: %d artists, %d tracks", len(got.SeedArtists), len(got.SeedTracks))
	}
}
