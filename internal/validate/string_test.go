package validate

import (
	"errors"
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		constraints StringConstraints
		want        string
		wantErr     error
	}{
		{
			name:        "valid string",
			input:       "Startup Pitch Night",
			constraints: StringConstraints{MinLength: 3, MaxLength: 200},
			want:        "Startup Pitch Night",
		},
		{
			name:        "empty rejected by default",
			input:       "",
			constraints: StringConstraints{MinLength: 3},
			wantErr:     ErrEmpty,
		},
		{
			name:        "empty allowed when configured",
			input:       "",
			constraints: StringConstraints{MaxLength: 100, AllowEmpty: true},
			want:        "",
		},
		{
			name:        "whitespace trimmed to empty",
			input:       "   ",
			constraints: StringConstraints{MinLength: 3, TrimSpace: true},
			wantErr:     ErrEmpty,
		},
		{
			name:        "too short",
			input:       "ab",
			constraints: StringConstraints{MinLength: 3},
			wantErr:     ErrStringTooShort,
		},
		{
			name:        "too long",
			input:       "abcdef",
			constraints: StringConstraints{MaxLength: 5},
			wantErr:     ErrStringTooLong,
		},
		{
			name:        "length counted in runes",
			input:       "héllo",
			constraints: StringConstraints{MinLength: 5, MaxLength: 5},
			want:        "héllo",
		},
		{
			name:        "trim applied before length check",
			input:       "  abc  ",
			constraints: StringConstraints{MinLength: 3, MaxLength: 3, TrimSpace: true},
			want:        "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := String(tt.input, tt.constraints)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("String() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("String() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInVocabulary(t *testing.T) {
	if _, err := InVocabulary("Conference", EventTypes); err != nil {
		t.Errorf("Conference should be a valid event type: %v", err)
	}
	if _, err := InVocabulary("conference", EventTypes); !errors.Is(err, ErrNotInVocabulary) {
		t.Errorf("vocabulary match should be exact, got err = %v", err)
	}
	if _, err := InVocabulary("Rave", EventTypes); !errors.Is(err, ErrNotInVocabulary) {
		t.Errorf("unknown type should be rejected, got err = %v", err)
	}
}

func TestFilterTags(t *testing.T) {
	got := FilterTags([]string{"Web3", "sketchy", "Networking", "", "AI"})
	want := []string{"Web3", "Networking", "AI"}
	if len(got) != len(want) {
		t.Fatalf("FilterTags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FilterTags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
