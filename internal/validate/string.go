// Package validate provides input validation for event submissions and the
// URL normalization used by the aggregator.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// String validation errors
var (
	ErrStringTooShort  = errors.New("string is too short")
	ErrStringTooLong   = errors.New("string is too long")
	ErrEmpty           = errors.New("string is empty")
	ErrNotInVocabulary = errors.New("value not in controlled vocabulary")
)

// StringConstraints defines validation constraints for a string field.
type StringConstraints struct {
	MinLength  int  // Minimum length in runes (0 = no minimum)
	MaxLength  int  // Maximum length in runes (0 = no maximum)
	AllowEmpty bool // Whether empty strings are allowed
	TrimSpace  bool // Whether to trim whitespace before validation
}

// String validates a string against the given constraints.
// Returns the validated (and optionally trimmed) string and an error if
// validation fails.
func String(s string, constraints StringConstraints) (string, error) {
	if constraints.TrimSpace {
		s = strings.TrimSpace(s)
	}

	if s == "" {
		if !constraints.AllowEmpty {
			return "", ErrEmpty
		}
		return s, nil
	}

	// Rune count, not byte count
	length := utf8.RuneCountInString(s)

	if constraints.MinLength > 0 && length < constraints.MinLength {
		return "", fmt.Errorf("%w: got %d chars, need at least %d", ErrStringTooShort, length, constraints.MinLength)
	}
	if constraints.MaxLength > 0 && length > constraints.MaxLength {
		return "", fmt.Errorf("%w: got %d chars, maximum is %d", ErrStringTooLong, length, constraints.MaxLength)
	}

	return s, nil
}

// EventTypes is the controlled vocabulary for the event type field.
var EventTypes = []string{
	"Conference", "Workshop", "Meetup", "Webinar", "Hackathon", "Competition",
	"Summit", "Panel", "Networking", "Training", "Exhibition", "Other",
}

// EventTopics is the controlled vocabulary for the event topic field.
var EventTopics = []string{
	"Technology", "Business", "Design", "Marketing", "Finance", "Education",
	"Health", "Social Impact", "Innovation", "Web3", "AI", "Blockchain",
	"Product", "Entrepreneurship", "Investment", "Other",
}

// EventTags is the controlled vocabulary for submitted event tags.
var EventTags = []string{
	"Web3", "Networking", "Tech", "Pitch", "Startup", "Funding", "Workshop",
	"Conference", "Hackathon", "AI", "Blockchain", "Design", "Marketing",
	"Product", "Finance", "Business", "Education", "Health", "Social Impact",
	"Innovation", "Remote", "In-Person", "Hybrid",
}

// InVocabulary validates that a value is one of the allowed entries
// (exact match). Returns the value or ErrNotInVocabulary.
func InVocabulary(value string, vocabulary []string) (string, error) {
	for _, v := range vocabulary {
		if value == v {
			return value, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNotInVocabulary, value)
}

// FilterTags drops tags that are not in the controlled tag vocabulary,
// preserving the order of the valid ones.
func FilterTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, err := InVocabulary(t, EventTags); err == nil {
			out = append(out, t)
		}
	}
	return out
}
