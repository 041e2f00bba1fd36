// Package event provides the normalized event model and the aggregator that
// merges raw tabular records from heterogeneous sources into it.
package event

import "time"

// PlaceholderTitle is used when a raw record carries no title under any alias.
const PlaceholderTitle = "Untitled Event"

// Roles recognized by the recommendation engine. Records without explicit
// role targeting are treated as relevant to all of them.
var AllRoles = []string{"founder", "investor", "employee", "corporate", "enthusiast"}

// Record is a normalized event candidate. Every field defaults to a safe
// empty or placeholder value; display code never has to guard against
// missing data.
type Record struct {
	ID          int       `json:"id" cbor:"id"`
	Title       string    `json:"title" cbor:"title"`
	Description string    `json:"description" cbor:"description"`
	Location    string    `json:"location" cbor:"location"`
	Type        string    `json:"type" cbor:"type"`
	Topic       string    `json:"topic" cbor:"topic"`
	// Date is an opaque display string, not a validated date.
	Date       string   `json:"date" cbor:"date"`
	URL        string   `json:"url,omitempty" cbor:"url,omitempty"`
	Tags       []string `json:"tags" cbor:"tags"`
	IsFeatured bool     `json:"is_featured" cbor:"is_featured"`

	CreatedAt time.Time `json:"created_at" cbor:"created_at"`
	UpdatedAt time.Time `json:"updated_at" cbor:"updated_at"`

	// Metadata carries the role-targeting signals used by the recommendation
	// engine. Nil for records imported from plain tabular sources; the engine
	// substitutes defaults so scoring stays total.
	Metadata *Metadata `json:"metadata,omitempty" cbor:"metadata,omitempty"`
}

// Metadata holds the curated role-targeting signals attached to an event.
type Metadata struct {
	TargetRoles       []string          `json:"target_roles" cbor:"target_roles"`
	Rating            float64           `json:"rating" cbor:"rating"`
	Attendees         int               `json:"attendees" cbor:"attendees"`
	SpecialFeatures   []string          `json:"special_features" cbor:"special_features"`
	Featured          bool              `json:"featured" cbor:"featured"`
	Trending          bool              `json:"trending" cbor:"trending"`
	PrimaryBenefit    string            `json:"primary_benefit" cbor:"primary_benefit"`
	NetworkingLevel   string            `json:"networking_level" cbor:"networking_level"`
	LearningIntensity string            `json:"learning_intensity" cbor:"learning_intensity"`
	TimeCommitment    string            `json:"time_commitment" cbor:"time_commitment"`
	VirtualOption     bool              `json:"virtual_option" cbor:"virtual_option"`
	Price             string            `json:"price" cbor:"price"`
	RoleSpecificValue map[string]string `json:"role_specific_value" cbor:"role_specific_value"`
}

// DefaultMetadata returns the metadata substituted for records that were
// imported from a tabular source rather than the curated dataset. The record
// is treated as relevant to every role with middle-of-the-road signals.
func DefaultMetadata(r *Record) *Metadata {
	return &Metadata{
		TargetRoles:       append([]string(nil), AllRoles...),
		Rating:            4.5,
		Attendees:         0,
		SpecialFeatures:   nil,
		Featured:          r.IsFeatured,
		Trending:          false,
		PrimaryBenefit:    "Networking & Learning",
		NetworkingLevel:   "medium",
		LearningIntensity: "moderate",
		TimeCommitment:    "medium",
		VirtualOption:     isVirtualLocation(r.Location),
		Price:             "Free",
		RoleSpecificValue: nil,
	}
}

// EffectiveMetadata returns the record's metadata, or defaults when absent.
func (r *Record) EffectiveMetadata() *Metadata {
	if r.Metadata != nil {
		return r.Metadata
	}
	return DefaultMetadata(r)
}
