package entity

import (
	"strings"
	"unicode"
)

// Price is a monthly subscription price with an ISO-4217 currency code.
type Price struct {
	Monthly  float64 `json:"monthly" yaml:"monthly"`
	Currency string  `json:"currency" yaml:"currency"`
}

// AddOn is an optional paid extra attached to a plan.
type AddOn struct {
	Name        string  `json:"name" yaml:"name"`
	PriceDelta  float64 `json:"price_delta" yaml:"price_delta"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Plan is a single subscription plan inside a generated document.
type Plan struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Region       string  `json:"region" yaml:"region"`
	Tier         string  `json:"tier" yaml:"tier"`
	Price        Price   `json:"price" yaml:"price"`
	DeviceLimit  int     `json:"device_limit" yaml:"device_limit"`
	VideoQuality string  `json:"video_quality" yaml:"video_quality"`
	AddOns       []AddOn `json:"add_ons" yaml:"add_ons"`
	Description  string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// PlanDocument is the full catalog produced by one generation attempt.
type PlanDocument struct {
	Version  string         `json:"version" yaml:"version"`
	Plans    []Plan         `json:"plans" yaml:"plans"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Normalize applies field normalization that the schema does not cover.
// Tier is title-cased so "basic" and "BASIC" both read as "Basic".
func (d *PlanDocument) Normalize() {
	if d.Version == "" {
		d.Version = "1.0"
	}
	for i := range d.Plans {
		d.Plans[i].Tier = titleCase(d.Plans[i].Tier)
	}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// PlanExample is one entry of the read-only reference corpus used to ground
// generation prompts. Loaded once at startup, never mutated.
type PlanExample struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Region       string  `json:"region"`
	Tier         string  `json:"tier"`
	Devices      int     `json:"devices"`
	Price        Price   `json:"price"`
	VideoQuality string  `json:"video_quality"`
	AddOns       []AddOn `json:"add_ons"`
	Notes        string  `json:"notes"`
}
