// Package report renders created inputs for the operator.
package report

import (
	"encoding/json"
	"io"

	"rtmpinput/awsd/models"
)

const notAvailable = "N/A"

// Descriptor wraps the created input the way CreateInput returns it
type Descriptor struct {
	Input *models.InputRecord `json:"Input"`
}

// Summary is the flattened report printed by the quick variant
type Summary struct {
	InputID              string            `json:"Input ID"`
	Name                 string            `json:"Name"`
	State                string            `json:"State"`
	AttachedChannels     []string          `json:"Attached Channels"`
	InputARN             string            `json:"Input ARN"`
	Type                 string            `json:"Type"`
	InputNetworkLocation string            `json:"Input Network Location"`
	Endpoints            []Endpoint        `json:"Endpoints"`
	InputSecurityGroups  []string          `json:"Input Security Groups"`
	Tags                 map[string]string `json:"Tags"`
}

// Endpoint is one publishing point in a Summary
type Endpoint struct {
	URL           string         `json:"URL"`
	IPv4          string         `json:"IPv4"`
	Port          string         `json:"Port"`
	Network       string         `json:"Network"`
	NetworkRoutes []models.Route `json:"Network Routes"`
}

// NewDescriptor returns the pass-through descriptor for record
func NewDescriptor(record *models.InputRecord) Descriptor {
	return Descriptor{Input: record}
}

// NewSummary flattens record; missing strings become "N/A" and missing lists
// are empty.
func NewSummary(record *models.InputRecord) Summary {
	if record == nil {
		record = &models.InputRecord{}
	}

	state := "detached"
	if len(record.AttachedChannels) > 0 {
		state = "attached"
	}

	s := Summary{
		InputID:              orNA(record.ID),
		Name:                 orNA(record.Name),
		State:                state,
		AttachedChannels:     nonNil(record.AttachedChannels),
		InputARN:             orNA(record.ARN),
		Type:                 orNA(record.Type),
		InputNetworkLocation: orNA(record.InputNetworkLocation),
		Endpoints:            make([]Endpoint, 0, len(record.Destinations)),
		InputSecurityGroups:  nonNil(record.SecurityGroups),
		Tags:                 record.Tags,
	}
	if s.Tags == nil {
		s.Tags = map[string]string{}
	}

	for _, d := range record.Destinations {
		routes := d.NetworkRoutes
		if routes == nil {
			routes = []models.Route{}
		}
		s.Endpoints = append(s.Endpoints, Endpoint{
			URL:           orNA(d.URL),
			IPv4:          orNA(d.IP),
			Port:          orNA(d.Port),
			Network:       orNA(d.Network),
			NetworkRoutes: routes,
		})
	}
	return s
}

// Write prints v as two-space indented JSON
func Write(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteError prints {"error": "..."}
func WriteError(w io.Writer, err error) error {
	return Write(w, map[string]string{"error": err.Error()})
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
