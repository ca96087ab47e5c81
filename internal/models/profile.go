package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BusinessProfile is what the backend infers from a business website.
// Industry is required by everything downstream.
type BusinessProfile struct {
	Name                   string   `json:"name"`
	Industry               string   `json:"industry"`
	Services               Services `json:"services,omitempty"`
	Audience               string   `json:"audience,omitempty"`
	ToneOfVoice            string   `json:"tone_of_voice,omitempty"`
	UniqueValueProposition string   `json:"unique_value_proposition,omitempty"`
}

// HasIndustry reports whether the profile carries a usable industry.
func (p *BusinessProfile) HasIndustry() bool {
	return p != nil && strings.TrimSpace(p.Industry) != ""
}

// Services accepts either a JSON list of strings or a single string.
type Services []string

func (s *Services) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("services must be a string or a list of strings: %w", err)
	}
	if single == "" {
		*s = nil
		return nil
	}
	*s = Services{single}
	return nil
}

func (s Services) String() string {
	return strings.Join(s, ", ")
}
