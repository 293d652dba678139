package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one rendering test: a piece to render and the
// assertions its timeline must satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Piece is the path to the CUE piece file, relative to the scenario
	// file location unless absolute.
	Piece string `yaml:"piece"`

	// Assertions validate the rendered timeline.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one property of the rendered timeline. Fields not
// used by the assertion's type are ignored.
type Assertion struct {
	Type string `yaml:"type"`

	// Count is the expected event total (event_count).
	Count int `yaml:"count,omitempty"`

	// Min and Max bound pitches inclusively (pitch_range).
	Min float64 `yaml:"min,omitempty"`
	Max float64 `yaml:"max,omitempty"`

	// Channel must carry at least one event (channel_present).
	Channel *int `yaml:"channel,omitempty"`

	// Start, Pitch and Amp match the earliest event (first_event).
	// Nil fields are not checked.
	Start *float64 `yaml:"start,omitempty"`
	Pitch *float64 `yaml:"pitch,omitempty"`
	Amp   *float64 `yaml:"amp,omitempty"`
}

// Assertion type constants.
const (
	AssertEventCount     = "event_count"
	AssertTimeOrdered    = "time_ordered"
	AssertPitchRange     = "pitch_range"
	AssertChannelPresent = "channel_present"
	AssertFirstEvent     = "first_event"
)

// LoadScenario reads and parses a scenario YAML file, resolving the piece
// path against the scenario file's directory. Unknown YAML fields are
// rejected to catch typos.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if scenario.Piece != "" && !filepath.IsAbs(scenario.Piece) {
		scenario.Piece = filepath.Join(filepath.Dir(path), scenario.Piece)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Piece == "" {
		return fmt.Errorf("piece is required")
	}
	if _, err := os.Stat(s.Piece); os.IsNotExist(err) {
		return fmt.Errorf("piece file not found: %s", s.Piece)
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertEventCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertTimeOrdered:
		// No fields.
	case AssertPitchRange:
		if a.Max < a.Min {
			return fmt.Errorf("assertions[%d]: max %v below min %v", index, a.Max, a.Min)
		}
	case AssertChannelPresent:
		if a.Channel == nil {
			return fmt.Errorf("assertions[%d]: channel is required for channel_present", index)
		}
	case AssertFirstEvent:
		if a.Start == nil && a.Pitch == nil && a.Amp == nil {
			return fmt.Errorf("assertions[%d]: first_event needs at least one field", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
