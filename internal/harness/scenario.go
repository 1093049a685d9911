package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a pass test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Program is the path to the input program document.
	// Relative paths are resolved against the scenario file's directory.
	Program string `yaml:"program"`

	// Workers is passed through to the pass options. Zero runs sequentially.
	Workers int `yaml:"workers,omitempty"`

	// Assertions validate the lowered program.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates the lowered program.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Count is the expected number of output commands (command_count).
	Count int `yaml:"count,omitempty"`

	// Text must appear in the rendered output (output_contains).
	Text string `yaml:"text,omitempty"`
}

// Assertion type constants.
const (
	AssertCommandCount      = "command_count"
	AssertNoResidualGlobals = "no_residual_globals"
	AssertPairing           = "paired_declarations"
	AssertIdempotent        = "idempotent"
	AssertOutputContains    = "output_contains"
	AssertCardinality       = "cardinality"
)

var knownAssertions = map[string]bool{
	AssertCommandCount:      true,
	AssertNoResidualGlobals: true,
	AssertPairing:           true,
	AssertIdempotent:        true,
	AssertOutputContains:    true,
	AssertCardinality:       true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Program != "" && !filepath.IsAbs(scenario.Program) {
		scenario.Program = filepath.Join(filepath.Dir(path), scenario.Program)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Program == "" {
		return fmt.Errorf("program is required")
	}

	if _, err := os.Stat(s.Program); os.IsNotExist(err) {
		return fmt.Errorf("program file not found: %s", s.Program)
	}

	if s.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if !knownAssertions[a.Type] {
			return fmt.Errorf("assertions[%d]: unknown type %q", i, a.Type)
		}
		if a.Type == AssertOutputContains && a.Text == "" {
			return fmt.Errorf("assertions[%d]: output_contains requires text", i)
		}
		if a.Type == AssertCommandCount && a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must not be negative", i)
		}
	}

	return nil
}
