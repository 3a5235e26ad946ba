package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/portalsearch/internal/ast"
	"github.com/roach88/portalsearch/internal/config"
	"github.com/roach88/portalsearch/internal/profile"
)

// Scenario is a query-language conformance case: a list of queries run
// under one profile, each with optional expectations, plus assertions that
// relate the steps to each other.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Profile selects the search profile. Empty means the default profile.
	Profile string `yaml:"profile,omitempty"`

	// Config holds inline engine settings (fields, search_fields, ...).
	// Its profile, if set, is overridden by Profile.
	Config *config.Config `yaml:"config,omitempty"`

	// Steps are the queries to run, in order.
	Steps []Step `yaml:"steps"`

	// Assertions relate steps to each other.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one query and what it should produce.
type Step struct {
	Query  string  `yaml:"query"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists the checks for a step. Nil fields are not checked.
type Expect struct {
	// Clauses is the exact parse result.
	Clauses *[]ClauseDef `yaml:"clauses,omitempty"`

	// Serialized is the canonical text of the parse result.
	Serialized *string `yaml:"serialized,omitempty"`

	// Filter and Should are the entry counts of the compiled top-level bool.
	Filter *int `yaml:"filter,omitempty"`
	Should *int `yaml:"should,omitempty"`

	// Error is the expected syntax error code. When set, the step must fail.
	Error string `yaml:"error,omitempty"`
}

// ClauseDef is the YAML form of a clause. It mirrors the JSON clause codec.
type ClauseDef struct {
	Type      string    `yaml:"type" json:"type"`
	Key       *string   `yaml:"key,omitempty" json:"key,omitempty"`
	Value     *string   `yaml:"value,omitempty" json:"value,omitempty"`
	Values    *[]string `yaml:"values,omitempty" json:"values,omitempty"`
	Operation *string   `yaml:"operation,omitempty" json:"operation,omitempty"`
	From      *string   `yaml:"from,omitempty" json:"from,omitempty"`
	To        *string   `yaml:"to,omitempty" json:"to,omitempty"`
}

// Assertion relates steps of a scenario.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Steps are step indexes (used by same_tree and distinct_tree).
	Steps []int `yaml:"steps,omitempty"`
}

// Assertion type constants.
const (
	AssertRoundTrip    = "round_trip"
	AssertSameTree     = "same_tree"
	AssertDistinctTree = "distinct_tree"
)

// ToClauses converts clause definitions into clauses via the JSON clause codec.
func ToClauses(defs []ClauseDef) ([]ast.Clause, error) {
	data, err := json.Marshal(defs)
	if err != nil {
		return nil, err
	}
	var list ast.List
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadDir loads every .yaml and .yml scenario in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Profile != "" {
		if _, err := profile.Parse(s.Profile); err != nil {
			return err
		}
	}

	if s.Config != nil {
		if err := s.Config.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Expect == nil || step.Expect.Clauses == nil {
			continue
		}
		if _, err := ToClauses(*step.Expect.Clauses); err != nil {
			return fmt.Errorf("steps[%d].expect.clauses: %w", i, err)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a, len(s.Steps)); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a Assertion, steps int) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertRoundTrip:
		return nil
	case AssertSameTree, AssertDistinctTree:
		if len(a.Steps) < 2 {
			return fmt.Errorf("assertions[%d]: %s needs at least two steps", index, a.Type)
		}
		for _, n := range a.Steps {
			if n < 0 || n >= steps {
				return fmt.Errorf("assertions[%d]: step %d out of range", index, n)
			}
		}
		return nil
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
}
