package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/portalsearch/internal/ast"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: test_scenario
description: "Test scenario for validation"
profile: insights
config:
  search_fields: [title]
steps:
  - query: "hotel #travel"
    expect:
      clauses:
        - { type: match, value: hotel }
        - { type: term, key: tag, value: travel }
      filter: 1
assertions:
  - type: round_trip
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "insights", scenario.Profile)
	require.NotNil(t, scenario.Config)
	assert.Equal(t, []string{"title"}, scenario.Config.SearchFields)
	require.Len(t, scenario.Steps, 1)
	assert.Equal(t, "hotel #travel", scenario.Steps[0].Query)
	require.NotNil(t, scenario.Steps[0].Expect.Filter)
	assert.Equal(t, 1, *scenario.Steps[0].Expect.Filter)
	assert.Nil(t, scenario.Steps[0].Expect.Should)
	assert.Len(t, scenario.Assertions, 1)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "has a typo"
steps:
  - query: hotel
assertion:
  - type: round_trip
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"missing name", "description: d\nsteps: [{query: a}]\n", "name is required"},
		{"missing description", "name: n\nsteps: [{query: a}]\n", "description is required"},
		{"no steps", "name: n\ndescription: d\n", "steps list is required"},
		{"bad profile", "name: n\ndescription: d\nprofile: archive\nsteps: [{query: a}]\n", "archive"},
		{"bad config", "name: n\ndescription: d\nconfig: {fuzziness: lots}\nsteps: [{query: a}]\n", "config"},
		{"bad clause", "name: n\ndescription: d\nsteps: [{query: a, expect: {clauses: [{type: blob}]}}]\n", "steps[0].expect.clauses"},
		{"clause missing value", "name: n\ndescription: d\nsteps: [{query: a, expect: {clauses: [{type: term, key: tag}]}}]\n", "value is required"},
		{"assertion without type", "name: n\ndescription: d\nsteps: [{query: a}]\nassertions: [{steps: [0]}]\n", "type is required"},
		{"unknown assertion", "name: n\ndescription: d\nsteps: [{query: a}]\nassertions: [{type: magic}]\n", "unknown assertion type"},
		{"same_tree one step", "name: n\ndescription: d\nsteps: [{query: a}]\nassertions: [{type: same_tree, steps: [0]}]\n", "at least two steps"},
		{"step out of range", "name: n\ndescription: d\nsteps: [{query: a}, {query: b}]\nassertions: [{type: same_tree, steps: [0, 2]}]\n", "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadDir(t *testing.T) {
	scenarios, err := LoadDir(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	var names []string
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"insights_words", "portal_filters", "portal_golden", "syntax_errors"}, names)
}

func TestLoadDir_ReportsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: x\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestToClauses(t *testing.T) {
	key, value := "tag", "hotels"
	values := []string{"a", "b"}
	got, err := ToClauses([]ClauseDef{
		{Type: "term", Key: &key, Value: &value},
		{Type: "multi_term", Key: &key, Values: &values},
	})
	require.NoError(t, err)
	assert.Equal(t, []ast.Clause{ast.NewTerm("tag", "hotels"), ast.NewMultiTerm("tag", "a", "b")}, got)
}
