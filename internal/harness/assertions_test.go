package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertRoundTrip(t *testing.T) {
	steps := []StepResult{
		{Query: "a", Serialized: "a", RoundTrips: true},
		{Query: ":x", ErrorCode: "dangling_separator"},
	}
	assert.NoError(t, assertRoundTrip(steps))

	steps = append(steps, StepResult{Query: "bad", Serialized: "worse"})
	err := assertRoundTrip(steps)
	require.Error(t, err)

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertRoundTrip, ae.Type)
	require.Len(t, ae.Steps, 1)
	assert.Equal(t, "bad", ae.Steps[0].Query)
	assert.Contains(t, err.Error(), `"bad" -> "worse"`)
}

func TestAssertTrees(t *testing.T) {
	steps := []StepResult{
		{Query: "a", Fingerprint: "aaaaaaaaaaaaaaaaaaaa"},
		{Query: "a2", Fingerprint: "aaaaaaaaaaaaaaaaaaaa"},
		{Query: "b", Fingerprint: "bbbbbbbbbbbbbbbbbbbb"},
		{Query: ":x", ErrorCode: "dangling_separator"},
	}

	tests := []struct {
		name    string
		a       Assertion
		same    bool
		wantErr string
	}{
		{"same ok", Assertion{Type: AssertSameTree, Steps: []int{0, 1}}, true, ""},
		{"same fails", Assertion{Type: AssertSameTree, Steps: []int{0, 2}}, true, "2 distinct trees"},
		{"distinct ok", Assertion{Type: AssertDistinctTree, Steps: []int{0, 2}}, false, ""},
		{"distinct fails", Assertion{Type: AssertDistinctTree, Steps: []int{0, 1, 2}}, false, "Expected: 3 distinct trees"},
		{"syntax error step", Assertion{Type: AssertSameTree, Steps: []int{0, 3}}, true, "failed to parse"},
		{"out of range", Assertion{Type: AssertSameTree, Steps: []int{0, 9}}, true, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertTrees(steps, tt.a, tt.same)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAssertionErrorShortensFingerprint(t *testing.T) {
	err := &AssertionError{
		Type:     AssertSameTree,
		Expected: "one compiled tree",
		Actual:   "2 distinct trees",
		Steps:    []StepResult{{Query: "a", Serialized: "a", Fingerprint: "0123456789abcdef"}},
	}
	assert.Contains(t, err.Error(), "0123456789ab\n")
	assert.NotContains(t, err.Error(), "0123456789abc")
}

func TestEvaluateAssertions(t *testing.T) {
	result := &Result{Steps: []StepResult{
		{Query: "a", RoundTrips: true, Fingerprint: "f1"},
		{Query: "b", RoundTrips: true, Fingerprint: "f2"},
	}}

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertRoundTrip},
		{Type: AssertDistinctTree, Steps: []int{0, 1}},
	})
	assert.Empty(t, errs)

	errs = EvaluateAssertions(result, []Assertion{
		{Type: AssertSameTree, Steps: []int{0, 1}},
		{Type: "magic"},
	})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "Assertion failed: same_tree")
	assert.Contains(t, errs[1], `assertion[1]: unknown assertion type "magic"`)
}
