package harness

import (
	"github.com/roach88/portalsearch/internal/ast"
	"github.com/roach88/portalsearch/internal/querytree"
)

// StepResult records what one query produced.
type StepResult struct {
	Query string `json:"query"`

	// Clauses, Serialized, Tree and Fingerprint are empty when parsing
	// failed.
	Clauses     ast.List         `json:"clauses,omitempty"`
	Serialized  string           `json:"serialized,omitempty"`
	Tree        querytree.Object `json:"tree,omitempty"`
	Fingerprint string           `json:"fingerprint,omitempty"`

	// ErrorCode is the syntax error code when parsing failed.
	ErrorCode string `json:"error_code,omitempty"`

	// RoundTrips reports whether Serialized re-parses to Clauses.
	RoundTrips bool `json:"round_trips"`

	// Filter and Should count the compiled top-level bool entries.
	Filter int `json:"filter"`
	Should int `json:"should"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Steps has one entry per scenario step, in order.
	Steps []StepResult `json:"steps"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepResult{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
