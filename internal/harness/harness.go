package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/portalsearch/internal/ast"
	"github.com/roach88/portalsearch/internal/compile"
	"github.com/roach88/portalsearch/internal/config"
	"github.com/roach88/portalsearch/internal/grammar"
	"github.com/roach88/portalsearch/internal/profile"
	"github.com/roach88/portalsearch/internal/querytree"
)

// Harness runs the steps of one scenario against a parser and compiler
// configured from it.
type Harness struct {
	profile  profile.SearchProfile
	parser   *grammar.Parser
	compiler *compile.Compiler
	logger   *slog.Logger
}

// New builds a harness for the scenario's profile and inline config.
func New(scenario *Scenario) (*Harness, error) {
	var cfg config.Config
	if scenario.Config != nil {
		cfg = *scenario.Config
	}
	if scenario.Profile != "" {
		cfg.Profile = scenario.Profile
	}

	p, err := cfg.SearchProfile()
	if err != nil {
		return nil, err
	}
	popts, err := cfg.ParserOptions()
	if err != nil {
		return nil, err
	}
	copts, err := cfg.CompilerOptions()
	if err != nil {
		return nil, err
	}

	return &Harness{
		profile:  p,
		parser:   grammar.New(popts...),
		compiler: compile.New(copts...),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}, nil
}

// Run executes a scenario and returns the result. The returned error is
// reserved for scenarios that cannot run at all; failed expectations are
// reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	h, err := New(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to set up scenario %q: %w", scenario.Name, err)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		sr, err := h.runStep(step)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		result.Steps = append(result.Steps, sr)
		for _, msg := range checkExpect(sr, step.Expect) {
			result.AddError(fmt.Sprintf("steps[%d] %q: %s", i, step.Query, msg))
		}
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// runStep parses, serializes and compiles one query. A syntax error is a
// result, not a failure; any other error aborts the scenario.
func (h *Harness) runStep(step Step) (StepResult, error) {
	sr := StepResult{Query: step.Query}

	clauses, err := h.parser.Parse(step.Query)
	if err != nil {
		se, ok := grammar.AsSyntaxError(err)
		if !ok {
			return sr, err
		}
		h.logger.Debug("query rejected", "query", step.Query, "code", se.Code, "pos", se.Pos)
		sr.ErrorCode = se.Code
		return sr, nil
	}

	sr.Clauses = clauses
	sr.Serialized = ast.Serialize(clauses, h.profile)

	reparsed, err := h.parser.Parse(sr.Serialized)
	sr.RoundTrips = err == nil && ast.EqualLists(clauses, reparsed)

	tree, err := h.compiler.Compile(clauses)
	if err != nil {
		return sr, fmt.Errorf("compile: %w", err)
	}
	sr.Tree = tree.Value()
	sr.Filter = len(tree.Filter)
	sr.Should = len(tree.Should)
	sr.Fingerprint, err = querytree.Fingerprint(tree)
	if err != nil {
		return sr, err
	}

	h.logger.Debug("query compiled",
		"query", step.Query,
		"clauses", len(clauses),
		"fingerprint", sr.Fingerprint,
	)
	return sr, nil
}

// checkExpect compares a step result with its expectations.
func checkExpect(sr StepResult, exp *Expect) []string {
	if exp == nil {
		if sr.ErrorCode != "" {
			return []string{fmt.Sprintf("unexpected syntax error %s", sr.ErrorCode)}
		}
		return nil
	}

	if exp.Error != "" || sr.ErrorCode != "" {
		if exp.Error != sr.ErrorCode {
			return []string{fmt.Sprintf("expected error %q, got %q", exp.Error, sr.ErrorCode)}
		}
		return nil
	}

	var msgs []string
	if exp.Clauses != nil {
		want, err := ToClauses(*exp.Clauses)
		switch {
		case err != nil:
			msgs = append(msgs, fmt.Sprintf("bad expected clauses: %v", err))
		case !ast.EqualLists(want, sr.Clauses):
			msgs = append(msgs, fmt.Sprintf("clauses: expected %s, got %s", clauseJSON(want), clauseJSON(sr.Clauses)))
		}
	}
	if exp.Serialized != nil && *exp.Serialized != sr.Serialized {
		msgs = append(msgs, fmt.Sprintf("serialized: expected %q, got %q", *exp.Serialized, sr.Serialized))
	}
	if exp.Filter != nil && *exp.Filter != sr.Filter {
		msgs = append(msgs, fmt.Sprintf("filter: expected %d entries, got %d", *exp.Filter, sr.Filter))
	}
	if exp.Should != nil && *exp.Should != sr.Should {
		msgs = append(msgs, fmt.Sprintf("should: expected %d entries, got %d", *exp.Should, sr.Should))
	}
	return msgs
}

func clauseJSON(clauses []ast.Clause) string {
	data, err := json.Marshal(ast.List(clauses))
	if err != nil {
		return fmt.Sprintf("%v", clauses)
	}
	return string(data)
}
