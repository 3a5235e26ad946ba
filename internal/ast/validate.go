package ast

import (
	"fmt"
	"strings"

	"github.com/roach88/portalsearch/internal/profile"
)

// ValidationResult describes whether a clause list survives a
// serialize/parse round trip unchanged.
type ValidationResult struct {
	// RoundTrips is true when no warnings were raised.
	RoundTrips bool

	// Warnings lists the clauses that would re-parse differently.
	Warnings []string
}

// Validate checks that clauses can be serialized under p and parsed back
// into an Equal list. Lists built by hand may fail, and so may lists parsed
// from text with a stray quote that the serialized form would pair up.
//
// Validate is a pure function with no side effects.
func Validate(clauses []Clause, p profile.SearchProfile) ValidationResult {
	v := &validator{profile: p, warnings: []string{}}
	for i, c := range clauses {
		v.index = i
		v.validateClause(c)
	}
	v.validateStrayQuotes(clauses)
	v.validateAdjacency(clauses)

	return ValidationResult{
		RoundTrips: len(v.warnings) == 0,
		Warnings:   v.warnings,
	}
}

// validator accumulates warnings during traversal.
type validator struct {
	profile  profile.SearchProfile
	index    int
	warnings []string
}

func (v *validator) addWarning(format string, args ...any) {
	prefix := fmt.Sprintf("clause[%d]: ", v.index)
	v.warnings = append(v.warnings, prefix+fmt.Sprintf(format, args...))
}

func (v *validator) validateClause(c Clause) {
	if c == nil {
		v.addWarning("nil clause")
		return
	}

	switch cl := deref(c).(type) {
	case Match:
		v.validateMatch(cl)
	case Phrase:
		if !Quotable(cl.Value) {
			v.addWarning("phrase %q has an odd run of backslashes before a quote or at its end", cl.Value)
		}
	case Term:
		v.validateKey(cl.Field)
		v.validateTermValue(cl)
	case MultiTerm:
		v.validateKey(cl.Field)
		v.validateMultiTerm(cl)
	case Range:
		v.validateKey(cl.Field)
		v.validateRange(cl)
	case CompoundRange:
		v.validateKey(cl.Field)
		v.validateBound("from", cl.From)
		v.validateBound("to", cl.To)
	default:
		v.addWarning("unknown clause type %T", c)
	}
}

func (v *validator) validateMatch(m Match) {
	if m.Value == "" {
		v.addWarning("empty match")
		return
	}
	if strings.Join(strings.Fields(m.Value), " ") != m.Value {
		v.addWarning("match %q has irregular whitespace", m.Value)
	}
	if containsSpace(m.Value) && !v.profile.CombineWords() {
		v.addWarning("match %q has several words but profile %s does not combine words", m.Value, v.profile)
	}
	if strings.ContainsRune(m.Value, ':') {
		v.addWarning("match %q contains a filter separator", m.Value)
	}
	switch m.Value[0] {
	case byte(AuthorPrefix), byte(TagPrefix):
		v.addWarning("match %q would re-parse as a term", m.Value)
	}
}

func (v *validator) validateKey(key string) {
	if !isWord(key) {
		v.addWarning("key %q is not a single word", key)
		return
	}
	if startsWithQuote(key) {
		v.addWarning("key %q begins with a quote", key)
	}
}

// validateTermValue accepts values that the @ or # shorthand can carry
// even when key:value cannot.
func (v *validator) validateTermValue(t Term) {
	if (t.Field == KeyAuthor || t.Field == KeyTag) && barePrefixValue(t.Value) {
		return
	}
	if !keyedValue(t.Value) {
		v.addWarning("value %q has an odd run of backslashes before a quote or at its end", t.Value)
	}
}

func (v *validator) validateMultiTerm(m MultiTerm) {
	if len(m.Values) == 0 {
		v.addWarning("multi-term %q has no values", m.Field)
	}
	for _, e := range m.Values {
		if strings.ContainsRune(e, '}') {
			v.addWarning("multi-term element %q contains a closing brace", e)
		}
		if !bareElement(e) && !Quotable(e) {
			v.addWarning("multi-term element %q has an odd run of backslashes before a quote or at its end", e)
		}
	}
}

func (v *validator) validateRange(r Range) {
	if !r.Operation.Known() {
		v.addWarning("unknown range operation %q", r.Operation)
	}
	if r.Value != "" && !isWord(r.Value) {
		v.addWarning("range value %q is not a single word", r.Value)
	}
	if strings.HasPrefix(r.Value, "=") {
		v.addWarning("range value %q would merge with the operator", r.Value)
	}
}

func (v *validator) validateBound(name, bound string) {
	if !isWord(bound) || strings.ContainsAny(bound, "[]") {
		v.addWarning("range %s bound %q is not a single bracket-free word", name, bound)
	}
}

// validateStrayQuotes flags a Match opening with a quote when the same quote
// appears later in the serialized text, since re-parsing would pair them into
// a phrase.
func (v *validator) validateStrayQuotes(clauses []Clause) {
	for i, c := range clauses {
		m, ok := deref(c).(Match)
		if !ok || !startsWithQuote(m.Value) {
			continue
		}
		rest := m.Value[1:] + " " + Serialize(clauses[i+1:], v.profile)
		if strings.IndexByte(rest, m.Value[0]) >= 0 {
			v.index = i
			v.addWarning("match %q would re-parse as a phrase", m.Value)
		}
	}
}

// validateAdjacency flags neighbouring Match clauses that a word-combining
// profile would merge. After a stray quote the parser stops combining, so
// matches from that point on are left alone.
func (v *validator) validateAdjacency(clauses []Clause) {
	if !v.profile.CombineWords() {
		return
	}
	prevMatch := false
	for i, c := range clauses {
		m, ok := deref(c).(Match)
		if !ok {
			prevMatch = false
			continue
		}
		if startsWithQuote(m.Value) {
			return
		}
		if prevMatch {
			v.index = i
			v.addWarning("match %q would combine with the preceding match", m.Value)
		}
		prevMatch = true
	}
}
