package ast

import (
	"fmt"
	"slices"
)

// Kind identifies a clause variant.
type Kind int

const (
	KindMatch Kind = iota
	KindPhrase
	KindTerm
	KindMultiTerm
	KindRange
	KindCompoundRange
)

var kindNames = map[Kind]string{
	KindMatch:         "match",
	KindPhrase:        "phrase",
	KindTerm:          "term",
	KindMultiTerm:     "multi_term",
	KindRange:         "range",
	KindCompoundRange: "compound_range",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a kind name as produced by Kind.String.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown clause type %q", name)
}

// Operator is a single-bound range comparison.
type Operator string

const (
	Gt  Operator = "gt"
	Gte Operator = "gte"
	Lt  Operator = "lt"
	Lte Operator = "lte"
)

var operatorSymbols = map[Operator]string{
	Gt:  ">",
	Gte: ">=",
	Lt:  "<",
	Lte: "<=",
}

// Symbol returns the query-text form of the operator (">=" for Gte).
// Unknown operators render as themselves.
func (o Operator) Symbol() string {
	if s, ok := operatorSymbols[o]; ok {
		return s
	}
	return string(o)
}

// Known reports whether o is one of gt, gte, lt, lte.
func (o Operator) Known() bool {
	_, ok := operatorSymbols[o]
	return ok
}

// Clause is one parsed unit of a search query.
type Clause interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Key returns the filter key, or "" for Match and Phrase.
	Key() string

	clause() // sealed
}

// Match is free text. Adjacent words may be combined into one Match.
type Match struct {
	Value string
}

// Phrase is an exact phrase written in quotes.
type Phrase struct {
	Value string
}

// Term is a single-valued filter.
type Term struct {
	Field string
	Value string
}

// MultiTerm is a filter matching any of an ordered list of values.
// Values must be treated as read-only; use WithValues to derive a new clause.
type MultiTerm struct {
	Field  string
	Values []string
}

// Range is a filter with a single comparison bound.
type Range struct {
	Field     string
	Operation Operator
	Value     string
}

// CompoundRange is an inclusive two-bound range filter.
type CompoundRange struct {
	Field string
	From  string
	To    string
}

func (Match) clause()         {}
func (Phrase) clause()        {}
func (Term) clause()          {}
func (MultiTerm) clause()     {}
func (Range) clause()         {}
func (CompoundRange) clause() {}

func (Match) Kind() Kind         { return KindMatch }
func (Phrase) Kind() Kind        { return KindPhrase }
func (Term) Kind() Kind          { return KindTerm }
func (MultiTerm) Kind() Kind     { return KindMultiTerm }
func (Range) Kind() Kind         { return KindRange }
func (CompoundRange) Kind() Kind { return KindCompoundRange }

func (Match) Key() string           { return "" }
func (Phrase) Key() string          { return "" }
func (c Term) Key() string          { return c.Field }
func (c MultiTerm) Key() string     { return c.Field }
func (c Range) Key() string         { return c.Field }
func (c CompoundRange) Key() string { return c.Field }

// NewMatch creates a Match clause.
func NewMatch(value string) Match { return Match{Value: value} }

// NewPhrase creates a Phrase clause.
func NewPhrase(value string) Phrase { return Phrase{Value: value} }

// NewTerm creates a Term clause.
func NewTerm(key, value string) Term { return Term{Field: key, Value: value} }

// NewMultiTerm creates a MultiTerm clause. The values slice is copied.
func NewMultiTerm(key string, values ...string) MultiTerm {
	return MultiTerm{Field: key, Values: slices.Clone(values)}
}

// NewRange creates a Range clause.
func NewRange(key string, op Operator, value string) Range {
	return Range{Field: key, Operation: op, Value: value}
}

// NewCompoundRange creates a CompoundRange clause.
func NewCompoundRange(key, from, to string) CompoundRange {
	return CompoundRange{Field: key, From: from, To: to}
}

// WithValue returns a copy of the Match with a new value.
func (c Match) WithValue(v string) Match { return Match{Value: v} }

// WithValue returns a copy of the Phrase with a new value.
func (c Phrase) WithValue(v string) Phrase { return Phrase{Value: v} }

// WithValue returns a copy of the Term with a new value.
func (c Term) WithValue(v string) Term { return Term{Field: c.Field, Value: v} }

// WithValues returns a copy of the MultiTerm with new values.
func (c MultiTerm) WithValues(values ...string) MultiTerm {
	return NewMultiTerm(c.Field, values...)
}

// Append returns a copy of the MultiTerm with v added at the end.
func (c MultiTerm) Append(v string) MultiTerm {
	out := make([]string, 0, len(c.Values)+1)
	out = append(out, c.Values...)
	out = append(out, v)
	return MultiTerm{Field: c.Field, Values: out}
}

// WithValue returns a copy of the Range with a new bound value.
func (c Range) WithValue(v string) Range {
	return Range{Field: c.Field, Operation: c.Operation, Value: v}
}

// WithOperation returns a copy of the Range with a new comparison.
func (c Range) WithOperation(op Operator) Range {
	return Range{Field: c.Field, Operation: op, Value: c.Value}
}

// WithFrom returns a copy of the CompoundRange with a new lower bound.
func (c CompoundRange) WithFrom(v string) CompoundRange {
	return CompoundRange{Field: c.Field, From: v, To: c.To}
}

// WithTo returns a copy of the CompoundRange with a new upper bound.
func (c CompoundRange) WithTo(v string) CompoundRange {
	return CompoundRange{Field: c.Field, From: c.From, To: v}
}
