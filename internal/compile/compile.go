// Package compile lowers parsed clauses into a boolean query tree.
//
// Each clause compiles independently to a Fragment holding filter and
// should entries; fragments merge by concatenation in clause order. Filter
// clauses (Term, MultiTerm, Range, CompoundRange) must all match. Free-text
// clauses (Match, Phrase) are should entries, and at least one must match
// whenever any are present.
package compile

import (
	"fmt"
	"slices"

	"github.com/roach88/portalsearch/internal/ast"
	"github.com/roach88/portalsearch/internal/mapping"
	"github.com/roach88/portalsearch/internal/profile"
	"github.com/roach88/portalsearch/internal/querytree"
)

// Wildcard is the filter value that matches everything.
const Wildcard = "*"

// DefaultSearchFields are the curated fields free text is matched against.
// The name field is boosted.
var DefaultSearchFields = []string{
	"name^3",
	"description",
	"content",
	"tags",
	"contributors.displayName",
}

// Compiler turns clauses into a query tree. A Compiler is immutable after
// New and safe for concurrent use.
type Compiler struct {
	profile      profile.SearchProfile
	fields       *mapping.Table
	searchFields []string
	fuzziness    string
	analyzer     string
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithProfile selects how Match clauses compile.
func WithProfile(p profile.SearchProfile) Option {
	return func(c *Compiler) { c.profile = p }
}

// WithFieldTable replaces the logical key table.
func WithFieldTable(t *mapping.Table) Option {
	return func(c *Compiler) {
		if t != nil {
			c.fields = t
		}
	}
}

// WithSearchFields replaces the curated free-text fields.
func WithSearchFields(fields ...string) Option {
	return func(c *Compiler) {
		if len(fields) > 0 {
			c.searchFields = slices.Clone(fields)
		}
	}
}

// WithFuzziness sets the edit distance used by rich Match compilation.
func WithFuzziness(f string) Option {
	return func(c *Compiler) {
		if f != "" {
			c.fuzziness = f
		}
	}
}

// WithAnalyzer sets the search analyzer on every multi_match.
func WithAnalyzer(a string) Option {
	return func(c *Compiler) { c.analyzer = a }
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		profile:      profile.Default,
		fields:       mapping.Default(),
		searchFields: slices.Clone(DefaultSearchFields),
		fuzziness:    querytree.FuzzinessAuto,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile merges the fragments of every clause into one bool query.
func (c *Compiler) Compile(clauses []ast.Clause) (querytree.Bool, error) {
	var acc Fragment
	for i, cl := range clauses {
		f, err := c.CompileClause(cl)
		if err != nil {
			return querytree.Bool{}, fmt.Errorf("clause[%d]: %w", i, err)
		}
		acc = acc.Merge(f)
	}
	return acc.Bool(), nil
}

// CompileClause compiles a single clause. Wildcard and empty filter values
// yield an empty Fragment.
func (c *Compiler) CompileClause(cl ast.Clause) (Fragment, error) {
	if cl == nil {
		return Fragment{}, fmt.Errorf("cannot compile nil clause")
	}

	switch v := cl.(type) {
	case ast.Match:
		return c.compileMatch(v), nil
	case *ast.Match:
		return c.compileMatch(*v), nil
	case ast.Phrase:
		return c.compilePhrase(v), nil
	case *ast.Phrase:
		return c.compilePhrase(*v), nil
	case ast.Term:
		return c.compileTerm(v), nil
	case *ast.Term:
		return c.compileTerm(*v), nil
	case ast.MultiTerm:
		return c.compileMultiTerm(v), nil
	case *ast.MultiTerm:
		return c.compileMultiTerm(*v), nil
	case ast.Range:
		return c.compileRange(v)
	case *ast.Range:
		return c.compileRange(*v)
	case ast.CompoundRange:
		return c.compileCompoundRange(v), nil
	case *ast.CompoundRange:
		return c.compileCompoundRange(*v), nil
	default:
		return Fragment{}, fmt.Errorf("unsupported clause type: %T", cl)
	}
}

func (c *Compiler) compileMatch(m ast.Match) Fragment {
	return should(matchBuilders[c.profile.MatchStyle()](c, m.Value))
}

func (c *Compiler) compilePhrase(p ast.Phrase) Fragment {
	return should(c.multiMatch(p.Value, querytree.TypePhrase, ""))
}

func (c *Compiler) compileTerm(t ast.Term) Fragment {
	if isOpen(t.Value) {
		return Fragment{}
	}
	return filter(c.eachField(t.Field, func(field string) querytree.Node {
		return querytree.Term{Field: field, Text: t.Value}
	}))
}

func (c *Compiler) compileMultiTerm(m ast.MultiTerm) Fragment {
	if slices.Contains(m.Values, Wildcard) {
		return Fragment{}
	}
	values := slices.DeleteFunc(slices.Clone(m.Values), func(v string) bool { return v == "" })
	if len(values) == 0 {
		return Fragment{}
	}
	return filter(c.eachField(m.Field, func(field string) querytree.Node {
		return querytree.Terms{Field: field, Values: values}
	}))
}

func (c *Compiler) compileRange(r ast.Range) (Fragment, error) {
	op := mapping.Operator(string(r.Operation))
	if !op.Known() {
		return Fragment{}, fmt.Errorf("unsupported range operator %q on %q", r.Operation, r.Field)
	}
	if isOpen(r.Value) {
		return Fragment{}, nil
	}
	return c.rangeFilter(r.Field, querytree.Bound{Op: string(op), Value: r.Value}), nil
}

func (c *Compiler) compileCompoundRange(r ast.CompoundRange) Fragment {
	var bounds []querytree.Bound
	if !isOpen(r.From) {
		bounds = append(bounds, querytree.Bound{Op: string(ast.Gte), Value: r.From})
	}
	if !isOpen(r.To) {
		bounds = append(bounds, querytree.Bound{Op: string(ast.Lte), Value: r.To})
	}
	if len(bounds) == 0 {
		return Fragment{}
	}
	return c.rangeFilter(r.Field, bounds...)
}

func (c *Compiler) rangeFilter(key string, bounds ...querytree.Bound) Fragment {
	return filter(c.eachField(key, func(field string) querytree.Node {
		return querytree.Range{Field: field, Bounds: bounds}
	}))
}

// eachField builds one node per backing field of key. Keys backed by a
// single field yield that node; others yield a bool should over all of them.
func (c *Compiler) eachField(key string, build func(field string) querytree.Node) querytree.Node {
	fields := c.fields.Fields(key)
	if len(fields) == 1 {
		return build(fields[0])
	}
	nodes := make([]querytree.Node, len(fields))
	for i, f := range fields {
		nodes[i] = build(f)
	}
	return querytree.Bool{Should: nodes}
}

// isOpen reports whether a filter value leaves the filter unconstrained.
func isOpen(v string) bool {
	return v == "" || v == Wildcard
}
