// Package portalsearch parses the search bar query language, writes parsed
// queries back out as canonical text, and compiles them into search-engine
// bool queries.
//
// The query language mixes free text with keyed filters:
//
//	hotel deals #travel @jdoe createdDate:>=2024-01-01 team:{search,infra}
//
// Typical use:
//
//	eng, err := portalsearch.New(portalsearch.WithProfile(portalsearch.Insights))
//	clauses, err := eng.Parse(text)
//	tree, err := eng.Compile(clauses)
//	body, err := portalsearch.Encode(tree)
package portalsearch

import (
	"github.com/roach88/portalsearch/internal/ast"
	"github.com/roach88/portalsearch/internal/compile"
	"github.com/roach88/portalsearch/internal/config"
	"github.com/roach88/portalsearch/internal/grammar"
	"github.com/roach88/portalsearch/internal/profile"
	"github.com/roach88/portalsearch/internal/querytree"
)

// Re-exported types.
type (
	Clause        = ast.Clause
	Match         = ast.Match
	Phrase        = ast.Phrase
	Term          = ast.Term
	MultiTerm     = ast.MultiTerm
	Range         = ast.Range
	CompoundRange = ast.CompoundRange
	Operator      = ast.Operator
	ClauseList    = ast.List

	SearchProfile    = profile.SearchProfile
	SyntaxError      = grammar.SyntaxError
	Config           = config.Config
	Query            = querytree.Bool
	ValidationResult = ast.ValidationResult
)

// Profiles.
const (
	Portal   = profile.Portal
	Insights = profile.Insights
)

// Range operators.
const (
	Gt  = ast.Gt
	Gte = ast.Gte
	Lt  = ast.Lt
	Lte = ast.Lte
)

// Clause constructors.
var (
	NewMatch         = ast.NewMatch
	NewPhrase        = ast.NewPhrase
	NewTerm          = ast.NewTerm
	NewMultiTerm     = ast.NewMultiTerm
	NewRange         = ast.NewRange
	NewCompoundRange = ast.NewCompoundRange
)

// Engine parses, serializes and compiles queries under one profile and
// configuration. An Engine is immutable and safe for concurrent use.
type Engine struct {
	profile  profile.SearchProfile
	parser   *grammar.Parser
	compiler *compile.Compiler
}

type settings struct {
	cfg       *config.Config
	profile   *profile.SearchProfile
	maxLength *int
}

// Option configures an Engine.
type Option func(*settings)

// WithProfile selects the search profile. It takes precedence over a
// profile named in the config.
func WithProfile(p SearchProfile) Option {
	return func(s *settings) { s.profile = &p }
}

// WithConfig applies field mappings, search fields, fuzziness, analyzer,
// profile and length limit from cfg.
func WithConfig(cfg *Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithMaxLength caps query text length in bytes. n <= 0 removes the cap.
// It takes precedence over the config.
func WithMaxLength(n int) Option {
	return func(s *settings) { s.maxLength = &n }
}

// New builds an Engine. It fails only when the config names an unknown
// profile.
func New(opts ...Option) (*Engine, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	popts, err := s.cfg.ParserOptions()
	if err != nil {
		return nil, err
	}
	copts, err := s.cfg.CompilerOptions()
	if err != nil {
		return nil, err
	}
	p, err := s.cfg.SearchProfile()
	if err != nil {
		return nil, err
	}

	if s.profile != nil {
		p = *s.profile
		popts = append(popts, grammar.WithProfile(p))
		copts = append(copts, compile.WithProfile(p))
	}
	if s.maxLength != nil {
		popts = append(popts, grammar.WithMaxLength(*s.maxLength))
	}

	return &Engine{
		profile:  p,
		parser:   grammar.New(popts...),
		compiler: compile.New(copts...),
	}, nil
}

// Profile returns the engine's search profile.
func (e *Engine) Profile() SearchProfile { return e.profile }

// Parse decomposes query text into clauses. The only error is a
// *SyntaxError.
func (e *Engine) Parse(text string) ([]Clause, error) {
	return e.parser.Parse(text)
}

// Serialize writes clauses back out as canonical query text.
func (e *Engine) Serialize(clauses []Clause) string {
	return ast.Serialize(clauses, e.profile)
}

// Validate reports clauses whose canonical text would not parse back to
// the same clauses.
func (e *Engine) Validate(clauses []Clause) ValidationResult {
	return ast.Validate(clauses, e.profile)
}

// Compile turns clauses into a bool query.
func (e *Engine) Compile(clauses []Clause) (Query, error) {
	return e.compiler.Compile(clauses)
}

// ParseAndCompile parses text and compiles the result.
func (e *Engine) ParseAndCompile(text string) (Query, error) {
	clauses, err := e.Parse(text)
	if err != nil {
		return Query{}, err
	}
	return e.Compile(clauses)
}

// Fingerprint compiles clauses and hashes the resulting tree. Queries that
// select the same documents the same way share a fingerprint.
func (e *Engine) Fingerprint(clauses []Clause) (string, error) {
	q, err := e.Compile(clauses)
	if err != nil {
		return "", err
	}
	return querytree.Fingerprint(q)
}

// Encode returns the canonical JSON request body for q.
func Encode(q Query) ([]byte, error) {
	return querytree.Encode(q)
}

// Find returns the first clause filtering on key.
func Find(clauses []Clause, key string) (Clause, bool) {
	return ast.Find(clauses, key)
}

// Replace returns a copy of clauses with the first clause sharing c's key
// replaced by c, or with c appended.
func Replace(clauses []Clause, c Clause) []Clause {
	return ast.Replace(clauses, c)
}

// Remove returns a copy of clauses without any clause equal to target.
func Remove(clauses []Clause, target Clause) []Clause {
	return ast.Remove(clauses, target)
}

// IsSyntaxError reports whether err is or wraps a *SyntaxError.
func IsSyntaxError(err error) bool {
	return grammar.IsSyntaxError(err)
}

// ParseProfile resolves a profile name such as "portal" or "insights".
func ParseProfile(name string) (SearchProfile, error) {
	return profile.Parse(name)
}

// LoadConfig reads a YAML or JSON-with-comments config file.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}
