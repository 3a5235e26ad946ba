package grammar

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/portalsearch/internal/ast"
	"github.com/roach88/portalsearch/internal/mapping"
	"github.com/roach88/portalsearch/internal/profile"
)

// DefaultMaxLength is the longest query text, in bytes, accepted by default.
const DefaultMaxLength = 4096

var quotedRE = regexp.MustCompile(`^(?:` + ast.QuotedPattern + `)`)

// Parser turns query text into clauses. A Parser holds no mutable state and
// is safe for concurrent use.
type Parser struct {
	profile   profile.SearchProfile
	maxLength int
}

// Option configures a Parser.
type Option func(*Parser)

// WithProfile selects the search profile. It only affects whether adjacent
// words combine into a single Match.
func WithProfile(p profile.SearchProfile) Option {
	return func(ps *Parser) { ps.profile = p }
}

// WithMaxLength sets the input limit in bytes. Zero or negative disables it.
func WithMaxLength(n int) Option {
	return func(ps *Parser) { ps.maxLength = n }
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{profile: profile.Default, maxLength: DefaultMaxLength}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Profile returns the parser's search profile.
func (p *Parser) Profile() profile.SearchProfile { return p.profile }

// Parse parses text with the default profile and limit.
func Parse(text string) ([]ast.Clause, error) {
	return New().Parse(text)
}

// Parse decomposes text into clauses, preserving left-to-right order.
// The returned error is always a *SyntaxError.
func (p *Parser) Parse(text string) ([]ast.Clause, error) {
	if p.maxLength > 0 && len(text) > p.maxLength {
		return nil, &SyntaxError{
			Code:    CodeTooLong,
			Pos:     p.maxLength,
			Message: fmt.Sprintf("query is %d bytes, limit is %d", len(text), p.maxLength),
		}
	}

	s := &scanner{
		src:     norm.NFC.String(text),
		combine: p.profile.CombineWords(),
	}
	s.lastBracket = strings.LastIndexByte(s.src, ']')
	s.lastBrace = strings.LastIndexByte(s.src, '}')
	return s.run()
}

// scanner holds the state of a single parse.
type scanner struct {
	src     string
	pos     int
	combine bool

	// recovering is set once a quote fails to close; words stop combining.
	recovering bool

	// unclosed[i] is set once a quote of that kind is known to have no
	// closing delimiter anywhere after the current position.
	unclosed [2]bool

	lastBracket int
	lastBrace   int
}

func (s *scanner) run() ([]ast.Clause, error) {
	clauses := []ast.Clause{}
	for {
		s.pos = s.skipSpace(s.pos)
		if s.pos >= len(s.src) {
			return clauses, nil
		}
		c, err := s.token()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}
}

// token parses one clause starting at a non-space position.
func (s *scanner) token() (ast.Clause, error) {
	start := s.pos
	ch := s.src[start]

	if ch == ':' {
		return nil, &SyntaxError{
			Code:    CodeDanglingSeparator,
			Pos:     start,
			Message: "filter separator ':' without a key",
		}
	}

	if ast.IsQuote(ch) {
		if q, ok := s.quoted(start); ok {
			s.pos += len(q)
			return ast.NewPhrase(ast.Unquote(q)), nil
		}
		s.recovering = true
	}

	word := s.word(start)
	end := start + len(word)
	if end < len(s.src) && s.src[end] == ':' {
		s.pos = end + 1
		return s.filter(word), nil
	}

	switch word[0] {
	case ast.AuthorPrefix:
		s.pos = end
		return ast.NewTerm(ast.KeyAuthor, word[1:]), nil
	case ast.TagPrefix:
		s.pos = end
		return ast.NewTerm(ast.KeyTag, word[1:]), nil
	}

	return s.match(word), nil
}

// filter parses the part of a keyed clause after "key:".
func (s *scanner) filter(key string) ast.Clause {
	if s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '[':
			if c, ok := s.compoundRange(key); ok {
				return c
			}
		case '>', '<':
			return s.rangeClause(key)
		case '{':
			if c, ok := s.multiTerm(key); ok {
				return c
			}
		}
	}
	return s.term(key)
}

// compoundRange handles key:[from to to]. A bracket span that does not hold
// two bounds becomes a Term with the span as its value. Without a closing
// bracket it reports false and the caller falls through to a plain Term.
func (s *scanner) compoundRange(key string) (ast.Clause, bool) {
	span, ok := s.span(']', s.lastBracket)
	if !ok {
		return nil, false
	}
	if from, to, ok := parseBounds(span[1 : len(span)-1]); ok {
		return ast.NewCompoundRange(key, from, to), true
	}
	return ast.NewTerm(key, span), true
}

// multiTerm handles key:{a,b}. Spans that are not element lists become a
// Term with the span as its value.
func (s *scanner) multiTerm(key string) (ast.Clause, bool) {
	span, ok := s.span('}', s.lastBrace)
	if !ok {
		return nil, false
	}
	if values, ok := parseElements(span[1 : len(span)-1]); ok {
		return ast.NewMultiTerm(key, values...), true
	}
	return ast.NewTerm(key, span), true
}

// span consumes from the opening delimiter at s.pos through the first
// closing delimiter. last is the final index of closing in the input, used
// to fail without scanning when no closer remains.
func (s *scanner) span(closing byte, last int) (string, bool) {
	open := s.pos
	if last <= open {
		return "", false
	}
	end := open + 1 + strings.IndexByte(s.src[open+1:], closing)
	s.pos = end + 1
	return s.src[open : end+1], true
}

func (s *scanner) rangeClause(key string) ast.Clause {
	rest := s.src[s.pos:]
	for _, sym := range mapping.Symbols {
		if strings.HasPrefix(rest, sym) {
			s.pos += len(sym)
			value := s.word(s.pos)
			s.pos += len(value)
			return ast.NewRange(key, mapping.Operator(sym), value)
		}
	}
	// Unreachable: filter only dispatches here on '>' or '<'.
	return s.term(key)
}

func (s *scanner) term(key string) ast.Clause {
	if s.pos < len(s.src) && ast.IsQuote(s.src[s.pos]) {
		if q, ok := s.quoted(s.pos); ok {
			s.pos += len(q)
			return ast.NewTerm(key, ast.Unquote(q))
		}
	}
	value := s.word(s.pos)
	s.pos += len(value)
	return ast.NewTerm(key, value)
}

// match consumes first and, when combining, every following plain word.
func (s *scanner) match(first string) ast.Clause {
	s.pos += len(first)
	if !s.combine || s.recovering {
		return ast.NewMatch(first)
	}

	words := []string{first}
	for {
		next := s.skipSpace(s.pos)
		if next == s.pos || next >= len(s.src) {
			break
		}
		w := s.word(next)
		if w == "" || startsToken(w[0]) {
			break
		}
		end := next + len(w)
		if end < len(s.src) && s.src[end] == ':' {
			break
		}
		words = append(words, w)
		s.pos = end
	}
	return ast.NewMatch(strings.Join(words, " "))
}

// startsToken reports whether a word beginning with b opens a Phrase or a
// prefixed Term and so cannot extend a Match.
func startsToken(b byte) bool {
	return ast.IsQuote(b) || b == ast.AuthorPrefix || b == ast.TagPrefix
}

// quoted returns the quoted string starting at i, if it is terminated.
func (s *scanner) quoted(i int) (string, bool) {
	kind := 0
	if s.src[i] == '\'' {
		kind = 1
	}
	if s.unclosed[kind] {
		return "", false
	}
	loc := quotedRE.FindStringIndex(s.src[i:])
	if loc == nil {
		// No closing delimiter exists after i, so none exists after any
		// later position either.
		s.unclosed[kind] = true
		return "", false
	}
	return s.src[i : i+loc[1]], true
}

// word returns the maximal run at i of characters other than whitespace and ':'.
func (s *scanner) word(i int) string {
	j := i
	for j < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[j:])
		if r == ':' || ast.IsSpace(r) {
			break
		}
		j += size
	}
	return s.src[i:j]
}

func (s *scanner) skipSpace(i int) int {
	for i < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[i:])
		if !ast.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}
