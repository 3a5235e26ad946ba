// Package profile selects between the search-box variants that share one
// grammar and one compiler.
//
// A SearchProfile fixes exactly three behaviours:
//
//   - whether adjacent plain words combine into a single Match clause
//   - how a Match clause compiles (rich fuzzy + phrase-prefix, or a plain multi_match)
//   - how an author Term serializes (@name or author:name)
//
// Everything else (grammar, mapping tables, the other clause compilers) is
// identical across profiles.
package profile

import (
	"fmt"
	"strings"
)

// SearchProfile identifies a search-box variant.
type SearchProfile int

const (
	// Portal is the main content portal search box.
	Portal SearchProfile = iota
	// Insights is the analytics insights search box.
	Insights
)

// Default is used when no profile is configured.
const Default = Portal

// MatchStyle controls how Match clauses compile.
type MatchStyle int

const (
	// MatchRich compiles to a fuzzy best_fields match OR'd with a phrase_prefix match.
	MatchRich MatchStyle = iota
	// MatchPlain compiles to a single best_fields multi_match.
	MatchPlain
)

// AuthorStyle controls how author Terms serialize.
type AuthorStyle int

const (
	// AuthorShort renders author terms as @value when possible.
	AuthorShort AuthorStyle = iota
	// AuthorLong always renders author:value.
	AuthorLong
)

// Traits is the resolved behaviour of a profile.
type Traits struct {
	CombineWords bool
	Match        MatchStyle
	Author       AuthorStyle
}

var traits = map[SearchProfile]Traits{
	Portal:   {CombineWords: true, Match: MatchRich, Author: AuthorShort},
	Insights: {CombineWords: false, Match: MatchPlain, Author: AuthorLong},
}

var names = map[SearchProfile]string{
	Portal:   "portal",
	Insights: "insights",
}

// All returns every known profile in declaration order.
func All() []SearchProfile {
	return []SearchProfile{Portal, Insights}
}

// Traits returns the behaviour table entry for p.
// Unknown profiles resolve to the Default profile's traits.
func (p SearchProfile) Traits() Traits {
	if t, ok := traits[p]; ok {
		return t
	}
	return traits[Default]
}

// CombineWords reports whether adjacent plain words merge into one Match.
func (p SearchProfile) CombineWords() bool { return p.Traits().CombineWords }

// MatchStyle reports how Match clauses compile.
func (p SearchProfile) MatchStyle() MatchStyle { return p.Traits().Match }

// AuthorStyle reports how author Terms serialize.
func (p SearchProfile) AuthorStyle() AuthorStyle { return p.Traits().Author }

func (p SearchProfile) String() string {
	if n, ok := names[p]; ok {
		return n
	}
	return fmt.Sprintf("SearchProfile(%d)", int(p))
}

// Parse resolves a profile name, case-insensitively.
func Parse(name string) (SearchProfile, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, p := range All() {
		if names[p] == want {
			return p, nil
		}
	}
	return Default, fmt.Errorf("unknown search profile %q: must be one of %v", name, Names())
}

// Names returns the names of all known profiles.
func Names() []string {
	out := make([]string, 0, len(names))
	for _, p := range All() {
		out = append(out, names[p])
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (p SearchProfile) MarshalText() ([]byte, error) {
	if _, ok := names[p]; !ok {
		return nil, fmt.Errorf("unknown search profile %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *SearchProfile) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
