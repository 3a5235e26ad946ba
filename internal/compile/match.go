package compile

import (
	"slices"

	"github.com/roach88/portalsearch/internal/profile"
	"github.com/roach88/portalsearch/internal/querytree"
)

type matchBuilder func(c *Compiler, query string) querytree.Node

var matchBuilders = map[profile.MatchStyle]matchBuilder{
	profile.MatchRich:  richMatch,
	profile.MatchPlain: plainMatch,
}

// richMatch is a fuzzy match OR'd with a phrase-prefix match, so that both
// misspellings and partially typed words find results.
func richMatch(c *Compiler, query string) querytree.Node {
	return querytree.Bool{Should: []querytree.Node{
		c.multiMatch(query, querytree.TypeBestFields, c.fuzziness),
		c.multiMatch(query, querytree.TypePhrasePrefix, ""),
	}}
}

func plainMatch(c *Compiler, query string) querytree.Node {
	return c.multiMatch(query, querytree.TypeBestFields, "")
}

// multiMatch gives every node its own copy of the search fields.
func (c *Compiler) multiMatch(query, typ, fuzziness string) querytree.MultiMatch {
	return querytree.MultiMatch{
		Query:     query,
		Fields:    slices.Clone(c.searchFields),
		Type:      typ,
		Fuzziness: fuzziness,
		Analyzer:  c.analyzer,
	}
}
