// Package harness runs query-language conformance scenarios.
//
// A scenario is a YAML file listing queries to parse under one profile,
// with optional per-step expectations and cross-step assertions. Each step
// is parsed, serialized back to canonical text, re-parsed, and compiled to
// a query tree.
//
// # Scenario Format
//
//	name: portal_filters
//	description: "What this scenario validates"
//	profile: portal            # optional, default portal
//	config:                    # optional inline engine config
//	  search_fields: [title]
//	steps:
//	  - query: "hotel #travel"
//	    expect:
//	      clauses:
//	        - { type: match, value: hotel }
//	        - { type: term, key: tag, value: travel }
//	      serialized: "hotel #travel"
//	      filter: 1
//	      should: 1
//	  - query: ":oops"
//	    expect:
//	      error: dangling_separator
//	assertions:
//	  - type: round_trip
//	  - type: same_tree
//	    steps: [0, 1]
//
// # Assertions
//
//   - round_trip: every parsed step re-parses from its canonical text to
//     the same clauses
//   - same_tree: the listed steps compile to one query tree
//   - distinct_tree: the listed steps compile to pairwise different trees
//
// # Golden Files
//
// RunWithGolden snapshots each step's canonical text and compiled tree as
// canonical JSON under testdata/golden/{name}.golden.
package harness
