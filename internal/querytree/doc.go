// Package querytree models the boolean query document handed to the search
// engine, and its canonical JSON encoding.
//
// Nodes (Bool, Term, Terms, Range, MultiMatch) are a sealed interface using
// the marker method pattern. Every node lowers to a Value, a constrained
// JSON model with no floats and no nulls, and Values encode to RFC 8785
// canonical JSON: keys sorted by UTF-16 code units, no HTML escaping,
// strings NFC-normalized. The same tree therefore always encodes to the same
// bytes, which makes the encoding usable for golden files and fingerprints.
//
// Wire shapes:
//
//	{"bool":{"filter":[...],"should":[...],"minimum_should_match":1}}
//	{"term":{"<field>":{"value":"<v>"}}}
//	{"terms":{"<field>":["<v>",...]}}
//	{"range":{"<field>":{"gte":"<v>","lte":"<v>"}}}
//	{"multi_match":{"query":"<q>","fields":[...],"type":"<t>","fuzziness":"AUTO"}}
package querytree
