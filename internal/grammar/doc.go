// Package grammar parses search-box text into clauses.
//
// The grammar is an ordered choice. At each token position the first
// alternative that matches wins:
//
//	Phrase         "quoted text" or 'quoted text'
//	CompoundRange  key:[from to to]
//	Range          key:>=value   (>=, >, <=, <; value may be empty)
//	MultiTerm      key:{a,"b c",d}
//	Term           @author, #tag, key:value, key:"quoted value"
//	Match          one or more plain words
//
// Tokens are separated by optional whitespace. Bracket and brace spans are
// located with a single forward scan and parsed once; a span that does not
// parse becomes the verbatim value of a Term. Nothing is ever re-scanned, so
// parse time is linear in the input length.
//
// An unterminated quote is not an error. The quote character is kept as part
// of an ordinary word and, from that point on, words are no longer combined
// into multi-word matches. The only failures are an input longer than the
// configured limit and a ':' that does not follow a key.
package grammar
