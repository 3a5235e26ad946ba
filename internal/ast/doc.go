// Package ast defines the clause values produced by the query parser and
// consumed by the serializer and the compiler.
//
// Clause is a sealed interface using the marker method pattern. Only the six
// types in this package implement it:
//
//	Match          free text, one or more words
//	Phrase         quoted exact phrase
//	Term           key:value filter (also @author and #tag)
//	MultiTerm      key:{a,b,c}
//	Range          key:>=value
//	CompoundRange  key:[from to to]
//
// Clauses are values. They are never mutated after construction; the With*
// methods return modified copies. Two clauses are equal when Equal reports
// true, which compares kind and every field (MultiTerm values in order).
//
// Values hold raw text. Quoting and escaping are applied by Serialize only.
package ast
