package ast

import "slices"

// deref normalizes pointer clauses to their value form.
func deref(c Clause) Clause {
	switch v := c.(type) {
	case *Match:
		return *v
	case *Phrase:
		return *v
	case *Term:
		return *v
	case *MultiTerm:
		return *v
	case *Range:
		return *v
	case *CompoundRange:
		return *v
	}
	return c
}

// Equal reports whether two clauses are structurally equal.
// Pointer and value forms of the same clause compare equal.
func Equal(a, b Clause) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	a, b = deref(a), deref(b)
	switch x := a.(type) {
	case MultiTerm:
		y, ok := b.(MultiTerm)
		return ok && x.Field == y.Field && slices.Equal(x.Values, y.Values)
	default:
		return a == b
	}
}

// EqualLists reports whether two clause lists are pairwise Equal.
func EqualLists(a, b []Clause) bool {
	return slices.EqualFunc(a, b, Equal)
}

// FindIndex returns the index of the first clause with the given key, or -1.
// Match and Phrase clauses have no key and are never found.
func FindIndex(clauses []Clause, key string) int {
	if key == "" {
		return -1
	}
	return slices.IndexFunc(clauses, func(c Clause) bool {
		return c != nil && c.Key() == key
	})
}

// Find returns the first clause with the given key.
func Find(clauses []Clause, key string) (Clause, bool) {
	i := FindIndex(clauses, key)
	if i < 0 {
		return nil, false
	}
	return clauses[i], true
}

// IndexOf returns the index of the first clause Equal to target, or -1.
func IndexOf(clauses []Clause, target Clause) int {
	return slices.IndexFunc(clauses, func(c Clause) bool {
		return Equal(c, target)
	})
}

// Replace returns a new list in which the first clause with the same key as
// c is replaced by c. When no such clause exists, c is appended.
// The input list is not modified.
func Replace(clauses []Clause, c Clause) []Clause {
	out := slices.Clone(clauses)
	if i := FindIndex(out, c.Key()); i >= 0 {
		out[i] = c
		return out
	}
	return append(out, c)
}

// Remove returns a new list without any clause Equal to target.
func Remove(clauses []Clause, target Clause) []Clause {
	out := make([]Clause, 0, len(clauses))
	for _, c := range clauses {
		if !Equal(c, target) {
			out = append(out, c)
		}
	}
	return out
}
