package ast

import (
	"strings"

	"github.com/roach88/portalsearch/internal/profile"
)

// Logical keys with a prefix shorthand in query text.
const (
	KeyAuthor = "author"
	KeyTag    = "tag"
)

// Prefix shorthands for KeyAuthor and KeyTag.
const (
	AuthorPrefix = '@'
	TagPrefix    = '#'
)

// Serialize renders clauses as query text, joined by single spaces.
//
// For any list produced by parsing well-formed text under profile p,
// parsing Serialize(list, p) under p yields an Equal list. The text itself is
// canonical, not a copy of the original input.
func Serialize(clauses []Clause, p profile.SearchProfile) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c == nil {
			continue
		}
		parts = append(parts, SerializeClause(c, p))
	}
	return strings.Join(parts, " ")
}

// SerializeClause renders a single clause as query text.
func SerializeClause(c Clause, p profile.SearchProfile) string {
	switch v := deref(c).(type) {
	case Match:
		return v.Value
	case Phrase:
		return Quote(v.Value)
	case Term:
		return serializeTerm(v, p)
	case MultiTerm:
		return serializeMultiTerm(v)
	case Range:
		return v.Field + ":" + v.Operation.Symbol() + v.Value
	case CompoundRange:
		return v.Field + ":[" + v.From + " to " + v.To + "]"
	default:
		return ""
	}
}

func serializeTerm(t Term, p profile.SearchProfile) string {
	switch t.Field {
	case KeyAuthor:
		short := p.AuthorStyle() == profile.AuthorShort || !keyedValue(t.Value)
		if short && barePrefixValue(t.Value) {
			return string(AuthorPrefix) + t.Value
		}
	case KeyTag:
		if barePrefixValue(t.Value) {
			return string(TagPrefix) + t.Value
		}
	}
	return t.Field + ":" + termValue(t.Value)
}

func termValue(v string) string {
	if bareTermValue(v) || (isWord(v) && !Quotable(v)) {
		return v
	}
	return Quote(v)
}

func serializeMultiTerm(m MultiTerm) string {
	var b strings.Builder
	b.WriteString(m.Field)
	b.WriteString(":{")
	for i, v := range m.Values {
		if i > 0 {
			b.WriteByte(',')
		}
		if bareElement(v) {
			b.WriteString(v)
		} else {
			b.WriteString(Quote(v))
		}
	}
	b.WriteByte('}')
	return b.String()
}
