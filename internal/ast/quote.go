package ast

import (
	"strings"
	"unicode"
)

// QuotedPattern matches a single- or double-quoted string. A backslash pairs
// with the character after it, so \" never closes the string. Only a
// backslash before the delimiter is an escape; other pairs are kept verbatim.
const QuotedPattern = `"(?:[^"\\]|\\(?s:.))*"|'(?:[^'\\]|\\(?s:.))*'`

// IsSpace reports whether r separates tokens.
func IsSpace(r rune) bool { return unicode.IsSpace(r) }

// IsQuote reports whether b opens a quoted string.
func IsQuote(b byte) bool { return b == '"' || b == '\'' }

// Quote wraps s in double quotes, escaping embedded double quotes. When a
// run of backslashes would swallow an escape, single quotes are used instead.
func Quote(s string) string {
	if !quotable(s, '"') && quotable(s, '\'') {
		return quoteWith(s, '\'')
	}
	return quoteWith(s, '"')
}

func quoteWith(s string, delim byte) string {
	d := string(delim)
	return d + strings.ReplaceAll(s, d, `\`+d) + d
}

// Unquote strips the delimiters from a string matched by QuotedPattern and
// resolves escaped delimiters. Input that is not delimited is returned as is.
func Unquote(q string) string {
	if len(q) < 2 || !IsQuote(q[0]) || q[len(q)-1] != q[0] {
		return q
	}
	delim, inner := q[0], q[1:len(q)-1]
	if strings.IndexByte(inner, '\\') < 0 {
		return inner
	}
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			i++
			if inner[i] != delim {
				b.WriteByte(c)
			}
			b.WriteByte(inner[i])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// quotable reports whether s survives quoting with delim and unquoting.
// It fails when a run of backslashes with odd length precedes delim or the
// end of s.
func quotable(s string, delim byte) bool {
	run := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			run++
			continue
		case delim:
			if run%2 == 1 {
				return false
			}
		}
		run = 0
	}
	return run%2 == 0
}

// Quotable reports whether s can be written as a quoted string at all.
func Quotable(s string) bool {
	return quotable(s, '"') || quotable(s, '\'')
}

func containsSpace(s string) bool {
	return strings.IndexFunc(s, IsSpace) >= 0
}

// isWord reports whether s is a non-empty run of word characters.
func isWord(s string) bool {
	return s != "" && !containsSpace(s) && !strings.ContainsRune(s, ':')
}

// bareTermValue reports whether v re-parses unchanged when written after key:.
func bareTermValue(v string) bool {
	if v == "" {
		return true
	}
	if !isWord(v) {
		return false
	}
	switch v[0] {
	case '"', '\'', '[', '{', '<', '>':
		return false
	}
	return true
}

// keyedValue reports whether v can be written after key:, bare or quoted.
func keyedValue(v string) bool {
	return bareTermValue(v) || Quotable(v)
}

// barePrefixValue reports whether v re-parses unchanged when written after @ or #.
func barePrefixValue(v string) bool {
	return v == "" || isWord(v)
}

// bareElement reports whether v can be written unquoted inside {...}.
func bareElement(v string) bool {
	return v != "" && !strings.ContainsFunc(v, func(r rune) bool {
		return IsSpace(r) || strings.ContainsRune(`:,{}"'`, r)
	})
}

// startsWithQuote reports whether the first rune of s opens a quoted string.
func startsWithQuote(s string) bool {
	return s != "" && IsQuote(s[0])
}
