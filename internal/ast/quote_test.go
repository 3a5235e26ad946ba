package ast

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var fullQuoted = regexp.MustCompile(`^(?:` + QuotedPattern + `)$`)

func TestUnquote(t *testing.T) {
	tests := map[string]string{
		`"a b"`:        `a b`,
		`'it\'s'`:      `it's`,
		`"say \"hi\""`: `say "hi"`,
		`"a\nb"`:       `a\nb`,
		`'a\"b'`:       `a\"b`,
		`"a\\"`:        `a\\`,
		`""`:           ``,
		`abc`:          `abc`,
		`"abc'`:        `"abc'`,
		`"`:            `"`,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Unquote(in))
		})
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	values := []string{
		"",
		"plain",
		"two words",
		`say "hi"`,
		`it's`,
		`a\nb`,
		`a\"b`,
		`a\\`,
		`\\"`,
		`both " and '`,
		"tab\there",
	}
	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			q := Quote(v)
			assert.True(t, fullQuoted.MatchString(q), "Quote(%q) = %q is not a single quoted string", v, q)
			assert.Equal(t, v, Unquote(q))
		})
	}
}

func TestQuote_PrefersDoubleQuotes(t *testing.T) {
	assert.Equal(t, `"a b"`, Quote("a b"))
	assert.Equal(t, `"it's"`, Quote("it's"))
	assert.Equal(t, `'a\"b'`, Quote(`a\"b`))
}

func TestQuotable(t *testing.T) {
	assert.True(t, Quotable("abc"))
	assert.True(t, Quotable(`a\\`))
	assert.True(t, Quotable(`a\"b`))
	assert.False(t, Quotable(`a\`))
	assert.False(t, Quotable(`a\"b\'c`))
}

func TestQuotedPatternNeverClosesOnEscape(t *testing.T) {
	assert.False(t, fullQuoted.MatchString(`"abc\"`))
	assert.True(t, fullQuoted.MatchString(`"abc\\"`))
	assert.True(t, fullQuoted.MatchString(`'it\'s'`))
	assert.False(t, fullQuoted.MatchString(`"a" b"`))
}
