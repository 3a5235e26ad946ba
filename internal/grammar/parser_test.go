package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/portalsearch/internal/ast"
	"github.com/roach88/portalsearch/internal/profile"
)

type parseCase struct {
	input string
	want  []ast.Clause
}

func clauses(c ...ast.Clause) []ast.Clause { return c }

func TestParse(t *testing.T) {
	tests := map[string]parseCase{
		"term":                {"tag:hotels", clauses(ast.NewTerm("tag", "hotels"))},
		"combined match":      {"avocado toast", clauses(ast.NewMatch("avocado toast"))},
		"phrase":              {`"powered by analysts"`, clauses(ast.NewPhrase("powered by analysts"))},
		"unterminated phrase": {`"powered by analysts`, clauses(ast.NewMatch(`"powered`), ast.NewMatch("by"), ast.NewMatch("analysts"))},
		"multi term":          {"tag:{hotel,flight}", clauses(ast.NewMultiTerm("tag", "hotel", "flight"))},
		"compound range":      {"updatedDate:[2020-03-01 to 2020-10-01]", clauses(ast.NewCompoundRange("updatedDate", "2020-03-01", "2020-10-01"))},
		"single bound":        {"updatedDate:[2020-03-01]", clauses(ast.NewTerm("updatedDate", "[2020-03-01]"))},
		"empty phrase":        {`""`, clauses(ast.NewPhrase(""))},
		"single quoted":       {`'it\'s here'`, clauses(ast.NewPhrase("it's here"))},
		"escaped quotes":      {`"say \"hi\""`, clauses(ast.NewPhrase(`say "hi"`))},
		"author":              {"@jdoe", clauses(ast.NewTerm("author", "jdoe"))},
		"empty author":        {"@", clauses(ast.NewTerm("author", ""))},
		"tag prefix":          {"#hotels", clauses(ast.NewTerm("tag", "hotels"))},
		"empty tag":           {"#", clauses(ast.NewTerm("tag", ""))},
		"prefixed key":        {"@team:x", clauses(ast.NewTerm("@team", "x"))},
		"range gte":           {"createdDate:>=2020-01-01", clauses(ast.NewRange("createdDate", ast.Gte, "2020-01-01"))},
		"range gt":            {"createdDate:>2020", clauses(ast.NewRange("createdDate", ast.Gt, "2020"))},
		"range lte":           {"createdDate:<=2020", clauses(ast.NewRange("createdDate", ast.Lte, "2020"))},
		"range lt":            {"createdDate:<2020", clauses(ast.NewRange("createdDate", ast.Lt, "2020"))},
		"range empty value":   {"createdDate:> team:x", clauses(ast.NewRange("createdDate", ast.Gt, ""), ast.NewTerm("team", "x"))},
		"empty term value":    {"team: finance", clauses(ast.NewTerm("team", ""), ast.NewMatch("finance"))},
		"quoted term value":   {`team:"data science"`, clauses(ast.NewTerm("team", "data science"))},
		"wildcard":            {"tag:*", clauses(ast.NewTerm("tag", "*"))},
		"multi term spaces":   {"tag:{hotel, 'new york' , flight}", clauses(ast.NewMultiTerm("tag", "hotel", "new york", "flight"))},
		"multi term quoted":   {`itemType:{"a,b",c}`, clauses(ast.NewMultiTerm("itemType", "a,b", "c"))},
		"multi term single":   {"tag:{hotel}", clauses(ast.NewMultiTerm("tag", "hotel"))},
		"empty braces":        {"tag:{}", clauses(ast.NewTerm("tag", "{}"))},
		"braces no comma":     {"tag:{a b}", clauses(ast.NewTerm("tag", "{a b}"))},
		"trailing comma":      {"tag:{a,}", clauses(ast.NewTerm("tag", "{a,}"))},
		"unclosed brace":      {"tag:{a,b", clauses(ast.NewTerm("tag", "{a,b"))},
		"uppercase to":        {"updatedDate:[a TO b]", clauses(ast.NewTerm("updatedDate", "[a TO b]"))},
		"unclosed bracket":    {"updatedDate:[2020", clauses(ast.NewTerm("updatedDate", "[2020"))},
		"bracket then match":  {"updatedDate:[a to b] rest", clauses(ast.NewCompoundRange("updatedDate", "a", "b"), ast.NewMatch("rest"))},
		"bracket with spaces": {"updatedDate:[2020 foo] bar", clauses(ast.NewTerm("updatedDate", "[2020 foo]"), ast.NewMatch("bar"))},
		"unterminated value":  {`tag:"unterminated`, clauses(ast.NewTerm("tag", `"unterminated`))},
		"words around term":   {"avocado toast tag:hotels banana", clauses(ast.NewMatch("avocado toast"), ast.NewTerm("tag", "hotels"), ast.NewMatch("banana"))},
		"words around tag":    {"avocado #travel toast", clauses(ast.NewMatch("avocado"), ast.NewTerm("tag", "travel"), ast.NewMatch("toast"))},
		"words around phrase": {`avocado "toast bread" jam`, clauses(ast.NewMatch("avocado"), ast.NewPhrase("toast bread"), ast.NewMatch("jam"))},
		"late stray quote":    {`foo bar "baz qux`, clauses(ast.NewMatch("foo bar"), ast.NewMatch(`"baz`), ast.NewMatch("qux"))},
		"adjacent phrase":     {`"a"b`, clauses(ast.NewPhrase("a"), ast.NewMatch("b"))},
		"irregular spaces":    {"  spaced \t  out  ", clauses(ast.NewMatch("spaced out"))},
		"empty":               {"", []ast.Clause{}},
		"blank":               {"   ", []ast.Clause{}},
		"nfc":                 {"cafe\u0301 cre\u0300me", clauses(ast.NewMatch("caf\u00e9 cr\u00e8me"))},
		"quote inside word":   {`foo"bar baz`, clauses(ast.NewMatch(`foo"bar baz`))},
		"full query":          {
			`avocado tag:{hotel,flight} @jdoe createdDate:>=2020 updatedDate:[a to b] "exact"`,
			clauses(
				ast.NewMatch("avocado"),
				ast.NewMultiTerm("tag", "hotel", "flight"),
				ast.NewTerm("author", "jdoe"),
				ast.NewRange("createdDate", ast.Gte, "2020"),
				ast.NewCompoundRange("updatedDate", "a", "b"),
				ast.NewPhrase("exact"),
			),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_InsightsDoesNotCombine(t *testing.T) {
	p := New(WithProfile(profile.Insights))

	got, err := p.Parse("avocado toast tag:hotels")
	require.NoError(t, err)
	assert.Equal(t, clauses(ast.NewMatch("avocado"), ast.NewMatch("toast"), ast.NewTerm("tag", "hotels")), got)
	assert.Equal(t, profile.Insights, p.Profile())
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := map[string]struct {
		input string
		pos   int
	}{
		"leading separator": {":foo", 0},
		"spaced separator":  {"foo :bar", 4},
		"double separator":  {"user:jdoe:extra", 9},
		"after phrase":      {`"a":b`, 3},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tc.input)
			require.Error(t, err)

			se, ok := AsSyntaxError(err)
			require.True(t, ok)
			assert.Equal(t, CodeDanglingSeparator, se.Code)
			assert.Equal(t, tc.pos, se.Pos)
			assert.True(t, IsSyntaxError(err))
		})
	}
}

func TestParse_TooLong(t *testing.T) {
	p := New(WithMaxLength(5))
	_, err := p.Parse("abcdef")
	require.Error(t, err)

	se, ok := AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, CodeTooLong, se.Code)
	assert.Contains(t, se.Error(), "limit is 5")

	got, err := New(WithMaxLength(0)).Parse(strings.Repeat("a ", DefaultMaxLength))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestParse_DefaultLimit(t *testing.T) {
	_, err := Parse(strings.Repeat("x", DefaultMaxLength+1))
	assert.True(t, IsSyntaxError(err))

	_, err = Parse(strings.Repeat("x", DefaultMaxLength))
	assert.NoError(t, err)
}

func TestIsSyntaxError_Other(t *testing.T) {
	assert.False(t, IsSyntaxError(assert.AnError))
	_, ok := AsSyntaxError(nil)
	assert.False(t, ok)
}

// Many stray quotes and unclosed spans must not make parsing quadratic.
// The test is a smoke check that such input parses at all.
func TestParse_PathologicalInput(t *testing.T) {
	var b strings.Builder
	for b.Len() < DefaultMaxLength-16 {
		b.WriteString(`"a k:[ k:{ `)
	}
	got, err := Parse(b.String())
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
