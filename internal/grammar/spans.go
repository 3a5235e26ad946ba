package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/roach88/portalsearch/internal/ast"
)

// boundsSpan is the inside of a [from to to] span.
type boundsSpan struct {
	From string `parser:"@Bound 'to'"`
	To   string `parser:"@Bound"`
}

// elementsSpan is the inside of a {a,b,c} span.
type elementsSpan struct {
	Values []string `parser:"@(Quoted | Word) ( ',' @(Quoted | Word) )*"`
}

var (
	boundsLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[\s\p{Zs}]+`},
		{Name: "Bound", Pattern: `[^\s\p{Zs}\[\]]+`},
	})

	boundsParser = participle.MustBuild[boundsSpan](
		participle.Lexer(boundsLexer),
		participle.Elide("Whitespace"),
	)

	elementsLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Quoted", Pattern: ast.QuotedPattern},
		{Name: "Comma", Pattern: `,`},
		{Name: "Whitespace", Pattern: `[\s\p{Zs}]+`},
		{Name: "Word", Pattern: `[^\s\p{Zs}:,{}"']+`},
	})

	elementsParser = participle.MustBuild[elementsSpan](
		participle.Lexer(elementsLexer),
		participle.Map(unquoteToken, "Quoted"),
		participle.Elide("Whitespace"),
	)
)

func unquoteToken(tok lexer.Token) (lexer.Token, error) {
	tok.Value = ast.Unquote(tok.Value)
	return tok, nil
}

// parseBounds parses "from to to". The separator is a lowercase "to".
func parseBounds(inner string) (from, to string, ok bool) {
	span, err := boundsParser.ParseString("", inner)
	if err != nil {
		return "", "", false
	}
	return span.From, span.To, true
}

// parseElements parses a comma-separated list of words and quoted strings.
func parseElements(inner string) ([]string, bool) {
	span, err := elementsParser.ParseString("", inner)
	if err != nil {
		return nil, false
	}
	return span.Values, true
}
