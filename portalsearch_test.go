package portalsearch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	eng, err := New(opts...)
	require.NoError(t, err)
	return eng
}

func TestEngineDefaults(t *testing.T) {
	eng := newEngine(t)
	assert.Equal(t, Portal, eng.Profile())

	clauses, err := eng.Parse("hotel deals #travel")
	require.NoError(t, err)
	assert.Equal(t, []Clause{NewMatch("hotel deals"), NewTerm("tag", "travel")}, clauses)
	assert.Equal(t, "hotel deals #travel", eng.Serialize(clauses))
}

func TestEngineProfileOverridesConfig(t *testing.T) {
	eng := newEngine(t, WithConfig(&Config{Profile: "portal"}), WithProfile(Insights))
	assert.Equal(t, Insights, eng.Profile())

	clauses, err := eng.Parse("hotel deals")
	require.NoError(t, err)
	assert.Len(t, clauses, 2)

	q, err := eng.Compile(clauses)
	require.NoError(t, err)
	assert.Len(t, q.Should, 2)
}

func TestEngineConfig(t *testing.T) {
	eng := newEngine(t, WithConfig(&Config{
		Profile:      "insights",
		Fields:       map[string][]string{"region": {"metadata.region.keyword"}},
		SearchFields: []string{"title"},
	}))

	q, err := eng.ParseAndCompile("region:emea hotel")
	require.NoError(t, err)
	body, err := Encode(q)
	require.NoError(t, err)
	assert.Equal(t,
		`{"bool":{"filter":[{"term":{"metadata.region.keyword":{"value":"emea"}}}],"minimum_should_match":1,"should":[{"multi_match":{"fields":["title"],"query":"hotel","type":"best_fields"}}]}}`,
		string(body))
}

func TestEngineBadConfigProfile(t *testing.T) {
	_, err := New(WithConfig(&Config{Profile: "archive"}))
	require.Error(t, err)
}

func TestEngineMaxLength(t *testing.T) {
	eng := newEngine(t, WithConfig(&Config{MaxQueryLength: 100}), WithMaxLength(4))

	_, err := eng.Parse("hotels")
	require.Error(t, err)
	assert.True(t, IsSyntaxError(err))

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "too_long", se.Code)

	_, err = newEngine(t, WithMaxLength(0)).Parse(strings.Repeat("a", 10000))
	require.NoError(t, err)
}

func TestParseAndCompileSyntaxError(t *testing.T) {
	_, err := newEngine(t).ParseAndCompile("user:jdoe:extra")
	require.Error(t, err)
	assert.True(t, IsSyntaxError(err))
}

func TestFingerprintIgnoresSpelling(t *testing.T) {
	eng := newEngine(t)

	a, err := eng.Parse("hotel @jdoe")
	require.NoError(t, err)
	b, err := eng.Parse("hotel   author:jdoe")
	require.NoError(t, err)
	c, err := eng.Parse("hotels @jdoe")
	require.NoError(t, err)

	fa, err := eng.Fingerprint(a)
	require.NoError(t, err)
	fb, err := eng.Fingerprint(b)
	require.NoError(t, err)
	fc, err := eng.Fingerprint(c)
	require.NoError(t, err)

	assert.Equal(t, fa, fb)
	assert.NotEqual(t, fa, fc)
}

func TestFilterChipFlow(t *testing.T) {
	eng := newEngine(t)
	clauses, err := eng.Parse("hotel tag:travel team:search")
	require.NoError(t, err)

	tag, ok := Find(clauses, "tag")
	require.True(t, ok)
	assert.Equal(t, NewTerm("tag", "travel"), tag)

	_, ok = Find(clauses, "author")
	assert.False(t, ok)

	replaced := Replace(clauses, NewMultiTerm("tag", "travel", "food"))
	assert.Equal(t, "hotel tag:{travel,food} team:search", eng.Serialize(replaced))
	assert.Equal(t, "hotel #travel team:search", eng.Serialize(clauses), "input must not change")

	added := Replace(clauses, NewRange("createdDate", Gte, "2024"))
	assert.Equal(t, "hotel #travel team:search createdDate:>=2024", eng.Serialize(added))

	removed := Remove(clauses, NewTerm("team", "search"))
	assert.Equal(t, "hotel #travel", eng.Serialize(removed))
}

func TestEngineValidate(t *testing.T) {
	eng := newEngine(t)

	assert.True(t, eng.Validate([]Clause{NewMatch("hotel"), NewTerm("tag", "x")}).RoundTrips)

	res := eng.Validate([]Clause{NewMatch("hotel"), NewMatch("deals")})
	assert.False(t, res.RoundTrips)
	assert.NotEmpty(t, res.Warnings)
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile("INSIGHTS")
	require.NoError(t, err)
	assert.Equal(t, Insights, p)

	_, err = ParseProfile("archive")
	require.Error(t, err)
}

func TestEngineConcurrentUse(t *testing.T) {
	eng := newEngine(t)
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				q, err := eng.ParseAndCompile("hotel #travel createdDate:[2020 to 2021]")
				assert.NoError(t, err)
				assert.Len(t, q.Filter, 2)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
