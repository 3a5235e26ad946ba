package querytree

// Node is a query-tree node. Only the types in this package implement it.
type Node interface {
	// Value lowers the node to its wire shape.
	Value() Object

	node() // sealed
}

// multi_match types.
const (
	TypeBestFields   = "best_fields"
	TypePhrase       = "phrase"
	TypePhrasePrefix = "phrase_prefix"
)

// FuzzinessAuto lets the engine pick an edit distance from the term length.
const FuzzinessAuto = "AUTO"

// Bool combines filter (must match, unscored) and should (scored) clauses.
// Empty lists and a zero MinimumShouldMatch are omitted from the wire shape.
type Bool struct {
	Filter             []Node
	Should             []Node
	MinimumShouldMatch int
}

// Term is an exact match on a keyword field.
type Term struct {
	Field string
	Text  string
}

// Terms matches any of Values on a keyword field.
type Terms struct {
	Field  string
	Values []string
}

// Bound is one side of a Range.
type Bound struct {
	Op    string // gt, gte, lt, lte
	Value string
}

// Range bounds a field. Bounds keep their order; a repeated Op overwrites.
type Range struct {
	Field  string
	Bounds []Bound
}

// MultiMatch is a full-text query over several fields. Fuzziness and
// Analyzer are omitted when empty.
type MultiMatch struct {
	Query     string
	Fields    []string
	Type      string
	Fuzziness string
	Analyzer  string
}

func (Bool) node()       {}
func (Term) node()       {}
func (Terms) node()      {}
func (Range) node()      {}
func (MultiMatch) node() {}

func nodeArray(nodes []Node) Array {
	arr := make(Array, len(nodes))
	for i, n := range nodes {
		arr[i] = n.Value()
	}
	return arr
}

// Value implements Node.
func (b Bool) Value() Object {
	inner := Object{}
	if len(b.Filter) > 0 {
		inner["filter"] = nodeArray(b.Filter)
	}
	if len(b.Should) > 0 {
		inner["should"] = nodeArray(b.Should)
	}
	if b.MinimumShouldMatch > 0 {
		inner["minimum_should_match"] = Int(b.MinimumShouldMatch)
	}
	return Object{"bool": inner}
}

// Value implements Node.
func (t Term) Value() Object {
	return Object{"term": Object{t.Field: Object{"value": String(t.Text)}}}
}

// Value implements Node.
func (t Terms) Value() Object {
	return Object{"terms": Object{t.Field: Strings(t.Values...)}}
}

// Value implements Node.
func (r Range) Value() Object {
	bounds := Object{}
	for _, b := range r.Bounds {
		bounds[b.Op] = String(b.Value)
	}
	return Object{"range": Object{r.Field: bounds}}
}

// Value implements Node.
func (m MultiMatch) Value() Object {
	inner := Object{
		"query":  String(m.Query),
		"fields": Strings(m.Fields...),
		"type":   String(m.Type),
	}
	if m.Fuzziness != "" {
		inner["fuzziness"] = String(m.Fuzziness)
	}
	if m.Analyzer != "" {
		inner["analyzer"] = String(m.Analyzer)
	}
	return Object{"multi_match": inner}
}

// Encode returns the canonical JSON encoding of n.
func Encode(n Node) ([]byte, error) {
	return MarshalCanonical(n.Value())
}

// MustEncode is like Encode but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustEncode(n Node) []byte {
	data, err := Encode(n)
	if err != nil {
		panic(err)
	}
	return data
}
