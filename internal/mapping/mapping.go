// Package mapping translates logical filter keys and comparison operators
// into search-engine field paths and range operators.
//
// Keys without an entry pass through unchanged, so a query can filter on any
// backing field by writing its full path as the key.
package mapping

import (
	"maps"
	"slices"

	"github.com/roach88/portalsearch/internal/ast"
)

// Backing field paths for the logical keys.
const (
	FieldTags                = "tags.keyword"
	FieldContributorUserName = "contributors.userName.keyword"
	FieldContributorDisplay  = "contributors.displayName.keyword"
	FieldUserName            = "user.userName.keyword"
	FieldTargetUserName      = "details.userName.keyword"
	FieldTeam                = "metadata.team.keyword"
	FieldCreatedAt           = "createdAt"
	FieldUpdatedAt           = "updatedAt"
	FieldPublishedDate       = "metadata.publishedDate"
	FieldItemType            = "itemType"
	FieldInsightName         = "details.insightName.keyword"
)

var defaultFields = map[string][]string{
	ast.KeyTag:      {FieldTags},
	ast.KeyAuthor:   {FieldContributorUserName, FieldContributorDisplay},
	"user":          {FieldUserName},
	"targetUser":    {FieldTargetUserName},
	"team":          {FieldTeam},
	"createdDate":   {FieldCreatedAt},
	"updatedDate":   {FieldUpdatedAt},
	"publishedDate": {FieldPublishedDate},
	"itemType":      {FieldItemType},
	"insight":       {FieldInsightName},
}

// Table maps logical keys to one or more backing fields.
// A Table is immutable once built and safe for concurrent use.
type Table struct {
	fields map[string][]string
}

var defaultTable = &Table{fields: defaultFields}

// Default returns the built-in field table.
func Default() *Table {
	return defaultTable
}

// WithFields returns a copy of t with the given keys added or replaced.
// Entries with no fields are ignored.
func (t *Table) WithFields(overrides map[string][]string) *Table {
	fields := maps.Clone(t.fields)
	for key, paths := range overrides {
		if len(paths) == 0 {
			continue
		}
		fields[key] = slices.Clone(paths)
	}
	return &Table{fields: fields}
}

// Fields returns every backing field for key. Unknown keys map to themselves.
// The returned slice must not be modified.
func (t *Table) Fields(key string) []string {
	if paths, ok := t.fields[key]; ok {
		return paths
	}
	return []string{key}
}

// Field returns the primary backing field for key.
func (t *Table) Field(key string) string {
	return t.Fields(key)[0]
}

// Keys returns the logical keys with an explicit mapping, sorted.
func (t *Table) Keys() []string {
	return slices.Sorted(maps.Keys(t.fields))
}

var operators = map[string]ast.Operator{
	">":  ast.Gt,
	">=": ast.Gte,
	"<":  ast.Lt,
	"<=": ast.Lte,
}

// Symbols lists the comparison symbols recognised in query text,
// longest first so that ">=" is tried before ">".
var Symbols = []string{">=", ">", "<=", "<"}

// Operator translates a comparison symbol into a range operator.
// Anything else, including operator names such as "gte", passes through.
func Operator(symbol string) ast.Operator {
	if op, ok := operators[symbol]; ok {
		return op
	}
	return ast.Operator(symbol)
}
