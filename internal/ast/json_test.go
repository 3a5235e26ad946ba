package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMarshalJSON(t *testing.T) {
	list := List{
		NewMatch("avocado"),
		NewTerm("tag", ""),
		NewMultiTerm("tag", "a", "b"),
		NewRange("createdDate", Gte, "2020"),
		NewCompoundRange("updatedDate", "1", "2"),
	}

	data, err := json.Marshal(list)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"match","value":"avocado"},
		{"type":"term","key":"tag","value":""},
		{"type":"multi_term","key":"tag","values":["a","b"]},
		{"type":"range","key":"createdDate","operation":"gte","value":"2020"},
		{"type":"compound_range","key":"updatedDate","from":"1","to":"2"}
	]`, string(data))

	var decoded List
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, EqualLists(list, decoded))
}

func TestListMarshalJSON_EmptyMultiTerm(t *testing.T) {
	data, err := json.Marshal(List{MultiTerm{Field: "tag"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"multi_term","key":"tag","values":[]}]`, string(data))
}

func TestListMarshalJSON_NilClause(t *testing.T) {
	_, err := json.Marshal(List{nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clause[0]")
}

func TestListUnmarshalJSON_Errors(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"unknown type":   {`[{"type":"bool"}]`, "unknown clause type"},
		"missing value":  {`[{"type":"match"}]`, "value is required"},
		"missing key":    {`[{"type":"term","value":"x"}]`, "key is required"},
		"missing values": {`[{"type":"multi_term","key":"tag"}]`, "values is required"},
		"missing op":     {`[{"type":"range","key":"d","value":"1"}]`, "operation is required"},
		"missing to":     {`[{"type":"compound_range","key":"d","from":"1"}]`, "to is required"},
		"not an array":   {`{"type":"match"}`, "cannot unmarshal"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var l List
			err := json.Unmarshal([]byte(tc.input), &l)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
