package ast

import (
	"encoding/json"
	"fmt"
)

// List is a clause list with a JSON encoding suitable for UI round-tripping:
//
//	[{"type":"term","key":"tag","value":"hotels"},
//	 {"type":"range","key":"updatedDate","operation":"gte","value":"2020-01-01"}]
type List []Clause

type wireClause struct {
	Type      string    `json:"type"`
	Key       *string   `json:"key,omitempty"`
	Value     *string   `json:"value,omitempty"`
	Values    *[]string `json:"values,omitempty"`
	Operation *string   `json:"operation,omitempty"`
	From      *string   `json:"from,omitempty"`
	To        *string   `json:"to,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (l List) MarshalJSON() ([]byte, error) {
	out := make([]wireClause, 0, len(l))
	for i, c := range l {
		w, err := toWire(c)
		if err != nil {
			return nil, fmt.Errorf("clause[%d]: %w", i, err)
		}
		out = append(out, w)
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *List) UnmarshalJSON(data []byte) error {
	var raw []wireClause
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(List, 0, len(raw))
	for i, w := range raw {
		c, err := fromWire(w)
		if err != nil {
			return fmt.Errorf("clause[%d]: %w", i, err)
		}
		out = append(out, c)
	}
	*l = out
	return nil
}

func toWire(c Clause) (wireClause, error) {
	if c == nil {
		return wireClause{}, fmt.Errorf("nil clause")
	}
	w := wireClause{Type: c.Kind().String()}
	switch v := deref(c).(type) {
	case Match:
		w.Value = &v.Value
	case Phrase:
		w.Value = &v.Value
	case Term:
		w.Key, w.Value = &v.Field, &v.Value
	case MultiTerm:
		values := v.Values
		if values == nil {
			values = []string{}
		}
		w.Key, w.Values = &v.Field, &values
	case Range:
		op := string(v.Operation)
		w.Key, w.Operation, w.Value = &v.Field, &op, &v.Value
	case CompoundRange:
		w.Key, w.From, w.To = &v.Field, &v.From, &v.To
	default:
		return wireClause{}, fmt.Errorf("unsupported clause type %T", c)
	}
	return w, nil
}

func fromWire(w wireClause) (Clause, error) {
	kind, err := ParseKind(w.Type)
	if err != nil {
		return nil, err
	}

	need := func(name string, p *string) (string, error) {
		if p == nil {
			return "", fmt.Errorf("%s: %s is required", w.Type, name)
		}
		return *p, nil
	}

	switch kind {
	case KindMatch, KindPhrase:
		value, err := need("value", w.Value)
		if err != nil {
			return nil, err
		}
		if kind == KindMatch {
			return NewMatch(value), nil
		}
		return NewPhrase(value), nil

	case KindTerm:
		key, err := need("key", w.Key)
		if err != nil {
			return nil, err
		}
		value, err := need("value", w.Value)
		if err != nil {
			return nil, err
		}
		return NewTerm(key, value), nil

	case KindMultiTerm:
		key, err := need("key", w.Key)
		if err != nil {
			return nil, err
		}
		if w.Values == nil {
			return nil, fmt.Errorf("%s: values is required", w.Type)
		}
		return NewMultiTerm(key, *w.Values...), nil

	case KindRange:
		key, err := need("key", w.Key)
		if err != nil {
			return nil, err
		}
		op, err := need("operation", w.Operation)
		if err != nil {
			return nil, err
		}
		value, err := need("value", w.Value)
		if err != nil {
			return nil, err
		}
		return NewRange(key, Operator(op), value), nil

	case KindCompoundRange:
		key, err := need("key", w.Key)
		if err != nil {
			return nil, err
		}
		from, err := need("from", w.From)
		if err != nil {
			return nil, err
		}
		to, err := need("to", w.To)
		if err != nil {
			return nil, err
		}
		return NewCompoundRange(key, from, to), nil
	}
	return nil, fmt.Errorf("unsupported clause type %q", w.Type)
}
