package compile

import "github.com/roach88/portalsearch/internal/querytree"

// Fragment is the contribution of one clause to the top-level bool query.
type Fragment struct {
	Filter []querytree.Node
	Should []querytree.Node
}

// Empty reports whether f contributes nothing.
func (f Fragment) Empty() bool {
	return len(f.Filter) == 0 && len(f.Should) == 0
}

// Merge returns f followed by o: filters concatenate, shoulds concatenate.
// Neither input is modified.
func (f Fragment) Merge(o Fragment) Fragment {
	return Fragment{
		Filter: concat(f.Filter, o.Filter),
		Should: concat(f.Should, o.Should),
	}
}

// Bool wraps the fragment as a top-level bool query. minimum_should_match
// is 1 exactly when there is at least one should clause.
func (f Fragment) Bool() querytree.Bool {
	b := querytree.Bool{Filter: f.Filter, Should: f.Should}
	if len(f.Should) > 0 {
		b.MinimumShouldMatch = 1
	}
	return b
}

func filter(n querytree.Node) Fragment { return Fragment{Filter: []querytree.Node{n}} }
func should(n querytree.Node) Fragment { return Fragment{Should: []querytree.Node{n}} }

func concat(a, b []querytree.Node) []querytree.Node {
	if len(b) == 0 {
		return a
	}
	out := make([]querytree.Node, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
