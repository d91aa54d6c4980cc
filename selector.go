// selector.go — selector contexts for nested rulesets
//
// The core only needs enough selector machinery to combine a nested
// ruleset's selector with its parent: descendant combination by default,
// `&` substitution when present, and comma lists crossed pairwise. Full
// selector grammar (attribute matchers, pseudo classes, extension) lives
// outside this compiler's scope and is carried through verbatim.

package grass

import "strings"

// Selector is a rendered selector context. The zero value is the top level.
type Selector struct {
	s string
}

// NewSelector normalizes raw selector text: internal whitespace collapses to
// single spaces, comma lists re-join as ", ".
func NewSelector(text string) Selector {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			out = append(out, p)
		}
	}
	return Selector{s: strings.Join(out, ", ")}
}

func (s Selector) String() string { return s.s }
func (s Selector) IsEmpty() bool  { return s.s == "" }

// Zip combines a child selector written inside this one: each parent/child
// pair either substitutes `&` or joins as a descendant.
func (s Selector) Zip(child Selector) Selector {
	if s.IsEmpty() {
		return child
	}
	if child.IsEmpty() {
		return s
	}
	parents := strings.Split(s.s, ", ")
	children := strings.Split(child.s, ", ")
	out := make([]string, 0, len(parents)*len(children))
	for _, c := range children {
		for _, p := range parents {
			if strings.Contains(c, "&") {
				out = append(out, strings.ReplaceAll(c, "&", p))
			} else {
				out = append(out, p+" "+c)
			}
		}
	}
	return Selector{s: strings.Join(out, ", ")}
}
