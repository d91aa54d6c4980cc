// output.go — CSS rendering of the flattened rule list

package grass

import (
	"fmt"
	"strings"
)

// render prints rules in document order. Rules that emitted no declarations
// are dropped, and a blank line separates the remaining rules.
func render(rules []*Rule) string {
	var b strings.Builder
	first := true
	for _, r := range rules {
		if len(r.Styles) == 0 {
			continue
		}
		if !first {
			b.WriteString("\n")
		}
		first = false
		fmt.Fprintf(&b, "%s {\n", r.Selector)
		for _, s := range r.Styles {
			fmt.Fprintf(&b, "  %s: %s;\n", s.Property, s.Value)
		}
		b.WriteString("}\n")
	}
	return b.String()
}
