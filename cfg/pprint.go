package cfg

import (
	"fmt"
	"io"
	"strings"
)

// SymbolName returns a printable name for a symbol. Non-terminals without a
// tag are named by their number in base 26: A, B, …, Z, AA, AB, …
func (g *Grammar) SymbolName(s *Symbol) string {
	switch s.Kind {
	case CharSym:
		return TokenString(int(s.Char))
	case EndSym:
		return "$"
	case CharSetSym:
		return s.Set.String()
	}
	if s.Tag != "" {
		return s.Tag
	}
	n, ok := g.ordinals[s]
	if !ok {
		return fmt.Sprintf("<%p>", s)
	}
	return ordinalName(n)
}

func ordinalName(n int) string {
	var b []byte
	for n++; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// SequenceString prints the right hand side of a production.
func (g *Grammar) SequenceString(items []*Symbol) string {
	if len(items) == 0 {
		return `""`
	}
	names := make([]string, len(items))
	for i, s := range items {
		names[i] = g.SymbolName(s)
	}
	return strings.Join(names, " ")
}

// Print writes the productions of g, one non-terminal per block:
//
//    A -> 'a' B
//    B -> 'b' B
//       | ""
func (g *Grammar) Print(w io.Writer) {
	for _, A := range g.nts {
		name := g.SymbolName(A)
		indent := strings.Repeat(" ", len(name))
		if len(A.Alts) == 0 {
			fmt.Fprintf(w, "%s -> <nothing>\n", name)
			continue
		}
		for i, alt := range A.Alts {
			if i == 0 {
				fmt.Fprintf(w, "%s -> %s\n", name, g.SequenceString(alt.Items))
			} else {
				fmt.Fprintf(w, "%s  | %s\n", indent, g.SequenceString(alt.Items))
			}
		}
	}
}

// String returns the printed grammar.
func (g *Grammar) String() string {
	var b strings.Builder
	g.Print(&b)
	return b.String()
}

// PrintSets writes nullable flags, FIRST and FOLLOW sets of all non-terminals.
func (g *Grammar) PrintSets(w io.Writer) {
	for _, A := range g.nts {
		nullable := ""
		if g.Nullable(A) {
			nullable = " (nullable)"
		}
		fmt.Fprintf(w, "%s%s\n", g.SymbolName(A), nullable)
		fmt.Fprintf(w, "   FIRST  %s\n", g.First(A))
		fmt.Fprintf(w, "   FOLLOW %s\n", g.Follow(A))
	}
}
