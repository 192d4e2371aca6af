package ebnf

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Print writes a grammar in EBNF notation, productions sorted by name.
func Print(w io.Writer, g ebnf.Grammar) {
	for _, name := range Productions(g) {
		fmt.Fprintf(w, "%s = ", name)
		printExpression(w, g[name].Expr)
		fmt.Fprintln(w, " .")
	}
}

// ExpressionString formats a single expression.
func ExpressionString(e ebnf.Expression) string {
	var b strings.Builder
	printExpression(&b, e)
	return b.String()
}

func printExpression(w io.Writer, e ebnf.Expression) {
	switch x := e.(type) {
	case ebnf.Sequence:
		for i, v := range x {
			if i != 0 {
				fmt.Fprint(w, " ")
			}
			printExpression(w, v)
		}
	case ebnf.Alternative:
		for i, v := range x {
			if i != 0 {
				fmt.Fprint(w, " | ")
			}
			printExpression(w, v)
		}
	case *ebnf.Name:
		fmt.Fprint(w, x.String)
	case *ebnf.Token:
		fmt.Fprintf(w, "%q", x.String)
	case *ebnf.Range:
		printExpression(w, x.Begin)
		fmt.Fprint(w, " … ")
		printExpression(w, x.End)
	case *ebnf.Group:
		fmt.Fprint(w, "( ")
		printExpression(w, x.Body)
		fmt.Fprint(w, " )")
	case *ebnf.Option:
		fmt.Fprint(w, "[ ")
		printExpression(w, x.Body)
		fmt.Fprint(w, " ]")
	case *ebnf.Repetition:
		fmt.Fprint(w, "{ ")
		printExpression(w, x.Body)
		fmt.Fprint(w, " }")
	}
}
