/*
Package ebnf creates combinator parsers from grammars written in Go-style
EBNF, as read by golang.org/x/exp/ebnf.

	Production  = name "=" [ Expression ] "." .
	Expression  = Alternative { "|" Alternative } .
	Alternative = Term { Term } .
	Term        = name | token [ "…" token ] | Group | Option | Repetition .

Every production becomes an Indirect parser, bound after all productions
have been translated. Productions may therefore refer to each other
recursively, including left recursion. Tokens of length 1 become Ch parsers,
longer ones Token parsers; ranges become ChRange parsers. There is no
implicit handling of white space.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ebnf

import (
	"fmt"
	"io"
	"sort"

	"github.com/npillmayer/combo/parser"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/ebnf"
)

// tracer traces with key 'combo.ebnf'.
func tracer() tracing.Trace {
	return tracing.Select("combo.ebnf")
}

// Compile reads an EBNF grammar and returns the parser for production start.
// name is used for error positions.
func Compile(name string, src io.Reader, start string) (*parser.Parser, error) {
	g, err := ebnf.Parse(name, src)
	if err != nil {
		return nil, err
	}
	if err = ebnf.Verify(g, start); err != nil {
		return nil, err
	}
	parsers, err := Translate(g)
	if err != nil {
		return nil, err
	}
	return parsers[start], nil
}

// Translate creates a parser for every production of a grammar. Parsers are
// named after their productions.
func Translate(g ebnf.Grammar) (map[string]*parser.Parser, error) {
	t := translator{g: g, prods: make(map[string]*parser.Parser, len(g))}
	for name := range g {
		t.prods[name] = parser.Indirect().Named(name)
	}
	for _, name := range Productions(g) {
		body, err := t.expr(g[name].Expr)
		if err != nil {
			return nil, fmt.Errorf("production %s: %w", name, err)
		}
		parser.BindIndirect(t.prods[name], body)
		tracer().Debugf("production %s = %v", name, body)
	}
	return t.prods, nil
}

type translator struct {
	g     ebnf.Grammar
	prods map[string]*parser.Parser
}

func (t *translator) expr(e ebnf.Expression) (*parser.Parser, error) {
	switch x := e.(type) {
	case nil:
		return parser.Epsilon(), nil
	case ebnf.Alternative:
		ps, err := t.list(x)
		if err != nil {
			return nil, err
		}
		return parser.Choice(ps...), nil
	case ebnf.Sequence:
		ps, err := t.list(x)
		if err != nil {
			return nil, err
		}
		return parser.Sequence(ps...), nil
	case *ebnf.Name:
		p, ok := t.prods[x.String]
		if !ok {
			return nil, fmt.Errorf("%s: undefined production %s", x.Pos(), x.String)
		}
		return p, nil
	case *ebnf.Token:
		if len(x.String) == 1 {
			return parser.Ch(x.String[0]), nil
		}
		return parser.Token(x.String), nil
	case *ebnf.Range:
		if len(x.Begin.String) != 1 || len(x.End.String) != 1 {
			return nil, fmt.Errorf("%s: range bounds must be single bytes", x.Pos())
		}
		return parser.ChRange(x.Begin.String[0], x.End.String[0]), nil
	case *ebnf.Group:
		return t.expr(x.Body)
	case *ebnf.Option:
		p, err := t.expr(x.Body)
		if err != nil {
			return nil, err
		}
		return parser.Optional(p), nil
	case *ebnf.Repetition:
		p, err := t.expr(x.Body)
		if err != nil {
			return nil, err
		}
		return parser.Many(p), nil
	}
	return nil, fmt.Errorf("%s: unsupported expression %T", e.Pos(), e)
}

func (t *translator) list(es []ebnf.Expression) ([]*parser.Parser, error) {
	ps := make([]*parser.Parser, len(es))
	for i, e := range es {
		p, err := t.expr(e)
		if err != nil {
			return nil, err
		}
		ps[i] = p
	}
	return ps, nil
}

// Productions returns the names of a grammar's productions, sorted.
func Productions(g ebnf.Grammar) []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
