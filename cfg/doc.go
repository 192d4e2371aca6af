/*
Package cfg represents context-free grammars derived from parser combinators.

Desugaring translates a graph of parsers (package parser) into a graph of
grammar symbols. Terminals are single bytes, sets of bytes or the end of
input; every non-terminal is a choice between sequences of symbols. Semantic
information (actions, predicates, and the reshape hooks which recreate the
value the original combinator would have produced) is attached to the
choice symbols.

	p := parser.Sequence(parser.Ch('a'), parser.Many(parser.Ch('b')))
	g, err := cfg.FromParser(p)
	...
	g.Print(os.Stdout)

	A -> 'a' B
	B -> 'b' B
	   | ""

Grammars offer the usual static analysis: nullable, FIRST and FOLLOW
sets. Sets of terminals are represented as sets of ints, with bytes as
0…255 and EndToken for the end of input.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cfg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'combo.cfg'.
func tracer() tracing.Trace {
	return tracing.Select("combo.cfg")
}
