/*
Package combo is a parser-combinator toolbox with interchangeable parsing
back-ends.

Parsers are composed from small combinators (package parser) and may then be
run by a memoizing packrat interpreter, or compiled into a context-free grammar
and from there into LR(0), LALR(1) or GLR tables. Package structure is as follows:

■ parser: Package parser defines combinators to build grammars as values.

■ cfg: Package cfg desugars combinators into context-free grammars and offers
nullable/FIRST/FOLLOW analysis.

■ packrat: Package packrat runs combinators directly, with support for left
recursion.

■ lr: Package lr constructs item sets, the characteristic automaton and LR
tables, including the LALR upgrade. Sub-packages lalr and glr drive them.

■ backend: Package backend is the facade to select, compile and run a back-end.

■ ebnf: Package ebnf reads grammars in EBNF notation and creates combinators.

■ scanner: Package scanner wraps lexmachine; the command line tool (cmd/combo)
uses it for REPL commands.

The base package contains data types which are used throughout all the other
packages: parsed tokens, parse results, the bit-level input stream and the
canonical serialization of results.

Usage

	p := parser.Sequence(parser.Ch('a'), parser.Many(parser.Ch('b')))
	c, err := backend.Compile(p, backend.LALR, nil)
	...
	r := c.Parse([]byte("abbb"))
	fmt.Println(combo.Unamb(r.AST))   // (u0x61 (u0x62 u0x62 u0x62))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package combo

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'combo'.
func tracer() tracing.Trace {
	return tracing.Select("combo")
}
