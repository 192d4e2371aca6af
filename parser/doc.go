/*
Package parser provides combinators to build parsers as values.

A parser is an immutable description of a language, composed from primitive
parsers (single characters, literal tokens, bit fields) and combinators
(sequence, choice, repetition, …). Parsers do not parse by themselves; a
back-end interprets them directly (package packrat) or compiles them into
tables (packages cfg and lr).

Recursive grammars are expressed with Indirect, a placeholder which is bound
to its definition after construction:

	expr := parser.Indirect()
	term := parser.Choice(parser.Sequence(parser.Ch('('), expr, parser.Ch(')')), parser.Ch('n'))
	parser.BindIndirect(expr, parser.Choice(parser.Sequence(expr, parser.Ch('-'), term), term))

Some combinators (And, Not, Butnot, Difference, Xor, LengthValue) cannot be
expressed as context-free grammars and are only supported by the packrat
back-end.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser
