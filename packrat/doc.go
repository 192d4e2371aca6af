/*
Package packrat implements a memoizing recursive-descent interpreter for
parser combinators.

The packrat back-end needs no compilation step and supports every
combinator, including those which are not context-free (lookahead,
difference, length-value). Results are memoized per parser and input
position, which makes parsing linear in the size of the input for most
grammars.

Left recursion is supported with the seed-growing technique of Warth,
Douglass & Millstein, "Packrat Parsers Can Support Left Recursion" (2008).

Other than the LR back-ends, a packrat parse succeeds if a prefix of the
input matches; use parser.End() to require the complete input.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package packrat

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'combo.packrat'.
func tracer() tracing.Trace {
	return tracing.Select("combo.packrat")
}
