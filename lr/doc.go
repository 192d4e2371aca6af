/*
Package lr constructs LR parse tables for grammars derived from parser
combinators.

Grammars (see package cfg) are turned into a characteristic finite state
machine (CFSM), i.e. the LR(0) automaton, and from there into an LR(0)
table. States with conflicts are called inadequate. The LALR upgrade
resolves as many inadequate states as possible by computing lookahead sets
from an enhanced grammar, whose symbols are annotated with the CFSM states
they span (DeRemer & Pennello).

Building Tables

    g, err := cfg.FromParser(p)         // desugar, with augmented start S' -> p $
    dfa := lr.BuildCFSM(g)              // LR(0) automaton
    table := lr.BuildLR0Table(dfa)      // LR(0) actions, with inadequate states marked
    lr.UpgradeLALR(dfa, table)          // resolve lookaheads
    if !table.IsAdequate() { ... }      // conflicts remain: use a GLR parser

Table entries are Shift (to a state, or to Success on accepting), Reduce (by
a production) or Conflict (a list of alternatives, for GLR parsing). A row
may hold a single reduce action which applies regardless of lookahead.

Running Tables

Type Engine implements the LR machine over a table: an explicit stack of
(state, value) frames, and a stack of pending symbols. Package lr/lalr drives
a single engine, package lr/glr drives many.

The CFSM may be exported to Graphviz's Dot-format, tables to HTML, and a
table's fingerprint identifies its contents.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'combo.lr'.
func tracer() tracing.Trace {
	return tracing.Select("combo.lr")
}
