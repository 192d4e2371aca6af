/*
Package lalr provides a deterministic LR parser, running on tables created
by package lr. Tables must be free of conflicts: LR(0) tables without
inadequate states, or tables which have been upgraded to LALR(1).

The parser consumes input byte by byte. Input may be supplied at once, or
chunk by chunk with a parse session; the session suspends whenever a chunk
is exhausted and resumes with the next one.

Usage

	g, _ := cfg.FromParser(p)
	dfa := lr.BuildCFSM(g)
	table := lr.BuildLR0Table(dfa)
	lr.UpgradeLALR(dfa, table)
	parser, err := lalr.NewParser(table)
	...
	result := parser.Parse([]byte("input"))

Parsing in chunks:

	s := parser.Start()
	for _, chunk := range chunks {
		if s.Chunk(chunk) {
			break   // no more input needed
		}
	}
	result := s.Finish()

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lalr

import (
	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'combo.lr'.
func tracer() tracing.Trace {
	return tracing.Select("combo.lr")
}

// Parser is a deterministic LR parser. Create one with lalr.NewParser(...).
// A parser may be used for any number of parses, also concurrently.
type Parser struct {
	table *lr.Table
}

// NewParser creates a parser for a table. The table must be adequate.
func NewParser(table *lr.Table) (*Parser, error) {
	if !table.IsAdequate() {
		return nil, &combo.CompileError{
			Backend: "lalr",
			Reason:  combo.ErrConflicts,
			States:  table.Inadequate(),
		}
	}
	return &Parser{table: table}, nil
}

// Parse runs the parser on a complete input. It returns nil if the input is
// not accepted.
func (p *Parser) Parse(input []byte) *combo.ParseResult {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	e := lr.NewEngine(p.table, combo.NewInputStream(input))
	run(e)
	return e.Result()
}

// run steps an engine until it stops or needs more input.
func run(e *lr.Engine) {
	for e.Running() {
		a := e.Action()
		if e.Suspended() {
			return
		}
		tracer().Debugf("state %d: action %s", e.State, a)
		e.Step(a)
	}
}

// Session is a parse in progress over input supplied in chunks.
type Session struct {
	engine *lr.Engine
}

// Start begins a parse session.
func (p *Parser) Start() *Session {
	return &Session{engine: lr.NewEngine(p.table, combo.NewChunkStream(nil, false))}
}

// Chunk continues the parse with the next chunk of input. It returns true
// if the parse is done, i.e. no more input is needed.
func (s *Session) Chunk(chunk []byte) bool {
	if !s.engine.Running() {
		return true
	}
	s.engine.Feed(chunk, false)
	run(s.engine)
	return !s.engine.Running()
}

// Finish marks the end of input and returns the result, or nil if the input
// has not been accepted.
func (s *Session) Finish() *combo.ParseResult {
	if s.engine.Running() {
		s.engine.Feed(nil, true)
		run(s.engine)
	}
	return s.engine.Result()
}
