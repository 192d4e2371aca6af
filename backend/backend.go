/*
Package backend compiles combinator parsers for one of several parsing
engines and runs them.

Available back-ends are

	Packrat   memoizing recursive descent with left recursion support
	LR0       LR(0) tables, for grammars without inadequate states
	LALR      LR(0) tables upgraded with LALR(1) lookahead
	GLR       LALR tables, with conflicts resolved at parse time

Packrat accepts every combinator. The LR family needs a context-free
combinator and reports a *combo.CompileError otherwise.

Usage

	c, err := backend.Compile(p, backend.LALR, nil)
	if err != nil {
		c, err = backend.Compile(p, backend.GLR, nil)
	}
	result := c.Parse(input)

Engine parameters are taken from the global configuration (package gconf),
unless given explicitly.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package backend

import (
	"fmt"
	"strings"

	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/cfg"
	"github.com/npillmayer/combo/lr"
	"github.com/npillmayer/combo/lr/glr"
	"github.com/npillmayer/combo/lr/lalr"
	"github.com/npillmayer/combo/packrat"
	"github.com/npillmayer/combo/parser"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'combo.backend'.
func tracer() tracing.Trace {
	return tracing.Select("combo.backend")
}

// Backend selects a parsing engine.
type Backend int

// Parsing engines
const (
	Packrat Backend = iota
	LR0
	LALR
	GLR
)

var backendNames = [...]string{"packrat", "lr0", "lalr", "glr"}

func (b Backend) String() string {
	if b < Packrat || b > GLR {
		return fmt.Sprintf("backend(%d)", int(b))
	}
	return backendNames[b]
}

// BackendFromString finds a back-end by name, ignoring case.
func BackendFromString(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range backendNames {
		if n == name {
			return Backend(i), nil
		}
	}
	return Packrat, fmt.Errorf("unknown backend %q", name)
}

// Params are the tunable parameters of the engines.
type Params struct {
	MaxEngines             int  // GLR: live engines per input position, 0 = unbounded
	MaxSteps               int  // GLR: steps without consuming input, 0 = default
	KeepLR0                bool // LALR/GLR: do not upgrade the LR(0) table
	PanicOnProgrammerError bool // let engine invariant violations panic
}

// ParamsFromConfig reads parameters from the global configuration.
func ParamsFromConfig() *Params {
	return &Params{
		MaxEngines:             gconf.GetInt("glr-max-engines"),
		MaxSteps:               gconf.GetInt("glr-max-steps"),
		KeepLR0:                gconf.GetBool("lalr-keep-lr0"),
		PanicOnProgrammerError: gconf.GetBool("panic-on-programmer-error"),
	}
}

// Compiled is a parser prepared for a back-end.
type Compiled struct {
	Backend Backend
	root    *parser.Parser
	params  Params
	grammar *cfg.Grammar
	dfa     *lr.CFSM
	table   *lr.Table
	det     *lalr.Parser
	gen     *glr.Parser
}

// Compile prepares p for a back-end. If params is nil, parameters are read
// from the global configuration.
func Compile(p *parser.Parser, b Backend, params *Params) (*Compiled, error) {
	if params == nil {
		params = ParamsFromConfig()
	}
	c := &Compiled{Backend: b, root: p, params: *params}
	var unbound bool
	parser.Walk(p, func(q *parser.Parser) bool {
		unbound = !q.Bound()
		return !unbound
	})
	if unbound {
		return nil, &combo.CompileError{Backend: b.String(), Reason: combo.ErrUnboundIndirect}
	}
	if b == Packrat {
		return c, nil
	}
	if b > GLR || b < Packrat {
		return nil, fmt.Errorf("cannot compile for %s", b)
	}
	g, err := cfg.FromParser(p)
	if err != nil {
		return nil, &combo.CompileError{Backend: b.String(), Reason: err}
	}
	c.grammar = g
	c.dfa = lr.BuildCFSM(g)
	c.table = lr.BuildLR0Table(c.dfa)
	if b != LR0 && !params.KeepLR0 {
		lr.UpgradeLALR(c.dfa, c.table)
	}
	tracer().Infof("%s: %d rules, %d states, %d inadequate", b, len(c.table.Rules()),
		c.dfa.Size(), len(c.table.Inadequate()))
	switch b {
	case LR0, LALR:
		if c.det, err = lalr.NewParser(c.table); err != nil {
			if ce, ok := err.(*combo.CompileError); ok {
				ce.Backend = b.String()
			}
			return nil, err
		}
	case GLR:
		c.gen = glr.NewParser(c.table, glr.MaxEngines(params.MaxEngines), glr.MaxSteps(params.MaxSteps))
	}
	return c, nil
}

// Parse runs the compiled parser on an input. It returns nil if the input is
// not accepted.
func (c *Compiled) Parse(input []byte) (result *combo.ParseResult) {
	if !c.params.PanicOnProgrammerError {
		defer func() {
			if r := recover(); r != nil {
				tracer().Errorf("%s: %v", c.Backend, r)
				result = nil
			}
		}()
	}
	switch c.Backend {
	case Packrat:
		return packrat.Parse(c.root, input)
	case GLR:
		return c.gen.Parse(input)
	}
	return c.det.Parse(input)
}

// Start begins a parse with input given in chunks. Only the deterministic
// LR back-ends support this.
func (c *Compiled) Start() (*lalr.Session, error) {
	if c.det == nil {
		return nil, fmt.Errorf("%s: %w", c.Backend, combo.ErrNotStaged)
	}
	return c.det.Start(), nil
}

// Grammar returns the context-free grammar, or nil for Packrat.
func (c *Compiled) Grammar() *cfg.Grammar {
	return c.grammar
}

// CFSM returns the LR(0) automaton, or nil for Packrat.
func (c *Compiled) CFSM() *lr.CFSM {
	return c.dfa
}

// Table returns the LR table, or nil for Packrat.
func (c *Compiled) Table() *lr.Table {
	return c.table
}
