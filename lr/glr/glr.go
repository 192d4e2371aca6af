/*
Package glr implements a generalized LR parser on top of the tables of
package lr.

GLR parsing handles tables with conflicts. Whenever the table offers more
than one action, the parser forks the LR engine and follows every branch.
Engines which reach the same state after reading the same token are merged,
and a merged engine is split up again (de-merged) when a reduction reaches
below the point of the merge. Stacks are persistent: engines share their
common frames, and frames are never modified after creation.

The parser returns the first derivation found. It does not construct a
shared packed parse forest.

Usage

	dfa := lr.BuildCFSM(g)
	table := lr.BuildLR0Table(dfa)
	lr.UpgradeLALR(dfa, table)
	parser := glr.NewParser(table, glr.MaxEngines(64))
	result := parser.Parse([]byte("d+d+d"))

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glr

import (
	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'combo.glr'.
func tracer() tracing.Trace {
	return tracing.Select("combo.glr")
}

// DefaultMaxSteps is the number of non-consuming steps an engine may perform
// between two terminals, if not configured otherwise.
const DefaultMaxSteps = 4096

// Parser is a GLR parser. Create one with glr.NewParser(...).
type Parser struct {
	table      *lr.Table
	maxEngines int // 0 = unbounded
	maxSteps   int
}

// Option configures a parser.
type Option func(*Parser)

// MaxEngines limits the number of engines kept alive per input position.
// Zero means no limit.
func MaxEngines(n int) Option {
	return func(p *Parser) {
		p.maxEngines = n
	}
}

// MaxSteps limits the number of reductions and non-terminal shifts an engine
// may perform without consuming input. This guards against cyclic unit
// derivations. Zero selects DefaultMaxSteps.
func MaxSteps(n int) Option {
	return func(p *Parser) {
		p.maxSteps = n
	}
}

// NewParser creates a GLR parser for an LR table. The table may contain
// conflicts.
func NewParser(table *lr.Table, opts ...Option) *Parser {
	p := &Parser{table: table}
	for _, opt := range opts {
		opt(p)
	}
	if p.maxSteps <= 0 {
		p.maxSteps = DefaultMaxSteps
	}
	return p
}

// Parse runs the parser on an input. It returns the result of the first
// engine to accept, or nil if every engine failed.
func (p *Parser) Parse(input []byte) *combo.ParseResult {
	current := []*lr.Engine{lr.NewEngine(p.table, combo.NewInputStream(input))}
	for len(current) > 0 {
		var next []*lr.Engine
		work := current
		for len(work) > 0 {
			e := work[len(work)-1]
			work = work[:len(work)-1]
			a := e.Action()
			if a == nil {
				tracer().Debugf("GLR: engine dies in state %d at bit %d", e.State, e.Position())
				continue
			}
			for _, f := range p.advance(e, a) {
				switch {
				case f.Accepted():
					tracer().Debugf("GLR: engine accepts at bit %d", f.Position())
					return f.Result()
				case !f.Running():
				case f.AwaitsToken():
					next = append(next, f)
				case f.Steps > p.maxSteps:
					tracer().Infof("GLR: engine in state %d exceeds %d steps", f.State, p.maxSteps)
				default:
					work = append(work, f)
				}
			}
		}
		current = p.merge(next)
	}
	return nil
}

// advance performs an action, forking the engine for conflicts and
// de-merging it for deep reductions. It returns the resulting engines.
func (p *Parser) advance(e *lr.Engine, a *lr.Action) []*lr.Engine {
	if a.Kind == lr.ConflictAction {
		tracer().Debugf("GLR: fork %d ways in state %d", len(a.Branches), e.State)
		var engines []*lr.Engine
		for _, b := range a.Branches {
			engines = append(engines, p.advance(e.Fork(), b)...)
		}
		return engines
	}
	if a.Kind != lr.ReduceAction {
		e.Step(a)
		return []*lr.Engine{e}
	}
	engines := e.Demerge(a.Length())
	if len(engines) > 1 {
		tracer().Debugf("GLR: de-merge into %d engines for %s", len(engines), a)
	}
	for _, d := range engines {
		d.Step(a)
	}
	return engines
}

// merge combines engines which are in the same state. All engines are at the
// same input position, waiting for the next token.
func (p *Parser) merge(engines []*lr.Engine) []*lr.Engine {
	byState := make(map[int]int, len(engines))
	var merged []*lr.Engine
	for _, e := range engines {
		i, ok := byState[e.State]
		if !ok {
			if p.maxEngines > 0 && len(merged) >= p.maxEngines {
				tracer().Infof("GLR: dropping engine in state %d, limit of %d engines reached",
					e.State, p.maxEngines)
				continue
			}
			byState[e.State] = len(merged)
			merged = append(merged, e)
			continue
		}
		if merged[i].SameStack(e) {
			continue
		}
		tracer().Debugf("GLR: merge engines in state %d", e.State)
		merged[i] = lr.Merge(merged[i], e)
	}
	return merged
}
