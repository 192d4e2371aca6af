package lr

import (
	"fmt"

	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/cfg"
)

// === LR Engine =============================================================

// frame is a node of the engine's (left) stack: a saved state together with
// the value of the symbol shifted from it. Frames are never modified after
// creation, so forked engines share them.
type frame struct {
	state      int
	value      *combo.ParsedToken
	start, end uint64 // bit positions covered by the symbol
	next       *frame
}

// pending is a node of the stack of symbols waiting to be shifted: the
// lookahead terminal, and non-terminals produced by reductions.
type pending struct {
	token      int         // terminal token, if nt is nil
	nt         *cfg.Symbol // non-terminal
	value      *combo.ParsedToken
	start, end uint64
	next       *pending
}

// Engine is an LR machine running on a table. It holds the current state,
// the stack of (state, value) frames, the stack of pending symbols and the
// input.
//
// Engines are cheap to fork. For GLR parsing an engine may be the merge of
// two engines in the same state at the same input position; it then owns
// only the frames pushed since the merge, and refers to its ancestors for
// the rest.
type Engine struct {
	table     *Table
	State     int
	left      *frame
	depth     int // number of frames owned
	right     *pending
	input     combo.InputStream
	offset    uint64 // bit position of the current chunk in the complete input
	consumed  uint64 // bit position after the last terminal shifted
	origin    uint64
	running   bool
	accepted  bool
	suspended bool
	merged    [2]*Engine
	Steps     int // non-consuming steps since the last terminal shift
}

// NewEngine creates an engine in state 0.
func NewEngine(t *Table, in combo.InputStream) *Engine {
	return &Engine{
		table:    t,
		input:    in,
		origin:   in.Pos(),
		consumed: in.Pos(),
		running:  true,
	}
}

// Running is false after the engine accepted or hit an error.
func (e *Engine) Running() bool {
	return e.running
}

// Accepted is true if the engine has reached Success.
func (e *Engine) Accepted() bool {
	return e.accepted
}

// Suspended is true if the engine needs a lookahead but has exhausted the
// current chunk of input.
func (e *Engine) Suspended() bool {
	return e.suspended
}

// AwaitsToken is true if the next action will read a new lookahead token.
func (e *Engine) AwaitsToken() bool {
	return e.right == nil
}

// Position returns the bit position of the input cursor.
func (e *Engine) Position() uint64 {
	return e.offset + e.input.Pos()
}

// IsMerged is true for an engine which has been merged from two others.
func (e *Engine) IsMerged() bool {
	return e.merged[0] != nil
}

// SameStack is true if e and other share their stack of frames.
func (e *Engine) SameStack(other *Engine) bool {
	return e.left == other.left && e.merged == other.merged
}

// Feed continues the input with a new chunk. The previous chunk must have
// been consumed completely.
func (e *Engine) Feed(chunk []byte, last bool) {
	e.offset += e.input.Pos()
	e.input = combo.NewChunkStream(chunk, last)
	e.suspended = false
}

// Action looks up the action for the current state and the topmost pending
// symbol, reading a lookahead token if necessary. End of input is represented
// by cfg.EndToken. Returns nil for an error entry, or if the engine is
// suspended.
func (e *Engine) Action() *Action {
	if e.right == nil && !e.readToken() {
		return nil
	}
	if top := e.right; top.nt != nil {
		return e.table.LookupNonterminal(e.State, top.nt)
	}
	return e.table.Lookup(e.State, e.right.token)
}

func (e *Engine) readToken() bool {
	if e.input.Remaining() < 8 && !e.input.LastChunk {
		e.suspended = true
		return false
	}
	pos := e.Position()
	c := e.input.ReadBits(8, false)
	if e.input.Overrun {
		e.input.Overrun = false
		e.right = &pending{token: cfg.EndToken, start: pos, end: pos}
		return true
	}
	tok := combo.UIntToken(c).At(pos/8, uint8(pos%8))
	e.right = &pending{token: int(c), value: tok, start: pos, end: pos + 8}
	return true
}

// Step performs an action. A nil action stops the engine (syntax error).
// Conflicts have to be resolved by the caller; for a reduction popping more
// frames than a merged engine owns, the caller has to Demerge first.
func (e *Engine) Step(a *Action) {
	if a == nil {
		tracer().Debugf("LR engine: no action in state %d", e.State)
		e.running = false
		return
	}
	switch a.Kind {
	case ShiftAction:
		p := e.right
		e.right = p.next
		e.left = &frame{state: e.State, value: p.value, start: p.start, end: p.end, next: e.left}
		e.depth++
		if p.nt == nil {
			e.consumed = p.end
			e.Steps = 0
		} else {
			e.Steps++
		}
		e.State = a.Next
		if a.Next == Success {
			e.running = false
			e.accepted = true
		}
	case ReduceAction:
		e.reduce(a)
		e.Steps++
	default:
		panic(fmt.Sprintf("LR engine cannot step %s", a))
	}
}

func (e *Engine) reduce(a *Action) {
	n := a.Length()
	if n > e.depth {
		panic("LR engine: reduction beyond stack bottom")
	}
	vals := make([]*combo.ParsedToken, n)
	start, end := e.consumed, e.consumed
	for i := n - 1; i >= 0; i-- {
		f := e.left
		if i == n-1 {
			end = f.end
		}
		vals[i] = f.value
		start = f.start
		e.State = f.state
		e.left = f.next
		e.depth--
	}
	seq := combo.SeqToken(vals...).At(start/8, uint8(start%8))
	v, ok := a.LHS.Reduce(&combo.ParseResult{AST: seq, BitLength: end - start})
	if !ok {
		tracer().Debugf("LR engine: predicate rejected reduction r%d", a.Rule())
		e.running = false
		return
	}
	e.right = &pending{token: -1, nt: a.LHS, value: v, start: start, end: end, next: e.right}
}

// Result returns the parse result of an accepting engine, or nil.
func (e *Engine) Result() *combo.ParseResult {
	if !e.accepted {
		return nil
	}
	return &combo.ParseResult{AST: e.left.value, BitLength: e.left.end - e.origin}
}

// --- Forks and merges ------------------------------------------------------

// Fork creates an independent copy of e. Stacks are shared.
func (e *Engine) Fork() *Engine {
	c := *e
	return &c
}

// Merge combines two engines which are in the same state at the same input
// position, with no pending symbols. The result owns no frames.
func Merge(a, b *Engine) *Engine {
	m := *a
	m.left = nil
	m.depth = 0
	m.Steps = 0
	m.merged = [2]*Engine{a, b}
	return &m
}

// Demerge prepares a merged engine for a reduction of a given length. If e
// owns enough frames, it is returned unchanged. Otherwise an engine is
// respawned for every ancestor (recursively), with e's own frames stacked on
// top of the ancestor's stack.
func (e *Engine) Demerge(length int) []*Engine {
	if !e.IsMerged() || length <= e.depth {
		return []*Engine{e}
	}
	own := make([]*frame, 0, e.depth)
	for f, i := e.left, 0; i < e.depth; f, i = f.next, i+1 {
		own = append(own, f)
	}
	var engines []*Engine
	for _, anc := range e.merged {
		c := *e
		left := anc.left
		for i := len(own) - 1; i >= 0; i-- {
			f := *own[i]
			f.next = left
			left = &f
		}
		c.left = left
		c.depth = anc.depth + e.depth
		c.merged = anc.merged
		engines = append(engines, c.Demerge(length)...)
	}
	return engines
}
