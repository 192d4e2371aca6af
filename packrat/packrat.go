package packrat

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/stacks/linkedliststack"
	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/parser"
)

// Parse runs p on input. It returns nil if p does not match a prefix of the
// input.
func Parse(p *parser.Parser, input []byte) *combo.ParseResult {
	return ParseStream(p, combo.NewInputStream(input))
}

// ParseStream runs p on an input stream, starting at the stream's position.
func ParseStream(p *parser.Parser, in combo.InputStream) *combo.ParseResult {
	st := newState(in)
	r := st.apply(p)
	if r == nil {
		tracer().Debugf("packrat: no match")
	} else {
		tracer().Debugf("packrat: matched %d bits: %s", r.BitLength, combo.Unamb(r.AST))
	}
	return r
}

// --- Memoization -----------------------------------------------------------

type position struct {
	index uint64
	bit   uint8
}

func positionOf(in *combo.InputStream) position {
	return position{index: in.Index, bit: in.BitOffset}
}

type cacheKey struct {
	p   *parser.Parser
	pos position
}

// leftRec is a placeholder in the memo table while a parser is being
// evaluated. Hitting it again at the same position means left recursion.
type leftRec struct {
	seed *combo.ParseResult
	rule *parser.Parser
	head *recursionHead
}

// recursionHead is the parser which started a left recursion, together with
// every parser involved in it.
type recursionHead struct {
	parser   *parser.Parser
	involved *hashset.Set
	eval     *hashset.Set
}

// cacheEntry is either a left recursion marker or a result.
type cacheEntry struct {
	left  *leftRec
	right *combo.ParseResult
	input combo.InputStream // input state after the result
}

func (e *cacheEntry) isLeft() bool {
	return e.left != nil
}

type state struct {
	input   combo.InputStream
	cache   map[cacheKey]*cacheEntry
	lrStack *linkedliststack.Stack // of *leftRec
	heads   map[position]*recursionHead
}

func newState(in combo.InputStream) *state {
	return &state{
		input:   in,
		cache:   make(map[cacheKey]*cacheEntry),
		lrStack: linkedliststack.New(),
		heads:   make(map[position]*recursionHead),
	}
}

func (st *state) cachedResult(r *combo.ParseResult) *cacheEntry {
	return &cacheEntry{right: r, input: st.input}
}

// apply runs p at the current position, consulting and updating the memo.
// Only parsers which invoke other parsers are memoized; primitives are
// cheap enough to re-run and cannot recurse.
func (st *state) apply(p *parser.Parser) *combo.ParseResult {
	if !p.Higher() {
		return st.perform(p)
	}
	key := cacheKey{p: p, pos: positionOf(&st.input)}
	if m := st.recall(key); m != nil {
		st.input = m.input
		if m.isLeft() {
			st.setupLR(p, m.left)
			return m.left.seed
		}
		return m.right
	}
	base := &leftRec{rule: p}
	st.lrStack.Push(base)
	st.cache[key] = &cacheEntry{left: base, input: st.input}
	r := st.perform(p)
	st.lrStack.Pop()
	st.cache[key].input = st.input
	if base.head == nil {
		st.cache[key] = st.cachedResult(r)
		return r
	}
	base.seed = r
	return st.lrAnswer(key, base)
}

func (st *state) recall(key cacheKey) *cacheEntry {
	cached := st.cache[key]
	head := st.heads[key.pos]
	if head == nil {
		return cached
	}
	if cached == nil && head.parser != key.p && !head.involved.Contains(key.p) {
		// not part of the growing recursion: fail
		cached = st.cachedResult(nil)
	}
	if head.eval.Contains(key.p) {
		head.eval.Remove(key.p)
		r := st.perform(key.p)
		if cached == nil {
			cached = st.cachedResult(r)
			st.cache[key] = cached
		} else {
			cached.left = nil
			cached.right = r
			cached.input = st.input
		}
	}
	return cached
}

// setupLR marks every rule on the evaluation stack above the recursive
// call as involved in the recursion headed by p.
func (st *state) setupLR(p *parser.Parser, rec *leftRec) {
	if rec.head == nil {
		rec.head = &recursionHead{
			parser:   p,
			involved: hashset.New(),
			eval:     hashset.New(),
		}
	}
	it := st.lrStack.Iterator()
	for it.Next() {
		lr := it.Value().(*leftRec)
		if lr.rule == p {
			break
		}
		lr.head = rec.head
		rec.head.involved.Add(lr.rule)
	}
}

func (st *state) lrAnswer(key cacheKey, growable *leftRec) *combo.ParseResult {
	if growable.head.parser != key.p {
		return growable.seed
	}
	st.cache[key] = st.cachedResult(growable.seed)
	if growable.seed == nil {
		return nil
	}
	return st.grow(key, growable.head)
}

// grow re-evaluates the head of a left recursion as long as each round
// consumes more input than the previous one.
func (st *state) grow(key cacheKey, head *recursionHead) *combo.ParseResult {
	st.heads[key.pos] = head
	old := st.cache[key]
	if old == nil || old.isLeft() {
		panic("packrat: growing a recursion without a seed")
	}
	st.input.Index, st.input.BitOffset = key.pos.index, key.pos.bit
	st.input.Overrun = false
	head.eval = hashset.New(head.involved.Values()...)
	r := st.perform(key.p)
	if r == nil || !old.input.Before(&st.input) {
		delete(st.heads, key.pos)
		st.input = old.input
		return old.right
	}
	tracer().Debugf("packrat: growing %s at %d to %d bits", key.p, key.pos.index, st.input.Pos())
	st.cache[key] = st.cachedResult(r)
	return st.grow(key, head)
}

// perform runs the parse function of p and computes the length of the match.
func (st *state) perform(p *parser.Parser) *combo.ParseResult {
	start := st.input.Pos()
	r := st.parse(p)
	if st.input.Overrun {
		return nil
	}
	if r != nil {
		n := st.input.Pos() - start
		if r.BitLength == 0 && n > 0 {
			r = &combo.ParseResult{AST: r.AST, BitLength: n}
		}
	}
	return r
}
