package parser

import (
	"fmt"

	"github.com/npillmayer/combo"
)

// Kind enumerates the closed set of parser variants.
type Kind int

const (
	KindCh Kind = iota
	KindCharset
	KindToken
	KindBits
	KindEnd
	KindEpsilon
	KindNothing
	KindSequence
	KindChoice
	KindRepeat
	KindOptional
	KindIgnore
	KindIgnoreSeq
	KindWhitespace
	KindAction
	KindAttrBool
	KindIntRange
	KindIndirect
	KindAnd
	KindNot
	KindButnot
	KindDifference
	KindXor
	KindLengthValue
)

var kindNames = [...]string{
	"ch", "charset", "token", "bits", "end", "epsilon", "nothing", "sequence",
	"choice", "repeat", "optional", "ignore", "ignoreseq", "whitespace", "action",
	"attr_bool", "int_range", "indirect", "and", "not", "butnot", "difference",
	"xor", "length_value",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Parser is a node of a combinator graph. Parsers are created by the
// constructor functions of this package; the zero value is not useful.
// Apart from binding an Indirect, parsers are immutable after construction
// and may be shared between graphs and back-ends.
type Parser struct {
	kind    Kind
	name    string
	chr     byte
	set     combo.Charset
	lit     []byte
	bits    int
	signed  bool
	subs    []*Parser
	sep     *Parser
	count   int
	atLeast bool
	which   int
	action  combo.Action
	pred    combo.Predicate
	user    interface{}
	lo, hi  int64
}

// Kind returns the variant of p.
func (p *Parser) Kind() Kind {
	return p.kind
}

// Named sets a name for p, used when printing grammars. Returns p.
func (p *Parser) Named(name string) *Parser {
	p.name = name
	return p
}

// Name returns the name set by Named, if any.
func (p *Parser) Name() string {
	return p.name
}

// Char returns the byte matched by a Ch parser.
func (p *Parser) Char() byte {
	return p.chr
}

// Charset returns the set of bytes matched by a charset parser.
func (p *Parser) Charset() combo.Charset {
	return p.set
}

// Literal returns the bytes matched by a Token parser.
func (p *Parser) Literal() []byte {
	return p.lit
}

// Bits returns width and signedness of a bit-field parser.
func (p *Parser) Bits() (int, bool) {
	return p.bits, p.signed
}

// Children returns the sub-parsers of p. For an unbound Indirect the single
// child is nil.
func (p *Parser) Children() []*Parser {
	return p.subs
}

// Separator returns the separator of a repetition, or nil.
func (p *Parser) Separator() *Parser {
	return p.sep
}

// Count returns the repetition count. If atLeast is true, count is a lower
// bound (Many: 0, Many1: 1), otherwise an exact number.
func (p *Parser) Count() (count int, atLeast bool) {
	return p.count, p.atLeast
}

// Which returns the index of the child whose value an ignore-sequence keeps.
func (p *Parser) Which() int {
	return p.which
}

// ActionHook returns the semantic action and user value of an Action parser.
func (p *Parser) ActionHook() (combo.Action, interface{}) {
	return p.action, p.user
}

// PredicateHook returns the predicate and user value of an AttrBool parser.
func (p *Parser) PredicateHook() (combo.Predicate, interface{}) {
	return p.pred, p.user
}

// Range returns the bounds of an IntRange parser.
func (p *Parser) Range() (lo, hi int64) {
	return p.lo, p.hi
}

// Higher is true for parsers which invoke other parsers. Only these may take
// part in left recursion.
func (p *Parser) Higher() bool {
	return len(p.subs) > 0 || p.sep != nil
}

// Bound is false for an Indirect which has not yet been bound.
func (p *Parser) Bound() bool {
	return p.kind != KindIndirect || p.subs[0] != nil
}

func (p *Parser) String() string {
	if p == nil {
		return "<nil parser>"
	}
	if p.name != "" {
		return p.name
	}
	switch p.kind {
	case KindCh:
		return fmt.Sprintf("'%s'", combo.CharString(p.chr))
	case KindCharset:
		return p.set.String()
	case KindToken:
		return fmt.Sprintf("%q", p.lit)
	case KindBits:
		if p.signed {
			return fmt.Sprintf("int%d", p.bits)
		}
		return fmt.Sprintf("uint%d", p.bits)
	}
	return fmt.Sprintf("%s@%p", p.kind, p)
}

// IsContextFree checks if every parser reachable from p can be desugared
// into a context-free grammar.
func IsContextFree(p *Parser) bool {
	ok := true
	Walk(p, func(q *Parser) bool {
		switch q.kind {
		case KindAnd, KindNot, KindButnot, KindDifference, KindXor, KindLengthValue:
			ok = false
		case KindBits:
			if q.bits%8 != 0 {
				ok = false
			}
		}
		return ok
	})
	return ok
}

// Walk visits every parser reachable from p once, in depth-first pre-order.
// If visit returns false, the walk stops.
func Walk(p *Parser, visit func(*Parser) bool) {
	seen := make(map[*Parser]bool)
	var walk func(*Parser) bool
	walk = func(q *Parser) bool {
		if q == nil || seen[q] {
			return true
		}
		seen[q] = true
		if !visit(q) {
			return false
		}
		for _, c := range q.subs {
			if !walk(c) {
				return false
			}
		}
		return walk(q.sep)
	}
	walk(p)
}
