package parser

import (
	"github.com/npillmayer/combo"
)

// --- Primitives ------------------------------------------------------------

// Ch matches a single byte.
func Ch(c byte) *Parser {
	return &Parser{kind: KindCh, chr: c}
}

// ChRange matches a single byte in the inclusive range lo…hi.
func ChRange(lo, hi byte) *Parser {
	return &Parser{kind: KindCharset, set: combo.CharRange(lo, hi)}
}

// In matches a single byte out of chars.
func In(chars ...byte) *Parser {
	return &Parser{kind: KindCharset, set: combo.NewCharset(chars...)}
}

// NotIn matches a single byte not contained in chars.
func NotIn(chars ...byte) *Parser {
	return &Parser{kind: KindCharset, set: combo.NewCharset(chars...).Complement()}
}

// Set matches a single byte out of a charset.
func Set(cs combo.Charset) *Parser {
	return &Parser{kind: KindCharset, set: cs}
}

// Token matches a literal byte string and produces a bytes token.
func Token(lit string) *Parser {
	return &Parser{kind: KindToken, lit: []byte(lit)}
}

// End matches the end of input. It produces no value.
func End() *Parser {
	return &Parser{kind: KindEnd}
}

// Epsilon always succeeds without consuming input. It produces no value.
func Epsilon() *Parser {
	return &Parser{kind: KindEpsilon}
}

// Nothing never succeeds.
func Nothing() *Parser {
	return &Parser{kind: KindNothing}
}

// Bits matches a bit field of the given width (1…64) and produces an
// integer token.
func Bits(n int, signed bool) *Parser {
	if n < 1 || n > 64 {
		panic("bit field width must be in 1…64")
	}
	return &Parser{kind: KindBits, bits: n, signed: signed}
}

// Int8 etc. are bit fields of common widths.
func Int8() *Parser   { return Bits(8, true) }
func Int16() *Parser  { return Bits(16, true) }
func Int32() *Parser  { return Bits(32, true) }
func Int64() *Parser  { return Bits(64, true) }
func Uint8() *Parser  { return Bits(8, false) }
func Uint16() *Parser { return Bits(16, false) }
func Uint32() *Parser { return Bits(32, false) }
func Uint64() *Parser { return Bits(64, false) }

// --- Combinators -----------------------------------------------------------

// Sequence matches every parser in order. The result is a sequence of the
// non-empty values of the children.
func Sequence(ps ...*Parser) *Parser {
	return &Parser{kind: KindSequence, subs: ps}
}

// Choice tries every parser in order and returns the first success.
func Choice(ps ...*Parser) *Parser {
	return &Parser{kind: KindChoice, subs: ps}
}

// Many matches p zero or more times.
func Many(p *Parser) *Parser {
	return &Parser{kind: KindRepeat, subs: []*Parser{p}, count: 0, atLeast: true}
}

// Many1 matches p one or more times.
func Many1(p *Parser) *Parser {
	return &Parser{kind: KindRepeat, subs: []*Parser{p}, count: 1, atLeast: true}
}

// RepeatN matches p exactly n times.
func RepeatN(p *Parser, n int) *Parser {
	return &Parser{kind: KindRepeat, subs: []*Parser{p}, count: n}
}

// SepBy matches zero or more p, separated by sep. Separator values are
// dropped.
func SepBy(p, sep *Parser) *Parser {
	return &Parser{kind: KindRepeat, subs: []*Parser{p}, sep: sep, count: 0, atLeast: true}
}

// SepBy1 matches one or more p, separated by sep.
func SepBy1(p, sep *Parser) *Parser {
	return &Parser{kind: KindRepeat, subs: []*Parser{p}, sep: sep, count: 1, atLeast: true}
}

// Optional matches p or nothing. If p does not match, the value is a none
// token.
func Optional(p *Parser) *Parser {
	return &Parser{kind: KindOptional, subs: []*Parser{p}}
}

// Ignore matches p but drops its value.
func Ignore(p *Parser) *Parser {
	return &Parser{kind: KindIgnore, subs: []*Parser{p}}
}

// Left matches p then q and keeps the value of p.
func Left(p, q *Parser) *Parser {
	return &Parser{kind: KindIgnoreSeq, subs: []*Parser{p, q}, which: 0}
}

// Right matches p then q and keeps the value of q.
func Right(p, q *Parser) *Parser {
	return &Parser{kind: KindIgnoreSeq, subs: []*Parser{p, q}, which: 1}
}

// Middle matches p, x, q and keeps the value of x.
func Middle(p, x, q *Parser) *Parser {
	return &Parser{kind: KindIgnoreSeq, subs: []*Parser{p, x, q}, which: 1}
}

// Whitespace skips leading ASCII white space, then matches p.
func Whitespace(p *Parser) *Parser {
	return &Parser{kind: KindWhitespace, subs: []*Parser{p}}
}

// WhitespaceChars are the bytes skipped by Whitespace.
var WhitespaceChars = combo.NewCharset(' ', '\t', '\n', '\v', '\f', '\r')

// Action transforms the result of p by a semantic action.
func Action(p *Parser, a combo.Action, user interface{}) *Parser {
	return &Parser{kind: KindAction, subs: []*Parser{p}, action: a, user: user}
}

// AttrBool matches p if the predicate accepts its result.
func AttrBool(p *Parser, pred combo.Predicate, user interface{}) *Parser {
	return &Parser{kind: KindAttrBool, subs: []*Parser{p}, pred: pred, user: user}
}

// IntRange matches p, which must produce an integer token, if its value is
// within lo…hi.
func IntRange(p *Parser, lo, hi int64) *Parser {
	return &Parser{kind: KindIntRange, subs: []*Parser{p}, lo: lo, hi: hi}
}

// InRange checks an integer token against lo…hi.
func InRange(tok *combo.ParsedToken, lo, hi int64) bool {
	if tok == nil {
		return false
	}
	switch tok.Type {
	case combo.TTSInt:
		return lo <= tok.SInt && tok.SInt <= hi
	case combo.TTUInt:
		if hi < 0 {
			return false
		}
		return (lo < 0 || tok.UInt >= uint64(lo)) && tok.UInt <= uint64(hi)
	}
	return false
}

// Indirect creates a placeholder parser, to be bound later with BindIndirect.
func Indirect() *Parser {
	return &Parser{kind: KindIndirect, subs: []*Parser{nil}}
}

// BindIndirect sets the definition of an Indirect. Binding must happen before
// the parser is used by any back-end.
func BindIndirect(ind, p *Parser) {
	if ind.kind != KindIndirect {
		panic("BindIndirect called for non-indirect parser")
	}
	ind.subs[0] = p
}

// --- Non context-free ------------------------------------------------------

// And succeeds if p matches, without consuming input.
func And(p *Parser) *Parser {
	return &Parser{kind: KindAnd, subs: []*Parser{p}}
}

// Not succeeds if p does not match, without consuming input.
func Not(p *Parser) *Parser {
	return &Parser{kind: KindNot, subs: []*Parser{p}}
}

// Butnot matches p1, unless p2 matches a prefix at least as long.
func Butnot(p1, p2 *Parser) *Parser {
	return &Parser{kind: KindButnot, subs: []*Parser{p1, p2}}
}

// Difference matches p1, unless p2 matches exactly the same length.
func Difference(p1, p2 *Parser) *Parser {
	return &Parser{kind: KindDifference, subs: []*Parser{p1, p2}}
}

// Xor matches if exactly one of p1 and p2 matches.
func Xor(p1, p2 *Parser) *Parser {
	return &Parser{kind: KindXor, subs: []*Parser{p1, p2}}
}

// LengthValue parses a count with length (which must produce an unsigned
// integer), then that many values with value.
func LengthValue(length, value *Parser) *Parser {
	return &Parser{kind: KindLengthValue, subs: []*Parser{length, value}}
}
