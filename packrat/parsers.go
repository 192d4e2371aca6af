package packrat

import (
	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/parser"
)

// parse dispatches on the kind of p. Parse functions leave the input
// positioned after the match; on failure the position is unspecified and
// callers restore it.
func (st *state) parse(p *parser.Parser) *combo.ParseResult {
	switch p.Kind() {
	case parser.KindCh:
		return st.parseChar(func(c byte) bool { return c == p.Char() })
	case parser.KindCharset:
		cs := p.Charset()
		return st.parseChar(cs.Has)
	case parser.KindToken:
		return st.parseToken(p.Literal())
	case parser.KindBits:
		return st.parseBits(p.Bits())
	case parser.KindEnd:
		if st.input.AtEnd() {
			return result(nil)
		}
		return nil
	case parser.KindEpsilon:
		return result(nil)
	case parser.KindNothing:
		return nil
	case parser.KindSequence:
		return st.parseSequence(p.Children())
	case parser.KindChoice:
		return st.parseChoice(p.Children())
	case parser.KindRepeat:
		count, atLeast := p.Count()
		return st.parseMany(p.Children()[0], p.Separator(), count, atLeast)
	case parser.KindOptional:
		bak := st.input
		if r := st.apply(p.Children()[0]); r != nil {
			return r
		}
		st.input = bak
		return result(combo.NoneToken().At(bak.Index, bak.BitOffset))
	case parser.KindIgnore:
		if st.apply(p.Children()[0]) == nil {
			return nil
		}
		return result(nil)
	case parser.KindIgnoreSeq:
		var keep *combo.ParsedToken
		for i, c := range p.Children() {
			r := st.apply(c)
			if r == nil {
				return nil
			}
			if i == p.Which() {
				keep = r.AST
			}
		}
		return result(keep)
	case parser.KindWhitespace:
		st.skipWhitespace()
		r := st.apply(p.Children()[0])
		if r == nil {
			return nil
		}
		return result(r.AST)
	case parser.KindAction:
		r := st.apply(p.Children()[0])
		if r == nil {
			return nil
		}
		action, user := p.ActionHook()
		return result(action(r, user))
	case parser.KindAttrBool:
		r := st.apply(p.Children()[0])
		pred, user := p.PredicateHook()
		if r == nil || !pred(r, user) {
			return nil
		}
		return r
	case parser.KindIntRange:
		r := st.apply(p.Children()[0])
		lo, hi := p.Range()
		if r == nil || !parser.InRange(r.AST, lo, hi) {
			return nil
		}
		return r
	case parser.KindIndirect:
		if !p.Bound() {
			tracer().Errorf("packrat: %v", combo.ErrUnboundIndirect)
			return nil
		}
		return st.apply(p.Children()[0])
	case parser.KindAnd:
		bak := st.input
		r := st.apply(p.Children()[0])
		st.input = bak
		if r == nil {
			return nil
		}
		return result(nil)
	case parser.KindNot:
		bak := st.input
		if st.apply(p.Children()[0]) != nil {
			return nil
		}
		st.input = bak
		return result(nil)
	case parser.KindButnot, parser.KindDifference:
		return st.parseDifference(p)
	case parser.KindXor:
		return st.parseXor(p.Children()[0], p.Children()[1])
	case parser.KindLengthValue:
		return st.parseLengthValue(p.Children()[0], p.Children()[1])
	}
	tracer().Errorf("packrat: unknown parser kind %s", p.Kind())
	return nil
}

func result(tok *combo.ParsedToken) *combo.ParseResult {
	return &combo.ParseResult{AST: tok}
}

func (st *state) parseChar(match func(byte) bool) *combo.ParseResult {
	index, bit := st.input.Index, st.input.BitOffset
	c := byte(st.input.ReadBits(8, false))
	if st.input.Overrun || !match(c) {
		return nil
	}
	return result(combo.UIntToken(uint64(c)).At(index, bit))
}

func (st *state) parseToken(lit []byte) *combo.ParseResult {
	index, bit := st.input.Index, st.input.BitOffset
	for _, want := range lit {
		c := byte(st.input.ReadBits(8, false))
		if st.input.Overrun || c != want {
			return nil
		}
	}
	b := make([]byte, len(lit))
	copy(b, lit)
	return result(combo.BytesToken(b).At(index, bit))
}

func (st *state) parseBits(n int, signed bool) *combo.ParseResult {
	index, bit := st.input.Index, st.input.BitOffset
	v := st.input.ReadBits(n, signed)
	if st.input.Overrun {
		return nil
	}
	if signed {
		return result(combo.SIntToken(int64(v)).At(index, bit))
	}
	return result(combo.UIntToken(v).At(index, bit))
}

func (st *state) parseSequence(ps []*parser.Parser) *combo.ParseResult {
	seq := combo.SeqToken().At(st.input.Index, st.input.BitOffset)
	for _, c := range ps {
		r := st.apply(c)
		if r == nil {
			return nil
		}
		if r.AST != nil {
			seq.Seq = append(seq.Seq, r.AST)
		}
	}
	return result(seq)
}

func (st *state) parseChoice(ps []*parser.Parser) *combo.ParseResult {
	bak := st.input
	for _, c := range ps {
		if r := st.apply(c); r != nil {
			return r
		}
		st.input = bak
	}
	return nil
}

// parseMany matches p repeatedly, with optional separators between elements.
// If atLeast is false, exactly count elements must match.
func (st *state) parseMany(p, sep *parser.Parser, count int, atLeast bool) *combo.ParseResult {
	seq := combo.SeqToken().At(st.input.Index, st.input.BitOffset)
	n := 0
	for atLeast || n < count {
		bak := st.input
		if n > 0 && sep != nil {
			if st.apply(sep) == nil {
				st.input = bak
				break
			}
		}
		r := st.apply(p)
		if r == nil {
			st.input = bak
			break
		}
		if r.AST != nil {
			seq.Seq = append(seq.Seq, r.AST)
		}
		n++
		if st.input.Pos() == bak.Pos() && atLeast {
			break // element matched the empty string
		}
	}
	if n < count {
		return nil
	}
	return result(seq)
}

func (st *state) skipWhitespace() {
	for {
		bak := st.input
		c := byte(st.input.ReadBits(8, false))
		if st.input.Overrun || !parser.WhitespaceChars.Has(c) {
			st.input = bak
			return
		}
	}
}

// parseDifference implements Butnot and Difference: p1 succeeds unless p2
// matches a prefix at least as long (Butnot) or exactly as long (Difference).
func (st *state) parseDifference(p *parser.Parser) *combo.ParseResult {
	start := st.input
	r1 := st.apply(p.Children()[0])
	if r1 == nil {
		return nil
	}
	after := st.input
	st.input = start
	r2 := st.apply(p.Children()[1])
	st.input = after
	if r2 == nil {
		return r1
	}
	if p.Kind() == parser.KindButnot && r1.BitLength <= r2.BitLength {
		return nil
	}
	if p.Kind() == parser.KindDifference && r1.BitLength == r2.BitLength {
		return nil
	}
	return r1
}

func (st *state) parseXor(p1, p2 *parser.Parser) *combo.ParseResult {
	start := st.input
	r1 := st.apply(p1)
	after1 := st.input
	st.input = start
	r2 := st.apply(p2)
	after2 := st.input
	switch {
	case r1 != nil && r2 != nil:
		return nil
	case r1 != nil:
		st.input = after1
		return r1
	case r2 != nil:
		st.input = after2
		return r2
	}
	return nil
}

func (st *state) parseLengthValue(length, value *parser.Parser) *combo.ParseResult {
	l := st.apply(length)
	if l == nil || l.AST == nil || l.AST.Type != combo.TTUInt {
		if l != nil {
			tracer().Errorf("packrat: length parser must produce an unsigned integer")
		}
		return nil
	}
	return st.parseMany(value, nil, int(l.AST.UInt), false)
}
