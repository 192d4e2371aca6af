package cfg

import (
	"github.com/npillmayer/combo"
)

// Reshape hooks recreate, from the sequence token built by an LR reduction,
// the value the original combinator would have produced.

// ActFirst returns the first element of a sequence, or nil.
func ActFirst(r *combo.ParseResult, _ interface{}) *combo.ParsedToken {
	if r.AST == nil || r.AST.Type != combo.TTSequence || len(r.AST.Seq) == 0 {
		return nil
	}
	return r.AST.Seq[0]
}

// ActIgnore drops the value.
func ActIgnore(*combo.ParseResult, interface{}) *combo.ParsedToken {
	return nil
}

// reshapeSequence drops empty elements.
func reshapeSequence(r *combo.ParseResult, _ interface{}) *combo.ParsedToken {
	return dropNils(r.AST, 1)
}

func dropNils(seq *combo.ParsedToken, step int) *combo.ParsedToken {
	out := combo.SeqToken()
	if seq == nil {
		return out
	}
	out.Index, out.BitOffset = seq.Index, seq.BitOffset
	for i := 0; i < len(seq.Seq); i += step {
		if seq.Seq[i] != nil {
			out.Seq = append(out.Seq, seq.Seq[i])
		}
	}
	return out
}

// reshapeEvery keeps every step-th element, skipping separators.
func reshapeEvery(step int) combo.Action {
	return func(r *combo.ParseResult, _ interface{}) *combo.ParsedToken {
		return dropNils(r.AST, step)
	}
}

// reshapeToken collects matched characters into a bytes token.
func reshapeToken(r *combo.ParseResult, _ interface{}) *combo.ParsedToken {
	tok := combo.BytesToken(make([]byte, 0, r.AST.Len()))
	if r.AST != nil {
		tok.Index, tok.BitOffset = r.AST.Index, r.AST.BitOffset
		for _, c := range r.AST.Seq {
			tok.Bytes = append(tok.Bytes, byte(c.UInt))
		}
	}
	return tok
}

// reshapeMany flattens a right-recursive repetition
//
//    M -> [sep] A M | ε
//
// into a single sequence. The element is the second to last item, the
// tail of the repetition is the last one.
func reshapeMany(r *combo.ParseResult, _ interface{}) *combo.ParsedToken {
	out := combo.SeqToken()
	seq := r.AST
	if seq == nil || len(seq.Seq) < 2 {
		return out
	}
	out.Index, out.BitOffset = seq.Index, seq.BitOffset
	n := len(seq.Seq)
	if a := seq.Seq[n-2]; a != nil {
		out.Seq = append(out.Seq, a)
	}
	if tail := seq.Seq[n-1]; tail != nil {
		out.Seq = append(out.Seq, tail.Seq...)
	}
	return out
}

// reshapeOptional yields the element or a none token.
func reshapeOptional(r *combo.ParseResult, _ interface{}) *combo.ParsedToken {
	if r.AST != nil && len(r.AST.Seq) > 0 {
		return r.AST.Seq[0]
	}
	return combo.NoneToken()
}

func reshapeIndex(i int) combo.Action {
	return func(r *combo.ParseResult, _ interface{}) *combo.ParsedToken {
		if r.AST == nil || i >= len(r.AST.Seq) {
			return nil
		}
		return r.AST.Seq[i]
	}
}

// reshapeBits assembles bytes big-endian into an integer.
func reshapeBits(n int, signed bool) combo.Action {
	return func(r *combo.ParseResult, _ interface{}) *combo.ParsedToken {
		var v uint64
		for _, c := range r.AST.Seq {
			v = v<<8 | c.UInt
		}
		if signed {
			if n < 64 && v&(1<<uint(n-1)) != 0 {
				v |= ^uint64(0) << uint(n)
			}
			return combo.SIntToken(int64(v)).At(r.AST.Index, r.AST.BitOffset)
		}
		return combo.UIntToken(v).At(r.AST.Index, r.AST.BitOffset)
	}
}
