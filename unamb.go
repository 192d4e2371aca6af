package combo

import (
	"fmt"
	"strings"
)

// Unamb writes the canonical, unambiguous serialization of a token tree.
// Two results are considered equal iff their serializations are equal:
//
//    nil            NULL
//    none           null
//    bytes          <>  or  <61.62.63>
//    uint           u0x61
//    sint           s0x2a  or  s-0x2a
//    sequence       (u0x61 u0x62)
//    err            ERR
//
// Tokens of user-defined types are printed as USER:<type number>; use
// Registry.Unamb to print them with a registered printer.
func Unamb(tok *ParsedToken) string {
	var b strings.Builder
	writeUnamb(&b, tok, nil)
	return b.String()
}

// Unamb is like the package level Unamb, but consults the registry for printing
// user-defined token types.
func (r *Registry) Unamb(tok *ParsedToken) string {
	var b strings.Builder
	writeUnamb(&b, tok, r)
	return b.String()
}

func writeUnamb(b *strings.Builder, tok *ParsedToken, reg *Registry) {
	if tok == nil {
		b.WriteString("NULL")
		return
	}
	switch tok.Type {
	case TTNone:
		b.WriteString("null")
	case TTBytes:
		b.WriteByte('<')
		for i, c := range tok.Bytes {
			if i > 0 {
				b.WriteByte('.')
			}
			fmt.Fprintf(b, "%02x", c)
		}
		b.WriteByte('>')
	case TTSInt:
		if tok.SInt < 0 {
			b.WriteString("s-")
			b.WriteString(hexC(uint64(-tok.SInt)))
		} else {
			b.WriteString("s")
			b.WriteString(hexC(uint64(tok.SInt)))
		}
	case TTUInt:
		b.WriteString("u")
		b.WriteString(hexC(tok.UInt))
	case TTSequence:
		b.WriteByte('(')
		for i, t := range tok.Seq {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeUnamb(b, t, reg)
		}
		b.WriteByte(')')
	case TTErr:
		b.WriteString("ERR")
	default:
		if tok.Type >= TTUser {
			if reg != nil {
				if tag := reg.byType[tok.Type]; tag != nil && tag.Unamb != nil {
					b.WriteString(tag.Unamb(tok))
					return
				}
			}
			fmt.Fprintf(b, "USER:%d", int(tok.Type))
			return
		}
		tracer().Errorf("unamb: unknown token type %d", int(tok.Type))
		fmt.Fprintf(b, "INVALID:%d", int(tok.Type))
	}
}

// hexC formats like C's "%#lx": zero has no prefix.
func hexC(v uint64) string {
	if v == 0 {
		return "0"
	}
	return fmt.Sprintf("%#x", v)
}
