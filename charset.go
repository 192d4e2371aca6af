package combo

import (
	"fmt"
	"strings"
)

// Charset is a set of byte values. The zero value is an empty set.
// Charsets are comparable and may be used as map keys.
type Charset [4]uint64

// NewCharset creates a charset containing the given bytes.
func NewCharset(chars ...byte) Charset {
	var cs Charset
	for _, c := range chars {
		cs = cs.Set(c)
	}
	return cs
}

// CharRange creates a charset for an inclusive range of bytes.
func CharRange(lo, hi byte) Charset {
	var cs Charset
	for c := int(lo); c <= int(hi); c++ {
		cs = cs.Set(byte(c))
	}
	return cs
}

// Set returns a copy of the charset with c included.
func (cs Charset) Set(c byte) Charset {
	cs[c>>6] |= 1 << (c & 63)
	return cs
}

// Has tests for membership of c.
func (cs Charset) Has(c byte) bool {
	return cs[c>>6]&(1<<(c&63)) != 0
}

// Complement returns the set of all bytes not in cs.
func (cs Charset) Complement() Charset {
	for i := range cs {
		cs[i] = ^cs[i]
	}
	return cs
}

// Size returns the number of members.
func (cs Charset) Size() int {
	n := 0
	cs.Each(func(byte) { n++ })
	return n
}

// Each calls f for every member, in ascending order.
func (cs Charset) Each(f func(c byte)) {
	for c := 0; c < 256; c++ {
		if cs.Has(byte(c)) {
			f(byte(c))
		}
	}
}

// String prints a charset in bracket notation, collapsing runs to ranges.
func (cs Charset) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for c := 0; c < 256; c++ {
		if !cs.Has(byte(c)) {
			continue
		}
		end := c
		for end+1 < 256 && cs.Has(byte(end+1)) {
			end++
		}
		b.WriteString(CharString(byte(c)))
		if end > c+1 {
			b.WriteByte('-')
			b.WriteString(CharString(byte(end)))
		} else if end == c+1 {
			b.WriteString(CharString(byte(end)))
		}
		c = end
	}
	b.WriteByte(']')
	return b.String()
}

// CharString prints a byte readable, escaping non-printables.
func CharString(c byte) string {
	switch c {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case '\\', '[', ']', '-', '\'', '"':
		return `\` + string(rune(c))
	}
	if c < 0x20 || c > 0x7e {
		return fmt.Sprintf(`\x%02x`, c)
	}
	return string(rune(c))
}
