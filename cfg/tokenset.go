package cfg

import (
	"strings"

	"github.com/npillmayer/combo"
	"golang.org/x/tools/container/intsets"
)

// EndToken is the token value for the end of input. Byte tokens are 0…255.
const EndToken = 256

// TokenSet is a set of terminal tokens.
type TokenSet struct {
	s intsets.Sparse
}

// NewTokenSet creates a set of tokens.
func NewTokenSet(tokens ...int) *TokenSet {
	ts := &TokenSet{}
	for _, t := range tokens {
		ts.s.Insert(t)
	}
	return ts
}

// Add inserts a token and reports whether the set changed.
func (ts *TokenSet) Add(token int) bool {
	return ts.s.Insert(token)
}

// AddAll inserts all tokens of other and reports whether the set changed.
func (ts *TokenSet) AddAll(other *TokenSet) bool {
	if other == nil {
		return false
	}
	n := ts.s.Len()
	ts.s.UnionWith(&other.s)
	return ts.s.Len() != n
}

// Has tests for membership.
func (ts *TokenSet) Has(token int) bool {
	return ts.s.Has(token)
}

// Len returns the number of tokens in the set.
func (ts *TokenSet) Len() int {
	return ts.s.Len()
}

// IsEmpty is true for the empty set.
func (ts *TokenSet) IsEmpty() bool {
	return ts.s.IsEmpty()
}

// Equals compares sets by content.
func (ts *TokenSet) Equals(other *TokenSet) bool {
	return ts.s.Equals(&other.s)
}

// Copy returns a fresh copy of ts.
func (ts *TokenSet) Copy() *TokenSet {
	c := &TokenSet{}
	c.s.Copy(&ts.s)
	return c
}

// Tokens returns the members in ascending order.
func (ts *TokenSet) Tokens() []int {
	return ts.s.AppendTo(nil)
}

func (ts *TokenSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, t := range ts.Tokens() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(TokenString(t))
	}
	b.WriteByte('}')
	return b.String()
}

// TokenString prints a single token.
func TokenString(t int) string {
	if t == EndToken {
		return "$"
	}
	return "'" + combo.CharString(byte(t)) + "'"
}
