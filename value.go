package combo

import "fmt"

// --- Tokens ----------------------------------------------------------------

// TokenType is a category for parsed tokens. Values up to TTUser are reserved;
// applications register additional types with a Registry.
type TokenType int

// Predefined token types. The numbering is part of the external interface.
const (
	TTInvalid  TokenType = 0
	TTNone     TokenType = 1
	TTBytes    TokenType = 2
	TTSInt     TokenType = 4
	TTUInt     TokenType = 8
	TTSequence TokenType = 16
	TTErr      TokenType = 32
	TTUser     TokenType = 64
)

func (tt TokenType) String() string {
	switch tt {
	case TTNone:
		return "none"
	case TTBytes:
		return "bytes"
	case TTSInt:
		return "sint"
	case TTUInt:
		return "uint"
	case TTSequence:
		return "sequence"
	case TTErr:
		return "err"
	case TTInvalid:
		return "invalid"
	}
	if tt >= TTUser {
		return fmt.Sprintf("user(%d)", int(tt))
	}
	return fmt.Sprintf("tt(%d)", int(tt))
}

// ParsedToken is a node of a parse result. Which payload field is valid is
// determined by Type.
//
// Index is the byte position in the input where the token starts, BitOffset
// the bit position within that byte.
type ParsedToken struct {
	Type      TokenType
	Bytes     []byte
	SInt      int64
	UInt      uint64
	Seq       []*ParsedToken
	User      interface{}
	Index     uint64
	BitOffset uint8
	BitLength uint64
}

// NoneToken creates a token carrying no payload.
func NoneToken() *ParsedToken {
	return &ParsedToken{Type: TTNone}
}

// BytesToken creates a token for a byte string.
func BytesToken(b []byte) *ParsedToken {
	return &ParsedToken{Type: TTBytes, Bytes: b}
}

// SIntToken creates a token for a signed integer.
func SIntToken(v int64) *ParsedToken {
	return &ParsedToken{Type: TTSInt, SInt: v}
}

// UIntToken creates a token for an unsigned integer.
func UIntToken(v uint64) *ParsedToken {
	return &ParsedToken{Type: TTUInt, UInt: v}
}

// SeqToken creates a sequence token from a list of tokens.
func SeqToken(items ...*ParsedToken) *ParsedToken {
	if items == nil {
		items = []*ParsedToken{}
	}
	return &ParsedToken{Type: TTSequence, Seq: items}
}

// ErrToken creates a token flagging an error.
func ErrToken() *ParsedToken {
	return &ParsedToken{Type: TTErr}
}

// UserToken creates a token of an application-defined type.
func UserToken(tt TokenType, v interface{}) *ParsedToken {
	return &ParsedToken{Type: tt, User: v}
}

// At sets the input position of a token and returns it.
func (tok *ParsedToken) At(index uint64, bitOffset uint8) *ParsedToken {
	if tok != nil {
		tok.Index = index
		tok.BitOffset = bitOffset
	}
	return tok
}

// Len returns the number of elements of a sequence token, or 0 for other types.
func (tok *ParsedToken) Len() int {
	if tok == nil || tok.Type != TTSequence {
		return 0
	}
	return len(tok.Seq)
}

// Int returns the numeric value of an integer token, and false if the token
// is not of integer type.
func (tok *ParsedToken) Int() (int64, bool) {
	if tok == nil {
		return 0, false
	}
	switch tok.Type {
	case TTSInt:
		return tok.SInt, true
	case TTUInt:
		return int64(tok.UInt), true
	}
	return 0, false
}

func (tok *ParsedToken) String() string {
	return Unamb(tok)
}

// --- Results ---------------------------------------------------------------

// ParseResult is the outcome of a successful parse. AST may be nil for parsers
// which succeed without producing a value, e.g. End or Ignore.
// A failed parse is represented by a nil *ParseResult.
type ParseResult struct {
	AST       *ParsedToken
	BitLength uint64
}

// Action is a semantic action, called with the result of the wrapped parser
// and a user value supplied when the action was attached.
type Action func(r *ParseResult, user interface{}) *ParsedToken

// Predicate is a semantic predicate; it may veto a result.
type Predicate func(r *ParseResult, user interface{}) bool
