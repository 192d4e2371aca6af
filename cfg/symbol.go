package cfg

import (
	"github.com/npillmayer/combo"
)

// SymbolKind categorizes grammar symbols.
type SymbolKind int8

// Terminals are CharSym and EndSym. A CharSetSym is a quasi-terminal: the LR
// construction treats it as a non-terminal with one production per member.
const (
	CharSym SymbolKind = iota
	CharSetSym
	EndSym
	ChoiceSym
)

// Symbol is a node of a grammar graph.
type Symbol struct {
	Kind    SymbolKind
	Char    byte            // for CharSym
	Set     combo.Charset   // for CharSetSym
	Alts    []*Sequence     // for ChoiceSym
	Reshape combo.Action    // recreates the value of the combinator
	Action  combo.Action    // semantic action, may be nil
	Pred    combo.Predicate // semantic predicate, may be nil
	User    interface{}     // user value for Action and Pred
	Tag     string          // name for printing, may be empty
}

// Sequence is one alternative of a choice.
type Sequence struct {
	Items []*Symbol
}

// NewChar creates a terminal for a single byte.
func NewChar(c byte) *Symbol {
	return &Symbol{Kind: CharSym, Char: c}
}

// NewCharSet creates a quasi-terminal for a set of bytes.
func NewCharSet(cs combo.Charset) *Symbol {
	return &Symbol{Kind: CharSetSym, Set: cs}
}

// NewEnd creates a terminal for the end of input.
func NewEnd() *Symbol {
	return &Symbol{Kind: EndSym}
}

// NewChoice creates a non-terminal without alternatives.
func NewChoice(tag string) *Symbol {
	return &Symbol{Kind: ChoiceSym, Tag: tag}
}

// AddAlternative appends an alternative to a choice. Returns s.
func (s *Symbol) AddAlternative(items ...*Symbol) *Symbol {
	if items == nil {
		items = []*Symbol{}
	}
	s.Alts = append(s.Alts, &Sequence{Items: items})
	return s
}

// IsTerminal is true for single bytes and end of input.
func (s *Symbol) IsTerminal() bool {
	return s.Kind == CharSym || s.Kind == EndSym
}

// IsNonterminal is true for choices.
func (s *Symbol) IsNonterminal() bool {
	return s.Kind == ChoiceSym
}

// Token returns the terminal token of a terminal symbol: the byte value,
// or EndToken. For other symbols it returns -1.
func (s *Symbol) Token() int {
	switch s.Kind {
	case CharSym:
		return int(s.Char)
	case EndSym:
		return EndToken
	}
	return -1
}

// SymbolKey identifies a symbol for equality tests. Terminals are equal by
// value, all other symbols by identity.
type SymbolKey struct {
	kind SymbolKind
	chr  byte
	sym  *Symbol
}

// Key returns the equality key of s.
func (s *Symbol) Key() SymbolKey {
	switch s.Kind {
	case CharSym:
		return SymbolKey{kind: CharSym, chr: s.Char}
	case EndSym:
		return SymbolKey{kind: EndSym}
	}
	return SymbolKey{kind: s.Kind, sym: s}
}

// Equal compares symbols: terminals by value, others by identity.
func (s *Symbol) Equal(other *Symbol) bool {
	return s.Key() == other.Key()
}

// Reduce applies the semantic hooks of s to the value built for one of its
// productions: first the reshape, then the predicate, then the action. It
// returns false if the predicate rejects the value. CharSet symbols yield
// the matched character.
func (s *Symbol) Reduce(r *combo.ParseResult) (*combo.ParsedToken, bool) {
	if s.Kind == CharSetSym {
		return ActFirst(r, nil), true
	}
	tok := r.AST
	if s.Reshape != nil {
		tok = s.Reshape(r, nil)
	}
	if s.Pred == nil && s.Action == nil {
		return tok, true
	}
	res := &combo.ParseResult{AST: tok, BitLength: r.BitLength}
	if s.Pred != nil && !s.Pred(res, s.User) {
		return nil, false
	}
	if s.Action != nil {
		tok = s.Action(res, s.User)
	}
	return tok, true
}
