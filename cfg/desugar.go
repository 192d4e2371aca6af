package cfg

import (
	"fmt"

	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/parser"
)

// Desugarer translates parsers into grammar symbols. Every parser is
// translated once; shared and recursive sub-graphs map to shared and
// recursive symbol graphs. A Desugarer carries the memo of one translation
// and must not be shared between goroutines.
type Desugarer struct {
	memo map[*parser.Parser]*Symbol
}

// NewDesugarer creates a desugarer with an empty memo.
func NewDesugarer() *Desugarer {
	return &Desugarer{memo: make(map[*parser.Parser]*Symbol)}
}

// Desugar translates a parser into a symbol of a context-free grammar.
// Parsers which are not context-free result in an error wrapping
// combo.ErrNotDesugarable, unbound indirects in combo.ErrUnboundIndirect.
func Desugar(p *parser.Parser) (*Symbol, error) {
	return NewDesugarer().Desugar(p)
}

// DesugarAugmented translates p and adds a start production S → p $, which
// requires a parse to consume the complete input.
func DesugarAugmented(p *parser.Parser) (*Symbol, error) {
	s, err := Desugar(p)
	if err != nil {
		return nil, err
	}
	start := NewChoice("start").AddAlternative(s, NewEnd())
	start.Reshape = ActFirst
	return start, nil
}

// FromParser desugars p with an augmented start production and creates a
// grammar from it.
func FromParser(p *parser.Parser) (*Grammar, error) {
	start, err := DesugarAugmented(p)
	if err != nil {
		return nil, err
	}
	return NewGrammar(start), nil
}

// Desugar translates p, re-using earlier translations of the same parser.
func (d *Desugarer) Desugar(p *parser.Parser) (*Symbol, error) {
	if p == nil {
		return nil, combo.ErrUnboundIndirect
	}
	if s, ok := d.memo[p]; ok {
		return s, nil
	}
	switch p.Kind() {
	case parser.KindCh:
		return d.remember(p, NewChar(p.Char())), nil
	case parser.KindCharset:
		return d.remember(p, NewCharSet(p.Charset())), nil
	case parser.KindEnd:
		return d.remember(p, NewEnd()), nil
	case parser.KindAnd, parser.KindNot, parser.KindButnot, parser.KindDifference,
		parser.KindXor, parser.KindLengthValue:
		return nil, fmt.Errorf("%w: %s", combo.ErrNotDesugarable, p.Kind())
	case parser.KindBits:
		if n, _ := p.Bits(); n%8 != 0 {
			return nil, fmt.Errorf("%w: bit field of width %d", combo.ErrNotDesugarable, n)
		}
	}
	// the choice is registered before recursing, so cycles find it
	ch := d.remember(p, NewChoice(p.Name()))
	if err := d.fill(ch, p); err != nil {
		return nil, err
	}
	return ch, nil
}

func (d *Desugarer) remember(p *parser.Parser, s *Symbol) *Symbol {
	if s.Tag == "" {
		s.Tag = p.Name()
	}
	d.memo[p] = s
	return s
}

func (d *Desugarer) all(ps []*parser.Parser) ([]*Symbol, error) {
	syms := make([]*Symbol, len(ps))
	for i, c := range ps {
		s, err := d.Desugar(c)
		if err != nil {
			return nil, err
		}
		syms[i] = s
	}
	return syms, nil
}

func (d *Desugarer) fill(ch *Symbol, p *parser.Parser) error {
	tracer().Debugf("desugar %s", p.Kind())
	switch p.Kind() {
	case parser.KindToken:
		lit := p.Literal()
		items := make([]*Symbol, len(lit))
		for i, c := range lit {
			items[i] = NewChar(c)
		}
		ch.AddAlternative(items...)
		ch.Reshape = reshapeToken
	case parser.KindBits:
		n, signed := p.Bits()
		anyByte := NewCharSet(combo.Charset{}.Complement())
		items := make([]*Symbol, n/8)
		for i := range items {
			items[i] = anyByte
		}
		ch.AddAlternative(items...)
		ch.Reshape = reshapeBits(n, signed)
	case parser.KindEpsilon:
		ch.AddAlternative()
		ch.Reshape = ActIgnore
	case parser.KindNothing:
		ch.Reshape = ActIgnore
	case parser.KindSequence:
		items, err := d.all(p.Children())
		if err != nil {
			return err
		}
		ch.AddAlternative(items...)
		ch.Reshape = reshapeSequence
	case parser.KindChoice:
		items, err := d.all(p.Children())
		if err != nil {
			return err
		}
		for _, s := range items {
			ch.AddAlternative(s)
		}
		ch.Reshape = ActFirst
	case parser.KindRepeat:
		return d.repetition(ch, p)
	case parser.KindOptional:
		items, err := d.all(p.Children())
		if err != nil {
			return err
		}
		ch.AddAlternative(items...).AddAlternative()
		ch.Reshape = reshapeOptional
	case parser.KindIgnore:
		items, err := d.all(p.Children())
		if err != nil {
			return err
		}
		ch.AddAlternative(items...)
		ch.Reshape = ActIgnore
	case parser.KindIgnoreSeq:
		items, err := d.all(p.Children())
		if err != nil {
			return err
		}
		ch.AddAlternative(items...)
		ch.Reshape = reshapeIndex(p.Which())
	case parser.KindWhitespace:
		items, err := d.all(p.Children())
		if err != nil {
			return err
		}
		ws := NewChoice("")
		ws.AddAlternative(NewCharSet(parser.WhitespaceChars), ws).AddAlternative()
		ws.Reshape = ActIgnore
		ch.AddAlternative(ws, items[0])
		ch.Reshape = reshapeIndex(1)
	case parser.KindAction:
		return d.wrap(ch, p, func(s *Symbol) {
			s.Action, s.User = p.ActionHook()
		})
	case parser.KindAttrBool:
		return d.wrap(ch, p, func(s *Symbol) {
			s.Pred, s.User = p.PredicateHook()
		})
	case parser.KindIntRange:
		lo, hi := p.Range()
		return d.wrap(ch, p, func(s *Symbol) {
			s.Pred = func(r *combo.ParseResult, _ interface{}) bool {
				return parser.InRange(r.AST, lo, hi)
			}
		})
	case parser.KindIndirect:
		if !p.Bound() {
			return combo.ErrUnboundIndirect
		}
		return d.wrap(ch, p, nil)
	default:
		return fmt.Errorf("%w: %s", combo.ErrNotDesugarable, p.Kind())
	}
	return nil
}

// wrap creates a single alternative for the only child of p.
func (d *Desugarer) wrap(ch *Symbol, p *parser.Parser, hooks func(*Symbol)) error {
	items, err := d.all(p.Children())
	if err != nil {
		return err
	}
	ch.AddAlternative(items...)
	ch.Reshape = ActFirst
	if hooks != nil {
		hooks(ch)
	}
	return nil
}

// repetition desugars Many, Many1, SepBy, SepBy1 and RepeatN.
//
//    Many(A):      M  -> A Mr | ε        Mr -> A Mr | ε
//    SepBy1(A,S):  M  -> A Mr            Mr -> S A Mr | ε
//    RepeatN(A,3): M  -> A A A
func (d *Desugarer) repetition(ch *Symbol, p *parser.Parser) error {
	a, err := d.Desugar(p.Children()[0])
	if err != nil {
		return err
	}
	var sep *Symbol
	if p.Separator() != nil {
		if sep, err = d.Desugar(p.Separator()); err != nil {
			return err
		}
	}
	count, atLeast := p.Count()
	if !atLeast {
		items := make([]*Symbol, 0, 2*count)
		for i := 0; i < count; i++ {
			if i > 0 && sep != nil {
				items = append(items, sep)
			}
			items = append(items, a)
		}
		ch.AddAlternative(items...)
		if sep != nil {
			ch.Reshape = reshapeEvery(2)
		} else {
			ch.Reshape = reshapeSequence
		}
		return nil
	}
	rest := NewChoice("")
	if sep != nil {
		rest.AddAlternative(sep, a, rest)
	} else {
		rest.AddAlternative(a, rest)
	}
	rest.AddAlternative()
	rest.Reshape = reshapeMany
	ch.AddAlternative(a, rest)
	if count == 0 {
		ch.AddAlternative()
	}
	ch.Reshape = reshapeMany
	return nil
}
