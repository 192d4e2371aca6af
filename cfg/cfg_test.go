package cfg

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/parser"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// p = Choice(Sequence(c, 'y'), End) with c = Many('x')
func TestExampleFirstFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.cfg")
	defer teardown()
	//
	c := parser.Many(parser.Ch('x'))
	q := parser.Sequence(c, parser.Ch('y'))
	p := parser.Choice(q, parser.End())
	d := NewDesugarer()
	start, err := d.Desugar(p)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGrammar(start)
	cs, qs := d.memo[c], d.memo[q]
	if !g.Nullable(cs) {
		t.Errorf("expected many('x') to be nullable")
	}
	if g.Nullable(qs) || g.Nullable(start) {
		t.Errorf("expected sequence and start not to be nullable")
	}
	first := g.First(start)
	for _, tok := range []int{'x', 'y', EndToken} {
		if !first.Has(tok) {
			t.Errorf("expected %s in FIRST(p) = %s", TokenString(tok), first)
		}
	}
	follow := g.Follow(cs)
	if !follow.Has('y') || follow.Has(EndToken) || follow.Has('x') {
		t.Errorf("expected FOLLOW(c) = {'y'}, is %s", follow)
	}
	if !g.Follow(start).Has(EndToken) {
		t.Errorf("start symbol must be followed by end of input")
	}
	t.Logf("\n%s", g)
}

func TestAnalysisIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.cfg")
	defer teardown()
	//
	g, err := FromParser(exprParser())
	if err != nil {
		t.Fatal(err)
	}
	for _, A := range g.Nonterminals() {
		n1, f1, w1 := g.Nullable(A), g.First(A).Copy(), g.Follow(A).Copy()
		n2, f2, w2 := g.Nullable(A), g.First(A), g.Follow(A)
		if n1 != n2 || !f1.Equals(f2) || !w1.Equals(w2) {
			t.Errorf("analysis of %s not stable", g.SymbolName(A))
		}
	}
}

func TestMutualLeftRecursionFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.cfg")
	defer teardown()
	//
	// A -> B 'x' | 'a' ;  B -> A 'y' | 'b'
	A, B := NewChoice("A"), NewChoice("B")
	A.AddAlternative(B, NewChar('x')).AddAlternative(NewChar('a'))
	B.AddAlternative(A, NewChar('y')).AddAlternative(NewChar('b'))
	g := NewGrammar(A)
	for _, s := range []*Symbol{A, B} {
		if f := g.First(s); !f.Has('a') || !f.Has('b') || f.Len() != 2 {
			t.Errorf("expected FIRST(%s) = {'a' 'b'}, is %s", s.Tag, f)
		}
	}
	if f := g.Follow(A); !f.Has('y') || !f.Has(EndToken) {
		t.Errorf("expected FOLLOW(A) = {'y' $}, is %s", f)
	}
}

func TestSharedSymbolNumberedOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.cfg")
	defer teardown()
	//
	shared := parser.Sequence(parser.Ch('s'), parser.Ch('t'))
	left := parser.Sequence(parser.Ch('l'), shared)
	right := parser.Sequence(parser.Ch('r'), shared)
	g, err := FromParser(parser.Choice(left, right))
	if err != nil {
		t.Fatal(err)
	}
	// start, choice, left, shared, right
	if n := len(g.Nonterminals()); n != 5 {
		t.Errorf("expected 5 non-terminals, have %d:\n%s", n, g)
	}
	if o, _ := g.Ordinal(g.Start); o != 0 {
		t.Errorf("start symbol must have number 0")
	}
}

func TestTerminalStartIsWrapped(t *testing.T) {
	s, err := Desugar(parser.Ch('a'))
	if err != nil {
		t.Fatal(err)
	}
	g := NewGrammar(s)
	if !g.Start.IsNonterminal() || len(g.Start.Alts) != 1 {
		t.Errorf("expected start wrapped into a choice")
	}
	if !g.First(g.Start).Has('a') {
		t.Errorf("FIRST of wrapped start lost 'a'")
	}
}

func TestDesugarErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.cfg")
	defer teardown()
	//
	_, err := Desugar(parser.Sequence(parser.Ch('a'), parser.Not(parser.Ch('b'))))
	if !errors.Is(err, combo.ErrNotDesugarable) {
		t.Errorf("expected ErrNotDesugarable, got %v", err)
	}
	_, err = Desugar(parser.Sequence(parser.Ch('a'), parser.Indirect()))
	if !errors.Is(err, combo.ErrUnboundIndirect) {
		t.Errorf("expected ErrUnboundIndirect, got %v", err)
	}
}

func TestRepetitionShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.cfg")
	defer teardown()
	//
	s, err := Desugar(parser.SepBy1(parser.Ch('a'), parser.Ch(',')))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Alts) != 1 || len(s.Alts[0].Items) != 2 {
		t.Fatalf("expected SepBy1 to desugar to a single 'A rest' alternative")
	}
	rest := s.Alts[0].Items[1]
	if len(rest.Alts) != 2 || len(rest.Alts[0].Items) != 3 || len(rest.Alts[1].Items) != 0 {
		t.Errorf("expected rest -> sep A rest | ε")
	}
	// simulate the value an LR parser builds for "a,a,a"
	a := combo.UIntToken('a')
	sep := combo.UIntToken(',')
	empty, _ := rest.Reduce(&combo.ParseResult{AST: combo.SeqToken()})
	r2, _ := rest.Reduce(&combo.ParseResult{AST: combo.SeqToken(sep, a, empty)})
	r1, _ := rest.Reduce(&combo.ParseResult{AST: combo.SeqToken(sep, a, r2)})
	v, _ := s.Reduce(&combo.ParseResult{AST: combo.SeqToken(a, r1)})
	if got := combo.Unamb(v); got != "(u0x61 u0x61 u0x61)" {
		t.Errorf("unexpected value %s", got)
	}
}

func TestPrintGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.cfg")
	defer teardown()
	//
	s, _ := Desugar(parser.Sequence(parser.Ch('a'), parser.Many(parser.Ch('b'))))
	g := NewGrammar(s)
	out := g.String()
	if !strings.HasPrefix(out, "A -> 'a' B\n") || !strings.Contains(out, `| ""`) {
		t.Errorf("unexpected grammar listing:\n%s", out)
	}
}

// E -> E '-' T | T ;  T -> '(' E ')' | 'n'
func exprParser() *parser.Parser {
	e := parser.Indirect().Named("E")
	term := parser.Choice(parser.Sequence(parser.Ch('('), e, parser.Ch(')')), parser.Ch('n')).Named("T")
	parser.BindIndirect(e, parser.Choice(parser.Sequence(e, parser.Ch('-'), term), term))
	return e
}

func TestTokenSetAddAllReportsGrowthOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.cfg")
	defer teardown()
	//
	ab := NewTokenSet('a', 'b')
	if ab.AddAll(NewTokenSet('a')) {
		t.Errorf("adding a subset must not change the set")
	}
	if ab.AddAll(ab.Copy()) {
		t.Errorf("adding an equal set must not change the set")
	}
	if !ab.AddAll(NewTokenSet('c')) || ab.Len() != 3 {
		t.Errorf("adding a new token must change the set, have %s", ab)
	}
	if ab.AddAll(nil) {
		t.Errorf("adding nil must not change the set")
	}
}

func TestFirstOfChoiceBetweenTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.cfg")
	defer teardown()
	//
	start, err := Desugar(parser.Choice(parser.Ch('a'), parser.Ch('b')))
	if err != nil {
		t.Fatal(err)
	}
	g := NewGrammar(start)
	first := g.First(start)
	if !first.Has('a') || !first.Has('b') || first.Len() != 2 {
		t.Errorf("expected FIRST = {'a','b'}, have %s", first)
	}
	if !g.Follow(start).Has(EndToken) {
		t.Errorf("expected $ in FOLLOW(start)")
	}
}
