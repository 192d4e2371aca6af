package glr

import (
	"testing"

	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/cfg"
	"github.com/npillmayer/combo/lr"
	"github.com/npillmayer/combo/packrat"
	"github.com/npillmayer/combo/parser"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func table(t *testing.T, p *parser.Parser) *lr.Table {
	g, err := cfg.FromParser(p)
	if err != nil {
		t.Fatal(err)
	}
	dfa := lr.BuildCFSM(g)
	tbl := lr.BuildLR0Table(dfa)
	lr.UpgradeLALR(dfa, tbl)
	return tbl
}

// E -> E '+' E | 'd'
func ambiguous() *parser.Parser {
	E := parser.Indirect()
	parser.BindIndirect(E, parser.Choice(parser.Sequence(E, parser.Ch('+'), E), parser.Ch('d')))
	return E
}

func TestAmbiguousGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.glr")
	defer teardown()
	//
	tbl := table(t, ambiguous())
	if tbl.IsAdequate() {
		t.Fatalf("expected conflicts in table for ambiguous grammar")
	}
	p := NewParser(tbl)
	r := p.Parse([]byte("d+d+d"))
	if r == nil {
		t.Fatalf("expected d+d+d to be accepted")
	}
	if r.BitLength != 40 {
		t.Errorf("expected result to cover 40 bits, have %d", r.BitLength)
	}
	for _, input := range []string{"d+", "+d", "dd", ""} {
		if p.Parse([]byte(input)) != nil {
			t.Errorf("expected %q to be rejected", input)
		}
	}
}

func TestExpressionAgreesWithPackrat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.glr")
	defer teardown()
	//
	// E -> E '-' T | T ;  T -> '(' E ')' | 'n'
	E := parser.Indirect()
	T := parser.Choice(parser.Sequence(parser.Ch('('), E, parser.Ch(')')), parser.Ch('n'))
	parser.BindIndirect(E, parser.Choice(parser.Sequence(E, parser.Ch('-'), T), T))
	input := []byte("n-(n-((n)))-n")
	want := packrat.Parse(E, input)
	if want == nil {
		t.Fatalf("packrat rejects expression")
	}
	got := NewParser(table(t, E)).Parse(input)
	if got == nil {
		t.Fatalf("GLR rejects expression")
	}
	if combo.Unamb(got.AST) != combo.Unamb(want.AST) {
		t.Errorf("expected %s, have %s", combo.Unamb(want.AST), combo.Unamb(got.AST))
	}
	if got.BitLength != want.BitLength {
		t.Errorf("expected %d bits, have %d", want.BitLength, got.BitLength)
	}
}

// S -> A T | B T ;  A -> 'a' ;  B -> 'a' ;  T -> 'b' 'c'
//
// Both derivations reach the state after 'b' and are merged there. Reducing
// T reaches below the merge point.
func TestMergeAndDemerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.glr")
	defer teardown()
	//
	A := parser.Sequence(parser.Ch('a'))
	B := parser.Sequence(parser.Ch('a'))
	T := parser.Sequence(parser.Ch('b'), parser.Ch('c'))
	S := parser.Choice(parser.Sequence(A, T), parser.Sequence(B, T))
	tbl := table(t, S)
	if tbl.IsAdequate() {
		t.Fatalf("expected reduce/reduce conflict between A and B")
	}
	input := []byte("abc")
	got := NewParser(tbl).Parse(input)
	if got == nil {
		t.Fatalf("GLR rejects abc")
	}
	want := packrat.Parse(S, input)
	if combo.Unamb(got.AST) != combo.Unamb(want.AST) {
		t.Errorf("expected %s, have %s", combo.Unamb(want.AST), combo.Unamb(got.AST))
	}
	if NewParser(tbl).Parse([]byte("abd")) != nil {
		t.Errorf("expected abd to be rejected")
	}
}

func TestEngineLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.glr")
	defer teardown()
	//
	p := NewParser(table(t, ambiguous()), MaxEngines(1), MaxSteps(100))
	if p.maxEngines != 1 || p.maxSteps != 100 {
		t.Fatalf("options not applied")
	}
	if p.Parse([]byte("d+d")) == nil {
		t.Errorf("expected d+d to be accepted with a single engine")
	}
	if NewParser(table(t, ambiguous())).maxSteps != DefaultMaxSteps {
		t.Errorf("expected default step limit")
	}
}
