package lr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/cfg"
	"github.com/npillmayer/combo/parser"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func tables(t *testing.T, p *parser.Parser) (*CFSM, *Table) {
	g, err := cfg.FromParser(p)
	if err != nil {
		t.Fatal(err)
	}
	dfa := BuildCFSM(g)
	return dfa, BuildLR0Table(dfa)
}

// run drives a single engine, as a deterministic parser would.
func run(table *Table, input string) *combo.ParseResult {
	e := NewEngine(table, combo.NewInputStream([]byte(input)))
	for e.Running() {
		a := e.Action()
		if a != nil && a.Kind == ConflictAction {
			return nil
		}
		e.Step(a)
	}
	return e.Result()
}

func TestLR0Adequate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.lr")
	defer teardown()
	//
	dfa, table := tables(t, parser.Sequence(parser.Ch('a'), parser.Ch('b')))
	if !table.IsAdequate() {
		t.Fatalf("expected LR(0) table for 'ab' to be adequate")
	}
	if dfa.Size() != table.Rows() {
		t.Errorf("table rows do not match CFSM states")
	}
	if r := run(table, "ab"); r == nil || combo.Unamb(r.AST) != "(u0x61 u0x62)" || r.BitLength != 16 {
		t.Errorf("unexpected result %v", r)
	}
	if run(table, "abc") != nil {
		t.Errorf("LR parser must reject trailing input")
	}
	if run(table, "a") != nil {
		t.Errorf("LR parser must reject incomplete input")
	}
}

func TestLALRIsNoOpForAdequateTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.lr")
	defer teardown()
	//
	dfa, table := tables(t, parser.Sequence(parser.Ch('a'), parser.ChRange('0', '9')))
	before := table.Fingerprint()
	UpgradeLALR(dfa, table)
	if table.Fingerprint() != before {
		t.Errorf("LALR upgrade changed an adequate table")
	}
	_, again := tables(t, parser.Sequence(parser.Ch('a'), parser.ChRange('0', '9')))
	if again.Fingerprint() != before {
		t.Errorf("fingerprint not reproducible")
	}
}

func TestLALRResolvesEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.lr")
	defer teardown()
	//
	dfa, table := tables(t, parser.Sequence(parser.Many(parser.Ch('a')), parser.Ch('b')))
	if table.IsAdequate() {
		t.Fatalf("expected LR(0) conflict between shifting 'a' and reducing ε")
	}
	UpgradeLALR(dfa, table)
	if !table.IsAdequate() {
		t.Fatalf("expected LALR to resolve all states, inadequate = %v", table.Inadequate())
	}
	cases := map[string]string{
		"aab": "((u0x61 u0x61) u0x62)",
		"b":   "(() u0x62)",
	}
	for input, want := range cases {
		r := run(table, input)
		if r == nil || combo.Unamb(r.AST) != want {
			t.Errorf("%q: expected %s, got %v", input, want, r)
		}
	}
}

func TestLALRKeepsAmbiguity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.lr")
	defer teardown()
	//
	E := parser.Indirect()
	parser.BindIndirect(E, parser.Choice(parser.Sequence(E, parser.Ch('+'), E), parser.Ch('d')))
	dfa, table := tables(t, E)
	UpgradeLALR(dfa, table)
	if table.IsAdequate() || !table.HasConflicts() {
		t.Fatalf("ambiguous grammar must keep a conflict")
	}
	var b bytes.Buffer
	ActionTableAsHTML(table, &b)
	if !strings.Contains(b.String(), "/r") {
		t.Errorf("expected a conflict pair in HTML export")
	}
	b.Reset()
	table.Print(&b)
	if !strings.Contains(b.String(), "!") || !strings.Contains(b.String(), "c(") {
		t.Errorf("expected listing to mark the conflict, have\n%s", b.String())
	}
}

func TestExpressionTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.lr")
	defer teardown()
	//
	e := parser.Indirect()
	term := parser.Choice(parser.Sequence(parser.Ch('('), e, parser.Ch(')')), parser.Ch('n'))
	parser.BindIndirect(e, parser.Choice(parser.Sequence(e, parser.Ch('-'), term), term))
	dfa, table := tables(t, e)
	UpgradeLALR(dfa, table)
	if !table.IsAdequate() {
		t.Fatalf("expression grammar should be LALR(1)")
	}
	r := run(table, "n-(n-((n)))-n")
	want := "((u0x6e u0x2d (u0x28 (u0x6e u0x2d (u0x28 (u0x28 u0x6e u0x29) u0x29)) u0x29)) u0x2d u0x6e)"
	if r == nil || combo.Unamb(r.AST) != want {
		t.Errorf("expected\n%s\ngot\n%v", want, r)
	}
	var b bytes.Buffer
	dfa.GraphViz(&b)
	if !strings.HasPrefix(b.String(), "digraph {") {
		t.Errorf("unexpected GraphViz export")
	}
}

func TestCharsetReduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.lr")
	defer teardown()
	//
	dfa, table := tables(t, parser.Sequence(parser.Uint16(), parser.In('x', 'y')))
	UpgradeLALR(dfa, table)
	r := run(table, "\x12\x34y")
	if r == nil || combo.Unamb(r.AST) != "(u0x1234 u0x79)" {
		t.Errorf("unexpected result %v", r)
	}
}

func TestMergeDemerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.lr")
	defer teardown()
	//
	dfa, table := tables(t, parser.Sequence(parser.Ch('a'), parser.Ch('b'), parser.Ch('c')))
	UpgradeLALR(dfa, table)
	e1 := NewEngine(table, combo.NewInputStream([]byte("abc")))
	for i := 0; i < 2; i++ { // shift 'a' and 'b'
		e1.Step(e1.Action())
	}
	e2 := e1.Fork()
	m := Merge(e1, e2)
	if !m.IsMerged() || m.depth != 0 {
		t.Fatalf("merged engine must not own frames")
	}
	m.Step(m.Action()) // shift 'c'
	a := m.Action()    // lookahead $: reduce the sequence, 3 frames
	engines := m.Demerge(a.Length())
	if len(engines) != 2 {
		t.Fatalf("expected 2 respawned engines, have %d", len(engines))
	}
	for _, e := range engines {
		if e.depth != 3 {
			t.Errorf("respawned engine should own 3 frames, has %d", e.depth)
		}
		for e.Running() {
			e.Step(e.Action())
		}
		if r := e.Result(); r == nil || combo.Unamb(r.AST) != "(u0x61 u0x62 u0x63)" {
			t.Errorf("respawned engine did not accept: %v", r)
		}
	}
}
