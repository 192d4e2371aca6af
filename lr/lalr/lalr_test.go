package lalr

import (
	"errors"
	"testing"

	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/cfg"
	"github.com/npillmayer/combo/lr"
	"github.com/npillmayer/combo/parser"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func newParser(t *testing.T, p *parser.Parser) (*Parser, error) {
	g, err := cfg.FromParser(p)
	if err != nil {
		t.Fatal(err)
	}
	dfa := lr.BuildCFSM(g)
	table := lr.BuildLR0Table(dfa)
	lr.UpgradeLALR(dfa, table)
	return NewParser(table)
}

func csvParser() *parser.Parser {
	field := parser.Many1(parser.ChRange('a', 'z'))
	return parser.SepBy(field, parser.Ch(','))
}

func TestParseComplete(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.lr")
	defer teardown()
	//
	p, err := newParser(t, csvParser())
	if err != nil {
		t.Fatal(err)
	}
	r := p.Parse([]byte("ab,c"))
	if r == nil || combo.Unamb(r.AST) != "((u0x61 u0x62) (u0x63))" {
		t.Errorf("unexpected result %v", r)
	}
	if r := p.Parse([]byte("")); r == nil || combo.Unamb(r.AST) != "()" {
		t.Errorf("expected empty list, got %v", r)
	}
	if p.Parse([]byte("ab,")) != nil {
		t.Errorf("dangling separator must be rejected")
	}
}

func TestParseChunks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.lr")
	defer teardown()
	//
	p, err := newParser(t, csvParser())
	if err != nil {
		t.Fatal(err)
	}
	s := p.Start()
	for _, chunk := range []string{"a", "b,", "", "cd"} {
		if s.Chunk([]byte(chunk)) {
			t.Fatalf("parse must not be done before the end of input")
		}
	}
	r := s.Finish()
	if r == nil || combo.Unamb(r.AST) != "((u0x61 u0x62) (u0x63 u0x64))" {
		t.Errorf("unexpected result %v", r)
	}
	if r != nil && r.BitLength != 40 {
		t.Errorf("expected 40 bits, have %d", r.BitLength)
	}
}

func TestChunkedSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.lr")
	defer teardown()
	//
	p, err := newParser(t, csvParser())
	if err != nil {
		t.Fatal(err)
	}
	s := p.Start()
	if !s.Chunk([]byte("a;")) {
		t.Errorf("expected parse to stop at syntax error")
	}
	if s.Finish() != nil {
		t.Errorf("expected no result")
	}
}

func TestConflictsRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.lr")
	defer teardown()
	//
	E := parser.Indirect()
	parser.BindIndirect(E, parser.Choice(parser.Sequence(E, parser.Ch('+'), E), parser.Ch('d')))
	_, err := newParser(t, E)
	if !errors.Is(err, combo.ErrConflicts) {
		t.Errorf("expected ErrConflicts, got %v", err)
	}
}
