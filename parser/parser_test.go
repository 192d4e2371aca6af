package parser

import (
	"testing"

	"github.com/npillmayer/combo"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestWalkRecursiveGraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.parser")
	defer teardown()
	//
	e := Indirect()
	if e.Bound() {
		t.Errorf("fresh indirect should be unbound")
	}
	term := Choice(Sequence(Ch('('), e, Ch(')')), Ch('n'))
	BindIndirect(e, Choice(Sequence(e, Ch('-'), term), term))
	if !e.Bound() {
		t.Errorf("indirect should be bound")
	}
	n := 0
	Walk(e, func(*Parser) bool { n++; return true })
	// e, choice, seq(e-term), '-', term-choice, seq('(' e ')'), '(', ')', 'n'
	if n != 9 {
		t.Errorf("expected 9 distinct parsers, walked %d", n)
	}
	if !IsContextFree(e) {
		t.Errorf("expression grammar should be context-free")
	}
}

func TestNonContextFree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.parser")
	defer teardown()
	//
	if IsContextFree(Sequence(Ch('a'), And(Ch('b')))) {
		t.Errorf("lookahead must not be context-free")
	}
	if IsContextFree(Bits(3, false)) {
		t.Errorf("unaligned bit field must not be context-free")
	}
	if !IsContextFree(Sequence(Uint16(), Many(Ch('x')))) {
		t.Errorf("byte aligned bit fields are context-free")
	}
}

func TestRepetitionCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.parser")
	defer teardown()
	//
	if c, min := Many1(Ch('a')).Count(); c != 1 || !min {
		t.Errorf("many1 should be at-least-1")
	}
	if c, min := RepeatN(Ch('a'), 3).Count(); c != 3 || min {
		t.Errorf("repeat_n should be exactly 3")
	}
	if SepBy(Ch('a'), Ch(',')).Separator() == nil {
		t.Errorf("sepBy lost its separator")
	}
}

func TestInRange(t *testing.T) {
	if !InRange(combo.UIntToken(5), 1, 10) || InRange(combo.UIntToken(11), 1, 10) {
		t.Errorf("uint range check failed")
	}
	if !InRange(combo.SIntToken(-3), -5, 0) || InRange(combo.SIntToken(-6), -5, 0) {
		t.Errorf("sint range check failed")
	}
	if InRange(combo.BytesToken([]byte("x")), 0, 100) {
		t.Errorf("non-integer must not be in range")
	}
}
