package backend

import (
	"errors"
	"testing"

	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/parser"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// E -> E '-' T | T ;  T -> '(' E ')' | 'n'
func expression() *parser.Parser {
	E := parser.Indirect()
	T := parser.Choice(parser.Sequence(parser.Ch('('), E, parser.Ch(')')), parser.Ch('n'))
	parser.BindIndirect(E, parser.Choice(parser.Sequence(E, parser.Ch('-'), T), T))
	return E
}

// E -> E '+' E | 'd'
func ambiguous() *parser.Parser {
	E := parser.Indirect()
	parser.BindIndirect(E, parser.Choice(parser.Sequence(E, parser.Ch('+'), E), parser.Ch('d')))
	return E
}

func TestBackendNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.backend")
	defer teardown()
	//
	for _, b := range []Backend{Packrat, LR0, LALR, GLR} {
		x, err := BackendFromString(b.String())
		if err != nil || x != b {
			t.Errorf("cannot find backend %s by name", b)
		}
	}
	if b, _ := BackendFromString(" GLR "); b != GLR {
		t.Errorf("expected name lookup to ignore case and spaces")
	}
	if _, err := BackendFromString("earley"); err == nil {
		t.Errorf("expected unknown backend to be reported")
	}
}

func TestAllBackendsAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.backend")
	defer teardown()
	//
	input := []byte("n-(n-((n)))-n")
	p := expression()
	var first string
	for _, b := range []Backend{Packrat, LR0, LALR, GLR} {
		c, err := Compile(p, b, &Params{PanicOnProgrammerError: true})
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		r := c.Parse(input)
		if r == nil {
			t.Fatalf("%s rejects input", b)
		}
		if r.BitLength != 13*8 {
			t.Errorf("%s: expected %d bits, have %d", b, 13*8, r.BitLength)
		}
		if b == Packrat {
			first = combo.Unamb(r.AST)
		} else if u := combo.Unamb(r.AST); u != first {
			t.Errorf("%s: expected %s, have %s", b, first, u)
		}
	}
}

func TestAmbiguityNeedsGLR(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.backend")
	defer teardown()
	//
	p := ambiguous()
	_, err := Compile(p, LALR, &Params{})
	var ce *combo.CompileError
	if !errors.As(err, &ce) || ce.Backend != "lalr" || len(ce.States) == 0 {
		t.Fatalf("expected LALR compile error with states, got %v", err)
	}
	if !errors.Is(err, combo.ErrConflicts) {
		t.Errorf("expected ErrConflicts, got %v", err)
	}
	c, err := Compile(p, GLR, &Params{})
	if err != nil {
		t.Fatal(err)
	}
	if r := c.Parse([]byte("d+d+d")); r == nil || r.BitLength != 40 {
		t.Errorf("expected GLR to parse d+d+d, got %v", r)
	}
	if _, err := c.Start(); !errors.Is(err, combo.ErrNotStaged) {
		t.Errorf("expected GLR to refuse staged parsing")
	}
}

func TestNonContextFree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.backend")
	defer teardown()
	//
	p := parser.Sequence(parser.And(parser.Ch('a')), parser.Ch('a'))
	if _, err := Compile(p, LALR, &Params{}); !errors.Is(err, combo.ErrNotDesugarable) {
		t.Errorf("expected ErrNotDesugarable, got %v", err)
	}
	c, err := Compile(p, Packrat, &Params{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Parse([]byte("a")) == nil {
		t.Errorf("packrat should accept a")
	}
	if c.Grammar() != nil || c.Table() != nil {
		t.Errorf("packrat has no grammar")
	}
}

func TestUnboundIndirect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.backend")
	defer teardown()
	//
	p := parser.Sequence(parser.Ch('a'), parser.Indirect())
	for _, b := range []Backend{Packrat, GLR} {
		if _, err := Compile(p, b, &Params{}); !errors.Is(err, combo.ErrUnboundIndirect) {
			t.Errorf("%s: expected ErrUnboundIndirect, got %v", b, err)
		}
	}
}

func TestStagedParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.backend")
	defer teardown()
	//
	c, err := Compile(expression(), LALR, &Params{})
	if err != nil {
		t.Fatal(err)
	}
	s, err := c.Start()
	if err != nil {
		t.Fatal(err)
	}
	for _, chunk := range []string{"n-(", "n", ")-n"} {
		s.Chunk([]byte(chunk))
	}
	r := s.Finish()
	want := c.Parse([]byte("n-(n)-n"))
	if r == nil || want == nil || combo.Unamb(r.AST) != combo.Unamb(want.AST) {
		t.Errorf("staged parse differs from whole-input parse")
	}
}

func TestKeepLR0(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.backend")
	defer teardown()
	//
	// Many(a) followed by b: the empty repetition conflicts in LR(0)
	p := parser.Sequence(parser.Many(parser.Ch('a')), parser.Ch('b'))
	if _, err := Compile(p, LALR, &Params{KeepLR0: true}); !errors.Is(err, combo.ErrConflicts) {
		t.Errorf("expected LR(0) conflicts, got %v", err)
	}
	c, err := Compile(p, LALR, &Params{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Parse([]byte("aab")) == nil {
		t.Errorf("expected aab to be accepted")
	}
}

// The LR back-ends depend on FIRST and FOLLOW sets, which must be computed
// correctly for choices whose alternatives start with different terminals.
func TestLRBackendsAgreeWithPackrat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.backend")
	defer teardown()
	//
	word := parser.Many1(parser.ChRange('a', 'z'))
	for _, tc := range []struct {
		name   string
		p      *parser.Parser
		inputs []string
	}{
		{"choice", parser.Choice(parser.Ch('a'), parser.Ch('b')), []string{"a", "b"}},
		{"whitespace", parser.Whitespace(parser.Ch('x')), []string{"x", "  x", "\t\n x"}},
		{"sepby", parser.SepBy(word, parser.Ch(',')), []string{"ab", "ab,c", "a,b,cd"}},
		{"optional", parser.Sequence(parser.Optional(parser.Ch('a')), parser.Ch('b')), []string{"ab", "b"}},
	} {
		ref, err := Compile(tc.p, Packrat, &Params{})
		if err != nil {
			t.Fatalf("%s/packrat: %v", tc.name, err)
		}
		for _, b := range []Backend{LALR, GLR} {
			c, err := Compile(tc.p, b, &Params{PanicOnProgrammerError: true})
			if err != nil {
				t.Fatalf("%s/%s: %v", tc.name, b, err)
			}
			for _, input := range tc.inputs {
				want := ref.Parse([]byte(input))
				if want == nil {
					t.Fatalf("%s/packrat rejects %q", tc.name, input)
				}
				r := c.Parse([]byte(input))
				if r == nil {
					t.Errorf("%s/%s rejects %q", tc.name, b, input)
					continue
				}
				if r.BitLength != want.BitLength {
					t.Errorf("%s/%s %q: expected %d bits, have %d", tc.name, b, input,
						want.BitLength, r.BitLength)
				}
				if u, w := combo.Unamb(r.AST), combo.Unamb(want.AST); u != w {
					t.Errorf("%s/%s %q: expected %s, have %s", tc.name, b, input, w, u)
				}
			}
		}
	}
}
