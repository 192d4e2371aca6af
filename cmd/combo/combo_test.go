package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/backend"
	"github.com/npillmayer/combo/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pterm/pterm"
)

const exprGrammar = `
Expr = Expr "-" Term | Term .
Term = "(" Expr ")" | "n" .
`

func grammarFile(t *testing.T) string {
	dir, err := ioutil.TempDir("", "combo")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "expr.ebnf")
	if err := ioutil.WriteFile(path, []byte(exprGrammar), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo")
	defer teardown()
	//
	path := grammarFile(t)
	c, err := load(path, "Expr", "glr")
	if err != nil {
		t.Fatal(err)
	}
	if c.Backend != backend.GLR {
		t.Errorf("expected GLR backend, have %s", c.Backend)
	}
	if _, err := load(path, "", "lalr"); err == nil {
		t.Errorf("expected missing start production to be reported")
	}
	if _, err := load(path, "Expr", "earley"); err == nil {
		t.Errorf("expected unknown backend to be reported")
	}
}

func TestREPLCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo")
	defer teardown()
	//
	var out bytes.Buffer
	intp := &Intp{grammar: grammarFile(t), start: "Expr", engine: "lalr", out: &out}
	if err := intp.reload(); err != nil {
		t.Fatal(err)
	}
	if _, err := intp.Eval("n-(n)"); err != nil {
		t.Errorf("expected input to be accepted: %v", err)
	}
	if _, err := intp.Eval("n-"); err == nil {
		t.Errorf("expected input to be rejected")
	}
	if _, err := intp.Eval(":backend packrat"); err != nil || intp.compiled.Backend != backend.Packrat {
		t.Errorf("expected switch to packrat, error %v", err)
	}
	if _, err := intp.Eval(":dump table"); err == nil {
		t.Errorf("expected packrat to have no table")
	}
	if _, err := intp.Eval(":backend glr"); err != nil {
		t.Fatal(err)
	}
	if _, err := intp.Eval(":start Nope"); err == nil || intp.start != "Expr" {
		t.Errorf("expected unknown start to be rejected and previous start kept")
	}
	if _, err := intp.Eval(":start Term"); err != nil {
		t.Errorf("expected switch to start Term: %v", err)
	}
	out.Reset()
	if _, err := intp.Eval(":dump table"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "0:") {
		t.Errorf("expected table listing, have %q", out.String())
	}
	quit, err := intp.Execute(scanner.Command{Verb: "quit"})
	if !quit || err != nil {
		t.Errorf("expected :quit to end the REPL")
	}
}

func TestResultTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo")
	defer teardown()
	//
	tok := combo.SeqToken(combo.UIntToken('a'), nil, combo.SeqToken(combo.BytesToken([]byte("bc"))))
	ll := leveledToken(tok, pterm.LeveledList{}, 0)
	levels := []int{0, 1, 1, 1, 2}
	if len(ll) != len(levels) {
		t.Fatalf("expected %d items, have %d", len(levels), len(ll))
	}
	for i, l := range levels {
		if ll[i].Level != l {
			t.Errorf("item %d: expected level %d, have %d", i, l, ll[i].Level)
		}
	}
	if !strings.Contains(ll[1].Text, "'a'") || ll[2].Text != "nil" {
		t.Errorf("unexpected labels %q, %q", ll[1].Text, ll[2].Text)
	}
}
