package scanner

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

func TestLMAdapter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.scanner")
	defer teardown()
	//
	ids := map[string]int{"ID": 1, "NUM": 2, "+": 3, "nil": 4}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`([a-z]|[A-Z])([a-z]|[A-Z]|[0-9])*`), MakeToken("ID", ids["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", ids["NUM"]))
		lexer.Add([]byte(`( |\t)+`), Skip)
	}
	LM, err := NewLMAdapter(init, []string{"+"}, []string{"nil"}, ids)
	if err != nil {
		t.Fatal(err)
	}
	counts := map[string]int{"1": 1, "1+12": 3, "x + nil": 3, "": 0}
	for input, n := range counts {
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Fatal(err)
		}
		count := 0
		for token := sc.NextToken(); token.Type != EOF; token = sc.NextToken() {
			count++
		}
		if count != n {
			t.Errorf("expected %d tokens for %q, have %d", n, input, count)
		}
	}
	sc, _ := LM.Scanner("x + nil")
	sc.NextToken()
	plus := sc.NextToken()
	if plus.Type != 3 || plus.From != 2 || plus.To != 3 {
		t.Errorf("unexpected token %v", plus)
	}
	if kw := sc.NextToken(); kw.Type != 4 {
		t.Errorf("expected keyword nil, have %v", kw)
	}
}

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "combo.scanner")
	defer teardown()
	//
	cmd, err := ParseCommand(`:backend glr`)
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Verb != "backend" || len(cmd.Args) != 1 || cmd.Args[0] != "glr" {
		t.Errorf("unexpected command %v", cmd)
	}
	cmd, err = ParseCommand(`  :start "Expr" 12`)
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Verb != "start" || len(cmd.Args) != 2 || cmd.Args[0] != "Expr" || cmd.Args[1] != "12" {
		t.Errorf("unexpected command %v", cmd)
	}
	if cmd, err = ParseCommand(":quit"); err != nil || cmd.Verb != "quit" || len(cmd.Args) != 0 {
		t.Errorf("unexpected command %v, error %v", cmd, err)
	}
	for _, bad := range []string{"backend glr", ":frobnicate", ":dump : table", ":"} {
		if _, err := ParseCommand(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
	if !IsCommand(" :quit") || IsCommand("n-n") {
		t.Errorf("IsCommand misclassifies input")
	}
}
