/*
Command combo compiles EBNF grammars with the engines of module combo and
runs them on input.

	combo compile grammar.ebnf --start Expr --backend lalr --dot dfa.dot --html table.html
	combo parse   grammar.ebnf --start Expr --backend glr --input 'n-(n)'
	combo repl    grammar.ebnf --start Expr

The REPL parses every input line. Lines starting with a colon are commands:

	:backend glr       switch the back-end
	:start Term        switch the start production
	:dump grammar      print the grammar (also: dfa, table)
	:trace Debug       set the trace level
	:help
	:quit

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/combo/backend"
	"github.com/npillmayer/combo/ebnf"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracer traces with key 'combo'
func tracer() tracing.Trace {
	return tracing.Select("combo")
}

var traceKeys = []string{"combo", "combo.cfg", "combo.packrat", "combo.lr", "combo.glr",
	"combo.backend", "combo.ebnf", "combo.scanner"}

var rootFlags = struct {
	trace      *string
	start      *string
	backend    *string
	maxEngines *int
	maxSteps   *int
	keepLR0    *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "combo",
	Short: "Compile and run combinator parsers from EBNF grammars",
	Long: `combo reads a grammar in Go-style EBNF and compiles it for one of the
parsing engines packrat, lr0, lalr or glr. It prints grammars, automata and
parse tables, and parses input.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		gtrace.SyntaxTracer = gologadapter.New()
		setTraceLevel(*rootFlags.trace)
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	rootFlags.trace = f.String("trace", "Error", "Trace level [Debug|Info|Error]")
	rootFlags.start = f.StringP("start", "s", "", "start production of the grammar")
	rootFlags.backend = f.StringP("backend", "b", "lalr", "parsing engine [packrat|lr0|lalr|glr]")
	rootFlags.maxEngines = f.Int("max-engines", 0, "GLR: maximum number of engines per input position")
	rootFlags.maxSteps = f.Int("max-steps", 0, "GLR: maximum number of steps without consuming input")
	rootFlags.keepLR0 = f.Bool("keep-lr0", false, "do not upgrade LR(0) tables to LALR(1)")
	initDisplay()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(level string) {
	l := tracing.TraceLevelFromString(level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
	if gtrace.SyntaxTracer != nil {
		gtrace.SyntaxTracer.SetTraceLevel(l)
	}
}

// --- Shared setup ----------------------------------------------------------

func params() *backend.Params {
	return &backend.Params{
		MaxEngines:             *rootFlags.maxEngines,
		MaxSteps:               *rootFlags.maxSteps,
		KeepLR0:                *rootFlags.keepLR0,
		PanicOnProgrammerError: false,
	}
}

// load reads a grammar file and compiles production start for a back-end.
func load(path, start, engine string) (*backend.Compiled, error) {
	if start == "" {
		return nil, fmt.Errorf("no start production given, use --start")
	}
	b, err := backend.BackendFromString(engine)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open grammar: %w", err)
	}
	defer f.Close()
	p, err := ebnf.Compile(path, f, start)
	if err != nil {
		return nil, err
	}
	tracer().Infof("compiling %s from %s for %s", start, path, b)
	return backend.Compile(p, b, params())
}

func trimInput(s string) []byte {
	return []byte(strings.TrimRight(s, "\r\n"))
}
