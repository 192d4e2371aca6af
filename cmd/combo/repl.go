package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/combo/backend"
	"github.com/npillmayer/combo/lr"
	"github.com/npillmayer/combo/scanner"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "repl <grammar file path>",
		Short:   "Parse input lines interactively",
		Example: `  combo repl expr.ebnf --start Expr`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	intp := &Intp{
		grammar: args[0],
		start:   *rootFlags.start,
		engine:  *rootFlags.backend,
		out:     os.Stdout,
	}
	if err := intp.reload(); err != nil {
		return err
	}
	repl, err := readline.New("combo> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
	return nil
}

// Intp is our interpreter object
type Intp struct {
	grammar  string
	start    string
	engine   string
	compiled *backend.Compiled
	repl     *readline.Instance
	out      io.Writer
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Eval executes a command line or parses an input line.
func (intp *Intp) Eval(line string) (quit bool, err error) {
	if !scanner.IsCommand(line) {
		r := intp.compiled.Parse([]byte(line))
		if r == nil {
			return false, fmt.Errorf("input not accepted by %s parser", intp.compiled.Backend)
		}
		printResult(intp.compiled, r, true)
		return false, nil
	}
	cmd, err := scanner.ParseCommand(line)
	if err != nil {
		return false, err
	}
	tracer().Debugf("command %v", cmd)
	return intp.Execute(cmd)
}

// Execute runs a REPL command.
func (intp *Intp) Execute(cmd scanner.Command) (quit bool, err error) {
	arg := func() (string, error) {
		if len(cmd.Args) != 1 {
			return "", fmt.Errorf(":%s needs exactly one argument", cmd.Verb)
		}
		return cmd.Args[0], nil
	}
	switch cmd.Verb {
	case "quit":
		return true, nil
	case "help":
		fmt.Fprintln(intp.out, ":backend packrat|lr0|lalr|glr  :start <production>  :dump grammar|dfa|table  :trace <level>  :quit")
	case "backend":
		a, err := arg()
		if err != nil {
			return false, err
		}
		return false, intp.switchTo(a, intp.start)
	case "start":
		a, err := arg()
		if err != nil {
			return false, err
		}
		return false, intp.switchTo(intp.engine, a)
	case "trace":
		a, err := arg()
		if err != nil {
			return false, err
		}
		setTraceLevel(a)
	case "dump":
		a, err := arg()
		if err != nil {
			return false, err
		}
		return false, intp.dump(a)
	default:
		return false, fmt.Errorf("unknown command :%s", cmd.Verb)
	}
	return false, nil
}

// switchTo recompiles the grammar. On error, the previous setup is kept.
func (intp *Intp) switchTo(engine, start string) error {
	prevEngine, prevStart := intp.engine, intp.start
	intp.engine, intp.start = engine, start
	if err := intp.reload(); err != nil {
		intp.engine, intp.start = prevEngine, prevStart
		return err
	}
	pterm.Info.Println(fmt.Sprintf("%s parser for %s", intp.compiled.Backend, start))
	return nil
}

func (intp *Intp) reload() error {
	c, err := load(intp.grammar, intp.start, intp.engine)
	if err != nil {
		return err
	}
	intp.compiled = c
	return nil
}

func (intp *Intp) dump(what string) error {
	c := intp.compiled
	if c.Backend == backend.Packrat {
		return fmt.Errorf("packrat parsers have no %s", what)
	}
	switch what {
	case "grammar":
		c.Grammar().Print(intp.out)
		c.Grammar().PrintSets(intp.out)
	case "dfa":
		c.CFSM().GraphViz(intp.out)
	case "table":
		c.Table().Print(intp.out)
	case "html":
		lr.ActionTableAsHTML(c.Table(), intp.out)
	default:
		return fmt.Errorf("cannot dump %q, try grammar, dfa or table", what)
	}
	return nil
}
