package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/combo/backend"
	"github.com/npillmayer/combo/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	dot   *string
	html  *string
	table *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile <grammar file path>",
		Short:   "Compile a grammar and report on the automaton",
		Example: `  combo compile expr.ebnf --start Expr --backend lalr --html table.html`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCompile,
	}
	compileFlags.dot = cmd.Flags().String("dot", "", "write the LR(0) automaton to a GraphViz file")
	compileFlags.html = cmd.Flags().String("html", "", "write the parse table to an HTML file")
	compileFlags.table = cmd.Flags().Bool("table", false, "print the parse table")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	c, err := load(args[0], *rootFlags.start, *rootFlags.backend)
	if err != nil {
		return err
	}
	report(c, *compileFlags.table)
	if c.Backend == backend.Packrat {
		return nil
	}
	if *compileFlags.dot != "" {
		if err := writeFile(*compileFlags.dot, func(f *os.File) { c.CFSM().GraphViz(f) }); err != nil {
			return err
		}
	}
	if *compileFlags.html != "" {
		if err := writeFile(*compileFlags.html, func(f *os.File) { lr.ActionTableAsHTML(c.Table(), f) }); err != nil {
			return err
		}
	}
	return nil
}

// report prints grammar and table statistics for a compiled parser.
func report(c *backend.Compiled, withTable bool) {
	if c.Backend == backend.Packrat {
		pterm.Info.Println("packrat parsers need no compilation")
		return
	}
	pterm.DefaultSection.Println("Grammar")
	c.Grammar().Print(os.Stdout)
	pterm.DefaultSection.Println("Automaton")
	t := c.Table()
	data := pterm.TableData{
		{"backend", "states", "rules", "inadequate", "fingerprint"},
		{c.Backend.String(), fmt.Sprint(c.CFSM().Size()), fmt.Sprint(len(t.Rules())),
			fmt.Sprint(t.Inadequate()), t.Fingerprint()},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if withTable {
		pterm.DefaultSection.Println("Table")
		t.Print(os.Stdout)
	}
}

func writeFile(path string, write func(*os.File)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	write(f)
	if err := f.Close(); err != nil {
		return err
	}
	pterm.Info.Println("wrote " + path)
	return nil
}
