package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/npillmayer/combo"
	"github.com/npillmayer/combo/backend"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	input *string
	tree  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Parse a text",
		Example: `  echo 'n-(n)' | combo parse expr.ebnf --start Expr --backend glr`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.input = cmd.Flags().StringP("input", "i", "", "text to parse (default stdin)")
	parseFlags.tree = cmd.Flags().Bool("tree", true, "print the result as a tree")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	c, err := load(args[0], *rootFlags.start, *rootFlags.backend)
	if err != nil {
		return err
	}
	var input []byte
	if cmd.Flags().Changed("input") {
		input = []byte(*parseFlags.input)
	} else {
		if input, err = ioutil.ReadAll(os.Stdin); err != nil {
			return err
		}
		input = trimInput(string(input))
	}
	r := c.Parse(input)
	if r == nil {
		return fmt.Errorf("input not accepted by %s parser", c.Backend)
	}
	printResult(c, r, *parseFlags.tree)
	return nil
}

func printResult(c *backend.Compiled, r *combo.ParseResult, tree bool) {
	pterm.Info.Println(fmt.Sprintf("%s parser matched %d bits", c.Backend, r.BitLength))
	pterm.Println(combo.Unamb(r.AST))
	if tree {
		pterm.DefaultTree.WithRoot(resultTree(r.AST)).Render()
	}
}
