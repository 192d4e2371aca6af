/*
Package scanner wraps the lexmachine scanner generator into a simple
tokenizer interface. It is used by the combo command line tool to read
REPL commands.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing literals, keywords and regular
expressions. Clients use NewLMAdapter to wrap lexmachine into a Tokenizer:

	init := func(lexer *lexmachine.Lexer) {
		// scanner.Skip      is a pre-defined action which ignores the scanned match
		// scanner.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   scanner.Token
	}
	LM, err := scanner.NewLMAdapter(init, literals, keywords, tokenIds)

A scanner is instantiated for each concrete input sequence, and tokens are read
until EOF.

	scan, err := LM.Scanner("input string to tokenize")
	for token := scan.NextToken(); token.Type != scanner.EOF; token = scan.NextToken() {
		…
	}

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'combo.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("combo.scanner")
}

// EOF is the token type signalling the end of input.
const EOF = -1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() Token
	SetErrorHandler(func(error))
}

// Token is a very unsophisticated token type. From and To are byte positions
// of the lexeme within the input.
type Token struct {
	Type     int
	Lexeme   string
	From, To uint64
}

func (t Token) String() string {
	if t.Type == EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("(%d:%q@%d)", t.Type, t.Lexeme, t.From)
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}
