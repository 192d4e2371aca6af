package scanner

import (
	"strings"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals (':', ';', …), a list of keywords ("start", "quit", …) and a
// map for translating token strings to their values. Literals and keywords
// take precedence over the patterns added by init.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	init(adapter.Lexer)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{s, logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface. Unconsumed input is reported
// to the error handler and skipped.
func (lms *LMScanner) NextToken() Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return Token{Type: EOF}
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d %q", token.Type, token.Lexeme)
	return Token{
		Type:   token.Type,
		Lexeme: string(token.Lexeme),
		From:   uint64(token.TC),
		To:     uint64(token.TC + len(token.Lexeme)),
	}
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
