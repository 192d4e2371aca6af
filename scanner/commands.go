package scanner

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
)

// Token types of REPL commands. Literals and keywords are numbered from
// TokColon upwards.
const (
	TokID = iota + 1
	TokNum
	TokString
	TokColon
)

// Verbs are the keywords of REPL commands.
var Verbs = []string{"backend", "start", "dump", "trace", "help", "quit"}

var commandIds = func() map[string]int {
	ids := map[string]int{":": TokColon}
	for i, v := range Verbs {
		ids[v] = TokColon + 1 + i
	}
	return ids
}()

var (
	commandsOnce  sync.Once
	commandLexer  *LMAdapter
	commandLexErr error
)

// CommandLexer returns the (shared) lexmachine adapter for REPL commands.
func CommandLexer() (*LMAdapter, error) {
	commandsOnce.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", TokString))
			lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_|-|\.)*`), MakeToken("ID", TokID))
			lexer.Add([]byte(`[0-9]+`), MakeToken("NUM", TokNum))
			lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
		}
		commandLexer, commandLexErr = NewLMAdapter(init, []string{":"}, Verbs, commandIds)
	})
	return commandLexer, commandLexErr
}

// Command is a REPL command, e.g. ":backend glr".
type Command struct {
	Verb string
	Args []string
}

func (c Command) String() string {
	return ":" + strings.Join(append([]string{c.Verb}, c.Args...), " ")
}

// IsCommand is true for input lines starting with a colon.
func IsCommand(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ":")
}

// ParseCommand tokenizes a command line. A command is a colon, followed by a
// verb and arguments (identifiers, numbers or quoted strings).
func ParseCommand(line string) (Command, error) {
	lm, err := CommandLexer()
	if err != nil {
		return Command{}, err
	}
	scan, err := lm.Scanner(line)
	if err != nil {
		return Command{}, err
	}
	var scanErr error
	scan.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	cmd := Command{}
	if tok := scan.NextToken(); tok.Type != TokColon {
		return cmd, fmt.Errorf("command must start with ':', have %v", tok)
	}
	verb := scan.NextToken()
	if verb.Type <= TokColon {
		return cmd, fmt.Errorf("unknown command %v", verb)
	}
	cmd.Verb = verb.Lexeme
	for tok := scan.NextToken(); tok.Type != EOF; tok = scan.NextToken() {
		switch tok.Type {
		case TokString:
			s, err := strconv.Unquote(tok.Lexeme)
			if err != nil {
				return cmd, err
			}
			cmd.Args = append(cmd.Args, s)
		case TokColon:
			return cmd, fmt.Errorf("unexpected ':' at position %d", tok.From)
		default:
			cmd.Args = append(cmd.Args, tok.Lexeme)
		}
	}
	if scanErr != nil {
		return cmd, fmt.Errorf("illegal input in command: %w", scanErr)
	}
	return cmd, nil
}
