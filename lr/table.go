package lr

import (
	"fmt"
	"sort"

	"github.com/npillmayer/combo/cfg"
)

// ActionKind categorizes table entries.
type ActionKind int8

// Kinds of actions.
const (
	ShiftAction ActionKind = iota
	ReduceAction
	ConflictAction
)

// Success is the pseudo state shifted to when the start symbol is accepted.
const Success = -1

// Action is an entry of an LR table.
type Action struct {
	Kind     ActionKind
	Next     int           // target state of a shift
	LHS      *cfg.Symbol   // production to reduce
	RHS      []*cfg.Symbol //
	Branches []*Action     // alternatives of a conflict; never conflicts themselves
	rule     int           // serial number of a reduce action within its table
}

// Length returns the number of symbols a reduce action pops.
func (a *Action) Length() int {
	return len(a.RHS)
}

// Rule returns the serial number of a reduce action.
func (a *Action) Rule() int {
	return a.rule
}

func (a *Action) String() string {
	if a == nil {
		return "<none>"
	}
	switch a.Kind {
	case ShiftAction:
		if a.Next == Success {
			return "<accept>"
		}
		return fmt.Sprintf("s%d", a.Next)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.rule)
	}
	s := ""
	for i, b := range a.Branches {
		if i > 0 {
			s += "/"
		}
		s += b.String()
	}
	return s
}

func shift(next int) *Action {
	return &Action{Kind: ShiftAction, Next: next}
}

// conflict combines two actions. Conflicts are flat lists of distinct
// non-conflict actions.
func conflict(a, b *Action) *Action {
	c := &Action{Kind: ConflictAction}
	for _, x := range []*Action{a, b} {
		if x.Kind == ConflictAction {
			for _, y := range x.Branches {
				c.addBranch(y)
			}
		} else {
			c.addBranch(x)
		}
	}
	return c
}

func (a *Action) addBranch(b *Action) {
	for _, x := range a.Branches {
		if x == b {
			return
		}
	}
	a.Branches = append(a.Branches, b)
}

// contains checks if b is a or one of a's branches.
func (a *Action) contains(b *Action) bool {
	if a == b {
		return true
	}
	if a.Kind == ConflictAction {
		for _, x := range a.Branches {
			if x == b {
				return true
			}
		}
	}
	return false
}

// === Tables ================================================================

type row struct {
	terminals    map[int]*Action
	nonterminals map[*cfg.Symbol]*Action
	forall       *Action // applies regardless of lookahead
}

func (r *row) isEmpty() bool {
	return len(r.terminals) == 0 && len(r.nonterminals) == 0
}

// Table is an LR parse table: one row per CFSM state, with actions for
// terminal tokens (bytes and cfg.EndToken) and for non-terminals.
type Table struct {
	G          *cfg.Grammar
	rows       []*row
	inadequate map[int]bool
	rules      []*Action
	reductions map[int][]*Action // reduce actions per state
}

// NewTable creates an empty table with n rows.
func NewTable(g *cfg.Grammar, n int) *Table {
	t := &Table{
		G:          g,
		rows:       make([]*row, n),
		inadequate: make(map[int]bool),
		reductions: make(map[int][]*Action),
	}
	for i := range t.rows {
		t.rows[i] = &row{
			terminals:    make(map[int]*Action),
			nonterminals: make(map[*cfg.Symbol]*Action),
		}
	}
	return t
}

// Rows returns the number of states.
func (t *Table) Rows() int {
	return len(t.rows)
}

// Rules returns all reduce actions of t, indexed by their serial number.
func (t *Table) Rules() []*Action {
	return t.rules
}

func (t *Table) reduce(item Item) *Action {
	a := &Action{Kind: ReduceAction, LHS: item.LHS, RHS: item.RHS, rule: len(t.rules)}
	t.rules = append(t.rules, a)
	return a
}

// Lookup returns the action for a state and a terminal token. A row-wide
// reduce action takes precedence. Returns nil for an error entry.
func (t *Table) Lookup(state, token int) *Action {
	r := t.rows[state]
	if r.forall != nil {
		return r.forall
	}
	return r.terminals[token]
}

// LookupNonterminal returns the action for a state and a non-terminal.
func (t *Table) LookupNonterminal(state int, A *cfg.Symbol) *Action {
	r := t.rows[state]
	if r.forall != nil {
		return r.forall
	}
	return r.nonterminals[A]
}

// putTerminal sets an action for a terminal. If a different action is already
// present, the entry becomes a conflict and false is returned.
func (t *Table) putTerminal(state, token int, a *Action) bool {
	r := t.rows[state]
	old := r.terminals[token]
	if old == nil {
		r.terminals[token] = a
		return true
	}
	if old.contains(a) {
		return true
	}
	r.terminals[token] = conflict(old, a)
	return false
}

// Inadequate returns the states with conflicts, in ascending order.
func (t *Table) Inadequate() []int {
	states := make([]int, 0, len(t.inadequate))
	for s := range t.inadequate {
		states = append(states, s)
	}
	sort.Ints(states)
	return states
}

// IsAdequate is true if no state has a conflict.
func (t *Table) IsAdequate() bool {
	return len(t.inadequate) == 0
}

// HasConflicts is true if any entry is a conflict, i.e. the table requires
// a generalized parser.
func (t *Table) HasConflicts() bool {
	for _, r := range t.rows {
		if r.forall != nil && r.forall.Kind == ConflictAction {
			return true
		}
		for _, a := range r.terminals {
			if a.Kind == ConflictAction {
				return true
			}
		}
	}
	return false
}

// === LR(0) =================================================================

// BuildLR0Table creates the LR(0) table for a CFSM. Transitions become shift
// entries, reducible items row-wide reduce entries. A state is inadequate if
// it has more than one reduce item, or a reduce item and any transition.
//
// State 0 gets an entry Shift(Success) for the start symbol. The start symbol
// must not occur on the right hand side of any production, which holds for
// grammars created by cfg.FromParser.
func BuildLR0Table(c *CFSM) *Table {
	t := NewTable(c.G, c.Size())
	for _, e := range c.Transitions() {
		r := t.rows[e.From]
		if e.Label.IsTerminal() {
			r.terminals[e.Label.Token()] = shift(e.To)
		} else {
			r.nonterminals[e.Label] = shift(e.To)
		}
	}
	if _, recurs := t.rows[0].nonterminals[c.G.Start]; recurs {
		tracer().Errorf("start symbol occurs on a right hand side; accept entry overrides its goto")
	}
	t.rows[0].nonterminals[c.G.Start] = shift(Success)
	for _, s := range c.States() {
		r := t.rows[s.ID]
		for _, i := range s.Items() {
			if !i.IsReducible() {
				continue
			}
			a := t.reduce(i)
			t.reductions[s.ID] = append(t.reductions[s.ID], a)
			if r.forall != nil {
				r.forall = conflict(r.forall, a)
				t.inadequate[s.ID] = true
			} else {
				r.forall = a
			}
		}
		if r.forall != nil && !r.isEmpty() {
			t.inadequate[s.ID] = true
		}
	}
	if len(t.inadequate) > 0 {
		tracer().Infof("LR(0) table has inadequate states %v", t.Inadequate())
	}
	return t
}
