package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/combo/cfg"
)

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// closure adds, for every item with a non-terminal after the mark, the
// items for the productions of that non-terminal. A character set is
// treated as a non-terminal with one production per member byte.
func (c *CFSM) closure(kernel []Item) *itemSet {
	C := newItemSet()
	var work []Item
	for _, i := range kernel {
		if C.add(c.ids, i) {
			work = append(work, i)
		}
	}
	for len(work) > 0 {
		i := work[0]
		work = work[1:]
		A := i.PeekSymbol()
		if A == nil {
			continue
		}
		switch A.Kind {
		case cfg.ChoiceSym:
			for _, alt := range A.Alts {
				ii := Item{LHS: A, RHS: alt.Items}
				if C.add(c.ids, ii) {
					work = append(work, ii)
				}
			}
		case cfg.CharSetSym:
			A.Set.Each(func(ch byte) {
				C.add(c.ids, Item{LHS: A, RHS: []*cfg.Symbol{c.char(ch)}})
			})
		}
	}
	return C
}

// char returns a shared terminal symbol for a byte.
func (c *CFSM) char(ch byte) *cfg.Symbol {
	if c.chars[ch] == nil {
		c.chars[ch] = cfg.NewChar(ch)
	}
	return c.chars[ch]
}

type neighbour struct {
	label  *cfg.Symbol
	kernel []Item
}

// gotoSets partitions the items of a closed set by the symbol after the mark
// and advances them. Neighbours are returned in order of first appearance.
func (c *CFSM) gotoSets(S *itemSet) []*neighbour {
	var order []*neighbour
	bySymbol := make(map[cfg.SymbolKey]*neighbour)
	for _, i := range S.items {
		A := i.PeekSymbol()
		if A == nil {
			continue
		}
		nb, ok := bySymbol[A.Key()]
		if !ok {
			nb = &neighbour{label: A}
			bySymbol[A.Key()] = nb
			order = append(order, nb)
		}
		nb.kernel = append(nb.kernel, i.Advance())
	}
	return order
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID    int      // serial ID of this state
	items *itemSet // closed set of configuration items
	key   string
}

// Items returns the (closed) set of items of this state.
func (s *CFSMState) Items() []Item {
	return s.items.items
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, len(s.items.items))
}

// Transition is an edge of the CFSM.
type Transition struct {
	From, To int
	Label    *cfg.Symbol
}

type gotoKey struct {
	from int
	sym  cfg.SymbolKey
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram. States are identified by their closed item sets.
// State 0 is the start state.
type CFSM struct {
	G      *cfg.Grammar    // this CFSM is for Grammar G
	states *treeset.Set    // all the states
	edges  *arraylist.List // all the edges between states
	S0     *CFSMState      // start state
	byKey  map[string]*CFSMState
	gotos  map[gotoKey]int
	ids    symbolIDs
	chars  [256]*cfg.Symbol
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *cfg.Grammar) *CFSM {
	return &CFSM{
		G:      g,
		states: treeset.NewWith(stateComparator),
		edges:  arraylist.New(),
		byKey:  make(map[string]*CFSMState),
		gotos:  make(map[gotoKey]int),
		ids:    make(symbolIDs),
	}
}

// BuildCFSM constructs the characteristic finite state machine for a grammar.
// The start state's kernel are the start symbol's productions.
func BuildCFSM(g *cfg.Grammar) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	c := emptyCFSM(g)
	var kernel []Item
	for _, alt := range g.Start.Alts {
		kernel = append(kernel, Item{LHS: g.Start, RHS: alt.Items})
	}
	c.S0, _ = c.addState(c.closure(kernel))
	S := treeset.NewWith(stateComparator)
	S.Add(c.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		for _, nb := range c.gotoSets(s.items) {
			snew, isNew := c.addState(c.closure(nb.kernel))
			if isNew {
				S.Add(snew)
			}
			c.addEdge(s, snew, nb.label)
		}
	}
	tracer().Infof("CFSM has %d states", c.states.Size())
	return c
}

// addState adds a state for an item set, if it is not yet present.
func (c *CFSM) addState(iset *itemSet) (*CFSMState, bool) {
	key := iset.key()
	if s, ok := c.byKey[key]; ok {
		return s, false
	}
	s := &CFSMState{ID: c.states.Size(), items: iset, key: key}
	c.states.Add(s)
	c.byKey[key] = s
	return s, true
}

func (c *CFSM) addEdge(from, to *CFSMState, label *cfg.Symbol) {
	tracer().Debugf("goto %d --%s--> %d", from.ID, c.G.SymbolName(label), to.ID)
	c.edges.Add(&Transition{From: from.ID, To: to.ID, Label: label})
	c.gotos[gotoKey{from: from.ID, sym: label.Key()}] = to.ID
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	vals := c.states.Values()
	r := make([]*CFSMState, len(vals))
	for i, v := range vals {
		r[i] = v.(*CFSMState)
	}
	return r
}

// State returns the state with a given ID.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= c.states.Size() {
		return nil
	}
	return c.states.Values()[id].(*CFSMState)
}

// Transitions returns all edges, in order of construction.
func (c *CFSM) Transitions() []*Transition {
	r := make([]*Transition, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		r = append(r, it.Value().(*Transition))
	}
	return r
}

// Goto returns the successor state of a state for a symbol, or -1.
func (c *CFSM) Goto(from int, sym *cfg.Symbol) int {
	if to, ok := c.gotos[gotoKey{from: from, sym: sym.Key()}]; ok {
		return to
	}
	return -1
}

// GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) GraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, c.nodecolor(s), s.ID, c.forGraphviz(s))
	}
	for _, e := range c.Transitions() {
		fmt.Fprintf(w, "s%03d -> s%03d [label=\"%s\"]\n", e.From, e.To,
			dotEscape(c.G.SymbolName(e.Label)))
	}
	io.WriteString(w, "}\n")
}

func (c *CFSM) nodecolor(s *CFSMState) string {
	for _, i := range s.Items() {
		if i.IsReducible() {
			return "lightgray"
		}
	}
	return "white"
}

func (c *CFSM) forGraphviz(s *CFSMState) string {
	var lines []string
	for _, i := range s.Items() {
		if i.Mark > 0 || i.LHS == c.G.Start {
			lines = append(lines, dotEscape(i.Format(c.G)))
		}
	}
	return strings.Join(lines, "\\l") + "\\l"
}

func dotEscape(s string) string {
	r := strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}
