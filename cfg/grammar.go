package cfg

// Grammar is a context-free grammar, given by its start symbol. The set of
// non-terminals is every choice reachable from the start.
//
// Analysis results (nullable, FIRST, FOLLOW) are computed on first request
// and memoized; a grammar must not be modified after creation.
type Grammar struct {
	Start    *Symbol
	nts      []*Symbol
	ordinals map[*Symbol]int
	nullable map[*Symbol]bool
	first    map[*Symbol]*TokenSet
	follow   map[SymbolKey]*TokenSet
}

// NewGrammar creates a grammar for a start symbol. A terminal start symbol is
// wrapped into a choice with a single alternative.
func NewGrammar(start *Symbol) *Grammar {
	if start.Kind != ChoiceSym {
		wrapper := NewChoice("start").AddAlternative(start)
		wrapper.Reshape = ActFirst
		start = wrapper
	}
	g := &Grammar{
		Start:    start,
		ordinals: make(map[*Symbol]int),
	}
	g.collectNonterminals(start)
	tracer().Debugf("grammar has %d non-terminals", len(g.nts))
	return g
}

// collectNonterminals numbers the choices in order of a depth-first walk.
// The start symbol gets 0.
func (g *Grammar) collectNonterminals(s *Symbol) {
	if s.Kind != ChoiceSym {
		return
	}
	if _, seen := g.ordinals[s]; seen {
		return
	}
	g.ordinals[s] = len(g.nts)
	g.nts = append(g.nts, s)
	for _, alt := range s.Alts {
		for _, item := range alt.Items {
			g.collectNonterminals(item)
		}
	}
}

// Nonterminals returns all non-terminals, ordered by their number.
func (g *Grammar) Nonterminals() []*Symbol {
	return g.nts
}

// Ordinal returns the number of a non-terminal.
func (g *Grammar) Ordinal(s *Symbol) (int, bool) {
	n, ok := g.ordinals[s]
	return n, ok
}

// EachProduction calls f for every production, in order of non-terminals.
func (g *Grammar) EachProduction(f func(lhs *Symbol, rhs *Sequence)) {
	for _, A := range g.nts {
		for _, alt := range A.Alts {
			f(A, alt)
		}
	}
}

// --- Nullable --------------------------------------------------------------

// Nullable checks if a symbol may derive the empty string.
func (g *Grammar) Nullable(s *Symbol) bool {
	if s.Kind != ChoiceSym {
		return false
	}
	if g.nullable == nil {
		g.computeNullable()
	}
	return g.nullable[s]
}

// NullableSequence checks if every symbol of a string is nullable.
func (g *Grammar) NullableSequence(items []*Symbol) bool {
	for _, s := range items {
		if !g.Nullable(s) {
			return false
		}
	}
	return true
}

// computeNullable iterates to a fixed point over all productions.
func (g *Grammar) computeNullable() {
	g.nullable = make(map[*Symbol]bool)
	for changed := true; changed; {
		changed = false
		g.EachProduction(func(A *Symbol, alt *Sequence) {
			if g.nullable[A] {
				return
			}
			for _, s := range alt.Items {
				if s.Kind != ChoiceSym || !g.nullable[s] {
					return
				}
			}
			g.nullable[A] = true
			changed = true
		})
	}
}

// --- FIRST -----------------------------------------------------------------

// First returns the set of terminals a symbol may start with. For terminals
// this is the singleton of the symbol itself (EndToken for end of input),
// for character sets all of its members. The returned set must not be
// modified.
func (g *Grammar) First(s *Symbol) *TokenSet {
	switch s.Kind {
	case CharSym:
		return NewTokenSet(int(s.Char))
	case EndSym:
		return NewTokenSet(EndToken)
	case CharSetSym:
		ts := NewTokenSet()
		s.Set.Each(func(c byte) { ts.Add(int(c)) })
		return ts
	}
	if g.first == nil {
		g.computeFirst()
	}
	if ts, ok := g.first[s]; ok {
		return ts
	}
	return NewTokenSet()
}

// FirstSequence returns FIRST of a string of symbols: the union of FIRST
// of each prefix symbol, up to and including the first non-nullable one.
func (g *Grammar) FirstSequence(items []*Symbol) *TokenSet {
	ts := NewTokenSet()
	for _, s := range items {
		ts.AddAll(g.First(s))
		if !g.Nullable(s) {
			break
		}
	}
	return ts
}

// computeFirst iterates to a fixed point over all non-terminals. With
// mutual left recursion, a single recursive pass would stop too early.
func (g *Grammar) computeFirst() {
	g.first = make(map[*Symbol]*TokenSet, len(g.nts))
	for _, A := range g.nts {
		g.first[A] = NewTokenSet()
	}
	for changed := true; changed; {
		changed = false
		g.EachProduction(func(A *Symbol, alt *Sequence) {
			if g.first[A].AddAll(g.FirstSequence(alt.Items)) {
				changed = true
			}
		})
	}
}

// --- FOLLOW ----------------------------------------------------------------

// Follow returns the set of terminals which may appear immediately after a
// symbol in a sentential form. The start symbol is followed by the end of
// input. Symbols are compared by their key, i.e. terminals by value.
// The returned set must not be modified.
func (g *Grammar) Follow(s *Symbol) *TokenSet {
	if g.follow == nil {
		g.computeFollow()
	}
	if ts, ok := g.follow[s.Key()]; ok {
		return ts
	}
	return NewTokenSet()
}

func (g *Grammar) computeFollow() {
	g.follow = make(map[SymbolKey]*TokenSet)
	get := func(s *Symbol) *TokenSet {
		k := s.Key()
		ts, ok := g.follow[k]
		if !ok {
			ts = NewTokenSet()
			g.follow[k] = ts
		}
		return ts
	}
	get(g.Start).Add(EndToken)
	for changed := true; changed; {
		changed = false
		g.EachProduction(func(A *Symbol, alt *Sequence) {
			for i, X := range alt.Items {
				fx := get(X)
				rest := alt.Items[i+1:]
				if fx.AddAll(g.FirstSequence(rest)) {
					changed = true
				}
				if g.NullableSequence(rest) && fx.AddAll(get(A)) {
					changed = true
				}
			}
		})
	}
}
