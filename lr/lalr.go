package lr

import (
	"github.com/npillmayer/combo/cfg"
)

// === LALR(1) ===============================================================

// The LALR upgrade follows DeRemer & Pennello: lookaheads for a reduction
// A → α in state s are FOLLOW sets of A, computed not in the original
// grammar but in an "enhanced" grammar. Every symbol X of the enhanced grammar
// is annotated with the CFSM states it leads from and to, written xXy; the
// productions of xAy are the productions of A, traced through the CFSM
// starting in x.

type transKey struct {
	from int
	sym  cfg.SymbolKey
	to   int
}

type enhancedGrammar struct {
	dfa  *CFSM
	g    *cfg.Grammar                  // the enhanced grammar
	tmap map[transKey]*cfg.Symbol      // x--X-->y  ↦  xXy
	smap map[*cfg.Symbol]transKey      // xXy  ↦  x--X-->y
	corr map[*cfg.Symbol][]*cfg.Symbol // A  ↦  every xAy
}

func enhanceGrammar(dfa *CFSM) *enhancedGrammar {
	eg := &enhancedGrammar{
		dfa:  dfa,
		tmap: make(map[transKey]*cfg.Symbol),
		smap: make(map[*cfg.Symbol]transKey),
		corr: make(map[*cfg.Symbol][]*cfg.Symbol),
	}
	start := dfa.G.Start
	estart := cfg.NewChoice(start.Tag)
	eg.smap[estart] = transKey{from: 0, sym: start.Key(), to: Success}
	eg.corr[start] = append(eg.corr[start], estart)
	eg.transformProductions(0, start, estart)
	eg.g = cfg.NewGrammar(estart)
	return eg
}

// transformSymbol returns xXy for the transition x --X--> y, creating it
// (and its productions) on first request.
func (eg *enhancedGrammar) transformSymbol(x int, X *cfg.Symbol, y int) *cfg.Symbol {
	k := transKey{from: x, sym: X.Key(), to: y}
	if xXy, ok := eg.tmap[k]; ok {
		return xXy
	}
	var xXy *cfg.Symbol
	switch X.Kind {
	case cfg.ChoiceSym:
		xXy = cfg.NewChoice(X.Tag)
	case cfg.CharSetSym:
		xXy = cfg.NewCharSet(X.Set)
	case cfg.CharSym:
		xXy = cfg.NewChar(X.Char)
	default:
		xXy = cfg.NewEnd()
	}
	eg.tmap[k] = xXy
	eg.smap[xXy] = k
	if X.Kind == cfg.ChoiceSym || X.Kind == cfg.CharSetSym {
		eg.corr[X] = append(eg.corr[X], xXy)
	}
	if X.Kind == cfg.ChoiceSym {
		eg.transformProductions(x, X, xXy)
	}
	return xXy
}

func (eg *enhancedGrammar) transformProductions(x int, A, xAy *cfg.Symbol) {
	for _, alt := range A.Alts {
		items := make([]*cfg.Symbol, len(alt.Items))
		state := x
		for i, B := range alt.Items {
			next := eg.dfa.Goto(state, B)
			if next < 0 {
				panic("LALR: production cannot be traced through the CFSM")
			}
			items[i] = eg.transformSymbol(state, B, next)
			state = next
		}
		xAy.AddAlternative(items...)
	}
}

// matchProduction checks if the enhanced symbol xAy has a production which
// corresponds to A → rhs and ends in state s.
func (eg *enhancedGrammar) matchProduction(xAy *cfg.Symbol, rhs []*cfg.Symbol, s int) bool {
	x := eg.smap[xAy].from
	if xAy.Kind == cfg.CharSetSym {
		return eg.dfa.Goto(x, rhs[0]) == s
	}
	for _, alt := range xAy.Alts {
		if len(alt.Items) != len(rhs) {
			continue
		}
		end, ok := x, true
		for i, xBz := range alt.Items {
			tk := eg.smap[xBz]
			if tk.sym != rhs[i].Key() {
				ok = false
				break
			}
			end = tk.to
		}
		if ok && end == s {
			return true
		}
	}
	return false
}

// UpgradeLALR resolves inadequate states of an LR(0) table by replacing
// their row-wide reduce actions with reduce entries for lookahead tokens.
// Entries which still collide become conflicts; their states remain
// inadequate. Tables without inadequate states are left untouched.
func UpgradeLALR(dfa *CFSM, t *Table) {
	if t.IsAdequate() {
		return
	}
	eg := enhanceGrammar(dfa)
	for _, s := range t.Inadequate() {
		r := t.rows[s]
		r.forall = nil
		delete(t.inadequate, s)
		for _, a := range t.reductions[s] {
			for _, xAy := range eg.corr[a.LHS] {
				if !eg.matchProduction(xAy, a.RHS, s) {
					continue
				}
				for _, tok := range eg.g.Follow(xAy).Tokens() {
					if !t.putTerminal(s, tok, a) {
						t.inadequate[s] = true
					}
				}
			}
		}
		tracer().Debugf("LALR: state %d adequate = %v", s, !t.inadequate[s])
	}
	tracer().Infof("LALR: %d states remain inadequate", len(t.inadequate))
}
