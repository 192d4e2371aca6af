package lr

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/combo/cfg"
)

// Item is an LR(0) item: a production with a mark position, A → α • β.
// Items are compared structurally: their left hand sides and right hand side
// symbols by key, and the mark.
type Item struct {
	LHS  *cfg.Symbol
	RHS  []*cfg.Symbol
	Mark int
}

// PeekSymbol returns the symbol after the mark, or nil for reducible items.
func (i Item) PeekSymbol() *cfg.Symbol {
	if i.Mark >= len(i.RHS) {
		return nil
	}
	return i.RHS[i.Mark]
}

// Advance moves the mark one symbol to the right.
func (i Item) Advance() Item {
	return Item{LHS: i.LHS, RHS: i.RHS, Mark: i.Mark + 1}
}

// IsReducible is true if the mark is at the end of the production.
func (i Item) IsReducible() bool {
	return i.Mark >= len(i.RHS)
}

// Format prints an item with symbol names from grammar g.
func (i Item) Format(g *cfg.Grammar) string {
	var b bytes.Buffer
	b.WriteString(g.SymbolName(i.LHS))
	b.WriteString(" ->")
	for k, s := range i.RHS {
		if k == i.Mark {
			b.WriteString(" •")
		}
		b.WriteByte(' ')
		b.WriteString(g.SymbolName(s))
	}
	if i.IsReducible() {
		b.WriteString(" •")
	}
	return b.String()
}

// --- Item sets -------------------------------------------------------------

// symbolIDs numbers symbols for computing item keys. Terminals are keyed by
// value, every other symbol by identity.
type symbolIDs map[*cfg.Symbol]int

func (ids symbolIDs) key(s *cfg.Symbol) string {
	switch s.Kind {
	case cfg.CharSym:
		return "c" + strconv.Itoa(int(s.Char))
	case cfg.EndSym:
		return "$"
	}
	id, ok := ids[s]
	if !ok {
		id = len(ids)
		ids[s] = id
	}
	return "n" + strconv.Itoa(id)
}

func (ids symbolIDs) itemKey(i Item) string {
	var b strings.Builder
	b.WriteString(ids.key(i.LHS))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(i.Mark))
	for _, s := range i.RHS {
		b.WriteByte(' ')
		b.WriteString(ids.key(s))
	}
	return b.String()
}

// itemSet is an insertion-ordered set of items.
type itemSet struct {
	items []Item
	keys  map[string]bool
}

func newItemSet() *itemSet {
	return &itemSet{keys: make(map[string]bool)}
}

func (S *itemSet) add(ids symbolIDs, i Item) bool {
	k := ids.itemKey(i)
	if S.keys[k] {
		return false
	}
	S.keys[k] = true
	S.items = append(S.items, i)
	return true
}

// key identifies the set by its content, independent of insertion order.
func (S *itemSet) key() string {
	keys := make([]string, 0, len(S.keys))
	for k := range S.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}
