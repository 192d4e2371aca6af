package lr

import (
	"fmt"
	"html"
	"io"
	"sort"

	"github.com/cnf/structhash"
	"github.com/npillmayer/combo/cfg"
	"github.com/npillmayer/combo/lr/sparse"
)

// === Table Export ==========================================================

// Columns and values of the matrix export.
//
// Columns 0…255 are bytes, column 256 end of input, column 257 holds a
// row-wide action, and non-terminal k is found in column 258+k.
// A shift to state n is stored as n, accept as AcceptValue, a reduction by
// rule r as -(r+2).
const (
	EndColumn      = cfg.EndToken
	ForallColumn   = cfg.EndToken + 1
	NonterminalCol = cfg.EndToken + 2
	AcceptValue    = int32(-1)
)

func encodeAction(a *Action) int32 {
	if a.Kind == ReduceAction {
		return -int32(a.rule + 2)
	}
	if a.Next == Success {
		return AcceptValue
	}
	return int32(a.Next)
}

func putEncoded(M *sparse.IntMatrix, i, j int, a *Action) {
	if a.Kind == ConflictAction {
		for _, b := range a.Branches {
			M.Add(i, j, encodeAction(b))
		}
		return
	}
	M.Set(i, j, encodeAction(a))
}

// Matrix exports the table as a sparse matrix of action codes.
func (t *Table) Matrix() *sparse.IntMatrix {
	nts := t.G.Nonterminals()
	M := sparse.NewIntMatrix(len(t.rows), NonterminalCol+len(nts), sparse.DefaultNullValue)
	for i, r := range t.rows {
		for tok, a := range r.terminals {
			putEncoded(M, i, tok, a)
		}
		if r.forall != nil {
			putEncoded(M, i, ForallColumn, r.forall)
		}
		for A, a := range r.nonterminals {
			if k, ok := t.G.Ordinal(A); ok {
				putEncoded(M, i, NonterminalCol+k, a)
			}
		}
	}
	return M
}

// --- Fingerprints ----------------------------------------------------------

type tableSnapshot struct {
	Rows []rowSnapshot
}

type rowSnapshot struct {
	Forall string
	Cells  []string
}

// describe prints an action independently of rule numbering.
func (t *Table) describe(a *Action) string {
	switch a.Kind {
	case ShiftAction:
		return a.String()
	case ReduceAction:
		return fmt.Sprintf("r(%s -> %s)", t.G.SymbolName(a.LHS), t.G.SequenceString(a.RHS))
	}
	s := "c("
	for _, b := range a.Branches {
		s += t.describe(b) + ";"
	}
	return s + ")"
}

func (t *Table) snapshot() tableSnapshot {
	snap := tableSnapshot{Rows: make([]rowSnapshot, len(t.rows))}
	for i, r := range t.rows {
		rs := rowSnapshot{}
		if r.forall != nil {
			rs.Forall = t.describe(r.forall)
		}
		for tok, a := range r.terminals {
			rs.Cells = append(rs.Cells, cfg.TokenString(tok)+"="+t.describe(a))
		}
		for A, a := range r.nonterminals {
			rs.Cells = append(rs.Cells, t.G.SymbolName(A)+"="+t.describe(a))
		}
		sort.Strings(rs.Cells)
		snap.Rows[i] = rs
	}
	return snap
}

// Fingerprint returns a hash of the table's contents. Tables built from the
// same grammar have the same fingerprint.
func (t *Table) Fingerprint() string {
	h, err := structhash.Hash(t.snapshot(), 1)
	if err != nil {
		tracer().Errorf("cannot hash table: %v", err)
		return ""
	}
	return h
}

// --- Listings --------------------------------------------------------------

// Cells returns the non-empty entries of a row as (column label, action)
// pairs. A row-wide action comes first, labelled "*".
func (t *Table) Cells(state int) [][2]string {
	r := t.rows[state]
	var cells, rest [][2]string
	if r.forall != nil {
		cells = append(cells, [2]string{"*", t.describe(r.forall)})
	}
	for tok, a := range r.terminals {
		rest = append(rest, [2]string{cfg.TokenString(tok), t.describe(a)})
	}
	for A, a := range r.nonterminals {
		rest = append(rest, [2]string{t.G.SymbolName(A), t.describe(a)})
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i][0] < rest[j][0] })
	return append(cells, rest...)
}

// Print writes a listing of the table, one line per state. Inadequate
// states are marked with '!'.
func (t *Table) Print(w io.Writer) {
	inadequate := make(map[int]bool)
	for _, s := range t.Inadequate() {
		inadequate[s] = true
	}
	for i := range t.rows {
		mark := " "
		if inadequate[i] {
			mark = "!"
		}
		fmt.Fprintf(w, "%s%3d:", mark, i)
		for _, c := range t.Cells(i) {
			fmt.Fprintf(w, "  %s %s", c[0], c[1])
		}
		fmt.Fprintln(w)
	}
}

// ActionTableAsHTML exports a table in HTML-format. Only columns with at
// least one entry are shown.
func ActionTableAsHTML(t *Table, w io.Writer) {
	M := t.Matrix()
	used := make(map[int]bool)
	M.Each(func(i, j int, a, b int32) { used[j] = true })
	cols := make([]int, 0, len(used))
	for j := range used {
		cols = append(cols, j)
	}
	sort.Ints(cols)
	io.WriteString(w, "<html><body>\n")
	fmt.Fprintf(w, "ACTION table of size = %d<p>", M.ValueCount())
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, j := range cols {
		fmt.Fprintf(w, "<td>%s</td>", html.EscapeString(t.columnLabel(j)))
	}
	io.WriteString(w, "</tr>\n")
	for i := 0; i < M.M(); i++ {
		fmt.Fprintf(w, "<tr><td>state %d</td>\n", i)
		for _, j := range cols {
			a, b := M.Values(i, j)
			td := "&nbsp;"
			if a != M.NullValue() {
				td = valstring(a)
				if b != M.NullValue() {
					td += "/" + valstring(b)
				}
			}
			fmt.Fprintf(w, "<td>%s</td>\n", td)
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

func (t *Table) columnLabel(j int) string {
	switch {
	case j < EndColumn:
		return cfg.TokenString(j)
	case j == EndColumn:
		return "$"
	case j == ForallColumn:
		return "*"
	}
	return t.G.SymbolName(t.G.Nonterminals()[j-NonterminalCol])
}

// valstring is a short helper to stringify an encoded table entry.
func valstring(v int32) string {
	if v == AcceptValue {
		return "acc"
	} else if v < 0 {
		return fmt.Sprintf("r%d", -v-2)
	}
	return fmt.Sprintf("s%d", v)
}
