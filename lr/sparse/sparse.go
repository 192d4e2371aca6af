/*
Package sparse implements a simple type for sparse integer matrices.
It is used for the compact export of LR parse tables, where most cells are
empty. Every entry in the table is either a single int32 or a pair
(int32,int32); a pair is enough to show a shift/reduce or reduce/reduce
conflict, longer conflict lists keep their first two actions.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a sparse matrix of int32 values, with up to two values per
// position.
//
//     M := NewIntMatrix(10, 300, DefaultNullValue)
//     M.Set(2, 3, 4711)              // set a value
//     M.Add(2, 3, -3)                // add a second value
//     a, b := M.Values(2, 3)         // returns 4711, -3
//     cnt := M.ValueCount()          // returns 1 (one position set)
//     v := M.Value(9, 9)             // returns the null-value
//
// Entries are kept sorted in row-major order.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	value    intPair
}

// NewIntMatrix creates a matrix of size m x n. Empty positions read as
// nullValue (use DefaultNullValue if you haven't any specific requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// find returns the index of position (i,j) in m.values, or the index where
// it would have to be inserted.
func (m *IntMatrix) find(i, j int) (int, bool) {
	k := sort.Search(len(m.values), func(k int) bool {
		t := m.values[k]
		return t.row > i || t.row == i && t.col >= j
	})
	return k, k < len(m.values) && m.values[k].row == i && m.values[k].col == j
}

// Value returns the primary value at position (i,j), or NullValue.
func (m *IntMatrix) Value(i, j int) int32 {
	a, _ := m.Values(i, j)
	return a
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue).
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if k, ok := m.find(i, j); ok {
		return m.values[k].value.a, m.values[k].value.b
	}
	return m.nullval, m.nullval
}

// Set a value at position (i,j), replacing previous values.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, false)
}

// Add a value at position (i,j). A position holds at most two values;
// further values are dropped.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, true)
}

func (m *IntMatrix) setOrAdd(i, j int, value int32, doAdd bool) *IntMatrix {
	k, ok := m.find(i, j)
	if ok {
		if doAdd {
			m.values[k].value = m.values[k].value.add(value, m.nullval)
		} else {
			m.values[k].value = intPair{value, m.nullval}
		}
		return m
	}
	m.values = append(m.values, triplet{})
	copy(m.values[k+1:], m.values[k:])
	m.values[k] = triplet{row: i, col: j, value: intPair{value, m.nullval}}
	return m
}

// Each calls f for every non-empty position, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, a, b int32)) {
	for _, t := range m.values {
		if t.value.a == m.nullval && t.value.b == m.nullval {
			continue
		}
		f(t.row, t.col, t.value.a, t.value.b)
	}
}

// RowCount returns the number of non-empty positions in row i.
func (m *IntMatrix) RowCount(i int) int {
	n := 0
	k, _ := m.find(i, 0)
	for ; k < len(m.values) && m.values[k].row == i; k++ {
		if m.values[k].value.a != m.nullval {
			n++
		}
	}
	return n
}

// intPair stores 2 int32 in one position
type intPair struct {
	a int32
	b int32
}

func (pr intPair) add(n int32, nullval int32) intPair {
	if pr.a == nullval {
		pr.a = n
	} else if pr.b == nullval {
		pr.b = n
	}
	return pr
}

func (pr intPair) String() string {
	return fmt.Sprintf("[%d,%d]", pr.a, pr.b)
}
