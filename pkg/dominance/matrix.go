package dominance

import (
	"fmt"
	"strings"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
)

// Matrix is a dense square matrix stored row by row. Alternative i (1-based)
// maps to row and column i-1.
type Matrix [][]float64

// Vector holds one value per alternative, 0-based.
type Vector []float64

// NewMatrix returns an n×n zero matrix. n <= 0 yields an empty matrix.
func NewMatrix(n int) Matrix {
	if n <= 0 {
		return Matrix{}
	}
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// Dim returns the number of rows.
func (m Matrix) Dim() int { return len(m) }

// Square reports whether every row has Dim() columns.
func (m Matrix) Square() bool {
	for _, row := range m {
		if len(row) != len(m) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// ColumnMax returns the largest value in column j, or 0 for an empty matrix.
func (m Matrix) ColumnMax(j int) float64 {
	if len(m) == 0 {
		return 0
	}
	best := m[0][j]
	for _, row := range m[1:] {
		if row[j] > best {
			best = row[j]
		}
	}
	return best
}

// String renders the matrix one row per line, mainly for debugging and test
// failure messages.
func (m Matrix) String() string {
	var b strings.Builder
	for i, row := range m {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, v := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g", v)
		}
	}
	return b.String()
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	return append(Vector(nil), v...)
}

// checkSquare returns DIMENSION_MISMATCH unless m is n×n.
func checkSquare(name string, m Matrix, n int) error {
	if m.Dim() != n || !m.Square() {
		return perrors.New(perrors.ErrCodeDimensionMismatch,
			"%s is %s, want %dx%d", name, shape(m), n, n)
	}
	return nil
}

func shape(m Matrix) string {
	if len(m) == 0 {
		return "0x0"
	}
	return fmt.Sprintf("%dx%d", len(m), len(m[0]))
}
