package matrix

import "gonum.org/v1/gonum/mat"

// Superdiagonal returns the elements m(i, i+1) for i below min(rows, cols)-1. A single row or
// column gives an empty slice.
func Superdiagonal(m mat.Matrix) []float64 {
	return offDiagonal(m, 0, 1)
}

// Subdiagonal returns the elements m(i+1, i) for i below min(rows, cols)-1.
func Subdiagonal(m mat.Matrix) []float64 {
	return offDiagonal(m, 1, 0)
}

func offDiagonal(m mat.Matrix, rowOffset, colOffset int) []float64 {
	r, c := m.Dims()
	n := min(r, c) - 1
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = m.At(i+rowOffset, i+colOffset)
	}
	return out
}
