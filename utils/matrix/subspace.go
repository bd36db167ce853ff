// Package matrix contains dense linear algebra helpers built on gonum.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DimensionError is returned when a tall matrix was required but the input has no more rows than
// columns.
type DimensionError struct {
	Rows, Cols int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("need a tall matrix with rows > cols, got %dx%d", e.Rows, e.Cols)
}

// ColumnSpaceAndComplement splits the full Q of an unpivoted Householder QR factorization of the
// tall matrix a. q1 (rows x cols) is an orthonormal basis of range(a) and q2
// (rows x rows-cols) an orthonormal basis of its orthogonal complement, which is the left null
// space of a. a is assumed to have full column rank.
func ColumnSpaceAndComplement(a mat.Matrix) (q1, q2 *mat.Dense, err error) {
	q, cols, err := fullQ(a)
	if err != nil {
		return nil, nil, err
	}
	rows, _ := q.Dims()
	q1 = mat.DenseCopyOf(q.Slice(0, rows, 0, cols))
	q2 = mat.DenseCopyOf(q.Slice(0, rows, cols, rows))
	return q1, q2, nil
}

// OrthogonalComplement returns an orthonormal basis of the orthogonal complement of range(a),
// i.e. the q2 of ColumnSpaceAndComplement.
func OrthogonalComplement(a mat.Matrix) (*mat.Dense, error) {
	q, cols, err := fullQ(a)
	if err != nil {
		return nil, err
	}
	rows, _ := q.Dims()
	return mat.DenseCopyOf(q.Slice(0, rows, cols, rows)), nil
}

// fullQ returns the square Q factor of a. Column pivoting is never used since it would break
// Q*R == A.
func fullQ(a mat.Matrix) (*mat.Dense, int, error) {
	rows, cols := a.Dims()
	if rows <= cols {
		return nil, 0, &DimensionError{Rows: rows, Cols: cols}
	}
	var qr mat.QR
	qr.Factorize(a)
	var q mat.Dense
	qr.QTo(&q)
	return &q, cols, nil
}
