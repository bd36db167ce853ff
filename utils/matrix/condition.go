package matrix

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ConditionNumber returns the ratio of the largest to the smallest singular value of m. An exactly
// singular m gives +Inf. The only error is a failed SVD.
func ConditionNumber(m mat.Matrix) (float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDNone); !ok {
		return 0, errors.New("failed to factorize matrix")
	}
	values := svd.Values(nil)
	return values[0] / values[len(values)-1], nil
}
