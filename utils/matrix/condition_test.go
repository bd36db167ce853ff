package matrix

import (
	"math"
	"math/rand/v2"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestConditionNumberIdentity(t *testing.T) {
	for n := 1; n <= 7; n++ {
		cond, err := ConditionNumber(eye(n))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cond, test.ShouldAlmostEqual, 1.0)
	}
}

func TestConditionNumberDiagonal(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		4, 0, 0,
		0, -0.5, 0,
		0, 0, 2,
	})
	cond, err := ConditionNumber(m)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cond, test.ShouldAlmostEqual, 8.0, 1e-12)
}

func TestConditionNumberDuplicatedRow(t *testing.T) {
	src := rand.NewPCG(3, 4)
	m := SampleUniformDense(4, 4, -1, 1, src)

	// nearly duplicated rows grow the condition number without bound
	prev := 1.0
	for _, eps := range []float64{1e-3, 1e-6, 1e-9} {
		near := mat.DenseCopyOf(m)
		for j := 0; j < 4; j++ {
			near.Set(3, j, m.At(2, j)+eps*m.At(3, j))
		}
		cond, err := ConditionNumber(near)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cond, test.ShouldBeGreaterThan, prev)
		prev = cond
	}

	dup := mat.DenseCopyOf(m)
	dup.SetRow(3, mat.Row(nil, 2, m))
	cond, err := ConditionNumber(dup)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cond, test.ShouldBeGreaterThan, 1e12)
}

func TestConditionNumberSingular(t *testing.T) {
	cond, err := ConditionNumber(mat.NewDense(2, 2, []float64{1, 0, 0, 0}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, math.IsInf(cond, 1), test.ShouldBeTrue)
}

func TestConditionNumberTall(t *testing.T) {
	a := SampleNormalDense(6, 3, 1, rand.NewPCG(5, 6))
	cond, err := ConditionNumber(a)
	test.That(t, err, test.ShouldBeNil)

	var svd mat.SVD
	test.That(t, svd.Factorize(a, mat.SVDNone), test.ShouldBeTrue)
	test.That(t, cond, test.ShouldAlmostEqual, svd.Cond(), 1e-9)
}
