package matrix

import (
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestOffDiagonals(t *testing.T) {
	square := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	test.That(t, Superdiagonal(square), test.ShouldResemble, []float64{2, 6})
	test.That(t, Subdiagonal(square), test.ShouldResemble, []float64{4, 8})

	wide := mat.NewDense(2, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
	})
	test.That(t, Superdiagonal(wide), test.ShouldResemble, []float64{2})
	test.That(t, Subdiagonal(wide), test.ShouldResemble, []float64{5})

	tall := mat.NewDense(4, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
		10, 11, 12,
	})
	test.That(t, Superdiagonal(tall), test.ShouldResemble, []float64{2, 6})
	test.That(t, Subdiagonal(tall), test.ShouldResemble, []float64{4, 8})

	t.Run("single row or column", func(t *testing.T) {
		row := mat.NewDense(1, 5, []float64{1, 2, 3, 4, 5})
		test.That(t, Superdiagonal(row), test.ShouldBeEmpty)
		test.That(t, Subdiagonal(row), test.ShouldBeEmpty)

		col := mat.NewVecDense(4, []float64{1, 2, 3, 4})
		test.That(t, Superdiagonal(col), test.ShouldBeEmpty)
		test.That(t, Subdiagonal(col.T()), test.ShouldBeEmpty)
	})
}
