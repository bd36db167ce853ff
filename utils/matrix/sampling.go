package matrix

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SampleNormalDense returns a rows x cols matrix with entries drawn from N(0, sigma²). A nil src
// uses the global source.
func SampleNormalDense(rows, cols int, sigma float64, src rand.Source) *mat.Dense {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: sigma,
		Src:   src,
	}
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = dist.Rand()
	}
	return mat.NewDense(rows, cols, data)
}

// SampleUniformDense returns a rows x cols matrix with entries drawn uniformly in [vMin, vMax].
func SampleUniformDense(rows, cols int, vMin, vMax float64, src rand.Source) *mat.Dense {
	dist := distuv.Uniform{
		Min: vMin,
		Max: vMax,
		Src: src,
	}
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = dist.Rand()
	}
	return mat.NewDense(rows, cols, data)
}
