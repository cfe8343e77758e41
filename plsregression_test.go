//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPLSRecoversNoiselessLatentStructure(t *testing.T) {
	s := SyntheticSettings{Rows: 120, Cols: 20, Rank: 3, Noise: 0, Seed: 42}
	x, y := SyntheticPLS(s)
	xtr, ytr, xte, yte := TrainTestSplit(x, y, TESTFRACTION, s.Seed)

	// with zero noise and as many components as latent factors the fit should be essentially exact
	pls := NewPLSRegression(3)
	require.NoError(t, pls.Fit(xtr, ytr))

	pred, err := pls.Predict(xte)
	require.NoError(t, err)

	assert.Less(t, rootmeansquarederror(yte, pred), 1e-6)
	assert.InDelta(t, 1.0, rsquared(yte, pred), 1e-9)
}

func TestPLSUnderfitsWithTooFewComponents(t *testing.T) {
	s := SyntheticSettings{Rows: 120, Cols: 20, Rank: 4, Noise: 0, Seed: 7}
	x, y := SyntheticPLS(s)
	xtr, ytr, xte, yte := TrainTestSplit(x, y, TESTFRACTION, s.Seed)

	one := NewPLSRegression(1)
	require.NoError(t, one.Fit(xtr, ytr))
	ponetest, err := one.Predict(xte)
	require.NoError(t, err)

	full := NewPLSRegression(4)
	require.NoError(t, full.Fit(xtr, ytr))
	pfulltest, err := full.Predict(xte)
	require.NoError(t, err)

	assert.Greater(t, rootmeansquarederror(yte, ponetest), rootmeansquarederror(yte, pfulltest))
}

func TestPLSClampsComponentCount(t *testing.T) {
	s := SyntheticSettings{Rows: 30, Cols: 5, Rank: 2, Noise: 0.1, Seed: 3}
	x, y := SyntheticPLS(s)

	pls := NewPLSRegression(50)
	require.NoError(t, pls.Fit(x, y))
	assert.LessOrEqual(t, pls.Components, 5)
}

func TestPLSPredictBeforeFit(t *testing.T) {
	pls := NewPLSRegression(2)
	_, err := pls.Predict(mat.NewDense(2, 2, nil))
	assert.Error(t, err)
}

func TestOLSExactOnWellPosedData(t *testing.T) {
	// y = 2*x1 - 3*x2 + 1 exactly
	x := mat.NewDense(6, 2, []float64{
		1, 1,
		2, 1,
		3, 2,
		4, 3,
		5, 5,
		6, 8,
	})
	y := make([]float64, 6)
	for i := 0; i < 6; i++ {
		y[i] = 2*x.At(i, 0) - 3*x.At(i, 1) + 1
	}

	var ols OLSRegression
	require.NoError(t, ols.Fit(x, y))

	pred, err := ols.Predict(x)
	require.NoError(t, err)
	assert.Less(t, rootmeansquarederror(y, pred), 1e-9)
}

func TestOLSRefusesUnderdeterminedInput(t *testing.T) {
	// 4 rows, 6 columns: more coefficients than observations
	x := mat.NewDense(4, 6, nil)
	y := make([]float64, 4)

	var ols OLSRegression
	err := ols.Fit(x, y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows")
}

func TestScoring(t *testing.T) {
	actual := []float64{1, 2, 3, 4}
	assert.InDelta(t, 0.0, rootmeansquarederror(actual, actual), 1e-15)
	assert.InDelta(t, 1.0, rsquared(actual, actual), 1e-15)

	off := []float64{2, 3, 4, 5}
	assert.InDelta(t, 1.0, rootmeansquarederror(actual, off), 1e-15)

	// mismatched lengths are a caller bug and come back NaN
	assert.True(t, math.IsNaN(rootmeansquarederror(actual, []float64{1, 2})))
	assert.True(t, math.IsNaN(rsquared(actual, []float64{1, 2})))
}
