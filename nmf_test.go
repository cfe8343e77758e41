//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// a tiny block-structured matrix: two obvious "topics"
func blockmatrix() *mat.Dense {
	return mat.NewDense(6, 4, []float64{
		5, 4, 0, 0,
		4, 5, 0, 0,
		5, 5, 0, 0,
		0, 0, 4, 5,
		0, 0, 5, 4,
		0, 0, 5, 5,
	})
}

func TestNMFShapesAndNonNegativity(t *testing.T) {
	a := blockmatrix()

	nmf := NewNonNegativeFactorisation(2)
	w, h, err := nmf.FitTransform(a)
	require.NoError(t, err)

	wr, wc := w.Dims()
	hr, hc := h.Dims()
	assert.Equal(t, 6, wr)
	assert.Equal(t, 2, wc)
	assert.Equal(t, 2, hr)
	assert.Equal(t, 4, hc)

	for i := 0; i < wr; i++ {
		for j := 0; j < wc; j++ {
			assert.GreaterOrEqual(t, w.At(i, j), 0.0)
		}
	}
	for i := 0; i < hr; i++ {
		for j := 0; j < hc; j++ {
			assert.GreaterOrEqual(t, h.At(i, j), 0.0)
		}
	}
}

func TestNMFReconstruction(t *testing.T) {
	a := blockmatrix()

	nmf := NewNonNegativeFactorisation(2)
	w, h, err := nmf.FitTransform(a)
	require.NoError(t, err)

	// the block structure is exactly rank 2-ish; the residual should be small relative to A
	var wh mat.Dense
	wh.Mul(w, h)
	wh.Sub(a, &wh)
	assert.Less(t, mat.Norm(&wh, 2)/mat.Norm(a, 2), 0.15)
}

func TestNMFDeterministic(t *testing.T) {
	a := blockmatrix()

	w1, h1, err := NewNonNegativeFactorisation(2).FitTransform(a)
	require.NoError(t, err)
	w2, h2, err := NewNonNegativeFactorisation(2).FitTransform(a)
	require.NoError(t, err)

	assert.True(t, mat.EqualApprox(w1, w2, 1e-12), "seeded init should make runs repeatable")
	assert.True(t, mat.EqualApprox(h1, h2, 1e-12))
}

func TestNMFRejectsBadInput(t *testing.T) {
	_, _, err := NewNonNegativeFactorisation(2).FitTransform(mat.NewDense(1, 1, []float64{1}))
	assert.Error(t, err, "k larger than the matrix should be refused")
}
