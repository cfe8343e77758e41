//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// non-negative matrix factorisation via Lee & Seung multiplicative updates:
// A (terms x docs) is approximated by W (terms x k) times H (k x docs) with
// every entry of W and H kept >= 0; that makes the factors directly readable
// as topics, unlike the signed loadings an SVD will hand you

const (
	NMFEPSILON  = 1e-12
	NMFINITSEED = 1729
)

// NonNegativeFactorisation - configuration for a single factorisation run
type NonNegativeFactorisation struct {
	K          int
	Iterations int
	Tolerance  float64
	seed       uint64
}

// NewNonNegativeFactorisation - a factoriser with the default knob settings
func NewNonNegativeFactorisation(k int) *NonNegativeFactorisation {
	return &NonNegativeFactorisation{
		K:          k,
		Iterations: NMFITERATIONS,
		Tolerance:  NMFTOLERANCE,
		seed:       NMFINITSEED,
	}
}

// FitTransform - factorise a non-negative matrix; returns W (terms x k) and H (k x docs)
func (n *NonNegativeFactorisation) FitTransform(m mat.Matrix) (*mat.Dense, *mat.Dense, error) {
	const (
		FAIL1 = "input matrix is empty"
		FAIL2 = "requested %d topics but the matrix is only %d x %d"
		MSG1  = "NonNegativeFactorisation: converged after %d iterations (residual %.6f)"
		MSG2  = "NonNegativeFactorisation: stopped at the iteration cap (residual %.6f)"
	)

	a := mat.DenseCopyOf(m)
	rows, cols := a.Dims()

	if rows == 0 || cols == 0 {
		return nil, nil, errors.New(FAIL1)
	}

	k := n.K
	if k > rows || k > cols {
		return nil, nil, fmt.Errorf(FAIL2, k, rows, cols)
	}

	// negative entries would wreck the update rule; clip just in case
	a.Apply(func(i, j int, v float64) float64 {
		if v < 0 {
			return 0
		}
		return v
	}, a)

	rng := rand.New(rand.NewSource(n.seed))
	w := mat.NewDense(rows, k, nil)
	h := mat.NewDense(k, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < k; j++ {
			w.Set(i, j, rng.Float64()+NMFEPSILON)
		}
	}
	for i := 0; i < k; i++ {
		for j := 0; j < cols; j++ {
			h.Set(i, j, rng.Float64()+NMFEPSILON)
		}
	}

	var (
		wta  = mat.NewDense(k, cols, nil) // Wᵀ A
		wtw  = mat.NewDense(k, k, nil)    // Wᵀ W
		wtwh = mat.NewDense(k, cols, nil) // Wᵀ W H
		aht  = mat.NewDense(rows, k, nil) // A Hᵀ
		hht  = mat.NewDense(k, k, nil)    // H Hᵀ
		whht = mat.NewDense(rows, k, nil) // W H Hᵀ
		wh   = mat.NewDense(rows, cols, nil)
	)

	residual := func() float64 {
		wh.Mul(w, h)
		wh.Sub(a, wh)
		return mat.Norm(wh, 2)
	}

	prev := residual()
	for it := 0; it < n.Iterations; it++ {
		// H <- H .* (WᵀA) ./ (WᵀWH)
		wta.Mul(w.T(), a)
		wtw.Mul(w.T(), w)
		wtwh.Mul(wtw, h)
		for i := 0; i < k; i++ {
			for j := 0; j < cols; j++ {
				h.Set(i, j, h.At(i, j)*wta.At(i, j)/(wtwh.At(i, j)+NMFEPSILON))
			}
		}

		// W <- W .* (AHᵀ) ./ (WHHᵀ)
		aht.Mul(a, h.T())
		hht.Mul(h, h.T())
		whht.Mul(w, hht)
		for i := 0; i < rows; i++ {
			for j := 0; j < k; j++ {
				w.Set(i, j, w.At(i, j)*aht.At(i, j)/(whht.At(i, j)+NMFEPSILON))
			}
		}

		curr := residual()
		if prev > 0 && math.Abs(prev-curr)/prev < n.Tolerance {
			msg(fmt.Sprintf(MSG1, it+1, curr), MSGTMI)
			return w, h, nil
		}
		prev = curr
	}

	msg(fmt.Sprintf(MSG2, prev), MSGTMI)
	return w, h, nil
}
