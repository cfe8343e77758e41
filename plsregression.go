//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// partial least squares regression via NIPALS, single response: each component
// is a direction in X chosen for its covariance with y, not for its variance,
// so a few components recover a low-rank signal that OLS has to chase across
// every column

// PLSRegression - a NIPALS fit with a fixed number of components
type PLSRegression struct {
	Components int
	xmean      []float64
	ymean      float64
	coef       []float64
	fitted     bool
}

// NewPLSRegression - a PLSR model; the component count is clamped at fit time
func NewPLSRegression(ncomp int) *PLSRegression {
	return &PLSRegression{Components: ncomp}
}

// Fit - deflate X against y one component at a time, then collapse into regression coefficients
func (pls *PLSRegression) Fit(x *mat.Dense, y []float64) error {
	const (
		FAIL1 = "Fit() needs at least 2 rows"
		FAIL2 = "Fit(): %d rows of X but %d values of y"
	)

	rows, cols := x.Dims()
	if rows < 2 {
		return errors.New(FAIL1)
	}
	if rows != len(y) {
		return fmt.Errorf(FAIL2, rows, len(y))
	}

	ncomp := pls.Components
	if ncomp < 1 {
		ncomp = 1
	}
	if ncomp > cols {
		ncomp = cols
	}
	if ncomp > rows-1 {
		ncomp = rows - 1
	}
	pls.Components = ncomp

	// center both sides
	pls.xmean = colmeans(x)
	pls.ymean = 0
	for _, v := range y {
		pls.ymean += v
	}
	pls.ymean /= float64(rows)

	xc := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			xc.Set(i, j, x.At(i, j)-pls.xmean[j])
		}
	}
	yc := make([]float64, rows)
	for i := 0; i < rows; i++ {
		yc[i] = y[i] - pls.ymean
	}

	ww := mat.NewDense(cols, ncomp, nil) // weights
	pp := mat.NewDense(cols, ncomp, nil) // X loadings
	qq := make([]float64, ncomp)         // y loadings

	w := make([]float64, cols)
	t := make([]float64, rows)
	p := make([]float64, cols)

	kept := 0
	for a := 0; a < ncomp; a++ {
		// w = Xᵀy / ||Xᵀy||
		norm := 0.0
		for j := 0; j < cols; j++ {
			s := 0.0
			for i := 0; i < rows; i++ {
				s += xc.At(i, j) * yc[i]
			}
			w[j] = s
			norm += s * s
		}
		norm = math.Sqrt(norm)
		if norm < 1e-14 {
			break // y is fully explained; nothing left to extract
		}
		for j := 0; j < cols; j++ {
			w[j] /= norm
		}

		// t = Xw
		tt := 0.0
		for i := 0; i < rows; i++ {
			s := 0.0
			for j := 0; j < cols; j++ {
				s += xc.At(i, j) * w[j]
			}
			t[i] = s
			tt += s * s
		}
		if tt < 1e-14 {
			break
		}

		// p = Xᵀt / tᵀt ; q = yᵀt / tᵀt
		for j := 0; j < cols; j++ {
			s := 0.0
			for i := 0; i < rows; i++ {
				s += xc.At(i, j) * t[i]
			}
			p[j] = s / tt
		}
		q := 0.0
		for i := 0; i < rows; i++ {
			q += yc[i] * t[i]
		}
		q /= tt

		// deflate
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				xc.Set(i, j, xc.At(i, j)-t[i]*p[j])
			}
			yc[i] -= q * t[i]
		}

		ww.SetCol(a, w)
		pp.SetCol(a, p)
		qq[a] = q
		kept++
	}

	if kept == 0 {
		// a constant response: predict the mean
		pls.coef = make([]float64, cols)
		pls.fitted = true
		return nil
	}

	// B = W (PᵀW)⁻¹ q
	wk := ww.Slice(0, cols, 0, kept)
	pk := pp.Slice(0, cols, 0, kept)

	var ptw mat.Dense
	ptw.Mul(pk.T(), wk)

	qv := mat.NewVecDense(kept, qq[0:kept])
	sol := mat.NewVecDense(kept, nil)
	err := sol.SolveVec(&ptw, qv)
	if err != nil {
		return err
	}

	bv := mat.NewVecDense(cols, nil)
	bv.MulVec(wk, sol)

	pls.coef = make([]float64, cols)
	for j := 0; j < cols; j++ {
		pls.coef[j] = bv.AtVec(j)
	}
	pls.fitted = true
	return nil
}

// Predict - apply the fitted coefficients to new rows
func (pls *PLSRegression) Predict(x *mat.Dense) ([]float64, error) {
	const (
		FAIL1 = "Predict() called before Fit()"
		FAIL2 = "Predict(): fitted on %d columns but given %d"
	)

	if !pls.fitted {
		return nil, errors.New(FAIL1)
	}
	rows, cols := x.Dims()
	if cols != len(pls.coef) {
		return nil, fmt.Errorf(FAIL2, len(pls.coef), cols)
	}

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		s := pls.ymean
		for j := 0; j < cols; j++ {
			s += (x.At(i, j) - pls.xmean[j]) * pls.coef[j]
		}
		out[i] = s
	}
	return out, nil
}

// Coefficients - a copy of the fitted regression coefficients
func (pls *PLSRegression) Coefficients() []float64 {
	out := make([]float64, len(pls.coef))
	copy(out, pls.coef)
	return out
}

//
// ORDINARY LEAST SQUARES (the baseline)
//

// OLSRegression - least squares on all columns at once via QR
type OLSRegression struct {
	xmean  []float64
	ymean  float64
	coef   []float64
	fitted bool
}

// Fit - solve the centered least squares problem; refuses underdetermined input
func (ols *OLSRegression) Fit(x *mat.Dense, y []float64) error {
	const (
		FAIL1 = "Fit(): %d rows of X but %d values of y"
		FAIL2 = "Fit(): %d rows cannot determine %d coefficients; OLS needs rows > columns"
	)

	rows, cols := x.Dims()
	if rows != len(y) {
		return fmt.Errorf(FAIL1, rows, len(y))
	}
	if rows <= cols {
		return fmt.Errorf(FAIL2, rows, cols)
	}

	ols.xmean = colmeans(x)
	ols.ymean = 0
	for _, v := range y {
		ols.ymean += v
	}
	ols.ymean /= float64(rows)

	xc := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			xc.Set(i, j, x.At(i, j)-ols.xmean[j])
		}
	}
	yc := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yc.SetVec(i, y[i]-ols.ymean)
	}

	var qr mat.QR
	qr.Factorize(xc)

	sol := mat.NewVecDense(cols, nil)
	err := qr.SolveVecTo(sol, false, yc)
	if err != nil {
		return err
	}

	ols.coef = make([]float64, cols)
	for j := 0; j < cols; j++ {
		ols.coef[j] = sol.AtVec(j)
	}
	ols.fitted = true
	return nil
}

// Predict - apply the fitted coefficients to new rows
func (ols *OLSRegression) Predict(x *mat.Dense) ([]float64, error) {
	const (
		FAIL1 = "Predict() called before Fit()"
		FAIL2 = "Predict(): fitted on %d columns but given %d"
	)

	if !ols.fitted {
		return nil, errors.New(FAIL1)
	}
	rows, cols := x.Dims()
	if cols != len(ols.coef) {
		return nil, fmt.Errorf(FAIL2, len(ols.coef), cols)
	}

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		s := ols.ymean
		for j := 0; j < cols; j++ {
			s += (x.At(i, j) - ols.xmean[j]) * ols.coef[j]
		}
		out[i] = s
	}
	return out, nil
}

//
// SCORING
//

// rootmeansquarederror - sqrt of the mean squared residual
func rootmeansquarederror(actual []float64, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return math.NaN()
	}
	s := 0.0
	for i := range actual {
		d := actual[i] - predicted[i]
		s += d * d
	}
	return math.Sqrt(s / float64(len(actual)))
}

// rsquared - 1 minus the residual share of the variance
func rsquared(actual []float64, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return math.NaN()
	}
	mean := 0.0
	for _, v := range actual {
		mean += v
	}
	mean /= float64(len(actual))

	ssres := 0.0
	sstot := 0.0
	for i := range actual {
		d := actual[i] - predicted[i]
		ssres += d * d
		t := actual[i] - mean
		sstot += t * t
	}
	if sstot == 0 {
		return math.NaN()
	}
	return 1 - ssres/sstot
}

// colmeans - per-column means of a matrix
func colmeans(x *mat.Dense) []float64 {
	rows, cols := x.Dims()
	out := make([]float64, cols)
	for j := 0; j < cols; j++ {
		s := 0.0
		for i := 0; i < rows; i++ {
			s += x.At(i, j)
		}
		out[j] = s / float64(rows)
	}
	return out
}
