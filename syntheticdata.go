//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// the synthetic regression problem: a handful of latent factors generate both
// the predictors and the response; X = T Pᵀ + noise and y = T q + noise; with
// the noise at zero a partial least squares fit with as many components as
// there are factors should reproduce y almost exactly

// SyntheticSettings - the knobs for one synthetic draw
type SyntheticSettings struct {
	Rows  int
	Cols  int
	Rank  int
	Noise float64
	Seed  uint64
}

// settingsfromsession - pull the synthetic data knobs out of a session
func settingsfromsession(se ServerSession) SyntheticSettings {
	return SyntheticSettings{
		Rows:  se.SynthRows,
		Cols:  se.SynthCols,
		Rank:  se.SynthRank,
		Noise: se.SynthNoise,
		Seed:  se.SynthSeed,
	}
}

// Describe - "240 rows, 40 columns, 4 latent factors, noise 0.25, seed 42"
func (s SyntheticSettings) Describe() string {
	const (
		TMPL = "%d rows, %d columns, %d latent factors, noise %.2f, seed %d"
	)
	return fmt.Sprintf(TMPL, s.Rows, s.Cols, s.Rank, s.Noise, s.Seed)
}

// SyntheticPLS - draw a seeded latent-factor dataset; same seed, same data, every time
func SyntheticPLS(s SyntheticSettings) (*mat.Dense, []float64) {
	rng := rand.New(rand.NewSource(s.Seed))
	gauss := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}

	rank := s.Rank
	if rank > s.Cols {
		rank = s.Cols
	}
	if rank < 1 {
		rank = 1
	}

	// latent scores T (rows x rank)
	t := mat.NewDense(s.Rows, rank, nil)
	for i := 0; i < s.Rows; i++ {
		for j := 0; j < rank; j++ {
			t.Set(i, j, gauss.Rand())
		}
	}

	// factor loadings P (cols x rank)
	p := mat.NewDense(s.Cols, rank, nil)
	for i := 0; i < s.Cols; i++ {
		for j := 0; j < rank; j++ {
			p.Set(i, j, gauss.Rand())
		}
	}

	// response weights q (rank)
	q := make([]float64, rank)
	for j := 0; j < rank; j++ {
		q[j] = gauss.Rand()
	}

	x := mat.NewDense(s.Rows, s.Cols, nil)
	x.Mul(t, p.T())

	y := make([]float64, s.Rows)
	for i := 0; i < s.Rows; i++ {
		for j := 0; j < rank; j++ {
			y[i] += t.At(i, j) * q[j]
		}
	}

	if s.Noise > 0 {
		for i := 0; i < s.Rows; i++ {
			for j := 0; j < s.Cols; j++ {
				x.Set(i, j, x.At(i, j)+s.Noise*gauss.Rand())
			}
			y[i] += s.Noise * gauss.Rand()
		}
	}

	return x, y
}

// TrainTestSplit - a seeded shuffle-and-cut; the test set gets the ceiling share
func TrainTestSplit(x *mat.Dense, y []float64, fraction float64, seed uint64) (*mat.Dense, []float64, *mat.Dense, []float64) {
	rows, cols := x.Dims()

	idx := make([]int, rows)
	for i := range idx {
		idx[i] = i
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(rows, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	ntest := int(float64(rows) * fraction)
	if ntest < 1 {
		ntest = 1
	}
	if ntest >= rows {
		ntest = rows - 1
	}

	ntrain := rows - ntest
	xtr := mat.NewDense(ntrain, cols, nil)
	ytr := make([]float64, ntrain)
	xte := mat.NewDense(ntest, cols, nil)
	yte := make([]float64, ntest)

	for i := 0; i < ntrain; i++ {
		xtr.SetRow(i, mat.Row(nil, idx[i], x))
		ytr[i] = y[idx[i]]
	}
	for i := 0; i < ntest; i++ {
		xte.SetRow(i, mat.Row(nil, idx[ntrain+i], x))
		yte[i] = y[idx[ntrain+i]]
	}

	return xtr, ytr, xte, yte
}
