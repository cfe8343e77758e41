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

func TestSyntheticPLSShapes(t *testing.T) {
	s := SyntheticSettings{Rows: 50, Cols: 10, Rank: 3, Noise: 0.2, Seed: 11}
	x, y := SyntheticPLS(s)

	r, c := x.Dims()
	assert.Equal(t, 50, r)
	assert.Equal(t, 10, c)
	assert.Equal(t, 50, len(y))
}

func TestSyntheticPLSSeededReproducibility(t *testing.T) {
	s := SyntheticSettings{Rows: 40, Cols: 8, Rank: 2, Noise: 0.3, Seed: 42}

	x1, y1 := SyntheticPLS(s)
	x2, y2 := SyntheticPLS(s)
	assert.True(t, mat.Equal(x1, x2), "same seed, same data")
	assert.Equal(t, y1, y2)

	s.Seed = 43
	x3, _ := SyntheticPLS(s)
	assert.False(t, mat.Equal(x1, x3), "different seed, different data")
}

func TestSyntheticPLSClampsRank(t *testing.T) {
	s := SyntheticSettings{Rows: 20, Cols: 3, Rank: 10, Noise: 0, Seed: 1}
	x, y := SyntheticPLS(s)

	r, c := x.Dims()
	assert.Equal(t, 20, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 20, len(y))
}

func TestTrainTestSplit(t *testing.T) {
	s := SyntheticSettings{Rows: 100, Cols: 5, Rank: 2, Noise: 0.1, Seed: 9}
	x, y := SyntheticPLS(s)

	xtr, ytr, xte, yte := TrainTestSplit(x, y, 0.25, s.Seed)

	trr, trc := xtr.Dims()
	ter, tec := xte.Dims()
	assert.Equal(t, 75, trr)
	assert.Equal(t, 25, ter)
	assert.Equal(t, 5, trc)
	assert.Equal(t, 5, tec)
	assert.Equal(t, 75, len(ytr))
	assert.Equal(t, 25, len(yte))

	// the split is seeded: the same call yields the same partition
	xtr2, ytr2, _, _ := TrainTestSplit(x, y, 0.25, s.Seed)
	assert.True(t, mat.Equal(xtr, xtr2))
	assert.Equal(t, ytr, ytr2)
}

func TestTrainTestSplitAlwaysLeavesTraining(t *testing.T) {
	s := SyntheticSettings{Rows: 4, Cols: 2, Rank: 1, Noise: 0, Seed: 5}
	x, y := SyntheticPLS(s)

	xtr, ytr, xte, yte := TrainTestSplit(x, y, 0.99, s.Seed)

	trr, _ := xtr.Dims()
	ter, _ := xte.Dims()
	require.Equal(t, 4, trr+ter)
	assert.GreaterOrEqual(t, trr, 1)
	assert.GreaterOrEqual(t, ter, 1)
	assert.Equal(t, trr, len(ytr))
	assert.Equal(t, ter, len(yte))
}
