//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"testing"

	"github.com/e-gun/wego/pkg/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStability(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	a := fingerprintnnvectorsearch(CORPUSLITERARY, "plain", "w2v")
	b := fingerprintnnvectorsearch(CORPUSLITERARY, "plain", "w2v")
	assert.Equal(t, a, b, "identical inputs must fingerprint identically")
	assert.Equal(t, 32, len(a), "md5 hex digest")
}

func TestFingerprintDiscriminates(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	base := fingerprintnnvectorsearch(CORPUSLITERARY, "plain", "w2v")
	assert.NotEqual(t, base, fingerprintnnvectorsearch(CORPUSNEWS, "plain", "w2v"))
	assert.NotEqual(t, base, fingerprintnnvectorsearch(CORPUSLITERARY, "folded", "w2v"))
	assert.NotEqual(t, base, fingerprintnnvectorsearch(CORPUSLITERARY, "plain", "glove"))
}

func TestVectorFSCacheRoundtrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	embs := embedding.Embeddings{
		{Word: "whale", Vector: []float64{0.1, 0.2, 0.3}},
		{Word: "sea", Vector: []float64{0.4, 0.5, 0.6}},
	}

	const fp = "0123456789abcdef0123456789abcdef"

	assert.False(t, vectorfscheck(fp))

	vectorfsadd(fp, embs)
	require.True(t, vectorfscheck(fp))

	got := vectorfsfetch(fp)
	require.Equal(t, 2, len(got))
	assert.Equal(t, "whale", got[0].Word)
	assert.Equal(t, []float64{0.4, 0.5, 0.6}, got[1].Vector)

	vectorfsreset()
	assert.False(t, vectorfscheck(fp))
}

func TestVectorCacheDispatchesToFSWithoutPG(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	embs := embedding.Embeddings{{Word: "ahab", Vector: []float64{1, 2}}}

	const fp = "ffffffffffffffffffffffffffffffff"

	// SQLPool is nil in tests; the cache must fall through to the filesystem
	assert.False(t, vectorcachecheck(fp))
	vectorcacheadd(fp, embs)
	assert.True(t, vectorcachecheck(fp))

	got := vectorcachefetch(fp)
	require.Equal(t, 1, len(got))
	assert.Equal(t, "ahab", got[0].Word)

	vectorcachereset()
	assert.False(t, vectorcachecheck(fp))
}

func TestTopicModelConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := topicmodelconfig()
	assert.Equal(t, TOPICSDEFAULT, cfg.Topics)
	assert.Equal(t, LDAITERATIONS, cfg.LDAIterations)
	assert.Equal(t, TOPWORDSPERTOPIC, cfg.TopWords)

	// a second read comes from the file just written
	again := topicmodelconfig()
	assert.Equal(t, cfg, again)
}
