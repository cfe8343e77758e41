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

func TestClampTopicCount(t *testing.T) {
	assert.Equal(t, TOPICSDEFAULT, clamptopiccount(0))
	assert.Equal(t, TOPICSDEFAULT, clamptopiccount(-5))
	assert.Equal(t, TOPICSMIN, clamptopiccount(1))
	assert.Equal(t, TOPICSMAX, clamptopiccount(1000))
	assert.Equal(t, 7, clamptopiccount(7))
}

func TestTopicTopWords(t *testing.T) {
	vocab := []string{"apple", "boat", "cat", "dog"}
	// topic 0 loads on dog and cat; topic 1 loads (negatively) on apple
	tow := mat.NewDense(2, 4, []float64{
		0.1, 0.0, 0.5, 0.9,
		-0.8, 0.3, 0.1, 0.0,
	})

	tops := topictopwords(tow, vocab, 2)
	require.Equal(t, 2, len(tops))

	assert.Equal(t, "dog", tops[0][0].W)
	assert.Equal(t, "cat", tops[0][1].W)
	assert.Equal(t, "apple", tops[1][0].W, "ranking uses the absolute loading")
	assert.Equal(t, "boat", tops[1][1].W)
}

func TestTopWordStrings(t *testing.T) {
	tops := map[int][]topicsorter{
		0: {{W: "dog", V: 0.9}, {W: "cat", V: 0.5}},
		1: {{W: "apple", V: 0.8}},
	}
	ww := topwordstrings(tops)
	require.Equal(t, 2, len(ww))
	assert.Equal(t, "dog, cat", ww[0])
	assert.Equal(t, "apple", ww[1])
}

func TestDocPerTopicAndWeights(t *testing.T) {
	// 2 topics x 3 docs; docs 0 and 1 belong to topic 0, doc 2 to topic 1
	dot := mat.NewDense(2, 3, []float64{
		0.9, 0.8, 0.1,
		0.1, 0.2, 0.9,
	})

	counts := docpertopic(2, dot)
	assert.Equal(t, []int{2, 1}, counts)

	winners := dominanttopics(dot)
	assert.Equal(t, []int{0, 0, 1}, winners)

	weights := docbyweight(2, dot)
	require.Equal(t, 2, len(weights))
	assert.InDelta(t, 1.0, weights[0], 1e-12, "the heaviest topic scales to 1")
	assert.InDelta(t, 1.2/1.8, weights[1], 1e-12)
}

func TestTopicWinningSentences(t *testing.T) {
	bags := []BagWithSource{
		{Loc: "news/a/1", Bag: "hockey goalie puck"},
		{Loc: "news/b/1", Bag: "orbit shuttle launch"},
		{Loc: "news/c/1", Bag: "goalie save rebound"},
	}
	dot := mat.NewDense(2, 3, []float64{
		0.7, 0.1, 0.9,
		0.2, 0.8, 0.1,
	})

	winners, scores := topicwinningsentences(2, bags, dot)
	require.Equal(t, 2, len(winners))
	assert.Equal(t, "news/c/1", winners[0].Loc)
	assert.InDelta(t, 0.9, scores[0], 1e-12)
	assert.Equal(t, "news/b/1", winners[1].Loc)
	assert.InDelta(t, 0.8, scores[1], 1e-12)
}

func TestPrepareTopicWorkspace(t *testing.T) {
	corpus := []string{
		"hockey goalie puck rink",
		"shuttle orbit launch rocket",
		"goalie save puck",
	}

	ws := preparetopicworkspace(corpus)
	require.NotNil(t, ws.Vectoriser)

	vocab := invertvocabulary(ws.Vectoriser)
	assert.Contains(t, vocab, "goalie")
	assert.Contains(t, vocab, "rocket")

	// terms as rows, documents as columns
	tr, tc := ws.Counts.Dims()
	assert.Equal(t, len(vocab), tr)
	assert.Equal(t, 3, tc)

	wr, wc := ws.Tfidf.Dims()
	assert.Equal(t, tr, wr)
	assert.Equal(t, tc, wc)
}

func TestModelsShareTheCommonShape(t *testing.T) {
	Config = BuildDefaultConfig()

	corpus := []string{
		"hockey goalie puck rink ice skate",
		"goalie save puck rebound net",
		"shuttle orbit launch rocket fuel",
		"orbit satellite launch telescope",
		"engine brake clutch gearbox",
		"clutch gearbox engine oil",
	}

	ws := preparetopicworkspace(corpus)
	nwords := len(ws.Vectoriser.Vocabulary)

	cfg := DefaultTopicConfig
	cfg.Topics = 3
	cfg.LDAIterations = 10
	cfg.LDAXformPasses = 10
	cfg.NMFIterations = 50

	check := func(out TopicModelOutput) {
		dr, dc := out.DocsOverTopics.Dims()
		assert.Equal(t, 3, dr, out.Method)
		assert.Equal(t, len(corpus), dc, out.Method)

		wr, wc := out.TopicsOverWords.Dims()
		assert.Equal(t, 3, wr, out.Method)
		assert.Equal(t, nwords, wc, out.Method)
	}

	check(ldamodel(3, ws, cfg))
	check(lsamodel(3, ws))
	check(nmfmodel(3, ws, cfg))
}
