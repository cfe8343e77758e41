//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/danaugrs/go-tsne/tsne"
	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"
)

// "github.com/james-bowman/nlp" stores matrices with terms as rows and documents as columns:
// a CountVectoriser yields (terms x docs); LDA yields docsOverTopics as (topics x docs) and
// Components() as (topics x words); the LSA and NMF wrappers below are made to match that shape
// so that every downstream table and plot is method-agnostic

//see https://github.com/james-bowman/nlp/blob/26d441fa0ded/lda.go
//DefaultLDA = nlp.LatentDirichletAllocation{
//	Iterations:                    1000,
//	PerplexityTolerance:           1e-2,
//	PerplexityEvaluationFrequency: 30,
//	BatchSize:                     100,
//	K:                             k,
//	...
//}

// TopicModelOutput - one fitted topic model in the common shape
type TopicModelOutput struct {
	Method          string
	DocsOverTopics  mat.Matrix // (topics x docs)
	TopicsOverWords mat.Matrix // (topics x words)
}

// clamptopiccount - topic counts outside [TOPICSMIN, TOPICSMAX] are not honored
func clamptopiccount(n int) int {
	if n <= 0 {
		return TOPICSDEFAULT
	}
	if n < TOPICSMIN {
		return TOPICSMIN
	}
	if n > TOPICSMAX {
		return TOPICSMAX
	}
	return n
}

// topicworkspace - the document-term matrices every method fits against
type topicworkspace struct {
	Vectoriser *nlp.CountVectoriser
	Counts     mat.Matrix // raw counts (terms x docs)
	Tfidf      mat.Matrix // weighted (terms x docs)
}

// preparetopicworkspace - vectorise the corpus once so all methods see the same matrix
func preparetopicworkspace(corpus []string) topicworkspace {
	const (
		FAIL1 = "preparetopicworkspace() failed to vectorise the corpus"
		FAIL2 = "preparetopicworkspace() failed to apply tf-idf weights"
	)

	stops := StringMapKeysIntoSlice(getstopset())
	vectoriser := nlp.NewCountVectoriser(stops...)

	counts, err := vectoriser.FitTransform(corpus...)
	chkf(err, FAIL1)

	tfidf := nlp.NewTfidfTransformer()
	weighted, err := tfidf.FitTransform(counts)
	chkf(err, FAIL2)

	return topicworkspace{
		Vectoriser: vectoriser,
		Counts:     counts,
		Tfidf:      weighted,
	}
}

// ldamodel - fit Latent Dirichlet Allocation against the raw counts
func ldamodel(ntopics int, ws topicworkspace, cfg TopicConfig) TopicModelOutput {
	const (
		FAIL = "ldamodel() failed to model topics for documents"
	)

	lda := nlp.NewLatentDirichletAllocation(ntopics)
	lda.Processes = Config.WorkerCount
	lda.Iterations = cfg.LDAIterations
	lda.TransformationPasses = cfg.LDAXformPasses

	docsOverTopics, err := lda.FitTransform(ws.Counts)
	chkf(err, FAIL)

	return TopicModelOutput{
		Method:          "lda",
		DocsOverTopics:  docsOverTopics,
		TopicsOverWords: lda.Components(),
	}
}

// lsamodel - fit truncated SVD (latent semantic analysis) against the tf-idf weights
func lsamodel(ntopics int, ws topicworkspace) TopicModelOutput {
	const (
		FAIL = "lsamodel() failed to factorise the corpus"
	)

	svd := nlp.NewTruncatedSVD(ntopics)

	docsOverTopics, err := svd.FitTransform(ws.Tfidf)
	chkf(err, FAIL)

	// svd.Components is (terms x k); flip it into the common (topics x words) shape
	wr, wc := svd.Components.Dims()
	flipped := mat.NewDense(wc, wr, nil)
	for w := 0; w < wr; w++ {
		for t := 0; t < wc; t++ {
			flipped.Set(t, w, svd.Components.At(w, t))
		}
	}

	return TopicModelOutput{
		Method:          "lsa",
		DocsOverTopics:  docsOverTopics,
		TopicsOverWords: flipped,
	}
}

// nmfmodel - fit the in-house non-negative factoriser against the tf-idf weights
func nmfmodel(ntopics int, ws topicworkspace, cfg TopicConfig) TopicModelOutput {
	const (
		FAIL = "nmfmodel() failed to factorise the corpus"
	)

	nmf := NewNonNegativeFactorisation(ntopics)
	nmf.Iterations = cfg.NMFIterations
	nmf.Tolerance = cfg.NMFTolerance

	w, h, err := nmf.FitTransform(ws.Tfidf)
	chkf(err, FAIL)

	// w is (terms x k); flip it into the common (topics x words) shape
	wr, wc := w.Dims()
	flipped := mat.NewDense(wc, wr, nil)
	for t := 0; t < wc; t++ {
		for word := 0; word < wr; word++ {
			flipped.Set(t, word, w.At(word, t))
		}
	}

	return TopicModelOutput{
		Method:          "nmf",
		DocsOverTopics:  h,
		TopicsOverWords: flipped,
	}
}

//
// THE TOP-WORD HELPER AND ITS FRIENDS
//

type topicsorter struct {
	W string
	V float64
}

// invertvocabulary - the vectoriser's word->column map becomes a column->word slice
func invertvocabulary(vectoriser *nlp.CountVectoriser) []string {
	vocab := make([]string, len(vectoriser.Vocabulary))
	for k, v := range vectoriser.Vocabulary {
		vocab[v] = k
	}
	return vocab
}

// topictopwords - the most significant words for each topic, sorted; the loading sign is ignored
// so that LSA's negative loadings rank fairly against LDA and NMF
func topictopwords(topicsOverWords mat.Matrix, vocab []string, topn int) map[int][]topicsorter {
	tr, tc := topicsOverWords.Dims()

	if topn > tc {
		topn = tc
	}

	tops := make(map[int][]topicsorter)
	for topic := 0; topic < tr; topic++ {
		tss := make([]topicsorter, tc)
		for word := 0; word < tc; word++ {
			tss[word] = topicsorter{
				W: vocab[word],
				V: topicsOverWords.At(topic, word),
			}
		}
		sort.Slice(tss, func(i, j int) bool {
			return math.Abs(tss[i].V) > math.Abs(tss[j].V)
		})
		tops[topic] = tss[0:topn]
	}
	return tops
}

// topwordstrings - "word1, word2, word3, ..." for each topic
func topwordstrings(tops map[int][]topicsorter) []string {
	out := make([]string, len(tops))
	for topic := 0; topic < len(tops); topic++ {
		ts := tops[topic]
		ww := make([]string, len(ts))
		for i := 0; i < len(ts); i++ {
			ww[i] = ts[i].W
		}
		out[topic] = strings.Join(ww, ", ")
	}
	return out
}

// docpertopic - N sentences have topic X as their dominant topic
func docpertopic(ntopics int, docsOverTopics mat.Matrix) []int {
	counter := make([]int, ntopics)
	dr, dc := docsOverTopics.Dims()
	for doc := 0; doc < dc; doc++ {
		max := math.Inf(-1)
		winner := 0
		for topic := 0; topic < dr; topic++ {
			// any given corpus[doc] will look like
			// Topic #0=0.006009, Topic #1=0.006915, Topic #2=0.000688, Topic #3=0.449514, Topic #4=0.536875
			if math.Abs(docsOverTopics.At(topic, doc)) > max {
				winner = topic
				max = math.Abs(docsOverTopics.At(topic, doc))
			}
		}
		counter[winner] += 1
	}
	return counter
}

// docbyweight - scaled total accumulated weight of each topic
func docbyweight(ntopics int, docsOverTopics mat.Matrix) []float64 {
	counter := make([]float64, ntopics)
	dr, dc := docsOverTopics.Dims()
	for doc := 0; doc < dc; doc++ {
		for topic := 0; topic < dr; topic++ {
			counter[topic] += math.Abs(docsOverTopics.At(topic, doc))
		}
	}

	high := float64(0)
	for i := 0; i < ntopics; i++ {
		if counter[i] > high {
			high = counter[i]
		}
	}
	if high == 0 {
		high = 1
	}

	scaled := make([]float64, ntopics)
	for i := 0; i < ntopics; i++ {
		scaled[i] = counter[i] / high
	}
	return scaled
}

// dominanttopics - the winning topic per document
func dominanttopics(docsOverTopics mat.Matrix) []int {
	dr, dc := docsOverTopics.Dims()
	winners := make([]int, dc)
	for doc := 0; doc < dc; doc++ {
		max := math.Inf(-1)
		for topic := 0; topic < dr; topic++ {
			if math.Abs(docsOverTopics.At(topic, doc)) > max {
				winners[doc] = topic
				max = math.Abs(docsOverTopics.At(topic, doc))
			}
		}
	}
	return winners
}

// topicwinningsentences - the sentence most associated with each topic
func topicwinningsentences(ntopics int, bags []BagWithSource, docsOverTopics mat.Matrix) ([]BagWithSource, []float64) {
	dr, dc := docsOverTopics.Dims()

	winners := make([]BagWithSource, ntopics)
	scores := make([]float64, ntopics)
	for topic := 0; topic < dr; topic++ {
		max := math.Inf(-1)
		winner := 0
		for doc := 0; doc < dc; doc++ {
			f := math.Abs(docsOverTopics.At(topic, doc))
			if f > max {
				winner = doc
				max = f
			}
		}
		if winner < len(bags) {
			winners[topic] = bags[winner]
			scores[topic] = max
		}
	}
	return winners, scores
}

//
// t-SNE of the document-topic mixtures
//

// topicprojection - project (topics x docs) mixtures onto 2d points via t-SNE
func topicprojection(docsOverTopics mat.Matrix, cfg TopicConfig) [][2]float64 {
	dr, dc := docsOverTopics.Dims()

	var dd []float64
	for doc := 0; doc < dc; doc++ {
		for topic := 0; topic < dr; topic++ {
			dd = append(dd, docsOverTopics.At(topic, doc))
		}
	}

	// note that we flop r & c: the embedder wants one row per document
	wv := mat.NewDense(dc, dr, dd)

	t := tsne.NewTSNE(2, cfg.GraphPerplexity, cfg.GraphLearningRt, cfg.GraphIterations, false)
	t.EmbedData(wv, nil)

	pts := make([][2]float64, dc)
	for doc := 0; doc < dc; doc++ {
		pts[doc] = [2]float64{t.Y.At(doc, 0), t.Y.At(doc, 1)}
	}
	return pts
}

// describecorpusbags - "newsgroups: 212 bags, 1480 distinct words"
func describecorpusbags(corpusname string, bags []BagWithSource, ws topicworkspace) string {
	const (
		TMPL = "%s: %d bags, %d distinct words"
	)
	return fmt.Sprintf(TMPL, corpusname, len(bags), len(ws.Vectoriser.Vocabulary))
}
