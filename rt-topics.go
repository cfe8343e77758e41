//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

var topicmethodnames = map[string]string{
	"lda": "Latent Dirichlet Allocation (LDA)",
	"lsa": "Latent Semantic Analysis (truncated SVD)",
	"nmf": "Non-negative Matrix Factorisation (NMF)",
}

// TopicSearch - fit one or all of the topic models against the newsgroup corpus and report the topics found
func TopicSearch(c echo.Context) error {
	const (
		BMSG     = `Preparing the corpus`
		FMSG     = `Fitting: %s`
		PMSG     = `Building the scatter plot`
		SETTINGS = `%d topics; %s`
		TITLE    = `Topics in the newsgroup corpus`
		FAILMETH = "TopicSearch() was given an unknown method: '%s'"
	)

	c.Response().After(func() { messenger.LogPaths("TopicSearch()") })

	start := time.Now()

	user := readUUIDCookie(c)
	se := SafeSessionRead(user)

	method := strings.ToLower(strings.TrimSpace(c.Param("method")))
	if method == "" {
		method = se.TopicMethod
	}
	if !Contains([]string{"lda", "lsa", "nmf", "all"}, method) {
		msg(fmt.Sprintf(FAILMETH, method), MSGWARN)
		method = "lda"
	}

	jobid := NewModelJob(c.QueryParam("id"), user, "topics", fmt.Sprintf("Topic model: %s", method), 0)
	defer AllJobs.Retire(jobid)

	// [a] one corpus, one vectorisation, however many models

	AllJobs.Progress(jobid, 0, BMSG)

	docs := GrabCorpusLines(CORPUSNEWS)
	bags := preptextbags(docs, false)

	corpus := make([]string, len(bags))
	for i := 0; i < len(bags); i++ {
		corpus[i] = bags[i].Bag
	}

	ws := preparetopicworkspace(corpus)
	vocab := invertvocabulary(ws.Vectoriser)

	cfg := topicmodelconfig()
	cfg.Topics = clamptopiccount(se.TopicCt)
	ntopics := cfg.Topics

	methods := []string{method}
	if method == "all" {
		methods = []string{"lda", "lsa", "nmf"}
	}

	// [b] fit and summarise each requested model

	var tables []string
	var first TopicModelOutput
	for i, m := range methods {
		AllJobs.Progress(jobid, i, fmt.Sprintf(FMSG, topicmethodnames[m]))

		var out TopicModelOutput
		switch m {
		case "lsa":
			out = lsamodel(ntopics, ws)
		case "nmf":
			out = nmfmodel(ntopics, ws, cfg)
		default:
			out = ldamodel(ntopics, ws, cfg)
		}
		if i == 0 {
			first = out
		}

		tops := topictopwords(out.TopicsOverWords, vocab, cfg.TopWords)
		dpt := docpertopic(ntopics, out.DocsOverTopics)
		dbw := docbyweight(ntopics, out.DocsOverTopics)
		tables = append(tables, topicsummarytable(topicmethodnames[m], tops, dpt, dbw, len(bags)))

		if len(methods) == 1 {
			winners, scores := topicwinningsentences(ntopics, bags, out.DocsOverTopics)
			tables = append(tables, topicsentencetable(winners, scores))
		}
	}

	set := fmt.Sprintf(SETTINGS, ntopics, describecorpusbags(CORPUSNEWS, bags, ws))

	// [c] the t-SNE scatter of the first model fitted

	img := ""
	if se.TopicGraph {
		AllJobs.Progress(jobid, len(methods), PMSG)
		pts := topicprojection(first.DocsOverTopics, cfg)
		topicof := dominanttopics(first.DocsOverTopics)
		t := fmt.Sprintf("%s (%s)", TITLE, topicmethodnames[first.Method])
		img = buildtopicscatter(t, set, pts, topicof, ntopics)
	}

	soj := SearchOutputJSON{
		Title:         TITLE,
		Searchsummary: fmt.Sprintf("%s; %.2fs", set, time.Now().Sub(start).Seconds()),
		Found:         strings.Join(tables, "\n"),
		Image:         img,
		JS:            VECTORJS,
	}

	return JSONresponse(c, soj)
}

// topicsummarytable - one row per topic: the top words, the sentence count, the scaled weight
func topicsummarytable(methodname string, tops map[int][]topicsorter, dpt []int, dbw []float64, nbags int) string {
	const (
		THETABLE = `
	<table class="vectortable"><tbody>
    <tr class="vectorrow">
        <td class="vectorrank" colspan = "4">%s</td>
    </tr>
	<tr class="vectorrow">
		<td class="vectorrank">Topic</td>
		<td class="vectorrank">Top %d words</td>
		<td class="vectorrank">Sentences</td>
		<td class="vectorrank">Weight</td>
	</tr>
    %s
	</tbody></table>
	<hr>`

		TABLEROW = `
	<tr class="%s">
		<td class="vectorrank">%d</td>
		<td class="vectorword">%s</td>
		<td class="vectorscore">%d (%.1f%%)</td>
		<td class="vectorscore">%.1f%%</td>
	</tr>`

		NTH = 2
	)

	ww := topwordstrings(tops)

	var rows []string
	for topic := 0; topic < len(ww); topic++ {
		rn := "vectorrow"
		if topic%NTH == 0 {
			rn = "nthrow"
		}
		pct := float64(dpt[topic]) / float64(nbags) * 100
		rows = append(rows, fmt.Sprintf(TABLEROW, rn, topic+1, ww[topic], dpt[topic], pct, dbw[topic]*100))
	}

	topn := 0
	if len(tops) > 0 {
		topn = len(tops[0])
	}

	return fmt.Sprintf(THETABLE, methodname, topn, strings.Join(rows, "\n"))
}

// topicsentencetable - the sentence most strongly associated with each topic
func topicsentencetable(winners []BagWithSource, scores []float64) string {
	const (
		THETABLE = `
	<table class="vectortable"><tbody>
    <tr class="vectorrow">
        <td class="vectorrank" colspan = "4">Most representative sentence per topic</td>
    </tr>
	<tr class="vectorrow">
		<td class="vectorrank">Topic</td>
		<td class="vectorrank">Score</td>
		<td class="vectorrank">Source</td>
		<td class="vectorrank">Sentence (as bagged)</td>
	</tr>
    %s
	</tbody></table>
	<hr>`

		TABLEROW = `
	<tr class="%s">
		<td class="vectorrank">%d</td>
		<td class="vectorscore">%.4f</td>
		<td class="vectorloc">%s</td>
		<td class="vectorword">%s</td>
	</tr>`

		NTH = 2
	)

	var rows []string
	for topic := 0; topic < len(winners); topic++ {
		rn := "vectorrow"
		if topic%NTH == 0 {
			rn = "nthrow"
		}
		rows = append(rows, fmt.Sprintf(TABLEROW, rn, topic+1, scores[topic], winners[topic].Loc, winners[topic].Bag))
	}

	return fmt.Sprintf(THETABLE, strings.Join(rows, "\n"))
}
