//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// the "-tt" flag: run all three exercises once and print the results to the
// terminal; handy in a classroom with no browser at hand, and it is also what
// the self-test runs

const TERMWORD = "whale"

// RunTerminalExercises - all three exercises, console output only
func RunTerminalExercises() {
	se := MakeDefaultSession("terminal")

	terminalneighbors(se, TERMWORD)
	terminaltopics(se)
	terminalregression(se)
}

// selftest - a timed pass through the exercises
func selftest() {
	const (
		MSG = "selftest() finished in %.2fs"
	)
	start := time.Now()
	RunTerminalExercises()
	msg(fmt.Sprintf(MSG, time.Now().Sub(start).Seconds()), MSGMAND)
}

// terminalneighbors - print the nearest neighbors of a word
func terminalneighbors(se ServerSession, word string) {
	const (
		HEAD = "[1] nearest neighbors of '%s' (%s, %s)"
		LINE = "\t%2d\t%.4f\t%s"
		NONE = "\tthe model has no entry for '%s'"
	)

	p := message.NewPrinter(language.English)

	jobid := NewModelJob("", "terminal", "neighbors", fmt.Sprintf("Neighbors of '%s'", word), 0)
	defer AllJobs.Retire(jobid)

	nn := generateneighborsdata(se, word, jobid)

	msg(p.Sprintf(HEAD, word, se.VecModeler, se.VecTextPrep), MSGMAND)
	if len(nn[word]) == 0 {
		msg(fmt.Sprintf(NONE, word), MSGMAND)
		return
	}
	for _, n := range nn[word] {
		msg(fmt.Sprintf(LINE, n.Rank, n.Similarity, n.Word), MSGMAND)
	}
}

// terminaltopics - fit all three topic models and print the top words per topic
func terminaltopics(se ServerSession) {
	const (
		HEAD = "[2] topics in the newsgroup corpus (%s)"
		TPC  = "\ttopic %d (%d sentences): %s"
	)

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

	for _, m := range []string{"lda", "lsa", "nmf"} {
		var out TopicModelOutput
		switch m {
		case "lsa":
			out = lsamodel(cfg.Topics, ws)
		case "nmf":
			out = nmfmodel(cfg.Topics, ws, cfg)
		default:
			out = ldamodel(cfg.Topics, ws, cfg)
		}

		tops := topictopwords(out.TopicsOverWords, vocab, cfg.TopWords)
		dpt := docpertopic(cfg.Topics, out.DocsOverTopics)
		ww := topwordstrings(tops)

		msg(fmt.Sprintf(HEAD, topicmethodnames[m]), MSGMAND)
		for topic := 0; topic < cfg.Topics; topic++ {
			msg(fmt.Sprintf(TPC, topic+1, dpt[topic], ww[topic]), MSGMAND)
		}
	}
}

// terminalregression - print the PLSR sweep and the OLS baseline
func terminalregression(se ServerSession) {
	const (
		HEAD = "[3] PLSR vs OLS: %s"
		LINE = "\tk=%2d\ttrain rmse %.4f\ttest rmse %.4f%s"
		OLSL = "\tOLS\ttest rmse %.4f\tR^2 %.4f"
		OLSF = "\tOLS refused: %s"
	)

	settings := settingsfromsession(se)
	x, y := SyntheticPLS(settings)
	xtr, ytr, xte, yte := TrainTestSplit(x, y, TESTFRACTION, settings.Seed)

	msg(fmt.Sprintf(HEAD, settings.Describe()), MSGMAND)

	_, cols := x.Dims()
	maxk := PLSMAXSWEEP
	if maxk > cols {
		maxk = cols
	}

	best := -1
	var bestrmse float64
	type swept struct {
		k      int
		tr, te float64
	}
	var results []swept

	for k := 1; k <= maxk; k++ {
		pls := NewPLSRegression(k)
		if err := pls.Fit(xtr, ytr); err != nil {
			continue
		}
		ptr, e1 := pls.Predict(xtr)
		pte, e2 := pls.Predict(xte)
		if e1 != nil || e2 != nil {
			continue
		}
		te := rootmeansquarederror(yte, pte)
		results = append(results, swept{k: k, tr: rootmeansquarederror(ytr, ptr), te: te})
		if best < 0 || te < bestrmse {
			best = k
			bestrmse = te
		}
	}

	for _, r := range results {
		note := ""
		if r.k == best {
			note = "\t<- best"
		}
		msg(fmt.Sprintf(LINE, r.k, r.tr, r.te, note), MSGMAND)
	}

	var ols OLSRegression
	if err := ols.Fit(xtr, ytr); err != nil {
		msg(fmt.Sprintf(OLSF, strings.TrimSpace(err.Error())), MSGMAND)
		return
	}
	pte, err := ols.Predict(xte)
	if err != nil {
		msg(fmt.Sprintf(OLSF, err.Error()), MSGMAND)
		return
	}
	msg(fmt.Sprintf(OLSL, rootmeansquarederror(yte, pte), rsquared(yte, pte)), MSGMAND)
}
