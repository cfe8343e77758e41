//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/e-gun/wego/pkg/embedding"
	"github.com/e-gun/wego/pkg/model"
	"github.com/e-gun/wego/pkg/model/glove"
	"github.com/e-gun/wego/pkg/model/lexvec"
	"github.com/e-gun/wego/pkg/model/modelutil/vector"
	"github.com/e-gun/wego/pkg/model/word2vec"
	"github.com/e-gun/wego/pkg/search"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//
// FLOW:
// 	generateneighborsdata() which means you need to...
//  	generateembeddings() which relies upon...
//		preptextbags() and buildtextblock()
//

// generateneighborsdata - the neighbors of a word, and the neighbors of those neighbors
func generateneighborsdata(se ServerSession, word string, jobid string) map[string]search.Neighbors {
	const (
		FMSG  = `Fetching a stored model`
		GMSG  = `Generating a model`
		MQMSG = `Querying the model`
		FAIL1 = "generateneighborsdata() could not find neighbors of a neighbor: '%s' neighbors (via '%s')"
		FAIL2 = "generateneighborsdata() failed to produce a Searcher"
		FAIL3 = "generateneighborsdata() failed to yield Neighbors"
		MSG2  = "training will use only the first %d of %d corpus lines"
	)

	fp := fingerprintnnvectorsearch(CORPUSLITERARY, se.VecTextPrep, se.VecModeler)
	isstored := vectorcachecheck(fp)

	var embs embedding.Embeddings
	if isstored {
		AllJobs.Progress(jobid, 0, FMSG)
		embs = vectorcachefetch(fp)
	} else {
		AllJobs.Progress(jobid, 0, GMSG)
		docs := GrabCorpusLines(CORPUSLITERARY)
		if len(docs) > Config.VectorMaxLn {
			// training time grows with the corpus; a headless server with a huge corpus can hang "forever"
			msg(fmt.Sprintf(MSG2, Config.VectorMaxLn, len(docs)), MSGWARN)
			docs = docs[:Config.VectorMaxLn]
		}
		bags := preptextbags(docs, se.VecTextPrep == "folded")
		embs = generateembeddings(se.VecModeler, bags, jobid)
		vectorcacheadd(fp, embs)
	}

	// [b] make a query against the model

	AllJobs.Progress(jobid, 0, MQMSG)

	searcher, err := search.New(embs...)
	if err != nil {
		msg(FAIL2, MSGFYI)
		searcher = func() *search.Searcher { return &search.Searcher{} }()
	}

	ncount := se.VecNeighbCt // how many neighbors to output; min is 1
	if ncount < VECTORNEIGHBORSMIN || ncount > VECTORNEIGHBORSMAX {
		ncount = VECTORNEIGHBORS
	}

	nn := make(map[string]search.Neighbors)
	neighbors, err := searcher.SearchInternal(word, ncount)
	if err != nil {
		msg(FAIL3, MSGFYI)
		neighbors = search.Neighbors{}
	}

	nn[word] = neighbors
	for _, n := range neighbors {
		meta, e := searcher.SearchInternal(n.Word, ncount)
		if e != nil {
			msg(fmt.Sprintf(FAIL1, n.Word, word), MSGFYI)
		} else {
			nn[n.Word] = meta
		}
	}

	return nn
}

// generateembeddings - turn bags of words into a collection of semantic vector embeddings
func generateembeddings(modeltype string, bags []BagWithSource, jobid string) embedding.Embeddings {
	const (
		FAIL1 = "model initialization failed"
		FAIL2 = "generateembeddings() failed to train vector embeddings"
		FAIL3 = "generateembeddings() failed to save vector embeddings"
		FAIL4 = "generateembeddings() failed to load vector embeddings"
		MSG1  = "generateembeddings() gathered %d bags"
		MSG2  = "generateembeddings() successfuly trained a %s model (%ss)"
		VMSG  = `Training run <code>#%d</code> out of <code>%d</code> total iterations.`
		SMSG  = `Storing the model`
	)

	start := time.Now()

	p := message.NewPrinter(language.English)
	msg(p.Sprintf(MSG1, len(bags)), MSGPEEK)

	thetext := buildtextblock(bags)

	// [a] vectorize the text block

	var vmodel model.Model
	var ti int

	switch modeltype {
	case "glove":
		cfg := glovevectorconfig()
		m, err := glove.NewForOptions(cfg)
		if err != nil {
			msg(FAIL1, MSGWARN)
		}
		vmodel = m
		ti = cfg.Iter
	case "lexvec":
		cfg := lexvecvectorconfig()
		m, err := lexvec.NewForOptions(cfg)
		if err != nil {
			msg(FAIL1, MSGWARN)
		}
		vmodel = m
		ti = cfg.Iter
	default:
		cfg := w2vvectorconfig()
		m, err := word2vec.NewForOptions(cfg)
		if err != nil {
			msg(FAIL1, MSGWARN)
		}
		vmodel = m
		ti = cfg.Iter
	}

	// input for word2vec.Train() is 'io.ReadSeeker'
	b := bytes.NewReader([]byte(thetext))

	finished := make(chan bool)

	// .Train() but do not block; so we can also .Reporter()
	go func() {
		if err := vmodel.Train(b); err != nil {
			msg(FAIL2, MSGWARN)
		} else {
			t := fmt.Sprintf("%.3f", time.Now().Sub(start).Seconds())
			msg(fmt.Sprintf(MSG2, modeltype, t), MSGTMI)
		}
		finished <- true
	}()

	ct := make(chan int)
	rep := make(chan string)
	go vmodel.Reporter(ct, rep)

	getreport := func() {
		in := 0
		for {
			select {
			case m := <-ct:
				in = m
			case <-rep:
				// [HyGS] trained 100062 words 529.0315ms
			}
			AllJobs.Progress(jobid, in, fmt.Sprintf(VMSG, in, ti))
			time.Sleep(WSPOLLINGPAUSE * time.Millisecond)
			if !AllJobs.Read(jobid).IsActive {
				break
			}
		}
	}

	go getreport()

	_ = <-finished

	AllJobs.Progress(jobid, ti, SMSG)

	// use buffers; skip the disk; the cache handles storage
	var buf bytes.Buffer
	w := io.Writer(&buf)
	err := vmodel.Save(w, vector.Agg)
	if err != nil {
		msg(FAIL3, MSGNOTE)
	}

	r := io.Reader(&buf)
	var embs embedding.Embeddings
	embs, err = embedding.Load(r)
	if err != nil {
		msg(FAIL4, MSGNOTE)
		embs = embedding.Embeddings{}
	}

	return embs
}

// fingerprintnnvectorsearch - md5 of everything that identifies a trained model: corpus, prep, modeler, options, stops
func fingerprintnnvectorsearch(corpus string, textprep string, modeler string) string {
	const (
		FAIL1 = "fingerprintnnvectorsearch() failed to marshal options"
		MSG1  = "fingerprintnnvectorsearch() fingerprint: "
	)

	var inputs []string
	inputs = append(inputs, corpus, textprep, modeler)

	var opt []byte
	var err error
	switch modeler {
	case "glove":
		opt, err = json.Marshal(glovevectorconfig())
	case "lexvec":
		opt, err = json.Marshal(lexvecvectorconfig())
	default:
		opt, err = json.Marshal(w2vvectorconfig())
	}
	if err != nil {
		msg(FAIL1, MSGWARN)
		opt = []byte{}
	}
	inputs = append(inputs, string(opt))

	stops := make([]string, len(ENGLISHSTOP))
	copy(stops, ENGLISHSTOP)
	sort.Strings(stops)
	inputs = append(inputs, stops...)

	sort.Strings(inputs)

	f := fmt.Sprintf("%v", inputs)
	m := md5.New()
	m.Write([]byte(f))
	fp := hex.EncodeToString(m.Sum(nil))
	msg(MSG1+fp, MSGTMI)

	return fp
}
