//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/e-gun/wego/pkg/embedding"
	"github.com/e-gun/wego/pkg/model/glove"
	"github.com/e-gun/wego/pkg/model/lexvec"
	"github.com/e-gun/wego/pkg/model/word2vec"
	"github.com/jackc/pgx/v5"
)

var (
	DefaultW2VVectors = word2vec.Options{
		BatchSize:          1024,
		Dim:                125,
		DocInMemory:        true,
		Goroutines:         20,
		Initlr:             0.025,
		Iter:               15,
		LogBatch:           100000,
		MaxCount:           -1,
		MaxDepth:           150,
		MinCount:           5,
		MinLR:              0.0000025,
		ModelType:          "skipgram", // "cbow" and "skipgram" available; "cbow" results are not so hot
		NegativeSampleSize: 5,
		OptimizerType:      "hs",
		SubsampleThreshold: 0.001,
		ToLower:            false,
		UpdateLRBatch:      100000,
		Verbose:            true,
		Window:             8,
	}
	DefaultLexVecVectors = lexvec.Options{
		BatchSize:          1024,
		Dim:                125,
		DocInMemory:        true,
		Goroutines:         20,
		Initlr:             0.025,
		Iter:               15,
		LogBatch:           100000,
		MaxCount:           -1,
		MinCount:           5,
		MinLR:              0.025 * 1.0e-4,
		NegativeSampleSize: 5,
		RelationType:       "ppmi", // "ppmi", "pmi", "co", "logco" are available; "co" will fail to model
		Smooth:             0.75,
		SubsampleThreshold: 1.0e-3,
		ToLower:            false,
		UpdateLRBatch:      100000,
		Verbose:            true,
		Window:             8,
	}
	// DefaultGloveVectors - wego's default: {0.75 10000 inc 10 false 20 0.025 15 100000 -1 5 sgd 0.001 false false 5 100}
	DefaultGloveVectors = glove.Options{
		// see also: https://nlp.stanford.edu/projects/glove/
		Alpha:              0.55,
		BatchSize:          1024,
		CountType:          "inc", // "inc", "prox" available; but we panic on "prox"
		Dim:                75,
		DocInMemory:        true,
		Goroutines:         20,
		Initlr:             0.025,
		Iter:               25,
		LogBatch:           100000,
		MaxCount:           -1,
		MinCount:           5,
		SolverType:         "adagrad", // "sdg", "adagrad" available
		SubsampleThreshold: 0.001,
		ToLower:            false,
		Verbose:            true,
		Window:             8,
		Xmax:               90,
	}

	DefaultTopicConfig = TopicConfig{
		Topics:          TOPICSDEFAULT,
		LDAIterations:   LDAITERATIONS,
		LDAXformPasses:  LDAXFORMPASSES,
		NMFIterations:   NMFITERATIONS,
		NMFTolerance:    NMFTOLERANCE,
		TopWords:        TOPWORDSPERTOPIC,
		GraphPerplexity: TSNEPERPLEXITY,
		GraphLearningRt: TSNELEARNINGRT,
		GraphIterations: TSNEMAXITER,
	}
)

//
// THE MODEL CACHE: POSTGRES WHEN "-pc"; OTHERWISE FILES UNDER THE CONFIG DIRECTORY
//

// vectorcachecheck - is a model with this fingerprint already stored?
func vectorcachecheck(fp string) bool {
	if SQLPool != nil {
		return vectordbchecknn(fp)
	}
	return vectorfscheck(fp)
}

// vectorcacheadd - store a model by its fingerprint
func vectorcacheadd(fp string, embs embedding.Embeddings) {
	if SQLPool != nil {
		vectordbaddnn(fp, embs)
		vectordbsizenn(MSGPEEK)
	} else {
		vectorfsadd(fp, embs)
	}
}

// vectorcachefetch - retrieve a model by its fingerprint
func vectorcachefetch(fp string) embedding.Embeddings {
	if SQLPool != nil {
		return vectordbfetchnn(fp)
	}
	return vectorfsfetch(fp)
}

// vectorcachereset - drop every stored model
func vectorcachereset() {
	if SQLPool != nil {
		vectordbreset()
	} else {
		vectorfsreset()
	}
}

//
// DB INTERACTION
//

// vectordbinitnn - initialize VECTORTABLENAMENN
func vectordbinitnn() {
	const (
		CREATE = `
			CREATE TABLE %s
			(
			  fingerprint character(32),
			  vectorsize  int,
			  vectordata  bytea
			)`
		EXISTS = "already exists"
	)
	ex := fmt.Sprintf(CREATE, VECTORTABLENAMENN)

	dbc := GetPSQLconnection()
	defer dbc.Release()

	_, err := dbc.Exec(context.Background(), ex)
	if err != nil {
		m := err.Error()
		if !strings.Contains(m, EXISTS) {
			chkf(err, "vectordbinitnn()")
		}
	} else {
		msg("vectordbinitnn(): success", MSGFYI)
	}
}

// vectordbchecknn - has a model with this fingerprint already been stored?
func vectordbchecknn(fp string) bool {
	const (
		Q   = `SELECT fingerprint FROM %s WHERE fingerprint = '%s' LIMIT 1`
		F   = `vectordbchecknn() found %s`
		DNE = "does not exist"
	)

	q := fmt.Sprintf(Q, VECTORTABLENAMENN, fp)

	dbc := GetPSQLconnection()
	defer dbc.Release()

	foundrow, err := dbc.Query(context.Background(), q)
	if err != nil {
		m := err.Error()
		if strings.Contains(m, DNE) {
			vectordbinitnn()
		}
		return false
	}

	type simplestring struct {
		S string
	}

	ss, err := pgx.CollectOneRow(foundrow, pgx.RowToStructByPos[simplestring])
	if err != nil {
		// m will be "no rows in result set" if you did not find the fingerprint
		return false
	} else {
		msg(fmt.Sprintf(F, ss.S), MSGTMI)
		return true
	}
}

// vectordbaddnn - add a set of embeddings to VECTORTABLENAMENN
func vectordbaddnn(fp string, embs embedding.Embeddings) {
	const (
		MSG1 = "vectordbaddnn(): "
		MSG2 = "%s compression: %dk -> %dk (-> %.1f%%)"
		FAIL = "vectordbaddnn() failed when marshalling embs: nothing stored"
		INS  = `
			INSERT INTO %s
				(fingerprint, vectorsize, vectordata)
			VALUES ('%s', $1, $2)`
		GZ = gzip.BestSpeed
	)

	eb, err := json.Marshal(embs)
	if err != nil {
		msg(FAIL, MSGNOTE)
		eb = []byte{}
	}

	l1 := len(eb)

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, GZ)
	chke(err)
	_, err = zw.Write(eb)
	chke(err)
	err = zw.Close()
	chke(err)

	b := buf.Bytes()
	l2 := len(b)

	ex := fmt.Sprintf(INS, VECTORTABLENAMENN, fp)

	dbc := GetPSQLconnection()
	defer dbc.Release()

	_, err = dbc.Exec(context.Background(), ex, l2, b)
	chke(err)
	msg(MSG1+fp, MSGPEEK)

	// compressed is c. 28% of original
	msg(fmt.Sprintf(MSG2, fp, l1/1024, l2/1024, (float32(l2)/float32(l1))*100), MSGPEEK)
	buf.Reset()
}

// vectordbfetchnn - get a set of embeddings from VECTORTABLENAMENN
func vectordbfetchnn(fp string) embedding.Embeddings {
	const (
		MSG1 = "vectordbfetchnn(): "
		MSG2 = "vectordbfetchnn() pulled empty set of embeddings for %s"
		Q    = `SELECT vectordata FROM %s WHERE fingerprint = '%s' LIMIT 1`
	)

	q := fmt.Sprintf(Q, VECTORTABLENAMENN, fp)
	var vect []byte

	dbc := GetPSQLconnection()
	defer dbc.Release()

	foundrow, err := dbc.Query(context.Background(), q)
	chke(err)

	defer foundrow.Close()
	for foundrow.Next() {
		err = foundrow.Scan(&vect)
		chke(err)
	}

	emb := gunzipembeddings(vect)

	if emb.Empty() {
		msg(fmt.Sprintf(MSG2, fp), MSGNOTE)
	}

	msg(MSG1+fp, MSGPEEK)

	return emb
}

// vectordbreset - drop VECTORTABLENAMENN
func vectordbreset() {
	const (
		MSG1 = "vectordbreset() dropped "
		MSG2 = "vectordbreset(): 'DROP TABLE %s' returned an (ignored) error: \n\t%s"
		E    = `DROP TABLE %s`
	)
	ex := fmt.Sprintf(E, VECTORTABLENAMENN)

	dbc := GetPSQLconnection()
	defer dbc.Release()

	_, err := dbc.Exec(context.Background(), ex)
	if err != nil {
		m := err.Error()
		msg(fmt.Sprintf(MSG2, VECTORTABLENAMENN, m), MSGFYI)
	} else {
		msg(MSG1+VECTORTABLENAMENN, MSGNOTE)
	}
}

// vectordbsizenn - how much space is the vectordb using?
func vectordbsizenn(priority int) {
	const (
		SZQ  = "SELECT SUM(vectorsize) AS total FROM " + VECTORTABLENAMENN
		MSG4 = "Disk space used by stored vectors is currently %dkB"
	)
	var size int64

	dbc := GetPSQLconnection()
	defer dbc.Release()

	err := dbc.QueryRow(context.Background(), SZQ).Scan(&size)
	chke(err)
	msg(fmt.Sprintf(MSG4, size/1024), priority)
}

// vectordbcountnn - how many models does the vectordb hold?
func vectordbcountnn(priority int) {
	const (
		SZQ  = "SELECT COUNT(vectorsize) AS total FROM " + VECTORTABLENAMENN
		MSG4 = "Number of stored vector models: %d"
		DNE  = "does not exist"
	)
	var size int64

	dbc := GetPSQLconnection()
	defer dbc.Release()

	err := dbc.QueryRow(context.Background(), SZQ).Scan(&size)
	if err != nil {
		m := err.Error()
		if strings.Contains(m, DNE) {
			vectordbinitnn()
		}
		size = 0
	}
	msg(fmt.Sprintf(MSG4, size), priority)
}

//
// FS INTERACTION: same bytes as the db path, but in files
//

// vectorfspath - the directory where models land when postgres is not in play
func vectorfspath() string {
	const (
		SUBDIR = "stored_vectors"
	)
	h, e := os.UserHomeDir()
	chke(e)
	p := fmt.Sprintf(CONFIGALTAPTH, h) + SUBDIR
	e = os.MkdirAll(p, os.FileMode(0700))
	chke(e)
	return p
}

func vectorfsname(fp string) string {
	return fmt.Sprintf("%s/%s.json.gz", vectorfspath(), fp)
}

func vectorfscheck(fp string) bool {
	_, e := os.Stat(vectorfsname(fp))
	return e == nil
}

func vectorfsadd(fp string, embs embedding.Embeddings) {
	const (
		FAIL = "vectorfsadd() failed when marshalling embs: nothing stored"
		MSG1 = "vectorfsadd(): "
		GZ   = gzip.BestSpeed
	)

	eb, err := json.Marshal(embs)
	if err != nil {
		msg(FAIL, MSGNOTE)
		eb = []byte{}
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, GZ)
	chke(err)
	_, err = zw.Write(eb)
	chke(err)
	err = zw.Close()
	chke(err)

	err = os.WriteFile(vectorfsname(fp), buf.Bytes(), WRITEPERMS)
	chke(err)
	msg(MSG1+fp, MSGPEEK)
}

func vectorfsfetch(fp string) embedding.Embeddings {
	const (
		MSG1 = "vectorfsfetch(): "
		MSG2 = "vectorfsfetch() pulled empty set of embeddings for %s"
	)

	vect, err := os.ReadFile(vectorfsname(fp))
	chke(err)

	emb := gunzipembeddings(vect)

	if emb.Empty() {
		msg(fmt.Sprintf(MSG2, fp), MSGNOTE)
	}

	msg(MSG1+fp, MSGPEEK)

	return emb
}

func vectorfsreset() {
	const (
		MSG1 = "vectorfsreset() deleted %d stored models"
	)
	p := vectorfspath()
	ff, e := os.ReadDir(p)
	chke(e)
	count := 0
	for _, f := range ff {
		if strings.HasSuffix(f.Name(), ".json.gz") {
			e = os.Remove(p + "/" + f.Name())
			chke(e)
			count += 1
		}
	}
	msg(fmt.Sprintf(MSG1, count), MSGNOTE)
}

// gunzipembeddings - the stored bytes are zipped json and need unzipping
func gunzipembeddings(vect []byte) embedding.Embeddings {
	var buf bytes.Buffer
	buf.Write(vect)

	zr, err := gzip.NewReader(&buf)
	chke(err)
	decompr, err := io.ReadAll(zr)
	chke(err)
	err = zr.Close()
	chke(err)

	var emb embedding.Embeddings
	err = json.Unmarshal(decompr, &emb)
	chke(err)
	buf.Reset()

	return emb
}

//
// MODEL CONFIGURATION FILES
//

// ensureconfigdir - the config files and the stored models need a home
func ensureconfigdir(h string) {
	e := os.MkdirAll(fmt.Sprintf(CONFIGALTAPTH, h), os.FileMode(0700))
	chke(e)
}

// TopicConfig - the knobs for the topic modeling exercise
type TopicConfig struct {
	Topics          int
	LDAIterations   int
	LDAXformPasses  int
	NMFIterations   int
	NMFTolerance    float64
	TopWords        int
	GraphPerplexity float64
	GraphLearningRt float64
	GraphIterations int
}

// topicmodelconfig - read the CONFIGTOPIC file and return a TopicConfig
func topicmodelconfig() TopicConfig {
	const (
		ERR1 = "topicmodelconfig() cannot find UserHomeDir"
		ERR2 = "topicmodelconfig() failed to parse "
		MSG1 = "wrote default topic model configuration file "
		MSG2 = "read topic model configuration from "
	)

	cfg := DefaultTopicConfig

	h, e := os.UserHomeDir()
	if e != nil {
		msg(ERR1, 0)
		return cfg
	}
	ensureconfigdir(h)

	_, yes := os.Stat(fmt.Sprintf(CONFIGALTAPTH, h) + CONFIGTOPIC)

	if yes != nil {
		content, err := json.MarshalIndent(cfg, JSONINDENT, JSONINDENT)
		chke(err)

		err = os.WriteFile(fmt.Sprintf(CONFIGALTAPTH, h)+CONFIGTOPIC, content, WRITEPERMS)
		chke(err)
		msg(MSG1+CONFIGTOPIC, MSGPEEK)
	} else {
		loadedcfg, _ := os.Open(fmt.Sprintf(CONFIGALTAPTH, h) + CONFIGTOPIC)
		decoderc := json.NewDecoder(loadedcfg)
		vc := TopicConfig{}
		errc := decoderc.Decode(&vc)
		_ = loadedcfg.Close()
		if errc != nil {
			msg(ERR2+CONFIGTOPIC, MSGCRIT)
			vc = cfg
		}
		msg(MSG2+CONFIGTOPIC, MSGTMI)
		cfg = vc
	}

	cfg.Topics = clamptopiccount(cfg.Topics)

	return cfg
}

//
// WEGO NOTES AND DEFAULTS
//

// w2vvectorconfig - read the CONFIGW2V file and return word2vec.Options
func w2vvectorconfig() word2vec.Options {
	const (
		ERR1 = "w2vvectorconfig() cannot find UserHomeDir"
		ERR2 = "w2vvectorconfig() failed to parse "
		MSG1 = "wrote default vector configuration file "
		MSG2 = "read vector configuration from "
	)

	// cfg := word2vec.DefaultOptions()
	cfg := DefaultW2VVectors
	cfg.Goroutines = runtime.NumCPU()

	h, e := os.UserHomeDir()
	if e != nil {
		msg(ERR1, 0)
		return cfg
	}
	ensureconfigdir(h)

	_, yes := os.Stat(fmt.Sprintf(CONFIGALTAPTH, h) + CONFIGW2V)

	if yes != nil {
		content, err := json.MarshalIndent(cfg, JSONINDENT, JSONINDENT)
		chke(err)

		err = os.WriteFile(fmt.Sprintf(CONFIGALTAPTH, h)+CONFIGW2V, content, WRITEPERMS)
		chke(err)
		msg(MSG1+CONFIGW2V, MSGPEEK)
	} else {
		loadedcfg, _ := os.Open(fmt.Sprintf(CONFIGALTAPTH, h) + CONFIGW2V)
		decoderc := json.NewDecoder(loadedcfg)
		vc := word2vec.Options{}
		errc := decoderc.Decode(&vc)
		_ = loadedcfg.Close()
		if errc != nil {
			msg(ERR2+CONFIGW2V, MSGCRIT)
			vc = DefaultW2VVectors
		}
		msg(MSG2+CONFIGW2V, MSGTMI)
		cfg = vc
	}

	return cfg
}

// lexvecvectorconfig - read the CONFIGLEXVEC file and return lexvec.Options
func lexvecvectorconfig() lexvec.Options {
	const (
		ERR1 = "lexvecvectorconfig() cannot find UserHomeDir"
		ERR2 = "lexvecvectorconfig() failed to parse "
		MSG1 = "wrote default vector configuration file "
		MSG2 = "read vector configuration from "
	)

	cfg := DefaultLexVecVectors
	cfg.Goroutines = runtime.NumCPU()

	h, e := os.UserHomeDir()
	if e != nil {
		msg(ERR1, 0)
		return cfg
	}
	ensureconfigdir(h)

	_, yes := os.Stat(fmt.Sprintf(CONFIGALTAPTH, h) + CONFIGLEXVEC)

	if yes != nil {
		content, err := json.MarshalIndent(cfg, JSONINDENT, JSONINDENT)
		chke(err)

		err = os.WriteFile(fmt.Sprintf(CONFIGALTAPTH, h)+CONFIGLEXVEC, content, WRITEPERMS)
		chke(err)
		msg(MSG1+CONFIGLEXVEC, MSGPEEK)
	} else {
		loadedcfg, _ := os.Open(fmt.Sprintf(CONFIGALTAPTH, h) + CONFIGLEXVEC)
		decoderc := json.NewDecoder(loadedcfg)
		vc := lexvec.Options{}
		errc := decoderc.Decode(&vc)
		_ = loadedcfg.Close()
		if errc != nil {
			msg(ERR2+CONFIGLEXVEC, MSGCRIT)
			vc = DefaultLexVecVectors
		}
		msg(MSG2+CONFIGLEXVEC, MSGTMI)
		cfg = vc
	}
	return cfg
}

// glovevectorconfig - read the CONFIGGLOVE file and return glove.Options
func glovevectorconfig() glove.Options {
	const (
		ERR1 = "glovevectorconfig() cannot find UserHomeDir"
		ERR2 = "glovevectorconfig() failed to parse "
		MSG1 = "wrote default vector configuration file "
		MSG2 = "read vector configuration from "
	)

	cfg := DefaultGloveVectors
	cfg.Goroutines = runtime.NumCPU()

	h, e := os.UserHomeDir()
	if e != nil {
		msg(ERR1, 0)
		return cfg
	}
	ensureconfigdir(h)

	_, yes := os.Stat(fmt.Sprintf(CONFIGALTAPTH, h) + CONFIGGLOVE)

	if yes != nil {
		content, err := json.MarshalIndent(cfg, JSONINDENT, JSONINDENT)
		chke(err)

		err = os.WriteFile(fmt.Sprintf(CONFIGALTAPTH, h)+CONFIGGLOVE, content, WRITEPERMS)
		chke(err)
		msg(MSG1+CONFIGGLOVE, MSGPEEK)
	} else {
		loadedcfg, _ := os.Open(fmt.Sprintf(CONFIGALTAPTH, h) + CONFIGGLOVE)
		decoderc := json.NewDecoder(loadedcfg)
		vc := glove.Options{}
		errc := decoderc.Decode(&vc)
		_ = loadedcfg.Close()
		if errc != nil {
			msg(ERR2+CONFIGGLOVE, MSGCRIT)
			vc = DefaultGloveVectors
		}
		msg(MSG2+CONFIGGLOVE, MSGTMI)
		cfg = vc
	}

	return cfg
}
