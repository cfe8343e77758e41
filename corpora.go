//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//
// THE CORPUS STORE
//

// DbDocument - one stored line of one document of one corpus
type DbDocument struct {
	Corpus string
	DocID  string
	Seq    int
	Title  string
	Text   string
}

const (
	CREATEDOCTABLE = `
	CREATE TABLE IF NOT EXISTS documents (
		corpus TEXT NOT NULL,
		docid  TEXT NOT NULL,
		seq    INTEGER NOT NULL,
		title  TEXT NOT NULL,
		txt    TEXT NOT NULL
	);`
	CREATEDOCINDEX = `CREATE INDEX IF NOT EXISTS documents_corpus_idx ON documents (corpus, docid, seq);`
	INSERTDOCLINE  = `INSERT INTO documents (corpus, docid, seq, title, txt) VALUES (?, ?, ?, ?, ?);`
	WIPECORPUS     = `DELETE FROM documents WHERE corpus = ?;`
)

// InstallCorpora - (re)load every corpus into the in-memory db; either the built-in samples or the files in Config.CorpusDir
func InstallCorpora() {
	const (
		MSG1 = "InstallCorpora() loaded %d corpora (%d lines) in %.3fs"
		MSG2 = "loading corpora from '%s'"
	)

	start := time.Now()

	db := GetSQLITEConn()

	_, err := db.Exec(CREATEDOCTABLE)
	chke(err)
	_, err = db.Exec(CREATEDOCINDEX)
	chke(err)

	var docs []DbDocument
	if Config.CorpusDir != "" {
		msg(fmt.Sprintf(MSG2, Config.CorpusDir), MSGNOTE)
		docs = readcorpusdirectory(Config.CorpusDir)
	} else {
		docs = sampledocuments()
	}

	corpora := make(map[string]bool)
	for _, d := range docs {
		corpora[d.Corpus] = true
	}

	tx, err := db.Begin()
	chke(err)

	// reloading is idempotent: wipe before write
	for c := range corpora {
		_, err = tx.Exec(WIPECORPUS, c)
		chke(err)
	}

	for _, d := range docs {
		_, err = tx.Exec(INSERTDOCLINE, d.Corpus, d.DocID, d.Seq, d.Title, d.Text)
		chke(err)
	}

	err = tx.Commit()
	chke(err)

	msg(fmt.Sprintf(MSG1, len(corpora), len(docs), time.Now().Sub(start).Seconds()), MSGFYI)
}

// readcorpusdirectory - one subdirectory per corpus; one ".txt" file per document
func readcorpusdirectory(dir string) []DbDocument {
	const (
		FAIL1 = "readcorpusdirectory() could not read '%s'"
		FAIL2 = "readcorpusdirectory() found no documents under '%s'; falling back to the built-in samples"
	)

	var docs []DbDocument

	subs, e := os.ReadDir(dir)
	if e != nil {
		msg(fmt.Sprintf(FAIL1, dir), MSGCRIT)
		return sampledocuments()
	}

	for _, sub := range subs {
		if !sub.IsDir() {
			continue
		}
		corpus := sub.Name()
		files, e := os.ReadDir(filepath.Join(dir, corpus))
		if e != nil {
			msg(fmt.Sprintf(FAIL1, filepath.Join(dir, corpus)), MSGWARN)
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".txt") {
				continue
			}
			fp := filepath.Join(dir, corpus, f.Name())
			raw, e := os.ReadFile(fp)
			if e != nil {
				msg(fmt.Sprintf(FAIL1, fp), MSGWARN)
				continue
			}
			docid := strings.TrimSuffix(f.Name(), ".txt")
			docs = append(docs, documentfromtext(corpus, docid, string(raw))...)
		}
	}

	if len(docs) == 0 {
		msg(fmt.Sprintf(FAIL2, dir), MSGCRIT)
		return sampledocuments()
	}

	return docs
}

// documentfromtext - split raw text into stored lines; the title is the first non-empty line
func documentfromtext(corpus string, docid string, raw string) []DbDocument {
	var docs []DbDocument

	title := docid
	lines := strings.Split(raw, "\n")

	seq := 1
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if seq == 1 {
			title = l
		}
		docs = append(docs, DbDocument{
			Corpus: corpus,
			DocID:  docid,
			Seq:    seq,
			Title:  title,
			Text:   l,
		})
		seq += 1
	}
	return docs
}

// GrabCorpusLines - every stored line of every document of one corpus, in order
func GrabCorpusLines(corpus string) []DbDocument {
	const (
		QT = `SELECT corpus, docid, seq, title, txt FROM documents WHERE corpus = ? ORDER BY docid, seq;`
	)

	db := GetSQLITEConn()
	dbdebug(QT, corpus)

	rows, err := db.Query(QT, corpus)
	chke(err)
	defer rows.Close()

	var docs []DbDocument
	for rows.Next() {
		var d DbDocument
		err = rows.Scan(&d.Corpus, &d.DocID, &d.Seq, &d.Title, &d.Text)
		chke(err)
		docs = append(docs, d)
	}
	chke(rows.Err())

	return docs
}

// GrabOneDocument - every stored line of one document, in order
func GrabOneDocument(corpus string, docid string) []DbDocument {
	const (
		QT = `SELECT corpus, docid, seq, title, txt FROM documents WHERE corpus = ? AND docid = ? ORDER BY seq;`
	)

	db := GetSQLITEConn()
	dbdebug(QT, corpus, docid)

	rows, err := db.Query(QT, corpus, docid)
	chke(err)
	defer rows.Close()

	var docs []DbDocument
	for rows.Next() {
		var d DbDocument
		err = rows.Scan(&d.Corpus, &d.DocID, &d.Seq, &d.Title, &d.Text)
		chke(err)
		docs = append(docs, d)
	}
	chke(rows.Err())

	return docs
}

// CorpusList - the names of the installed corpora
func CorpusList() []string {
	const (
		QT = `SELECT DISTINCT corpus FROM documents ORDER BY corpus;`
	)

	db := GetSQLITEConn()

	rows, err := db.Query(QT)
	chke(err)
	defer rows.Close()

	var cc []string
	for rows.Next() {
		var c string
		err = rows.Scan(&c)
		chke(err)
		cc = append(cc, c)
	}
	chke(rows.Err())

	return cc
}

// CountCorpusLines - how many lines does this corpus hold?
func CountCorpusLines(corpus string) int {
	const (
		QT = `SELECT count(*) FROM documents WHERE corpus = ?;`
	)

	db := GetSQLITEConn()

	var n int
	err := db.QueryRow(QT, corpus).Scan(&n)
	chke(err)

	return n
}
