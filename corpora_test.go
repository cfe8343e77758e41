//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentFromText(t *testing.T) {
	raw := "The Title Line\n\nfirst real line\nsecond real line\n"
	docs := documentfromtext("literary", "sample", raw)

	require.Equal(t, 3, len(docs))
	assert.Equal(t, "The Title Line", docs[0].Title)
	assert.Equal(t, "The Title Line", docs[2].Title, "every line carries the document title")
	assert.Equal(t, 1, docs[0].Seq)
	assert.Equal(t, 3, docs[2].Seq, "blank lines do not burn sequence numbers")
	assert.Equal(t, "second real line", docs[2].Text)
}

func TestInstallCorporaIsIdempotent(t *testing.T) {
	Config = BuildDefaultConfig()
	Config.CorpusDir = ""

	InstallCorpora()
	first := CountCorpusLines(CORPUSLITERARY)
	require.Greater(t, first, 0)

	// a reload wipes before writing; the counts must not grow
	InstallCorpora()
	assert.Equal(t, first, CountCorpusLines(CORPUSLITERARY))
}

func TestGrabCorpusLinesOrdering(t *testing.T) {
	Config = BuildDefaultConfig()
	InstallCorpora()

	docs := GrabCorpusLines(CORPUSNEWS)
	require.NotEmpty(t, docs)

	seen := make(map[string]int)
	for _, d := range docs {
		assert.Equal(t, CORPUSNEWS, d.Corpus)
		require.Greater(t, d.Seq, seen[d.DocID], "lines of a document arrive in ascending Seq order")
		seen[d.DocID] = d.Seq
	}
}

func TestGrabOneDocument(t *testing.T) {
	Config = BuildDefaultConfig()
	InstallCorpora()

	all := GrabCorpusLines(CORPUSLITERARY)
	require.NotEmpty(t, all)

	one := GrabOneDocument(CORPUSLITERARY, all[0].DocID)
	require.NotEmpty(t, one)
	for i, d := range one {
		assert.Equal(t, all[0].DocID, d.DocID)
		assert.Equal(t, i+1, d.Seq)
	}
}

func TestCorpusList(t *testing.T) {
	Config = BuildDefaultConfig()
	InstallCorpora()

	cc := CorpusList()
	assert.Contains(t, cc, CORPUSLITERARY)
	assert.Contains(t, cc, CORPUSNEWS)
}
