//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripperPurgesMailHeaders(t *testing.T) {
	raw := "From: someone\nSubject: Re: goalies\nOrganization: U of Somewhere\nIn article <123@host> it was said\n> quoted line\nthe real sentence survives\n"
	out := stripper(raw, TAGSTOPURGE)

	assert.NotContains(t, out, "Subject:")
	assert.NotContains(t, out, "Organization:")
	assert.NotContains(t, out, "In article")
	assert.NotContains(t, out, "quoted line")
	assert.Contains(t, out, "the real sentence survives")
}

func TestStripperPurgesEmailsAndTags(t *testing.T) {
	raw := "write to aa@bb.edu or see <b>bold</b> words"
	out := stripper(raw, TAGSTOPURGE)

	assert.NotContains(t, out, "@")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "bold")
}

func TestMakeSubstitutions(t *testing.T) {
	out := makesubstitutions("Mr. Smith can't say he won't go; I'm sure they're late")

	assert.Contains(t, out, "Mr Smith")
	assert.Contains(t, out, "cannot")
	assert.Contains(t, out, "will not")
	assert.Contains(t, out, "I am")
	assert.Contains(t, out, "they are")
}

func TestSplitOnPunctuation(t *testing.T) {
	split := splitonpunctuaton("one. two! three? four; five: six")
	assert.Equal(t, 6, len(split))
	assert.Equal(t, "one", strings.TrimSpace(split[0]))
	assert.Equal(t, " six", split[5])
}

func TestDropStopwords(t *testing.T) {
	bags := []BagWithSource{{Loc: "x/y/1", Bag: "the whale and the sea"}}
	out := dropstopwords("the and", bags)

	require.Equal(t, 1, len(out))
	assert.Equal(t, "whale sea", out[0].Bag)
}

func TestPrepTextBagsTagsAndCleans(t *testing.T) {
	docs := []DbDocument{
		{Corpus: "literary", DocID: "mobydick", Seq: 1, Title: "Moby Dick", Text: "Call me Ishmael."},
		{Corpus: "literary", DocID: "mobydick", Seq: 2, Title: "Moby Dick", Text: "It was the whale, the White Whale!"},
	}

	bags := preptextbags(docs, false)
	require.NotEmpty(t, bags)

	// every bag keeps a source tag and every bag is lowercase letters only
	for _, b := range bags {
		assert.Contains(t, b.Loc, "literary/mobydick/")
		assert.Equal(t, strings.ToLower(b.Bag), b.Bag)
		assert.NotContains(t, b.Bag, ".")
		assert.NotContains(t, b.Bag, "⊏")
	}

	// "the" and "it" are stopwords; "whale" is not
	joined := buildtextblock(bags)
	assert.Contains(t, joined, "whale")
	assert.NotContains(t, strings.Fields(joined), "the")
}

func TestPrepTextBagsKeepsFirstTagPerSentence(t *testing.T) {
	docs := []DbDocument{
		{Corpus: "c", DocID: "d", Seq: 1, Title: "t", Text: "alpha bravo"},
		{Corpus: "c", DocID: "d", Seq: 2, Title: "t", Text: "charlie delta."},
	}

	bags := preptextbags(docs, false)
	require.Equal(t, 1, len(bags))
	assert.Equal(t, "c/d/1", bags[0].Loc)
	assert.Equal(t, "alpha bravo charlie delta", bags[0].Bag)
}

func TestFoldVariants(t *testing.T) {
	out := foldvariants("the colour of my neighbour is grey")
	assert.Contains(t, out, "color")
	assert.Contains(t, out, "neighbor")
	assert.Contains(t, out, "gray")
}

func TestGetStopSet(t *testing.T) {
	stops := getstopset()
	_, ok := stops["the"]
	assert.True(t, ok)
	_, ok = stops["whale"]
	assert.False(t, ok)
}
