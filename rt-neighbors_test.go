//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"strings"
	"testing"

	"github.com/e-gun/wego/pkg/search"
	"github.com/stretchr/testify/assert"
)

func fakeneighbors(ww ...string) search.Neighbors {
	var nn search.Neighbors
	for i, w := range ww {
		nn = append(nn, search.Neighbor{Word: w, Rank: i + 1, Similarity: 1.0 - float64(i)*0.1})
	}
	return nn
}

func TestNeighborsTableShowsEveryNeighbor(t *testing.T) {
	// an odd count must not drop the unpaired entry
	odd := fakeneighbors("sea", "ship", "harpoon", "mast", "ahab")
	out := neighborstable("whale", odd, "w2v", "plain")
	for _, w := range []string{"sea", "ship", "harpoon", "mast", "ahab"} {
		assert.Contains(t, out, `id="`+w+`"`, w)
	}
	assert.Equal(t, 5, strings.Count(out, "<vectorheadword"), "every neighbor lands in a cell")

	even := fakeneighbors("sea", "ship", "harpoon", "mast")
	out = neighborstable("whale", even, "w2v", "plain")
	for _, w := range []string{"sea", "ship", "harpoon", "mast"} {
		assert.Contains(t, out, `id="`+w+`"`, w)
	}
	assert.Equal(t, 4, strings.Count(out, "<vectorheadword"))
}

func TestNeighborsTableCarriesSettings(t *testing.T) {
	out := neighborstable("whale", fakeneighbors("sea"), "glove", "folded")
	assert.Contains(t, out, "<code>glove</code>")
	assert.Contains(t, out, "<code>folded</code>")
	assert.Contains(t, out, "»<span class=\"colorhighlight\">whale</span>«")
}
