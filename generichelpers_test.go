//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"lda", "lsa", "nmf"}, "lsa"))
	assert.False(t, Contains([]string{"lda", "lsa", "nmf"}, "svd"))
}

func TestToSet(t *testing.T) {
	s := ToSet([]string{"x", "y", "x"})
	assert.Equal(t, 2, len(s))
	_, ok := s["x"]
	assert.True(t, ok)
}

func TestStringMapKeysIntoSlice(t *testing.T) {
	keys := StringMapKeysIntoSlice(map[string]int{"a": 1, "b": 2})
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestSortKeysByIntValue(t *testing.T) {
	mp := map[string]int{"low": 1, "high": 10, "mid": 5, "alsohigh": 10}
	keys := SortKeysByIntValue(mp)
	assert.Equal(t, []string{"alsohigh", "high", "mid", "low"}, keys)
}
