//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"sort"
)

//
// misc generic functions
//

// Contains - is item X an element of slice A?
func Contains[T comparable](sl []T, seek T) bool {
	for _, v := range sl {
		if v == seek {
			return true
		}
	}
	return false
}

// ToSet - returns a blank map of a slice
func ToSet[T comparable](sl []T) map[T]struct{} {
	m := make(map[T]struct{}, len(sl))
	for i := 0; i < len(sl); i++ {
		m[sl[i]] = struct{}{}
	}
	return m
}

// StringMapKeysIntoSlice - generic map[string]T becomes []string of the keys
func StringMapKeysIntoSlice[T any](mp map[string]T) []string {
	keys := make([]string, 0, len(mp))
	for k := range mp {
		keys = append(keys, k)
	}
	return keys
}

// SortKeysByIntValue - descending sort of the keys of a map[string]int by their values
func SortKeysByIntValue(mp map[string]int) []string {
	keys := StringMapKeysIntoSlice(mp)
	sort.Slice(keys, func(i, j int) bool {
		if mp[keys[i]] == mp[keys[j]] {
			return keys[i] < keys[j]
		}
		return mp[keys[i]] > mp[keys[j]]
	})
	return keys
}
