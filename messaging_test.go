//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// the hub runs forever; start exactly one for the whole test binary
var hubstart sync.Once

func startpathhub() {
	hubstart.Do(func() { go PathInfoHub() })
}

func TestPathInfoHubCountsAndReports(t *testing.T) {
	startpathhub()

	PIUpdate <- "NeighborsSearch()"
	PIUpdate <- "NeighborsSearch()"
	PIUpdate <- "TopicSearch()"

	// the updates travel through a buffered channel; poll until they land
	var report map[string]int
	require.Eventually(t, func() bool {
		report = PathReport()
		return report["NeighborsSearch()"] >= 2 && report["TopicSearch()"] >= 1
	}, time.Second, 10*time.Millisecond)

	// the report is a snapshot; scribbling on it must not corrupt the hub
	report["NeighborsSearch()"] = 0
	again := PathReport()
	require.GreaterOrEqual(t, again["NeighborsSearch()"], 2)
}
