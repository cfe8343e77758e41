//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"runtime/debug"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/profile"
)

//
// THE GLOBALS
//

var (
	Config  CurrentConfiguration
	SQLPool *pgxpool.Pool
	AllJobs = MakeJobVault()

	// GitCommit - set at build time: "go build -ldflags "-X main.GitCommit=$GIT_COMMIT""
	GitCommit string
)

func main() {
	configatlaunch()

	if !Config.QuietStart {
		printversion()
	}

	if Config.ProfileCPU {
		// "go tool pprof --pdf ./HypatiaGoServer /path/to/cpu.pprof > profile.pdf"
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	go PathInfoHub()

	// concurrent launching
	var awaiting sync.WaitGroup

	awaiting.Add(1)
	go func(awaiting *sync.WaitGroup) {
		defer awaiting.Done()
		start := time.Now()
		InstallCorpora()
		messenger.Timer("A1", "corpora installed", start, start)
	}(&awaiting)

	if Config.PGCache {
		awaiting.Add(1)
		go func(awaiting *sync.WaitGroup) {
			defer awaiting.Done()
			start := time.Now()
			SQLPool = FillPSQLPoool()
			vectordbinitnn()
			messenger.Timer("A2", "model cache connected", start, start)
		}(&awaiting)
	}

	awaiting.Wait()

	if Config.ManualGC {
		debug.SetGCPercent(50)
	}

	if Config.TermMode {
		RunTerminalExercises()
		return
	}

	StartEchoServer()
}
