//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var (
	EchoServerStats = NewEchoResponseStats()
)

// StartEchoServer - start serving; this blocks and does not return while the program remains alive
func StartEchoServer() {
	// https://echo.labstack.com/guide/

	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "i: ${remote_ip}\t r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
	)

	//
	// SETUP
	//

	e := echo.New()

	if Config.Authenticate {
		// assume that authentication means the internet; so set timeouts and police the response codes
		e.Server.ReadTimeout = TIMEOUTRD * time.Second
		e.Server.WriteTimeout = TIMEOUTWR * time.Second
		e.Use(EchoServerStats.PoliceResponse)
	}

	if Config.EchoLog == 2 {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT}))
	} else if Config.EchoLog == 1 {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(MAXECHOREQPERSECONDPERIP)))

	e.Use(middleware.Recover())

	if Config.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	}

	//
	// HYPATIA ROUTES
	//

	//
	// [a] frontpage and styling ("rt-frontpage.go")
	//

	e.GET("/", RtFrontpage)
	e.GET("/emb/css/hypatiastyles.css", RtCSS)

	//
	// [b] the exercises
	//

	e.GET("/neighbors/exec/:term", NeighborsSearch)      // "u: /neighbors/exec/whale"
	e.GET("/topics/exec/:method", TopicSearch)           // "u: /topics/exec/lda"
	e.GET("/regression/exec/:comp", RegressionSearch)    // "u: /regression/exec/4"

	//
	// [c] set options ("rt-session.go")
	//

	e.GET("/setoption/:opt/:val", RtSetOption) // "u: /setoption/topicct/7"

	//
	// [d] resets
	//

	e.GET("/reset/session", RtResetSession) // "u: /reset/session"
	e.GET("/reset/vectors", RtResetVectors) // "u: /reset/vectors"
	e.GET("/vectors/count", RtVectorCount)  // "u: /vectors/count"
	e.GET("/stats", RtServerStats)          // "u: /stats"

	//
	// [e] websocket ("rt-websocket.go")
	//

	e.GET("/ws", RtWebsocket)

	if Config.SelfTest {
		go func() {
			msg("Running the self-test", MSGMAND)
			selftest()
		}()
	}

	e.HideBanner = true
	e.Logger.Fatal(e.Start(fmt.Sprintf("%s:%d", Config.HostIP, Config.HostPort)))
}

//
// OUTPUT PLUMBING
//

// SearchOutputJSON - what every exercise route sends back to the frontpage JS
type SearchOutputJSON struct {
	Title         string `json:"title"`
	Searchsummary string `json:"searchsummary"`
	Found         string `json:"found"`
	Image         string `json:"image"`
	JS            string `json:"js"`
}

// RtServerStats - a JSON snapshot of server activity: response codes, jobs, model runs per route
func RtServerStats(c echo.Context) error {
	type JSOut struct {
		OK          uint64         `json:"ok"`
		Forbidden   uint64         `json:"forbidden"`
		NotFound    uint64         `json:"notfound"`
		Failed      uint64         `json:"failed"`
		Blacklisted int            `json:"blacklistedips"`
		ActiveJobs  int            `json:"activejobs"`
		ModelRuns   map[string]int `json:"modelruns"`
		Busiest     []string       `json:"busiestfirst"`
	}

	runs := PathReport()

	EchoServerStats.mutex.RLock()
	out := JSOut{
		OK:          EchoServerStats.TwoHundred,
		Forbidden:   EchoServerStats.FourOhThree,
		NotFound:    EchoServerStats.FourOhFour,
		Failed:      EchoServerStats.FiveHundred,
		Blacklisted: len(EchoServerStats.Blacklist),
	}
	EchoServerStats.mutex.RUnlock()

	out.ActiveJobs = AllJobs.Count()
	out.ModelRuns = runs
	out.Busiest = SortKeysByIntValue(runs)

	return c.JSONPretty(http.StatusOK, out, JSONINDENT)
}

// JSONresponse - send the JSON; jsr should be a json-ready struct
func JSONresponse(c echo.Context, jsr any) error {
	// JSONPretty will end up strikingly prominent on the profiler: a waste of memory and cycles
	// unless you are debugging and want to inspect the json manually
	return c.JSON(http.StatusOK, jsr)
}

// VECTORJS - re-arm the clickable headwords after each result lands
const VECTORJS = `
	document.getElementById('pollingdata').innerHTML = '';
	document.querySelectorAll('vectorheadword').forEach(function (hw) {
		hw.addEventListener('click', function () { executeneighborssearch(hw.id); });
	});`

//
// SERVERSTATS
//

type EchoResponseStats struct {
	TwoHundred  uint64
	FourOhThree uint64
	FourOhFour  uint64
	FiveHundred uint64
	Scanners    map[string]int
	Hackers     map[string]int
	Blacklist   map[string]struct{}
	mutex       sync.RWMutex
}

func NewEchoResponseStats() *EchoResponseStats {
	return &EchoResponseStats{
		Scanners:  make(map[string]int),
		Hackers:   make(map[string]int),
		Blacklist: make(map[string]struct{}),
		mutex:     sync.RWMutex{},
	}
}

// PoliceResponse - track response code counts and block repeat 404 offenders
func (ers *EchoResponseStats) PoliceResponse(nextechohandler echo.HandlerFunc) echo.HandlerFunc {
	const (
		BLACK0 = `IP address %s was blacklisted: too many previous response code errors`
		BLACK1 = `IP address %s was blacklisted: %d StatusNotFound errors`
		BLACK2 = `IP address %s was blacklisted: %d StatusInternalServerError errors`
		FYI200 = `StatusOK count is %d`
		FRQ200 = 1000
		FYI403 = `StatusForbidden count is %d. There are %d IPs currently on the blacklist.`
		FRQ403 = 100
		FYI404 = `StatusNotFound count is %d`
		FRQ404 = 50
		FYI500 = `StatusInternalServerError count is %d`
		FRQ500 = 25
	)

	return func(c echo.Context) error {
		ip := c.RealIP()

		ers.mutex.Lock()
		defer ers.mutex.Unlock()

		// see https://echo.labstack.com/docs/error-handling
		if _, yes := ers.Blacklist[ip]; yes {
			ers.FourOhThree++
			if ers.FourOhThree%FRQ403 == 0 {
				msg(fmt.Sprintf(FYI403, ers.FourOhThree, len(ers.Blacklist)), MSGNOTE)
			}

			e := echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf(BLACK0, c.RealIP()))
			return e
		}

		if err := nextechohandler(c); err != nil {
			c.Error(err)
		}

		switch c.Response().Status {
		case 200:
			ers.TwoHundred++
			if ers.TwoHundred%FRQ200 == 0 {
				msg(fmt.Sprintf(FYI200, ers.TwoHundred), MSGNOTE)
			}

		case 404:
			ers.FourOhFour++

			if _, ok := ers.Scanners[ip]; !ok {
				ers.Scanners[ip] = 1
			} else {
				ers.Scanners[ip]++
			}

			if ers.Scanners[ip] >= MAXFOUROHFOUR {
				ers.Blacklist[ip] = struct{}{}
				msg(fmt.Sprintf(BLACK1, c.RealIP(), ers.Scanners[ip]), MSGWARN)
			}

			if ers.FourOhFour%FRQ404 == 0 {
				msg(fmt.Sprintf(FYI404, ers.FourOhFour), MSGNOTE)
			}

		case 500:
			ers.FiveHundred++

			if _, ok := ers.Hackers[ip]; !ok {
				ers.Hackers[ip] = 1
			} else {
				ers.Hackers[ip]++
			}

			if ers.Hackers[ip] >= MAXFIVEHUNDRED {
				ers.Blacklist[ip] = struct{}{}
				msg(fmt.Sprintf(BLACK2, c.RealIP(), ers.Hackers[ip]), MSGWARN)
			}

			if ers.FiveHundred%FRQ500 == 0 {
				msg(fmt.Sprintf(FYI500, ers.FiveHundred), MSGWARN)
			}

		default:
			// do nothing
			// 302 from "/reset/session" is about the only other code one sees
		}
		return nil
	}
}
