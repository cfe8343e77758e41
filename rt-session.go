//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

//
// SESSIONS
//

// ServerSession - all the per-client knobs for the three exercises
type ServerSession struct {
	ID            string
	LoginName     string
	VecModeler    string // "w2v", "glove", "lexvec"
	VecTextPrep   string // "plain", "folded"
	VecNeighbCt   int
	VecGraphExt   bool
	TopicMethod   string // "lda", "lsa", "nmf", "all"
	TopicCt       int
	TopicGraph    bool
	PLSComponents int
	SynthRows     int
	SynthCols     int
	SynthRank     int
	SynthNoise    float64
	SynthSeed     uint64
}

var (
	SessionMap    = make(map[string]ServerSession)
	SessionLocker = sync.RWMutex{}
)

// MakeDefaultSession - fill in the blanks when setting up a new session
func MakeDefaultSession(id string) ServerSession {
	var s ServerSession
	s.ID = id
	s.LoginName = "Anonymous"
	s.VecModeler = "w2v"
	s.VecTextPrep = "plain"
	s.VecNeighbCt = VECTORNEIGHBORS
	s.VecGraphExt = false
	s.TopicMethod = "lda"
	s.TopicCt = TOPICSDEFAULT
	s.TopicGraph = true
	s.PLSComponents = PLSCOMPONENTS
	s.SynthRows = SYNTHROWS
	s.SynthCols = SYNTHCOLS
	s.SynthRank = SYNTHRANK
	s.SynthNoise = SYNTHNOISE
	s.SynthSeed = SYNTHSEED
	return s
}

// SafeSessionRead - lock-protected fetch of a session; will register a default session if the id is unknown
func SafeSessionRead(id string) ServerSession {
	SessionLocker.Lock()
	defer SessionLocker.Unlock()
	s, ok := SessionMap[id]
	if !ok {
		s = MakeDefaultSession(id)
		SessionMap[id] = s
	}
	return s
}

// SafeSessionMapInsert - lock-protected insertion of a session
func SafeSessionMapInsert(ns ServerSession) {
	SessionLocker.Lock()
	defer SessionLocker.Unlock()
	SessionMap[ns.ID] = ns
}

// readUUIDCookie - find the ID of the client
func readUUIDCookie(c echo.Context) string {
	cookie, err := c.Cookie(COOKIENAME)
	if err != nil {
		id := writeUUIDCookie(c)
		return id
	}
	id := cookie.Value

	SessionLocker.Lock()
	if _, t := SessionMap[id]; !t {
		SessionMap[id] = MakeDefaultSession(id)
	}
	SessionLocker.Unlock()

	return id
}

// writeUUIDCookie - set the ID of the client
func writeUUIDCookie(c echo.Context) string {
	cookie := new(http.Cookie)
	cookie.Name = COOKIENAME
	cookie.Path = "/"
	cookie.Value = uuid.New().String()
	cookie.Expires = time.Now().Add(4800 * time.Hour)
	c.SetCookie(cookie)
	msg(fmt.Sprintf("writeUUIDCookie() - new ID set: %s", cookie.Value), MSGPEEK)
	return cookie.Value
}

//
// ROUTING
//

// RtSetOption - modify the session in light of the selection made: "/setoption/vecneighbct/12"
func RtSetOption(c echo.Context) error {
	const (
		FAIL1 = "RtSetOption() was given bad input: %s/%s"
		FAIL2 = "RtSetOption() could not parse '%s' as a number"
	)

	user := readUUIDCookie(c)
	s := SafeSessionRead(user)

	opt := c.Param("opt")
	val := c.Param("val")

	toint := func(v string) int {
		i, e := strconv.Atoi(v)
		if e != nil {
			msg(fmt.Sprintf(FAIL2, v), MSGWARN)
			i = -1
		}
		return i
	}

	switch opt {
	case "vecmodeler":
		if Contains([]string{"w2v", "glove", "lexvec"}, val) {
			s.VecModeler = val
		}
	case "vectextprep":
		if Contains([]string{"plain", "folded"}, val) {
			s.VecTextPrep = val
		}
	case "vecneighbct":
		n := toint(val)
		if n >= VECTORNEIGHBORSMIN && n <= VECTORNEIGHBORSMAX {
			s.VecNeighbCt = n
		}
	case "vecgraphext":
		s.VecGraphExt = val == "yes"
	case "topicmethod":
		if Contains([]string{"lda", "lsa", "nmf", "all"}, val) {
			s.TopicMethod = val
		}
	case "topicct":
		n := toint(val)
		s.TopicCt = clamptopiccount(n)
	case "topicgraph":
		s.TopicGraph = val == "yes"
	case "plscomponents":
		n := toint(val)
		if n >= 1 && n <= PLSMAXSWEEP {
			s.PLSComponents = n
		}
	case "synthrows":
		n := toint(val)
		if n >= 20 && n <= 100000 {
			s.SynthRows = n
		}
	case "synthcols":
		n := toint(val)
		if n >= 2 && n <= 1000 {
			s.SynthCols = n
		}
	case "synthrank":
		n := toint(val)
		if n >= 1 && n <= 64 {
			s.SynthRank = n
		}
	case "synthnoise":
		f, e := strconv.ParseFloat(val, 64)
		if e == nil && f >= 0 && f <= 10 {
			s.SynthNoise = f
		}
	case "synthseed":
		n := toint(val)
		if n >= 0 {
			s.SynthSeed = uint64(n)
		}
	default:
		msg(fmt.Sprintf(FAIL1, opt, val), MSGWARN)
	}

	SafeSessionMapInsert(s)
	return c.JSONPretty(http.StatusOK, s, JSONINDENT)
}

// RtResetSession - throw away the current session and start a new one
func RtResetSession(c echo.Context) error {
	user := readUUIDCookie(c)
	SafeSessionMapInsert(MakeDefaultSession(user))
	return c.Redirect(http.StatusFound, "/")
}
