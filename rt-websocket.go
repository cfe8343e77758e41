//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	// the page and the socket are same-origin on a local server
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RtWebsocket - the client sends a job id; this outputs the status of that job continuously while it remains active
func RtWebsocket(c echo.Context) error {
	//	example:
	//		progress {"active": "is_active", "Poolofwork": 15, "Doneofwork": 3, "Statusmessage": "Training run #3...", "Elapsed": "4.0s", "ID": "205da19d"}

	const (
		FAILRD = "RtWebsocket(): ws failed to read: breaking"
		FAILWR = "RtWebsocket(): ws failed to write: breaking"
	)

	type ReplyJS struct {
		Active   string `json:"active"`
		TotalWrk int    `json:"Poolofwork"`
		DoneWrk  int    `json:"Doneofwork"`
		Msg      string `json:"Statusmessage"`
		Elapsed  string `json:"Elapsed"`
		ID       string `json:"ID"`
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	for {
		// Read: the client names a job
		_, m, e := ws.ReadMessage()
		if e != nil {
			msg(FAILRD, MSGPEEK)
			break
		}

		// will yield: websocket received: "205da19d"
		// the bug-trap is the quotes around that string
		bs := strings.Replace(string(m), `"`, "", -1)

		if !AllJobs.Exists(bs) {
			continue
		}

		for {
			j := AllJobs.Read(bs)

			r := ReplyJS{
				Active:   "is_active",
				TotalWrk: j.Total,
				DoneWrk:  j.Current,
				Msg:      j.Summary + "<br>" + j.Extra,
				Elapsed:  fmt.Sprintf("%.1fs", time.Now().Sub(j.Launched).Seconds()),
				ID:       j.ID,
			}

			js, y := json.Marshal(r)
			chke(y)

			if er := ws.WriteMessage(websocket.TextMessage, js); er != nil {
				msg(FAILWR, MSGPEEK)
				break
			}

			if !j.IsActive {
				// the final status has been written; nobody else will ask about this job
				AllJobs.Delete(bs)
				break
			}

			time.Sleep(WSPOLLINGPAUSE * time.Millisecond)
		}
	}
	return nil
}
