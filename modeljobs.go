//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

//
// IN-FLIGHT MODEL RUNS
//

// ModelJob - the progress of one model run; the websocket reports these to the client
type ModelJob struct {
	ID       string
	User     string
	Kind     string // "neighbors", "topics", "regression"
	Summary  string
	Total    int
	Current  int
	Extra    string
	IsActive bool
	Launched time.Time
}

// JobVault - there should be only one of these; and it should have globally available methods
type JobVault struct {
	jobs map[string]ModelJob
	mtx  sync.RWMutex
}

func MakeJobVault() *JobVault {
	return &JobVault{
		jobs: make(map[string]ModelJob),
		mtx:  sync.RWMutex{},
	}
}

func (jv *JobVault) Insert(j ModelJob) {
	jv.mtx.Lock()
	defer jv.mtx.Unlock()
	jv.jobs[j.ID] = j
}

func (jv *JobVault) Read(id string) ModelJob {
	jv.mtx.RLock()
	defer jv.mtx.RUnlock()
	return jv.jobs[id]
}

func (jv *JobVault) Exists(id string) bool {
	jv.mtx.RLock()
	defer jv.mtx.RUnlock()
	_, ok := jv.jobs[id]
	return ok
}

func (jv *JobVault) Count() int {
	jv.mtx.RLock()
	defer jv.mtx.RUnlock()
	return len(jv.jobs)
}

// Progress - update the progress counters of a job
func (jv *JobVault) Progress(id string, current int, extra string) {
	jv.mtx.Lock()
	defer jv.mtx.Unlock()
	if j, ok := jv.jobs[id]; ok {
		j.Current = current
		j.Extra = extra
		jv.jobs[id] = j
	}
}

// Retire - deactivate a job but leave it readable for the final websocket poll
func (jv *JobVault) Retire(id string) {
	jv.mtx.Lock()
	defer jv.mtx.Unlock()
	if j, ok := jv.jobs[id]; ok {
		j.IsActive = false
		jv.jobs[id] = j
	}
}

func (jv *JobVault) Delete(id string) {
	jv.mtx.Lock()
	defer jv.mtx.Unlock()
	delete(jv.jobs, id)
}

// PruneInactive - drop retired jobs that no websocket ever polled away
func (jv *JobVault) PruneInactive(maxage time.Duration) {
	jv.mtx.Lock()
	defer jv.mtx.Unlock()
	for id, j := range jv.jobs {
		if !j.IsActive && time.Since(j.Launched) > maxage {
			delete(jv.jobs, id)
		}
	}
}

// NewModelJob - register a run with the vault and hand back its id; the client
// may supply the id itself so that it can poll the websocket for progress
func NewModelJob(id string, user string, kind string, summary string, total int) string {
	AllJobs.PruneInactive(JOBEXPIRYMIN * time.Minute)

	if id == "" {
		id = shortid()
	}
	j := ModelJob{
		ID:       id,
		User:     user,
		Kind:     kind,
		Summary:  summary,
		Total:    total,
		Current:  0,
		IsActive: true,
		Launched: time.Now(),
	}
	AllJobs.Insert(j)
	return j.ID
}

// shortid - an 8-character job tag: "205da19d"
func shortid() string {
	return strings.Split(uuid.New().String(), "-")[0]
}
