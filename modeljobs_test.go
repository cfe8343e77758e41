//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobVaultLifecycle(t *testing.T) {
	id := NewModelJob("", "tester", "neighbors", "Neighbors of 'whale'", 15)
	require.True(t, AllJobs.Exists(id))
	defer AllJobs.Delete(id)

	j := AllJobs.Read(id)
	assert.True(t, j.IsActive)
	assert.Equal(t, 15, j.Total)
	assert.Equal(t, 0, j.Current)

	AllJobs.Progress(id, 7, "Training run #7")
	j = AllJobs.Read(id)
	assert.Equal(t, 7, j.Current)
	assert.Equal(t, "Training run #7", j.Extra)

	AllJobs.Retire(id)
	j = AllJobs.Read(id)
	assert.False(t, j.IsActive)
	assert.True(t, AllJobs.Exists(id), "retired jobs remain readable for the final poll")

	AllJobs.Delete(id)
	assert.False(t, AllJobs.Exists(id))
}

func TestNewModelJobHonorsClientID(t *testing.T) {
	id := NewModelJob("205da19d", "tester", "topics", "Topic model: lda", 0)
	defer AllJobs.Delete(id)
	assert.Equal(t, "205da19d", id)
}

func TestPruneInactiveDropsOnlyStaleRetiredJobs(t *testing.T) {
	stale := ModelJob{ID: "stalejob1", IsActive: false, Launched: time.Now().Add(-time.Hour)}
	lingering := ModelJob{ID: "activejob", IsActive: true, Launched: time.Now().Add(-time.Hour)}
	fresh := ModelJob{ID: "freshjob1", IsActive: false, Launched: time.Now()}
	AllJobs.Insert(stale)
	AllJobs.Insert(lingering)
	AllJobs.Insert(fresh)
	defer AllJobs.Delete("activejob")
	defer AllJobs.Delete("freshjob1")

	AllJobs.PruneInactive(JOBEXPIRYMIN * time.Minute)

	assert.False(t, AllJobs.Exists("stalejob1"), "stale retired jobs are dropped")
	assert.True(t, AllJobs.Exists("activejob"), "a long run is not a stale run")
	assert.True(t, AllJobs.Exists("freshjob1"), "freshly retired jobs stay for the final poll")
}

func TestNewModelJobPrunesTheVault(t *testing.T) {
	AllJobs.Insert(ModelJob{ID: "oldnews01", IsActive: false, Launched: time.Now().Add(-time.Hour)})

	id := NewModelJob("", "tester", "regression", "PLSR component sweep", 0)
	defer AllJobs.Delete(id)

	assert.False(t, AllJobs.Exists("oldnews01"), "registering a run sweeps out the dead ones")
	assert.True(t, AllJobs.Exists(id))
}

func TestShortID(t *testing.T) {
	a := shortid()
	b := shortid()
	assert.Equal(t, 8, len(a))
	assert.NotEqual(t, a, b)
}
