package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeQueue struct {
	depth int
	err   error
}

func (f fakeQueue) Size() (int, error) { return f.depth, f.err }

func TestProbeAllSnapshot(t *testing.T) {
	m := New(fakePinger{}, fakePinger{}, fakeQueue{depth: 3}, time.Minute, nil)
	m.probeAll()

	status := m.Snapshot()
	assert.True(t, status.Database)
	assert.True(t, status.Revocations)
	assert.True(t, status.Queue)
	assert.Equal(t, 3, status.QueueDepth)
	assert.True(t, status.Healthy())
	assert.False(t, status.CheckedAt.IsZero())
}

func TestCanWriteTracksDatabaseOnly(t *testing.T) {
	m := New(fakePinger{}, fakePinger{err: errors.New("redis down")}, fakeQueue{}, time.Minute, nil)
	m.probeAll()

	// A revocation store outage must not stall buffered writes.
	assert.True(t, m.CanWrite())
	assert.False(t, m.Snapshot().Healthy())
}

func TestCanWriteFalseWhenDatabaseDown(t *testing.T) {
	m := New(fakePinger{err: errors.New("connection refused")}, fakePinger{}, fakeQueue{}, time.Minute, nil)
	m.probeAll()

	assert.False(t, m.CanWrite())
	assert.False(t, m.Snapshot().Healthy())
}

func TestQueueDepthFailureMarksQueueOffline(t *testing.T) {
	m := New(fakePinger{}, fakePinger{}, fakeQueue{err: errors.New("database not open")}, time.Minute, nil)
	m.probeAll()

	status := m.Snapshot()
	assert.False(t, status.Queue)
	assert.True(t, status.Healthy())
}

func TestMissingProbesReportOffline(t *testing.T) {
	m := New(nil, nil, nil, time.Minute, nil)
	m.probeAll()

	status := m.Snapshot()
	assert.False(t, status.Database)
	assert.False(t, status.Revocations)
	assert.False(t, status.Queue)
	assert.Equal(t, 0, status.QueueDepth)
}
