package monitor

import (
	"context"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Pinger is the reachability probe a backing store must answer.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DepthReporter exposes the offline queue length.
type DepthReporter interface {
	Size() (int, error)
}

// RedisPinger adapts a go-redis client to the Pinger probe.
func RedisPinger(client *redislib.Client) Pinger {
	if client == nil {
		return nil
	}
	return redisPinger{client: client}
}

type redisPinger struct {
	client *redislib.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

const (
	databaseProbeTimeout   = 3 * time.Second
	revocationProbeTimeout = 2 * time.Second
)

// Monitor keeps a cached reachability snapshot of the stores this service
// writes to. The buffer processor consults it before attempting a drain and
// the health endpoint reports the same snapshot, so no request path ever
// pays for a live ping.
type Monitor struct {
	db    Pinger
	revs  Pinger
	queue DepthReporter

	interval time.Duration
	logger   *zap.Logger

	mu     sync.RWMutex
	status Status

	stopCh   chan struct{}
	stopOnce sync.Once
}

func New(db, revs Pinger, queue DepthReporter, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		db:       db,
		revs:     revs,
		queue:    queue,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// CanWrite reports whether the relational store answered its last probe.
// Only the database gates the drain decision; a revocation store outage
// must not stall buffered progress writes.
func (m *Monitor) CanWrite() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Database
}

// Snapshot returns the latest probe results.
func (m *Monitor) Snapshot() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.probeAll()
	for {
		select {
		case <-ticker.C:
			m.probeAll()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) probeAll() {
	next := Status{CheckedAt: time.Now()}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		next.Database = m.probe(databaseProbeTimeout, m.db)
	}()
	go func() {
		defer wg.Done()
		next.Revocations = m.probe(revocationProbeTimeout, m.revs)
	}()
	queueOK, depth := m.queueDepth()
	wg.Wait()
	next.Queue = queueOK
	next.QueueDepth = depth

	m.mu.Lock()
	prev := m.status
	m.status = next
	m.mu.Unlock()

	if prev.Healthy() && !next.Healthy() {
		m.logger.Warn("backing store went offline",
			zap.Bool("database", next.Database),
			zap.Bool("revocations", next.Revocations))
	}
	if !prev.Healthy() && next.Healthy() && !prev.CheckedAt.IsZero() {
		m.logger.Info("backing stores reachable again",
			zap.Int("queued_writes", next.QueueDepth))
	}
}

func (m *Monitor) probe(timeout time.Duration, p Pinger) bool {
	if p == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return p.Ping(ctx) == nil
}

func (m *Monitor) queueDepth() (bool, int) {
	if m.queue == nil {
		return false, 0
	}
	depth, err := m.queue.Size()
	if err != nil {
		m.logger.Warn("offline queue depth check failed", zap.Error(err))
		return false, depth
	}
	return true, depth
}
