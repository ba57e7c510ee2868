package revocation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/academylabs/backend/repository"
)

// Cache keeps the revocation list in memory so token verification on the
// request path never waits on a store round trip. A background loop refreshes
// it; Record pushes local writes in immediately so a forced logout takes
// effect on the next request rather than the next refresh.
type Cache struct {
	repo     repository.RevocationRepository
	interval time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	entries map[string]time.Time

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewCache(repo repository.RevocationRepository, interval time.Duration, logger *zap.Logger) *Cache {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		repo:     repo,
		interval: interval,
		logger:   logger,
		entries:  map[string]time.Time{},
		stopCh:   make(chan struct{}),
	}
}

// Start primes the cache and launches the refresh loop.
func (c *Cache) Start() {
	c.refresh()
	c.wg.Add(1)
	go c.loop()
}

func (c *Cache) Stop() {
	close(c.stopCh)
	c.wg.Wait()
}

// RevokedAt implements token.RevocationChecker from memory only.
func (c *Cache) RevokedAt(identityID string) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	at, ok := c.entries[identityID]
	return at, ok
}

// Record makes a revocation visible locally without waiting for a refresh.
func (c *Cache) Record(identityID string, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[identityID]; ok && existing.After(at) {
		return
	}
	c.entries[identityID] = at
}

func (c *Cache) loop() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.refresh()
		case <-c.stopCh:
			return
		}
	}
}

func (c *Cache) refresh() {
	if c.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	entries, err := c.repo.All(ctx)
	if err != nil {
		// Keep serving the previous snapshot; deny decisions stay intact.
		c.logger.Warn("revocation list refresh failed", zap.Error(err))
		return
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
}
