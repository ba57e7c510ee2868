package monitor

import "time"

// Status is a point-in-time reachability view of the stores behind the
// service. Database covers the relational store holding identities, catalog
// and progress. Revocations covers the redis revocation list. Queue covers
// the local offline write queue.
type Status struct {
	Database    bool      `json:"database"`
	Revocations bool      `json:"revocations"`
	Queue       bool      `json:"queue"`
	QueueDepth  int       `json:"queue_depth"`
	CheckedAt   time.Time `json:"checked_at"`
}

// Healthy reports whether both remote stores answered their last probe.
func (s Status) Healthy() bool {
	return s.Database && s.Revocations
}
