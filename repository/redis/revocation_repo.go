package redis

import (
	"context"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/repository"
)

type revocationRepository struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewRevocationRepository creates a Redis-backed revocation list. Entries
// expire after ttl, which should cover the refresh window: once every token
// issued before the revocation has expired anyway, the entry is moot.
func NewRevocationRepository(client *redislib.Client, ttl time.Duration) repository.RevocationRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &revocationRepository{
		client: client,
		prefix: "revoked:",
		ttl:    ttl,
	}
}

func (r *revocationRepository) Revoke(ctx context.Context, identityID string, at time.Time) error {
	if identityID == "" {
		return domain.ErrInvalidPayload
	}
	if at.IsZero() {
		at = time.Now()
	}
	return r.client.Set(ctx, r.key(identityID), at.UTC().Format(time.RFC3339Nano), r.ttl).Err()
}

func (r *revocationRepository) RevokedAt(ctx context.Context, identityID string) (time.Time, error) {
	result, err := r.client.Get(ctx, r.key(identityID)).Result()
	if err != nil {
		if err == redislib.Nil {
			return time.Time{}, domain.ErrRevocationNotFound
		}
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, result)
}

func (r *revocationRepository) All(ctx context.Context) (map[string]time.Time, error) {
	entries := make(map[string]time.Time)

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		result, err := r.client.Get(ctx, key).Result()
		if err != nil {
			if err == redislib.Nil {
				continue // expired between scan and get
			}
			return nil, err
		}
		at, err := time.Parse(time.RFC3339Nano, result)
		if err != nil {
			continue
		}
		entries[strings.TrimPrefix(key, r.prefix)] = at
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *revocationRepository) key(identityID string) string {
	return r.prefix + identityID
}
