// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

// query.go provides a Valkey-backed query cache. Read endpoints store
// their JSON-encoded results here so repeat requests skip the storage
// driver entirely. A nil client disables caching: Remember just calls
// the fetch function.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultQueryTTL is how long a cached query result stays fresh.
const DefaultQueryTTL = 5 * time.Minute

// QueryCache caches JSON-encodable query results in Valkey.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQueryCache creates a query cache backed by the given Valkey client.
// A nil client yields a pass-through cache.
func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	if ttl == 0 {
		ttl = DefaultQueryTTL
	}
	return &QueryCache{client: client, ttl: ttl}
}

// Enabled reports whether a backing client is configured.
func (qc *QueryCache) Enabled() bool {
	return qc != nil && qc.client != nil
}

// Remember returns the cached value under key, or runs fetch, stores the
// result, and returns it. Cache errors degrade to a plain fetch.
func (qc *QueryCache) Remember(ctx context.Context, key string, out any, fetch func() (any, error)) error {
	if qc.Enabled() {
		raw, err := qc.client.Get(ctx, key).Bytes()
		if err == nil {
			if err := json.Unmarshal(raw, out); err == nil {
				slog.Debug("query cache hit", "key", key)
				return nil
			}
			// A corrupt entry falls through to a fresh fetch.
			qc.client.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			slog.Warn("query cache get error", "key", key, "error", err)
		}
	}

	value, err := fetch()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}

	if qc.Enabled() {
		if err := qc.client.Set(ctx, key, raw, qc.ttl).Err(); err != nil {
			slog.Warn("query cache set error", "key", key, "error", err)
		}
	}
	return nil
}

// Forget removes a single cached entry.
func (qc *QueryCache) Forget(ctx context.Context, key string) {
	if !qc.Enabled() {
		return
	}
	if err := qc.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("query cache forget error", "key", key, "error", err)
	}
}

// InvalidatePrefix removes every cached entry under a key prefix by
// scanning. Mutations call this so stale lists never outlive a write.
func (qc *QueryCache) InvalidatePrefix(ctx context.Context, prefix string) {
	if !qc.Enabled() {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := qc.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("query cache scan error", "prefix", prefix, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := qc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("query cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("query cache invalidated", "prefix", prefix, "deleted", deleted)
	}
}
