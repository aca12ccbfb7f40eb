// Package cache provides a Redis-backed cache for classification results.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"triage_server/core/domain"
)

const resultKeyPrefix = "triage:result:"

// ResultCache caches classification results keyed by a content hash of
// the email. Classification is a pure function of its input and the
// loaded tables, so a cache hit is always byte-equivalent to a fresh
// run under the same configuration.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a result cache with the given TTL.
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Key derives the cache key from the full email content. Every field
// the pipeline reads participates: snippet and headers change the
// classification, so they must change the key. Header names are
// folded and sorted for a stable digest.
func (c *ResultCache) Key(email *domain.EmailMessage) string {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	write(email.Subject)
	write(email.Body)
	write(email.Snippet)
	write(email.From)
	write(email.StructuredMarkup)

	names := make([]string, 0, len(email.Headers))
	for name := range email.Headers {
		names = append(names, strings.ToLower(name))
	}
	sort.Strings(names)
	for _, name := range names {
		write(name)
		write(email.Header(name))
	}
	return resultKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for the email, or nil on miss. Cache
// errors degrade to a miss.
func (c *ResultCache) Get(ctx context.Context, email *domain.EmailMessage) *domain.ClassificationResult {
	data, err := c.client.Get(ctx, c.Key(email)).Result()
	if err != nil {
		return nil
	}
	var result domain.ClassificationResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil
	}
	return &result
}

// Set stores the result. Errors are returned for logging but a failed
// write never affects the classification response.
func (c *ResultCache) Set(ctx context.Context, email *domain.EmailMessage, result *domain.ClassificationResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.Key(email), data, c.ttl).Err()
}

// Delete evicts one entry.
func (c *ResultCache) Delete(ctx context.Context, email *domain.EmailMessage) error {
	return c.client.Del(ctx, c.Key(email)).Err()
}
