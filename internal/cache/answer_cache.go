package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// AnswerCache memoizes generated answers per session. Generation is the
// slowest stage of a query, and repeated questions inside one session are
// common enough to be worth a short-lived cache.
type AnswerCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewAnswerCache(client *redisv9.Client, ttl time.Duration) *AnswerCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AnswerCache{client: client, ttl: ttl}
}

// Get returns the cached answer for the question, if any.
func (c *AnswerCache) Get(ctx context.Context, sessionID, question string) (string, bool, error) {
	raw, err := c.client.Get(ctx, c.key(sessionID, question)).Result()
	if err == redisv9.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get answer failed: %w", err)
	}
	return raw, true, nil
}

// Set stores the answer under the session/question key.
func (c *AnswerCache) Set(ctx context.Context, sessionID, question, answer string) error {
	if err := c.client.Set(ctx, c.key(sessionID, question), answer, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set answer failed: %w", err)
	}
	return nil
}

// Purge drops every cached answer belonging to the session.
func (c *AnswerCache) Purge(ctx context.Context, sessionID string) error {
	pattern := fmt.Sprintf("rag:answer:%s:*", sessionID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis purge answers failed: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan answers failed: %w", err)
	}
	return nil
}

func (c *AnswerCache) key(sessionID, question string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(question))))
	return fmt.Sprintf("rag:answer:%s:%s", sessionID, hex.EncodeToString(sum[:16]))
}
