package cache

import (
	"context"
	"encoding/json"
	"stepsurvey/internal/model"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCache persists wizard sessions between requests.
// Get returns (nil, nil) for an unknown or expired session.
type SessionCache interface {
	Set(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a Redis-backed session cache
func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(id string) string {
	return "survey:session:" + id
}

func (c *sessionCache) Set(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ID), data, c.ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

// memorySessionCache keeps sessions in process memory. Used when no Redis is
// configured; sessions do not survive a restart.
type memorySessionCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	sessions  map[string]memoryEntry
	lastSweep time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemorySessionCache creates an in-process session cache
func NewMemorySessionCache(ttl time.Duration) SessionCache {
	return &memorySessionCache{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (c *memorySessionCache) Set(_ context.Context, session *model.Session) error {
	// Stored serialised so callers never share a live *Session.
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.sweep(now)
	entry := memoryEntry{data: data}
	if c.ttl > 0 {
		entry.expiresAt = now.Add(c.ttl)
	}
	c.sessions[session.ID] = entry
	return nil
}

// sweep drops expired sessions, at most once per TTL. Caller holds mu.
func (c *memorySessionCache) sweep(now time.Time) {
	if c.ttl <= 0 || now.Sub(c.lastSweep) < c.ttl {
		return
	}
	c.lastSweep = now
	for id, e := range c.sessions {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.sessions, id)
		}
	}
}

func (c *memorySessionCache) Get(_ context.Context, id string) (*model.Session, error) {
	c.mu.Lock()
	entry, ok := c.sessions[id]
	if ok && !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		delete(c.sessions, id)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return nil, nil
	}

	var session model.Session
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *memorySessionCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
	return nil
}
