package cache

import (
	"context"
	"stepsurvey/internal/model"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionCache(t *testing.T) (SessionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionCache(client, time.Hour), mr
}

func testSession() *model.Session {
	started := time.Date(2025, 10, 17, 7, 0, 0, 0, time.UTC)
	return &model.Session{
		ID:              "sess-1",
		CursorIndex:     2,
		Answers:         map[string]model.Answer{"q1": {Choice: "A", Comment: "c"}},
		StartedAt:       started,
		ParticipantName: "Ada",
		Token:           "tok",
		UpdatedAt:       started,
	}
}

func TestRedisSessionCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestSessionCache(t)

	require.NoError(t, c.Set(ctx, testSession()))
	assert.True(t, mr.Exists("survey:session:sess-1"))

	got, err := c.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.CursorIndex)
	assert.Equal(t, model.Answer{Choice: "A", Comment: "c"}, got.Answers["q1"])
	assert.True(t, got.StartedAt.Equal(testSession().StartedAt))
	assert.Equal(t, "tok", got.Token)
}

func TestRedisSessionCacheMissing(t *testing.T) {
	c, _ := newTestSessionCache(t)

	got, err := c.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessionCacheTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestSessionCache(t)

	require.NoError(t, c.Set(ctx, testSession()))
	assert.Equal(t, time.Hour, mr.TTL("survey:session:sess-1"))

	mr.FastForward(2 * time.Hour)
	got, err := c.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessionCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestSessionCache(t)

	require.NoError(t, c.Set(ctx, testSession()))
	require.NoError(t, c.Delete(ctx, "sess-1"))

	got, err := c.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySessionCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySessionCache(time.Hour).(*memorySessionCache)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	s := testSession()
	require.NoError(t, c.Set(ctx, s))

	// mutating the caller's copy must not leak into the cache
	s.Answers["q1"] = model.Answer{Choice: "B"}

	got, err := c.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A", got.Answers["q1"].Choice)

	now = now.Add(2 * time.Hour)
	got, err = c.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got, "expired sessions are dropped")

	require.NoError(t, c.Set(ctx, testSession()))
	require.NoError(t, c.Delete(ctx, "sess-1"))
	got, _ = c.Get(ctx, "sess-1")
	assert.Nil(t, got)
}

func TestMemorySessionCacheSweepsAbandonedSessions(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySessionCache(time.Hour).(*memorySessionCache)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for _, id := range []string{"a", "b", "c"} {
		s := testSession()
		s.ID = id
		require.NoError(t, c.Set(ctx, s))
	}

	now = now.Add(2 * time.Hour)
	fresh := testSession()
	fresh.ID = "fresh"
	require.NoError(t, c.Set(ctx, fresh))

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Len(t, c.sessions, 1, "expired sessions are removed without being read")
	assert.Contains(t, c.sessions, "fresh")
}
