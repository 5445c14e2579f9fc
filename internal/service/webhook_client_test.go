package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"stepsurvey/internal/metrics"
	"stepsurvey/internal/model"
	"stepsurvey/internal/secrets"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webhookRecord() model.SubmissionRecord {
	return model.NewSubmissionRecord([]model.Field{
		{Name: model.FieldTimestampUTC, Value: "2025-10-17T07:30:05.000000+00:00"},
		{Name: model.FieldToken, Value: "abc"},
		{Name: model.FieldDurationSec, Value: int64(42)},
		{Name: model.FieldParticipantName, Value: ""},
		{Name: "q1_choice", Value: "A"},
		{Name: "q1_comment", Value: ""},
	})
}

func staticResolver(url string) URLResolver {
	return secrets.NewChain(nil, secrets.MapSource{secrets.WebhookKey: url})
}

func TestWebhookClientPostsRecord(t *testing.T) {
	var gotBody []byte
	var gotContentType, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewWebhookClient(staticResolver(srv.URL), time.Second, metrics.NewMetrics(prometheus.NewRegistry()), nil)
	ok, msg := client.Send(context.Background(), webhookRecord())

	assert.True(t, ok)
	assert.Equal(t, "transmitted to webhook", msg)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "abc", payload["token"])
	assert.Equal(t, float64(42), payload["duration_sec"])
	assert.Len(t, payload, 6)
}

func TestWebhookClientNonSuccessStatus(t *testing.T) {
	long := strings.Repeat("x", 500)
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(long))
	}))
	defer srv.Close()

	client := NewWebhookClient(staticResolver(srv.URL), time.Second, nil, nil)
	ok, msg := client.Send(context.Background(), webhookRecord())

	assert.False(t, ok)
	assert.Equal(t, "webhook status 500: "+strings.Repeat("x", 200), msg)
	assert.Equal(t, 1, calls, "no retry")
}

func TestWebhookClientNotConfigured(t *testing.T) {
	client := NewWebhookClient(secrets.NewChain(nil), time.Second, nil, nil)
	ok, msg := client.Send(context.Background(), webhookRecord())

	assert.False(t, ok)
	assert.Contains(t, msg, secrets.WebhookKey)
	assert.Contains(t, msg, secrets.WebhookEnv)
}

func TestWebhookClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewWebhookClient(staticResolver(srv.URL), 50*time.Millisecond, nil, nil)
	ok, msg := client.Send(context.Background(), webhookRecord())

	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(msg, "webhook error: "), msg)
}

func TestWebhookClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewWebhookClient(staticResolver(url), time.Second, nil, nil)
	ok, msg := client.Send(context.Background(), webhookRecord())

	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(msg, "webhook error: "), msg)
}

func TestTruncateKeepsBytes(t *testing.T) {
	assert.Equal(t, "ab", truncate("ab", 3))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	// never splits a multi-byte sequence
	assert.Equal(t, "ä", truncate("äöü", 3))
	// invalid UTF-8 is passed through unchanged, not replaced with U+FFFD
	assert.Equal(t, "a\xffb", truncate("a\xffbc", 3))
}
