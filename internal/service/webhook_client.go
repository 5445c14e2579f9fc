package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"stepsurvey/internal/metrics"
	"stepsurvey/internal/model"
	"stepsurvey/internal/secrets"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const maxWebhookBody = 200

// URLResolver looks up configuration values; secrets.Chain implements it
type URLResolver interface {
	Resolve(ctx context.Context, key string) (value, source string, ok bool)
}

// WebhookClient forwards submission records to the configured automation webhook
type WebhookClient struct {
	resolver   URLResolver
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewWebhookClient creates a webhook client with a hard per-request timeout
func NewWebhookClient(resolver URLResolver, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *WebhookClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookClient{
		resolver: resolver,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
		logger:  logger,
	}
}

// Send POSTs record as JSON exactly once. It never returns an error: the
// outcome is a success flag plus a message for the respondent.
func (c *WebhookClient) Send(ctx context.Context, record model.SubmissionRecord) (bool, string) {
	url, source, ok := c.resolver.Resolve(ctx, secrets.WebhookKey)
	if !ok || url == "" {
		c.logger.Info("webhook not configured, skipping transmission")
		return false, fmt.Sprintf("webhook not configured (set %q in the secrets file or %s)", secrets.WebhookKey, secrets.WebhookEnv)
	}

	body, err := json.Marshal(record)
	if err != nil {
		return false, fmt.Sprintf("webhook error: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Sprintf("webhook error: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordWebhook(time.Since(start))
	if err != nil {
		c.logger.Warn("webhook request failed", zap.String("source", source), zap.Error(err))
		return false, fmt.Sprintf("webhook error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		c.logger.Info("webhook accepted submission", zap.Int("status", resp.StatusCode))
		return true, "transmitted to webhook"
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4*maxWebhookBody))
	c.logger.Warn("webhook rejected submission", zap.Int("status", resp.StatusCode))
	return false, fmt.Sprintf("webhook status %d: %s", resp.StatusCode, truncate(string(respBody), maxWebhookBody))
}

// truncate shortens s to at most n bytes without splitting a UTF-8 sequence.
// Bytes are kept as received, including invalid ones.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
