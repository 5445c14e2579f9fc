package service

import (
	"context"
	"stepsurvey/internal/metrics"
	"stepsurvey/internal/model"
	"stepsurvey/internal/repository"

	"go.uber.org/zap"
)

// RemoteSink receives a copy of every submission; WebhookClient implements it
type RemoteSink interface {
	Send(ctx context.Context, record model.SubmissionRecord) (bool, string)
}

// Submitter writes a record to the local store and the remote sink. Both are
// always attempted; neither failure prevents the other.
type Submitter struct {
	store   repository.SubmissionStore
	remote  RemoteSink
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSubmitter creates a dual-sink submitter
func NewSubmitter(store repository.SubmissionStore, remote RemoteSink, m *metrics.Metrics, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{store: store, remote: remote, metrics: m, logger: logger}
}

// Submit delivers record to both sinks and reports each result
func (s *Submitter) Submit(ctx context.Context, record model.SubmissionRecord) model.SubmitResult {
	var result model.SubmitResult

	if err := s.store.Append(ctx, record); err != nil {
		s.logger.Error("local store append failed", zap.String("store", s.store.Name()), zap.Error(err))
		result.LocalError = err.Error()
	} else {
		result.LocalOK = true
	}

	result.RemoteOK, result.RemoteMessage = s.remote.Send(ctx, record)

	result.Outcome = model.Combine(result.LocalOK, result.RemoteOK)
	result.Message = result.Outcome.Message(result.RemoteMessage)
	s.metrics.RecordSubmission(result)
	return result
}
