package service

import (
	"context"
	"errors"
	"fmt"
	"stepsurvey/internal/cache"
	"stepsurvey/internal/metrics"
	"stepsurvey/internal/model"
	"stepsurvey/internal/wizard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidChoice     = errors.New("choice is not one of the question's options")
	ErrConsentRequired   = errors.New("consent is required before submitting")
	ErrNotOnLastQuestion = errors.New("submission is only possible on the last question")
	ErrUnknownQuestion   = wizard.ErrUnknownQuestion
)

// SurveyService runs the wizard for stored sessions: every call loads the
// session, applies one wizard operation and saves it back.
type SurveyService struct {
	wizard    *wizard.Wizard
	sessions  cache.SessionCache
	submitter *Submitter
	authSvc   *AuthService
	branding  model.Branding
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewSurveyService creates a new survey service
func NewSurveyService(
	w *wizard.Wizard,
	sessions cache.SessionCache,
	submitter *Submitter,
	authSvc *AuthService,
	branding model.Branding,
	m *metrics.Metrics,
	logger *zap.Logger,
) *SurveyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	branding.Questions = w.Catalog().Len()
	return &SurveyService{
		wizard:    w,
		sessions:  sessions,
		submitter: submitter,
		authSvc:   authSvc,
		branding:  branding,
		metrics:   m,
		logger:    logger,
	}
}

// Info returns the static page configuration
func (s *SurveyService) Info() model.Branding {
	return s.branding
}

// Start opens a new session. token is the passthrough value from the invitation link.
func (s *SurveyService) Start(ctx context.Context, token string) (*model.StartSessionResponse, error) {
	session := s.wizard.NewSession(uuid.New().String(), token)
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	handle, err := s.authSvc.GenerateSessionToken(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	s.metrics.RecordSessionStart()
	s.logger.Info("session started", zap.String("session", session.ID), zap.Bool("token", token != ""))

	step, _ := s.wizard.Step(session)
	return &model.StartSessionResponse{
		SessionID:    session.ID,
		SessionToken: handle,
		Step:         step,
	}, nil
}

// Step returns the active step of a session
func (s *SurveyService) Step(ctx context.Context, sessionID string) (*model.StepView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	step, _ := s.wizard.Step(session)
	return step, nil
}

// SetParticipant stores the optional participant name
func (s *SurveyService) SetParticipant(ctx context.Context, sessionID, name string) (*model.StepView, error) {
	return s.update(ctx, sessionID, func(session *model.Session) error {
		s.wizard.SetParticipantName(session, name)
		return nil
	})
}

// Answer stores the choice and comment for a question
func (s *SurveyService) Answer(ctx context.Context, sessionID, questionID string, req model.AnswerRequest) (*model.StepView, error) {
	q, ok := s.wizard.Catalog().Question(questionID)
	if !ok {
		return nil, ErrUnknownQuestion
	}
	if !wizard.ValidChoice(q, req.Choice) {
		return nil, ErrInvalidChoice
	}

	return s.update(ctx, sessionID, func(session *model.Session) error {
		return s.wizard.Answer(session, questionID, req.Choice, req.Comment)
	})
}

// Next moves to the following question
func (s *SurveyService) Next(ctx context.Context, sessionID string) (*model.NavigationResponse, error) {
	return s.navigate(ctx, sessionID, "next", s.wizard.Next)
}

// Back moves to the previous question
func (s *SurveyService) Back(ctx context.Context, sessionID string) (*model.NavigationResponse, error) {
	return s.navigate(ctx, sessionID, "back", s.wizard.Back)
}

// Summary returns the review of all answers given so far
func (s *SurveyService) Summary(ctx context.Context, sessionID string) (*model.Summary, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.wizard.Summary(session), nil
}

// Reset discards the answers of a session and starts it over
func (s *SurveyService) Reset(ctx context.Context, sessionID string) (*model.StepView, error) {
	return s.update(ctx, sessionID, func(session *model.Session) error {
		s.wizard.Reset(session)
		return nil
	})
}

// Submit compiles the session into a record and delivers it to both sinks.
// The session is reset when at least one sink accepted the record and kept
// as is otherwise, so the respondent can retry.
func (s *SurveyService) Submit(ctx context.Context, sessionID string, consent bool) (*model.SubmitResult, error) {
	if !consent {
		return nil, ErrConsentRequired
	}

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.wizard.Cursor(session).IsLast() {
		return nil, ErrNotOnLastQuestion
	}

	record := s.wizard.Compile(session)
	// Sinks run to completion even if the client goes away; the webhook
	// client timeout is the only bound.
	ctx = context.WithoutCancel(ctx)
	result := s.submitter.Submit(ctx, record)

	s.logger.Info("submission processed",
		zap.String("session", session.ID),
		zap.String("outcome", string(result.Outcome)),
		zap.Bool("local_ok", result.LocalOK),
		zap.Bool("remote_ok", result.RemoteOK),
	)

	if result.Outcome.Acknowledged() {
		s.wizard.Reset(session)
		result.Reset = true
		if err := s.sessions.Set(ctx, session); err != nil {
			// record is already delivered
			s.logger.Error("failed to save reset session", zap.String("session", session.ID), zap.Error(err))
		}
	}

	return &result, nil
}

func (s *SurveyService) navigate(ctx context.Context, sessionID, direction string, move func(*model.Session) bool) (*model.NavigationResponse, error) {
	var moved bool
	step, err := s.update(ctx, sessionID, func(session *model.Session) error {
		moved = move(session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordNavigation(direction, moved)
	return &model.NavigationResponse{Moved: moved, Step: step}, nil
}

func (s *SurveyService) update(ctx context.Context, sessionID string, apply func(*model.Session) error) (*model.StepView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := apply(session); err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	step, _ := s.wizard.Step(session)
	return step, nil
}

func (s *SurveyService) load(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Answers == nil {
		session.Answers = make(map[string]model.Answer)
	}
	return session, nil
}
