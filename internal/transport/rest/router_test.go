package rest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"stepsurvey/internal/cache"
	"stepsurvey/internal/catalog"
	"stepsurvey/internal/config"
	"stepsurvey/internal/metrics"
	"stepsurvey/internal/model"
	"stepsurvey/internal/repository"
	"stepsurvey/internal/secrets"
	"stepsurvey/internal/service"
	"stepsurvey/internal/wizard"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler http.Handler
	csvPath string
}

func newTestServer(t *testing.T, webhookURL string) *testServer {
	t.Helper()
	c, err := catalog.New([]model.Item{
		model.Section("Intro"),
		model.Ask(model.Question{ID: "q1", Prompt: "Pick", Options: []string{"A", "B"}}),
		model.Ask(model.Question{ID: "q2", Prompt: "Pick again", Options: []string{"X", "Y"}}),
	})
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)
	csvPath := filepath.Join(t.TempDir(), "responses.csv")
	resolver := secrets.NewChain(nil, secrets.MapSource{secrets.WebhookKey: webhookURL})

	auth := service.NewAuthService("secret", time.Hour)
	submitter := service.NewSubmitter(
		repository.NewCSVStore(csvPath),
		service.NewWebhookClient(resolver, config.WebhookTimeout, m, nil),
		m, nil,
	)
	svc := service.NewSurveyService(
		wizard.New(c, nil),
		cache.NewMemorySessionCache(time.Hour),
		submitter,
		auth,
		model.Branding{SenderName: "Sender", BuildID: config.BuildID},
		m, nil,
	)

	return &testServer{
		handler: NewRouter(&Container{
			AuthService:   auth,
			SurveyService: svc,
			Gatherer:      registry,
		}),
		csvPath: csvPath,
	}
}

func (s *testServer) do(t *testing.T, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if session != "" {
		req.Header.Set("Authorization", "Bearer "+session)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) start(t *testing.T, token string) model.StartSessionResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/v1/sessions?t="+token, "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[model.StartSessionResponse](t, rec)
}

func TestHealthInfoAndMetrics(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/info", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[model.Branding](t, rec)
	assert.Equal(t, 2, info.Questions)
	assert.Equal(t, config.BuildID, info.BuildID)

	s.start(t, "")
	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "survey_sessions_started_total 1")
}

func TestSessionRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, http.MethodGet, "/v1/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/session", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, http.MethodOptions, "/v1/session/next", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAnswerRejectsInvalidChoice(t *testing.T) {
	s := newTestServer(t, "")
	sess := s.start(t, "")

	rec := s.do(t, http.MethodPut, "/v1/session/answers/q1", sess.SessionToken, model.AnswerRequest{Choice: "Z"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/v1/session/answers/missing", sess.SessionToken, model.AnswerRequest{Choice: "A"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNavigationBoundaries(t *testing.T) {
	s := newTestServer(t, "")
	sess := s.start(t, "")

	rec := s.do(t, http.MethodPost, "/v1/session/back", sess.SessionToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	nav := decode[model.NavigationResponse](t, rec)
	assert.False(t, nav.Moved)
	assert.Equal(t, 0, nav.Step.Index)

	s.do(t, http.MethodPost, "/v1/session/next", sess.SessionToken, nil)
	rec = s.do(t, http.MethodPost, "/v1/session/next", sess.SessionToken, nil)
	nav = decode[model.NavigationResponse](t, rec)
	assert.False(t, nav.Moved)
	assert.True(t, nav.Step.IsLast)
}

func TestSubmitGates(t *testing.T) {
	s := newTestServer(t, "")
	sess := s.start(t, "")

	rec := s.do(t, http.MethodPost, "/v1/session/submit", sess.SessionToken, model.SubmitRequest{Consent: true})
	assert.Equal(t, http.StatusConflict, rec.Code)

	s.do(t, http.MethodPost, "/v1/session/next", sess.SessionToken, nil)
	rec = s.do(t, http.MethodPost, "/v1/session/submit", sess.SessionToken, model.SubmitRequest{Consent: false})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, err := os.Stat(s.csvPath)
	assert.True(t, os.IsNotExist(err), "nothing written without consent")
}

func TestSubmitEndToEnd(t *testing.T) {
	var received map[string]any
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer webhook.Close()

	s := newTestServer(t, webhook.URL)
	sess := s.start(t, "abc")
	token := sess.SessionToken

	rec := s.do(t, http.MethodPut, "/v1/session/participant", token, model.ParticipantRequest{Name: "Ada"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPut, "/v1/session/answers/q1", token, model.AnswerRequest{Choice: "A", Comment: "fine"})
	require.Equal(t, http.StatusOK, rec.Code)
	s.do(t, http.MethodPost, "/v1/session/next", token, nil)
	s.do(t, http.MethodPost, "/v1/session/back", token, nil)

	rec = s.do(t, http.MethodGet, "/v1/session", token, nil)
	step := decode[model.StepView](t, rec)
	assert.Equal(t, model.Answer{Choice: "A", Comment: "fine"}, step.Answer, "answer survives navigation")

	s.do(t, http.MethodPost, "/v1/session/next", token, nil)

	rec = s.do(t, http.MethodGet, "/v1/session/summary", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[model.Summary](t, rec)
	assert.Len(t, summary.Entries, 3)
	assert.NotEmpty(t, summary.ConsentText)

	rec = s.do(t, http.MethodPost, "/v1/session/submit", token, model.SubmitRequest{Consent: true})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[model.SubmitResult](t, rec)
	assert.Equal(t, model.OutcomeBoth, result.Outcome)
	assert.True(t, result.Reset)

	assert.Equal(t, "abc", received["token"])
	assert.Equal(t, "Ada", received["participant_name"])
	assert.Equal(t, "A", received["q1_choice"])
	assert.Equal(t, "", received["q2_choice"])

	f, err := os.Open(s.csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "timestamp_utc,token,duration_sec,participant_name,q1_choice,q1_comment,q2_choice,q2_comment", strings.Join(rows[0], ","))
	assert.Equal(t, "fine", rows[1][5])

	rec = s.do(t, http.MethodGet, "/v1/session", token, nil)
	step = decode[model.StepView](t, rec)
	assert.Equal(t, 0, step.Index)
	assert.Equal(t, model.Answer{}, step.Answer)
}

func TestSubmitWithoutWebhookIsLocalOnly(t *testing.T) {
	s := newTestServer(t, "")
	sess := s.start(t, "")
	s.do(t, http.MethodPost, "/v1/session/next", sess.SessionToken, nil)

	rec := s.do(t, http.MethodPost, "/v1/session/submit", sess.SessionToken, model.SubmitRequest{Consent: true})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[model.SubmitResult](t, rec)
	assert.Equal(t, model.OutcomeLocalOnly, result.Outcome)
	assert.Contains(t, result.RemoteMessage, secrets.WebhookEnv)
}

func TestResetRoute(t *testing.T) {
	s := newTestServer(t, "")
	sess := s.start(t, "")
	s.do(t, http.MethodPut, "/v1/session/answers/q1", sess.SessionToken, model.AnswerRequest{Choice: "B"})
	s.do(t, http.MethodPost, "/v1/session/next", sess.SessionToken, nil)

	rec := s.do(t, http.MethodDelete, "/v1/session", sess.SessionToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	step := decode[model.StepView](t, rec)
	assert.Equal(t, 0, step.Index)
	assert.Equal(t, model.Answer{}, step.Answer)
}
