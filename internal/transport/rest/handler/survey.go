package handler

import (
	"encoding/json"
	"net/http"
	"stepsurvey/internal/model"
	"stepsurvey/internal/service"
	"stepsurvey/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SurveyHandler handles the wizard endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
	logger    *zap.Logger
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService, logger *zap.Logger) *SurveyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SurveyHandler{
		surveySvc: surveySvc,
		logger:    logger,
	}
}

// Info handles GET /v1/info
func (h *SurveyHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.surveySvc.Info())
}

// Start handles POST /v1/sessions?t=TOKEN
func (h *SurveyHandler) Start(w http.ResponseWriter, r *http.Request) {
	resp, err := h.surveySvc.Start(r.Context(), r.URL.Query().Get("t"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /v1/session
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	step, err := h.surveySvc.Step(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

// SetParticipant handles PUT /v1/session/participant
func (h *SurveyHandler) SetParticipant(w http.ResponseWriter, r *http.Request) {
	var req model.ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	step, err := h.surveySvc.SetParticipant(r.Context(), middleware.GetSessionID(r.Context()), req.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

// Answer handles PUT /v1/session/answers/{questionId}
func (h *SurveyHandler) Answer(w http.ResponseWriter, r *http.Request) {
	questionID := mux.Vars(r)["questionId"]

	var req model.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	step, err := h.surveySvc.Answer(r.Context(), middleware.GetSessionID(r.Context()), questionID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

// Next handles POST /v1/session/next
func (h *SurveyHandler) Next(w http.ResponseWriter, r *http.Request) {
	resp, err := h.surveySvc.Next(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Back handles POST /v1/session/back
func (h *SurveyHandler) Back(w http.ResponseWriter, r *http.Request) {
	resp, err := h.surveySvc.Back(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Summary handles GET /v1/session/summary
func (h *SurveyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.surveySvc.Summary(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Submit handles POST /v1/session/submit
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.surveySvc.Submit(r.Context(), middleware.GetSessionID(r.Context()), req.Consent)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Reset handles DELETE /v1/session
func (h *SurveyHandler) Reset(w http.ResponseWriter, r *http.Request) {
	step, err := h.surveySvc.Reset(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

func (h *SurveyHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Debug("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeServiceError(w, err)
}
