package model

import "time"

// Session is one respondent's survey attempt
type Session struct {
	ID              string            `json:"id"`
	CursorIndex     int               `json:"cursorIndex"` // Clamped on every read
	Answers         map[string]Answer `json:"answers"`     // questionId -> answer
	StartedAt       time.Time         `json:"startedAt"`
	ParticipantName string            `json:"participantName"`
	Token           string            `json:"token,omitempty"` // Passthrough from the invitation link, immutable
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// StepView is everything a client needs to render the active step
type StepView struct {
	Index    int      `json:"index"` // 0-based
	Total    int      `json:"total"`
	Progress float64  `json:"progress"`
	Section  string   `json:"section,omitempty"`
	Question Question `json:"question"`
	Answer   Answer   `json:"answer"`
	IsFirst  bool     `json:"isFirst"`
	IsLast   bool     `json:"isLast"`
	Token    string   `json:"token,omitempty"`
}

// SummaryEntry is one line of the final review screen
type SummaryEntry struct {
	Kind     ItemKind `json:"kind"`
	Title    string   `json:"title,omitempty"`
	ID       string   `json:"id,omitempty"`
	Prompt   string   `json:"prompt,omitempty"`
	Choice   string   `json:"choice,omitempty"`
	Comment  string   `json:"comment,omitempty"`
	Answered bool     `json:"answered"`
}

// Summary is the review screen shown before consent and submission
type Summary struct {
	ParticipantName string         `json:"participantName,omitempty"`
	Token           string         `json:"token,omitempty"`
	Entries         []SummaryEntry `json:"entries"`
	ConsentText     string         `json:"consentText"`
}

// NavigationResponse is returned by next/back
type NavigationResponse struct {
	Moved bool      `json:"moved"`
	Step  *StepView `json:"step"`
}

// StartSessionResponse is returned when a respondent opens the survey
type StartSessionResponse struct {
	SessionID    string    `json:"sessionId"`
	SessionToken string    `json:"sessionToken"`
	Step         *StepView `json:"step"`
}

// ParticipantRequest is the request body for setting the participant name
type ParticipantRequest struct {
	Name string `json:"name"`
}

// SubmitRequest is the request body for the final submission
type SubmitRequest struct {
	Consent bool `json:"consent"`
}
