package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are JWT claims binding a client to its survey session
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// Branding is the static page configuration shown around the wizard
type Branding struct {
	LogoURL    string `json:"logoUrl,omitempty"`
	SenderName string `json:"senderName"`
	Footer     string `json:"footer"`
	BuildID    string `json:"buildId"`
	Questions  int    `json:"questions"`
}
