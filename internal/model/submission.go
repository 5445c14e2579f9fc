package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Fixed leading fields of every submission record, in order
const (
	FieldTimestampUTC    = "timestamp_utc"
	FieldToken           = "token"
	FieldDurationSec     = "duration_sec"
	FieldParticipantName = "participant_name"
)

// ChoiceField returns the record field holding a question's choice
func ChoiceField(questionID string) string { return questionID + "_choice" }

// CommentField returns the record field holding a question's comment
func CommentField(questionID string) string { return questionID + "_comment" }

// Field is one named value of a submission record. Value is a string or an int64.
type Field struct {
	Name  string
	Value any
}

// SubmissionRecord is the flat, ordered payload written to every sink.
// It is built once per submission attempt and never mutated afterwards.
type SubmissionRecord struct {
	fields []Field
}

// NewSubmissionRecord copies fields into a new record
func NewSubmissionRecord(fields []Field) SubmissionRecord {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return SubmissionRecord{fields: cp}
}

// Len returns the number of fields
func (r SubmissionRecord) Len() int { return len(r.fields) }

// Fields returns a copy of the ordered fields
func (r SubmissionRecord) Fields() []Field {
	cp := make([]Field, len(r.fields))
	copy(cp, r.fields)
	return cp
}

// Names returns field names in compile order
func (r SubmissionRecord) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Values returns the string form of every value in compile order
func (r SubmissionRecord) Values() []string {
	values := make([]string, len(r.fields))
	for i, f := range r.fields {
		values[i] = formatValue(f.Value)
	}
	return values
}

// Get returns a field value by name
func (r SubmissionRecord) Get(name string) (any, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// GetString returns the string form of a field, "" when absent
func (r SubmissionRecord) GetString(name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	return formatValue(v)
}

// MarshalJSON encodes the record as a JSON object keeping field order
func (r SubmissionRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}

// Outcome is the combined result of the two sinks
type Outcome string

const (
	OutcomeBoth       Outcome = "both"        // Stored and transmitted
	OutcomeLocalOnly  Outcome = "local_only"  // Stored, not transmitted
	OutcomeRemoteOnly Outcome = "remote_only" // Transmitted, storing failed
	OutcomeNeither    Outcome = "neither"
)

// Acknowledged reports whether at least one sink accepted the record
func (o Outcome) Acknowledged() bool {
	return o != OutcomeNeither
}

// Combine reduces the two sink results to a single outcome
func Combine(localOK, remoteOK bool) Outcome {
	switch {
	case localOK && remoteOK:
		return OutcomeBoth
	case localOK:
		return OutcomeLocalOnly
	case remoteOK:
		return OutcomeRemoteOnly
	default:
		return OutcomeNeither
	}
}

// Message is the text shown to the respondent for an outcome.
// remoteMessage is appended when the webhook did not accept the record.
func (o Outcome) Message(remoteMessage string) string {
	switch o {
	case OutcomeBoth:
		return "Thank you! Your answers were stored and transmitted."
	case OutcomeLocalOnly:
		return "Thank you! Your answers were stored locally, not transmitted: " + remoteMessage
	case OutcomeRemoteOnly:
		return "Your answers were transmitted, but storing them locally failed."
	default:
		return "Your answers could not be stored or transmitted. Please try again later."
	}
}

// SubmitResult is returned to the respondent after a submit action
type SubmitResult struct {
	LocalOK       bool    `json:"localOk"`
	RemoteOK      bool    `json:"remoteOk"`
	LocalError    string  `json:"localError,omitempty"`
	RemoteMessage string  `json:"remoteMessage"`
	Outcome       Outcome `json:"outcome"`
	Message       string  `json:"message"`
	Reset         bool    `json:"reset"` // Session state was cleared for a new attempt
}
