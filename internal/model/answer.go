package model

// Answer is the respondent's current input for one question
type Answer struct {
	Choice  string `json:"choice"`  // One of the question's options, "" when unanswered
	Comment string `json:"comment"` // Free text, may be empty
}

// IsEmpty reports whether neither a choice nor a comment was given
func (a Answer) IsEmpty() bool {
	return a.Choice == "" && a.Comment == ""
}

// AnswerRequest is the request body for saving an answer
type AnswerRequest struct {
	Choice  string `json:"choice"`
	Comment string `json:"comment"`
}
