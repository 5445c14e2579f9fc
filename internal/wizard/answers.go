package wizard

import (
	"errors"
	"fmt"
	"stepsurvey/internal/catalog"
	"stepsurvey/internal/model"
)

var ErrUnknownQuestion = errors.New("unknown question")

// AnswerStore keeps a session's answers keyed by question id
type AnswerStore struct {
	catalog *catalog.Catalog
	session *model.Session
}

// NewAnswerStore binds an answer store to a session
func NewAnswerStore(c *catalog.Catalog, s *model.Session) *AnswerStore {
	return &AnswerStore{catalog: c, session: s}
}

// Upsert overwrites the answer for questionID. Choice membership is not
// checked here; see ValidChoice.
func (a *AnswerStore) Upsert(questionID, choice, comment string) error {
	if _, ok := a.catalog.Question(questionID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if a.session.Answers == nil {
		a.session.Answers = make(map[string]model.Answer)
	}
	a.session.Answers[questionID] = model.Answer{Choice: choice, Comment: comment}
	return nil
}

// Get returns the stored answer, or an empty answer when none exists
func (a *AnswerStore) Get(questionID string) model.Answer {
	return a.session.Answers[questionID]
}

// ClearAll drops every answer
func (a *AnswerStore) ClearAll() {
	a.session.Answers = make(map[string]model.Answer)
}

// ValidChoice is the UI-level membership check: the empty choice is always
// allowed, anything else must be one of the question's options.
func ValidChoice(q model.Question, choice string) bool {
	if choice == "" {
		return true
	}
	return q.HasOption(choice)
}
