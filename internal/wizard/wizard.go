// Package wizard implements the one-question-per-step survey state machine.
// Every operation takes the session explicitly; the wizard itself only holds
// the immutable catalog and a clock.
package wizard

import (
	"stepsurvey/internal/catalog"
	"stepsurvey/internal/model"
	"strings"
)

// Wizard drives sessions over one catalog
type Wizard struct {
	catalog *catalog.Catalog
	clock   Clock
}

// New creates a wizard. A nil clock uses the system clock.
func New(c *catalog.Catalog, clock Clock) *Wizard {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Wizard{catalog: c, clock: clock}
}

// Catalog returns the catalog the wizard walks
func (w *Wizard) Catalog() *catalog.Catalog {
	return w.catalog
}

// NewSession starts a fresh attempt. token comes from the invitation link and
// stays fixed for the session's lifetime.
func (w *Wizard) NewSession(id, token string) *model.Session {
	now := w.clock.Now()
	return &model.Session{
		ID:          id,
		CursorIndex: 0,
		Answers:     make(map[string]model.Answer),
		StartedAt:   now,
		Token:       token,
		UpdatedAt:   now,
	}
}

// Cursor returns the navigation cursor for s
func (w *Wizard) Cursor(s *model.Session) *Cursor {
	return NewCursor(w.catalog, s)
}

// Answers returns the answer store for s
func (w *Wizard) Answers(s *model.Session) *AnswerStore {
	return NewAnswerStore(w.catalog, s)
}

// SetParticipantName records the optional respondent name
func (w *Wizard) SetParticipantName(s *model.Session, name string) {
	s.ParticipantName = strings.TrimSpace(name)
	s.UpdatedAt = w.clock.Now()
}

// Answer stores the respondent's input for a question
func (w *Wizard) Answer(s *model.Session, questionID, choice, comment string) error {
	if err := w.Answers(s).Upsert(questionID, choice, comment); err != nil {
		return err
	}
	s.UpdatedAt = w.clock.Now()
	return nil
}

// Next advances the cursor; false means it was already on the last question
func (w *Wizard) Next(s *model.Session) bool {
	moved := w.Cursor(s).Advance()
	if moved {
		s.UpdatedAt = w.clock.Now()
	}
	return moved
}

// Back retreats the cursor; false means it was already on the first question
func (w *Wizard) Back(s *model.Session) bool {
	moved := w.Cursor(s).Retreat()
	if moved {
		s.UpdatedAt = w.clock.Now()
	}
	return moved
}

// Reset returns s to its initial state for a new attempt: cursor on the first
// question, no answers, clock restarted. Name and token are kept.
func (w *Wizard) Reset(s *model.Session) {
	now := w.clock.Now()
	s.CursorIndex = 0
	w.Answers(s).ClearAll()
	s.StartedAt = now
	s.UpdatedAt = now
}

// Step describes the active question. ok is false for an empty catalog.
func (w *Wizard) Step(s *model.Session) (*model.StepView, bool) {
	cur := w.Cursor(s)
	q, ok := cur.Current()
	if !ok {
		return nil, false
	}
	section, _ := w.catalog.SectionFor(q.ID)
	return &model.StepView{
		Index:    cur.Index(),
		Total:    w.catalog.Len(),
		Progress: cur.ProgressFraction(),
		Section:  section,
		Question: q,
		Answer:   w.Answers(s).Get(q.ID),
		IsFirst:  cur.IsFirst(),
		IsLast:   cur.IsLast(),
		Token:    s.Token,
	}, true
}

// Summary lists every catalog entry with the answers given so far
func (w *Wizard) Summary(s *model.Session) *model.Summary {
	answers := w.Answers(s)
	items := w.catalog.Items()

	entries := make([]model.SummaryEntry, 0, len(items))
	for _, it := range items {
		if it.IsSection() {
			entries = append(entries, model.SummaryEntry{Kind: model.ItemSection, Title: it.Title})
			continue
		}
		a := answers.Get(it.Question.ID)
		entries = append(entries, model.SummaryEntry{
			Kind:     model.ItemQuestion,
			ID:       it.Question.ID,
			Prompt:   it.Question.Prompt,
			Choice:   a.Choice,
			Comment:  a.Comment,
			Answered: !a.IsEmpty(),
		})
	}

	return &model.Summary{
		ParticipantName: s.ParticipantName,
		Token:           s.Token,
		Entries:         entries,
		ConsentText:     ConsentText,
	}
}

// ConsentText is shown above the consent checkbox on the summary screen
const ConsentText = "We store only your answers, a timestamp, the invitation token (if the link carried one), " +
	"the time you took and, if given, your name. No IP addresses or device identifiers are stored. " +
	"By submitting you consent to the processing of your answers for the evaluation of this project."
