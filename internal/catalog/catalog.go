// Package catalog holds the ordered, immutable list of sections and questions
// a respondent walks through.
package catalog

import (
	"errors"
	"fmt"
	"stepsurvey/internal/model"
	"strings"
)

// DefaultPlaceholder is shown in the comment box when a question sets none
const DefaultPlaceholder = "(optional)"

var (
	ErrEmptyID         = errors.New("catalog: question without id")
	ErrDuplicateID     = errors.New("catalog: duplicate question id")
	ErrEmptySection    = errors.New("catalog: section without title")
	ErrDuplicateOption = errors.New("catalog: duplicate option")
	ErrUnknownKind     = errors.New("catalog: unknown item kind")
	ErrNoQuestions     = errors.New("catalog: no questions")
)

// Catalog is safe for concurrent reads; it is never mutated after New.
type Catalog struct {
	items      []model.Item
	questions  []model.Question
	index      map[string]int    // questionId -> position in questions
	sectionFor map[string]string // questionId -> nearest preceding section title
}

// New validates items and builds a catalog
func New(items []model.Item) (*Catalog, error) {
	c := &Catalog{
		items:      make([]model.Item, 0, len(items)),
		index:      make(map[string]int),
		sectionFor: make(map[string]string),
	}

	section := ""
	for i, it := range items {
		switch it.Kind {
		case model.ItemSection:
			if strings.TrimSpace(it.Title) == "" {
				return nil, fmt.Errorf("%w (item %d)", ErrEmptySection, i)
			}
			section = it.Title
			c.items = append(c.items, model.Section(it.Title))

		case model.ItemQuestion:
			if it.Question == nil || strings.TrimSpace(it.Question.ID) == "" {
				return nil, fmt.Errorf("%w (item %d)", ErrEmptyID, i)
			}
			q := *it.Question
			if _, dup := c.index[q.ID]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateID, q.ID)
			}
			seen := make(map[string]bool, len(q.Options))
			for _, o := range q.Options {
				if seen[o] {
					return nil, fmt.Errorf("%w %q in question %s", ErrDuplicateOption, o, q.ID)
				}
				seen[o] = true
			}
			q.Options = append([]string(nil), q.Options...)
			if q.CommentPlaceholder == "" {
				q.CommentPlaceholder = DefaultPlaceholder
			}

			c.index[q.ID] = len(c.questions)
			c.questions = append(c.questions, q)
			if section != "" {
				c.sectionFor[q.ID] = section
			}
			c.items = append(c.items, model.Ask(q))

		default:
			return nil, fmt.Errorf("%w %q (item %d)", ErrUnknownKind, it.Kind, i)
		}
	}

	return c, nil
}

// MustNew is New for static catalogs known to be valid
func MustNew(items []model.Item) *Catalog {
	c, err := New(items)
	if err != nil {
		panic(err)
	}
	return c
}

// Items returns all entries in catalog order
func (c *Catalog) Items() []model.Item {
	out := make([]model.Item, len(c.items))
	for i, it := range c.items {
		if it.IsSection() {
			out[i] = it
			continue
		}
		q := *it.Question
		q.Options = append([]string(nil), q.Options...)
		out[i] = model.Ask(q)
	}
	return out
}

// AnswerableItems returns only the questions, in their original relative order
func (c *Catalog) AnswerableItems() []model.Question {
	out := make([]model.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Len returns the number of answerable questions
func (c *Catalog) Len() int {
	return len(c.questions)
}

// At returns the question at position i of AnswerableItems
func (c *Catalog) At(i int) (model.Question, bool) {
	if i < 0 || i >= len(c.questions) {
		return model.Question{}, false
	}
	return c.questions[i], true
}

// Question looks up a question by id
func (c *Catalog) Question(id string) (model.Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.Question{}, false
	}
	return c.questions[i], true
}

// SectionFor returns the title of the nearest section preceding the question
func (c *Catalog) SectionFor(questionID string) (string, bool) {
	title, ok := c.sectionFor[questionID]
	return title, ok
}
