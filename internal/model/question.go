package model

// ItemKind discriminates catalog entries
type ItemKind string

const (
	ItemSection  ItemKind = "section"  // Display-only grouping marker
	ItemQuestion ItemKind = "question" // Answerable step
)

// Question is one answerable step of the wizard
type Question struct {
	ID                 string   `json:"id" yaml:"id"`
	Prompt             string   `json:"prompt" yaml:"prompt"`
	Options            []string `json:"options,omitempty" yaml:"options,omitempty"` // Empty means free text only
	CommentPlaceholder string   `json:"commentPlaceholder,omitempty" yaml:"comment_placeholder,omitempty"`
}

// FreeTextOnly reports whether the question offers no choice list
func (q Question) FreeTextOnly() bool {
	return len(q.Options) == 0
}

// HasOption reports whether choice is one of the question's options
func (q Question) HasOption(choice string) bool {
	for _, o := range q.Options {
		if o == choice {
			return true
		}
	}
	return false
}

// Item is a catalog entry: either a section header or a question
type Item struct {
	Kind     ItemKind  `json:"kind"`
	Title    string    `json:"title,omitempty"`    // Sections only
	Question *Question `json:"question,omitempty"` // Questions only
}

// IsSection reports whether the item is a non-answerable section marker
func (it Item) IsSection() bool {
	return it.Kind == ItemSection
}

// Section builds a section item
func Section(title string) Item {
	return Item{Kind: ItemSection, Title: title}
}

// Ask builds a question item
func Ask(q Question) Item {
	return Item{Kind: ItemQuestion, Question: &q}
}
