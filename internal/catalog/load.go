package catalog

import (
	"fmt"
	"os"
	"stepsurvey/internal/model"

	"gopkg.in/yaml.v3"
)

// fileItem is one entry of a catalog file. An entry with "section" set is a
// section marker; every other entry is a question.
type fileItem struct {
	Section            string   `yaml:"section,omitempty"`
	ID                 string   `yaml:"id,omitempty"`
	Prompt             string   `yaml:"prompt,omitempty"`
	Options            []string `yaml:"options,omitempty"`
	CommentPlaceholder string   `yaml:"comment_placeholder,omitempty"`
}

type fileCatalog struct {
	Items []fileItem `yaml:"items"`
}

// Load reads a YAML catalog from path. An empty path yields Default().
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes. A file without questions is rejected.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	items := make([]model.Item, 0, len(fc.Items))
	for _, fi := range fc.Items {
		if fi.Section != "" {
			items = append(items, model.Section(fi.Section))
			continue
		}
		items = append(items, model.Ask(model.Question{
			ID:                 fi.ID,
			Prompt:             fi.Prompt,
			Options:            fi.Options,
			CommentPlaceholder: fi.CommentPlaceholder,
		}))
	}

	c, err := New(items)
	if err != nil {
		return nil, err
	}
	// a served catalog needs at least one step to render and submit from
	if c.Len() == 0 {
		return nil, ErrNoQuestions
	}
	return c, nil
}

// Marshal encodes c in the format read by Parse
func Marshal(c *Catalog) ([]byte, error) {
	items := c.Items()
	fc := fileCatalog{Items: make([]fileItem, 0, len(items))}
	for _, it := range items {
		if it.IsSection() {
			fc.Items = append(fc.Items, fileItem{Section: it.Title})
			continue
		}
		fc.Items = append(fc.Items, fileItem{
			ID:                 it.Question.ID,
			Prompt:             it.Question.Prompt,
			Options:            it.Question.Options,
			CommentPlaceholder: it.Question.CommentPlaceholder,
		})
	}
	return yaml.Marshal(fc)
}
