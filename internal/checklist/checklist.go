// Package checklist holds the declarative question bank: pages of
// single-choice questions and the per-choice priority and recommendation
// metadata that drive scoring.
package checklist

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/MOYARU/cyberchecklist/internal/report"
)

var reQuestionID = regexp.MustCompile(`(?i)^q\d+$`)

// ValidQuestionID reports whether id has the form q<digits>.
func ValidQuestionID(id string) bool {
	return reQuestionID.MatchString(id)
}

type Choice struct {
	Value          report.Value `yaml:"value"`
	Label          string       `yaml:"label,omitempty"`
	Priority       float64      `yaml:"priority,omitempty"`
	Recommendation string       `yaml:"recommendation,omitempty"`
}

type Question struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Help    string   `yaml:"help,omitempty"`
	Choices []Choice `yaml:"choices,omitempty"`
}

// Choice returns the choice with the given value.
func (q *Question) Choice(v report.Value) (Choice, bool) {
	for _, c := range q.Choices {
		if c.Value == v {
			return c, true
		}
	}
	return Choice{}, false
}

type Page struct {
	ID        string     `yaml:"id"`
	Title     string     `yaml:"title"`
	Questions []Question `yaml:"questions"`
}

// QuestionIDs returns the ids of the page's questions in display order.
func (p Page) QuestionIDs() []string {
	ids := make([]string, len(p.Questions))
	for i, q := range p.Questions {
		ids[i] = q.ID
	}
	return ids
}

// Bank is the static configuration table keyed by (question, choice value).
type Bank struct {
	Name  string `yaml:"name"`
	Pages []Page `yaml:"pages"`

	index map[string]*Question
}

var defaultChoices = []report.Value{report.ValueYes, report.ValueNo, report.ValueUnknown}

// NewBank validates pages and builds the lookup index.
func NewBank(name string, pages []Page) (*Bank, error) {
	b := &Bank{Name: name, Pages: pages}
	if err := b.init(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bank) init() error {
	if len(b.Pages) == 0 {
		return errors.New("question bank has no pages")
	}
	b.index = make(map[string]*Question)
	seenPages := make(map[string]bool, len(b.Pages))

	for pi := range b.Pages {
		p := &b.Pages[pi]
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			p.ID = fmt.Sprintf("page%d", pi+1)
		}
		if seenPages[p.ID] {
			return fmt.Errorf("duplicate page id %q", p.ID)
		}
		seenPages[p.ID] = true
		if len(p.Questions) == 0 {
			return fmt.Errorf("page %q has no questions", p.ID)
		}

		for qi := range p.Questions {
			q := &p.Questions[qi]
			q.ID = strings.TrimSpace(q.ID)
			if q.ID == "" {
				return fmt.Errorf("page %q: question %d has no id", p.ID, qi+1)
			}
			if _, dup := b.index[q.ID]; dup {
				return fmt.Errorf("duplicate question id %q", q.ID)
			}
			q.Title = strings.TrimSpace(q.Title)
			if len(q.Choices) == 0 {
				for _, v := range defaultChoices {
					q.Choices = append(q.Choices, Choice{Value: v})
				}
			}
			for _, c := range q.Choices {
				if !c.Value.Valid() {
					return fmt.Errorf("question %q: unsupported choice value %q", q.ID, c.Value)
				}
			}
			b.index[q.ID] = q
		}
	}
	return nil
}

// PageIDs returns the ordered page identifier sequence.
func (b *Bank) PageIDs() []string {
	ids := make([]string, len(b.Pages))
	for i, p := range b.Pages {
		ids[i] = p.ID
	}
	return ids
}

func (b *Bank) Question(id string) (*Question, bool) {
	q, ok := b.index[id]
	return q, ok
}

// Title returns the question's display title, falling back to its id.
func (b *Bank) Title(id string) string {
	if q, ok := b.index[id]; ok && q.Title != "" {
		return q.Title
	}
	return id
}

// Questions returns every question in page order.
func (b *Bank) Questions() []*Question {
	out := make([]*Question, 0, len(b.index))
	for pi := range b.Pages {
		for qi := range b.Pages[pi].Questions {
			out = append(out, &b.Pages[pi].Questions[qi])
		}
	}
	return out
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.index)
}
