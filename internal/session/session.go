// Package session owns the state of one assessment: the current page, the
// selections made so far and the results of the last scoring pass.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MOYARU/cyberchecklist/internal/checklist"
	msges "github.com/MOYARU/cyberchecklist/internal/messages"
	"github.com/MOYARU/cyberchecklist/internal/report"
	"github.com/MOYARU/cyberchecklist/internal/scoring"
)

// DefaultHighlight is how long unanswered questions stay flagged.
const DefaultHighlight = 3 * time.Second

// ValidationError reports the questions left unanswered on a page.
type ValidationError struct {
	Unanswered []string
}

func (e *ValidationError) Error() string {
	if len(e.Unanswered) == 1 {
		return msges.GetUIMessage("ValidationSingle")
	}
	return msges.GetUIMessage("ValidationMultiple")
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHighlight sets how long flagged questions stay flagged.
func WithHighlight(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.highlight = d
		}
	}
}

// Controller drives one assessment. It is safe for concurrent use, though
// the only concurrent caller is the flag-clearing timer.
type Controller struct {
	mu sync.Mutex

	bank      *checklist.Bank
	logger    *zap.Logger
	highlight time.Duration
	id        string

	page       int
	selections map[string]report.Value
	last       *scoring.Outcome
	flagged    map[string]bool
	flagGen    int
}

func New(bank *checklist.Bank, opts ...Option) *Controller {
	c := &Controller{
		bank:       bank,
		logger:     zap.NewNop(),
		highlight:  DefaultHighlight,
		id:         uuid.NewString(),
		selections: make(map[string]report.Value),
		flagged:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("session_id", c.id))
	c.logger.Info("assessment started", zap.Int("pages", len(bank.Pages)), zap.Int("questions", bank.Len()))
	return c
}

func (c *Controller) ID() string { return c.id }

func (c *Controller) Bank() *checklist.Bank { return c.bank }

// PageIndex returns the zero-based index of the current page.
func (c *Controller) PageIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Controller) CurrentPage() checklist.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bank.Pages[c.page]
}

// IsLastPage reports whether the current page is the final one.
func (c *Controller) IsLastPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page == len(c.bank.Pages)-1
}

// Progress describes the progress indicator for the current state.
type Progress struct {
	Label    string
	Fraction float64
}

func (c *Controller) Progress() Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last != nil {
		return Progress{Label: msges.GetUIMessage("AssessmentComplete"), Fraction: 1}
	}
	total := len(c.bank.Pages)
	return Progress{
		Label:    msges.GetUIMessage("PageIndicator", c.page+1, total),
		Fraction: float64(c.page+1) / float64(total),
	}
}

// Select records the answer to a question.
func (c *Controller) Select(questionID string, value report.Value) error {
	q, ok := c.bank.Question(questionID)
	if !ok {
		return fmt.Errorf("unknown question %q", questionID)
	}
	if _, ok := q.Choice(value); !ok {
		return fmt.Errorf("question %q has no choice %q", questionID, value)
	}
	c.mu.Lock()
	c.selections[questionID] = value
	c.mu.Unlock()
	return nil
}

// Selection returns the recorded answer to a question.
func (c *Controller) Selection(questionID string) (report.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.selections[questionID]
	return v, ok
}

// Unanswered lists the current page's questions that have no selection.
func (c *Controller) Unanswered() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unansweredLocked()
}

func (c *Controller) unansweredLocked() []string {
	var out []string
	for _, q := range c.bank.Pages[c.page].Questions {
		if _, ok := c.selections[q.ID]; !ok {
			out = append(out, q.ID)
		}
	}
	return out
}

// validateLocked flags unanswered questions on the current page and
// schedules the flags to clear.
func (c *Controller) validateLocked() error {
	missing := c.unansweredLocked()
	if len(missing) == 0 {
		return nil
	}

	c.flagGen++
	gen := c.flagGen
	c.flagged = make(map[string]bool, len(missing))
	for _, id := range missing {
		c.flagged[id] = true
	}
	time.AfterFunc(c.highlight, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.flagGen == gen {
			c.flagged = make(map[string]bool)
		}
	})

	c.logger.Info("page incomplete",
		zap.String("page", c.bank.Pages[c.page].ID),
		zap.Strings("unanswered", missing))
	return &ValidationError{Unanswered: missing}
}

// Flagged reports whether a question is currently highlighted as missing.
func (c *Controller) Flagged(questionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flagged[questionID]
}

func (c *Controller) clearFlagsLocked() {
	c.flagGen++
	c.flagged = make(map[string]bool)
}

// Next validates the current page and advances. On the last page it
// validates and stays put; Complete finishes the assessment.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.validateLocked(); err != nil {
		return err
	}
	if c.page < len(c.bank.Pages)-1 {
		c.showPageLocked(c.page + 1)
	}
	return nil
}

// Prev moves back one page. It never validates.
func (c *Controller) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page > 0 {
		c.showPageLocked(c.page - 1)
	}
}

func (c *Controller) showPageLocked(i int) {
	c.clearFlagsLocked()
	c.page = i
	c.logger.Debug("page shown", zap.String("page", c.bank.Pages[i].ID), zap.Int("index", i))
}

// Form returns the selections as form state in bank order.
func (c *Controller) Form() scoring.Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formLocked()
}

func (c *Controller) formLocked() scoring.Form {
	var form scoring.Form
	for _, q := range c.bank.Questions() {
		if v, ok := c.selections[q.ID]; ok {
			form = append(form, scoring.Field{Name: q.ID, Value: string(v)})
		}
	}
	return form
}

// ErrNotLastPage is returned when Complete is called before the final page.
var ErrNotLastPage = errors.New("assessment can only be completed from the last page")

// Complete validates the final page, scores every selection and keeps the
// outcome for rendering and export.
func (c *Controller) Complete() (*scoring.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page != len(c.bank.Pages)-1 {
		return nil, ErrNotLastPage
	}
	if err := c.validateLocked(); err != nil {
		return nil, err
	}

	out := scoring.Score(c.bank, c.formLocked())
	c.last = out
	c.logger.Info("assessment scored",
		zap.Int("safe", out.Results.Overall.SafeCount),
		zap.Int("total", out.Results.Overall.Total),
		zap.String("risk", string(out.Risk.Level)),
		zap.Int("unsafe_findings", len(out.Results.UnsafeFindings)))
	return out, nil
}

// Results returns the last scoring outcome, or nil before Complete.
func (c *Controller) Results() *scoring.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Restart discards answers and results and returns to the first page.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selections = make(map[string]report.Value)
	c.last = nil
	c.showPageLocked(0)
	c.logger.Info("assessment restarted")
}
