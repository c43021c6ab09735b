package session

import (
	msges "github.com/MOYARU/cyberchecklist/internal/messages"
	"github.com/MOYARU/cyberchecklist/internal/scoring"
)

type Action int

const (
	ActionBack Action = iota + 1
	ActionNext
	ActionComplete
)

// Binding attaches one navigation key to one action.
type Binding struct {
	Key    rune
	Label  string
	Action Action
}

// Bindings returns the navigation controls for the current page. The set is
// derived from the page alone, so calling it again after a page change
// simply rebinds: no back control on the first page, and the forward
// control completes the assessment on the last page.
func (c *Controller) Bindings() []Binding {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Binding
	if c.page > 0 {
		out = append(out, Binding{Key: 'b', Label: msges.GetUIMessage("BackButton"), Action: ActionBack})
	}
	if c.page == len(c.bank.Pages)-1 {
		out = append(out, Binding{Key: 'n', Label: msges.GetUIMessage("CompleteButton"), Action: ActionComplete})
	} else {
		out = append(out, Binding{Key: 'n', Label: msges.GetUIMessage("NextButton"), Action: ActionNext})
	}
	return out
}

// Lookup returns the binding for key on the current page.
func (c *Controller) Lookup(key rune) (Binding, bool) {
	for _, b := range c.Bindings() {
		if b.Key == key {
			return b, true
		}
	}
	return Binding{}, false
}

// Dispatch runs a navigation action. The outcome is non-nil only after a
// successful ActionComplete.
func (c *Controller) Dispatch(a Action) (*scoring.Outcome, error) {
	switch a {
	case ActionBack:
		c.Prev()
	case ActionNext:
		return nil, c.Next()
	case ActionComplete:
		return c.Complete()
	}
	return nil, nil
}
