package scoring

import (
	"math"

	"github.com/MOYARU/cyberchecklist/internal/checklist"
	"github.com/MOYARU/cyberchecklist/internal/report"
)

// unknownDiscount scales the weight of an "unknown" gap relative to a "no".
const unknownDiscount = 0.9

// Priority returns the urgency of an unsafe answer. The highest positive
// weight set on any of the question's choices wins; without one the
// category weight applies. Unknown answers are discounted in both cases.
func Priority(q *checklist.Question, questionID string, selected report.Value) float64 {
	var pri float64
	if q != nil {
		for _, c := range q.Choices {
			if !math.IsNaN(c.Priority) && !math.IsInf(c.Priority, 0) && c.Priority > pri {
				pri = c.Priority
			}
		}
	}
	if pri == 0 {
		pri = CategoryWeight(Category(questionID))
	}
	if selected == report.ValueUnknown {
		pri *= unknownDiscount
	}
	return pri
}
