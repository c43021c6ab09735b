package scoring

import (
	"github.com/MOYARU/cyberchecklist/internal/checklist"
	"github.com/MOYARU/cyberchecklist/internal/report"
)

// Field is one raw (name, value) pair of form state.
type Field struct {
	Name  string
	Value string
}

// Form is raw form state in submission order.
type Form []Field

// Collect extracts valid answers from form state. Fields whose name is not
// q<digits> or whose value is not yes/no/unknown are skipped, as are repeat
// submissions for a question already answered.
func Collect(bank *checklist.Bank, form Form) []report.Answer {
	answers := make([]report.Answer, 0, len(form))
	seen := make(map[string]bool, len(form))
	for _, f := range form {
		if !checklist.ValidQuestionID(f.Name) {
			continue
		}
		v := report.Value(f.Value)
		if !v.Valid() || seen[f.Name] {
			continue
		}
		seen[f.Name] = true

		title := f.Name
		if bank != nil {
			title = bank.Title(f.Name)
		}
		answers = append(answers, report.Answer{
			Name:     f.Name,
			Category: Category(f.Name),
			Title:    title,
			Value:    v,
		})
	}
	return answers
}

// Aggregate tallies overall and per-category safe/total counts. Categories
// appear in the order they are first seen.
func Aggregate(answers []report.Answer) (report.Overall, report.CategoryTable) {
	var overall report.Overall
	categories := report.CategoryTable{}
	pos := make(map[report.Category]int)

	for _, a := range answers {
		i, ok := pos[a.Category]
		if !ok {
			i = len(categories)
			pos[a.Category] = i
			categories = append(categories, report.CategoryAggregate{Category: a.Category})
		}
		overall.Total++
		categories[i].Total++
		if a.Value == report.ValueYes {
			overall.SafeCount++
			categories[i].Safe++
		}
	}
	return overall, categories
}
