// Package scoring turns questionnaire answers into category aggregates, a
// risk band and ranked remediation advice.
package scoring

import (
	"github.com/MOYARU/cyberchecklist/internal/checklist"
	"github.com/MOYARU/cyberchecklist/internal/report"
)

// Outcome is everything one scoring pass derives. It is rebuilt from
// scratch on every pass.
type Outcome struct {
	Results report.ResultSet
	Percent float64
	Risk    report.Risk
	Further []report.RecommendationGroup
}

// FurtherCount is the number of recommendations listed after the top fixes.
func (o *Outcome) FurtherCount() int {
	n := 0
	for _, g := range o.Further {
		n += len(g.Items)
	}
	return n
}

// Score runs the full pipeline over raw form state.
func Score(bank *checklist.Bank, form Form) *Outcome {
	answers := Collect(bank, form)
	overall, categories := Aggregate(answers)

	findings := Findings(bank, answers)
	ranked := Rank(findings)
	top := TopFixes(ranked, TopFixLimit)
	groups := GroupRecommendations(findings)

	percent := overall.Percent()
	return &Outcome{
		Results: report.ResultSet{
			Overall:        overall,
			Categories:     categories,
			Answers:        answers,
			UnsafeFindings: ranked,
			TopFive:        top,
		},
		Percent: percent,
		Risk:    report.Classify(percent),
		Further: FurtherRecommendations(groups, top),
	}
}
