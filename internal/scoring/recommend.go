package scoring

import (
	"cmp"
	"slices"
	"strings"

	"github.com/MOYARU/cyberchecklist/internal/checklist"
	"github.com/MOYARU/cyberchecklist/internal/report"
)

// TopFixLimit caps the most-urgent fix list.
const TopFixLimit = 5

// Recommendation resolves remediation text for an unsafe answer: the
// selected choice's text, then the "no" choice's text, then a generic
// review line.
func Recommendation(q *checklist.Question, a report.Answer) string {
	if q != nil {
		if c, ok := q.Choice(a.Value); ok && strings.TrimSpace(c.Recommendation) != "" {
			return c.Recommendation
		}
		if c, ok := q.Choice(report.ValueNo); ok && strings.TrimSpace(c.Recommendation) != "" {
			return c.Recommendation
		}
	}
	return "Review: " + a.Title
}

// Findings builds a finding for every unsafe answer, in answer order.
func Findings(bank *checklist.Bank, answers []report.Answer) []report.Finding {
	findings := make([]report.Finding, 0)
	for _, a := range answers {
		if !a.Value.Unsafe() {
			continue
		}
		q := lookup(bank, a.Name)
		findings = append(findings, report.Finding{
			Name:           a.Name,
			Title:          a.Title,
			Category:       a.Category,
			Value:          a.Value,
			Priority:       Priority(q, a.Name, a.Value),
			Recommendation: Recommendation(q, a),
		})
	}
	return findings
}

// Rank sorts findings by priority descending, then category ascending.
// Findings equal on both keep their original relative order.
func Rank(findings []report.Finding) []report.Finding {
	ranked := slices.Clone(findings)
	slices.SortStableFunc(ranked, func(a, b report.Finding) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return strings.Compare(string(a.Category), string(b.Category))
	})
	return ranked
}

// TopFixes picks up to limit ranked findings, one per distinct title.
func TopFixes(ranked []report.Finding, limit int) []report.Finding {
	top := make([]report.Finding, 0, max(limit, 0))
	seenTitles := make(map[string]bool)
	for _, f := range ranked {
		if len(top) >= limit {
			break
		}
		if seenTitles[f.Title] {
			continue
		}
		seenTitles[f.Title] = true
		top = append(top, f)
	}
	return top
}

// GroupRecommendations groups finding recommendations by category in
// first-seen order. A text is kept only under the first category that
// produced it.
func GroupRecommendations(findings []report.Finding) []report.RecommendationGroup {
	var groups []report.RecommendationGroup
	pos := make(map[report.Category]int)
	seen := make(map[string]bool)

	for _, f := range findings {
		i, ok := pos[f.Category]
		if !ok {
			i = len(groups)
			pos[f.Category] = i
			groups = append(groups, report.RecommendationGroup{Category: f.Category})
		}
		if seen[f.Recommendation] {
			continue
		}
		seen[f.Recommendation] = true
		groups[i].Items = append(groups[i].Items, f.Recommendation)
	}
	return groups
}

// FurtherRecommendations drops every text already shown as a top fix and
// any repeat across categories. Categories left empty are omitted.
func FurtherRecommendations(groups []report.RecommendationGroup, top []report.Finding) []report.RecommendationGroup {
	seen := make(map[string]bool, len(top))
	for _, f := range top {
		seen[f.Recommendation] = true
	}

	var out []report.RecommendationGroup
	for _, g := range groups {
		var items []string
		for _, rec := range g.Items {
			if seen[rec] {
				continue
			}
			seen[rec] = true
			items = append(items, rec)
		}
		if len(items) > 0 {
			out = append(out, report.RecommendationGroup{Category: g.Category, Items: items})
		}
	}
	return out
}

func lookup(bank *checklist.Bank, id string) *checklist.Question {
	if bank == nil {
		return nil
	}
	q, _ := bank.Question(id)
	return q
}
