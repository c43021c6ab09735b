package scoring

import (
	"strconv"
	"strings"

	"github.com/MOYARU/cyberchecklist/internal/report"
)

var categoryRanges = []struct {
	lo, hi   int
	category report.Category
}{
	{1, 4, report.CategorySmartHome},
	{5, 8, report.CategoryPasswords},
	{9, 12, report.CategoryHomeNetwork},
	{13, 15, report.CategoryPrivacy},
	{16, 19, report.CategoryPhishing},
}

var categoryWeights = map[report.Category]float64{
	report.CategoryPasswords:   4,
	report.CategoryHomeNetwork: 4,
	report.CategoryPhishing:    4,
	report.CategoryPrivacy:     3,
	report.CategorySmartHome:   3,
	report.CategoryGeneral:     2,
}

// Category derives a question's category from the digits in its id. Every
// id maps to exactly one category; ids without digits are General.
func Category(questionID string) report.Category {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, questionID)
	if digits == "" {
		return report.CategoryGeneral
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return report.CategoryGeneral
	}
	for _, r := range categoryRanges {
		if n >= r.lo && n <= r.hi {
			return r.category
		}
	}
	return report.CategoryGeneral
}

// CategoryWeight is the fallback priority for questions without an explicit
// per-choice weight.
func CategoryWeight(c report.Category) float64 {
	if w, ok := categoryWeights[c]; ok {
		return w
	}
	return categoryWeights[report.CategoryGeneral]
}
