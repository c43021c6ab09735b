package scoring

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/MOYARU/cyberchecklist/internal/checklist"
	"github.com/MOYARU/cyberchecklist/internal/report"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		id   string
		want report.Category
	}{
		{"q1", report.CategorySmartHome},
		{"q4", report.CategorySmartHome},
		{"q5", report.CategoryPasswords},
		{"q7", report.CategoryPasswords},
		{"q8", report.CategoryPasswords},
		{"q9", report.CategoryHomeNetwork},
		{"q12", report.CategoryHomeNetwork},
		{"q13", report.CategoryPrivacy},
		{"q15", report.CategoryPrivacy},
		{"q16", report.CategoryPhishing},
		{"q19", report.CategoryPhishing},
		{"q20", report.CategoryGeneral},
		{"q0", report.CategoryGeneral},
		{"Q6", report.CategoryPasswords},
		{"q1a0", report.CategoryHomeNetwork},
		{"qZZ", report.CategoryGeneral},
		{"", report.CategoryGeneral},
		{"q99999999999999999999999", report.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("id=%q", tt.id), func(t *testing.T) {
			require.Equal(t, tt.want, Category(tt.id))
		})
	}
}

func TestPriority(t *testing.T) {
	explicit := &checklist.Question{ID: "q13", Choices: []checklist.Choice{
		{Value: report.ValueYes},
		{Value: report.ValueNo, Priority: 5},
		{Value: report.ValueUnknown, Priority: 2},
	}}
	plain := &checklist.Question{ID: "q13", Choices: []checklist.Choice{{Value: report.ValueNo}}}

	tests := []struct {
		name  string
		q     *checklist.Question
		id    string
		value report.Value
		want  float64
	}{
		{name: "explicit max weight", q: explicit, id: "q13", value: report.ValueNo, want: 5},
		{name: "explicit weight discounted for unknown", q: explicit, id: "q13", value: report.ValueUnknown, want: 4.5},
		{name: "category fallback privacy", q: plain, id: "q13", value: report.ValueNo, want: 3},
		{name: "category fallback password", q: nil, id: "q6", value: report.ValueNo, want: 4},
		{name: "category fallback unknown", q: nil, id: "q6", value: report.ValueUnknown, want: 4 * 0.9},
		{name: "general fallback", q: nil, id: "q42", value: report.ValueNo, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, Priority(tt.q, tt.id, tt.value), 1e-9)
		})
	}
}

func TestCollectFiltersInvalidFields(t *testing.T) {
	form := Form{
		{Name: "q1", Value: "yes"},
		{Name: "email", Value: "yes"},
		{Name: "q2", Value: "maybe"},
		{Name: "Q3", Value: "no"},
		{Name: "q4x", Value: "no"},
		{Name: "q1", Value: "no"},
		{Name: "q5", Value: "unknown"},
	}
	answers := Collect(checklist.Default(), form)

	want := []report.Answer{
		{Name: "q1", Category: report.CategorySmartHome, Title: "Changed default passwords on smart devices", Value: report.ValueYes},
		{Name: "Q3", Category: report.CategorySmartHome, Title: "Q3", Value: report.ValueNo},
		{Name: "q5", Category: report.CategoryPasswords, Title: "Unique password for every important account", Value: report.ValueUnknown},
	}
	if diff := cmp.Diff(want, answers); diff != "" {
		t.Fatalf("Collect mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateSumsMatchOverall(t *testing.T) {
	form := Form{}
	values := []string{"yes", "no", "unknown"}
	for i := 1; i <= 23; i++ {
		form = append(form, Field{Name: fmt.Sprintf("q%d", i), Value: values[i%3]})
	}
	overall, categories := Aggregate(Collect(nil, form))

	safe, total := 0, 0
	for _, c := range categories {
		safe += c.Safe
		total += c.Total
	}
	require.Equal(t, overall.SafeCount, safe)
	require.Equal(t, overall.Total, total)
	require.Equal(t, 23, overall.Total)

	order := make([]report.Category, len(categories))
	for i, c := range categories {
		order[i] = c.Category
	}
	require.Equal(t, []report.Category{
		report.CategorySmartHome,
		report.CategoryPasswords,
		report.CategoryHomeNetwork,
		report.CategoryPrivacy,
		report.CategoryPhishing,
		report.CategoryGeneral,
	}, order)
}

func TestRecommendationFallbackTiers(t *testing.T) {
	q := &checklist.Question{ID: "q2", Choices: []checklist.Choice{
		{Value: report.ValueYes},
		{Value: report.ValueNo, Recommendation: "Update firmware."},
		{Value: report.ValueUnknown, Recommendation: "Find out which firmware you run."},
	}}
	bare := &checklist.Question{ID: "q3", Choices: []checklist.Choice{{Value: report.ValueNo, Recommendation: "  "}}}

	require.Equal(t, "Find out which firmware you run.", Recommendation(q, report.Answer{Title: "Firmware", Value: report.ValueUnknown}))
	require.Equal(t, "Update firmware.", Recommendation(q, report.Answer{Title: "Firmware", Value: report.ValueNo}))

	q.Choices[2].Recommendation = ""
	require.Equal(t, "Update firmware.", Recommendation(q, report.Answer{Title: "Firmware", Value: report.ValueUnknown}))
	require.Equal(t, "Review: Unused devices", Recommendation(bare, report.Answer{Title: "Unused devices", Value: report.ValueUnknown}))
	require.Equal(t, "Review: Orphan", Recommendation(nil, report.Answer{Title: "Orphan", Value: report.ValueNo}))
}

func TestRankIsStable(t *testing.T) {
	in := []report.Finding{
		{Name: "a", Priority: 3, Category: report.CategorySmartHome},
		{Name: "b", Priority: 4, Category: report.CategoryPasswords},
		{Name: "c", Priority: 3, Category: report.CategorySmartHome},
		{Name: "d", Priority: 4, Category: report.CategoryHomeNetwork},
		{Name: "e", Priority: 3, Category: report.CategoryPrivacy},
		{Name: "f", Priority: 4, Category: report.CategoryPasswords},
	}
	ranked := Rank(in)

	names := make([]string, len(ranked))
	for i, f := range ranked {
		names[i] = f.Name
	}
	require.Equal(t, []string{"d", "b", "f", "e", "a", "c"}, names)
	require.Equal(t, "a", in[0].Name, "input must not be reordered")
}

func TestTopFixesDedupesByTitle(t *testing.T) {
	var ranked []report.Finding
	for i := 0; i < 9; i++ {
		ranked = append(ranked, report.Finding{Name: fmt.Sprintf("q%d", i), Title: fmt.Sprintf("t%d", i/2)})
	}
	top := TopFixes(ranked, TopFixLimit)
	require.Len(t, top, 5)
	require.Equal(t, []string{"q0", "q2", "q4", "q6", "q8"}, []string{top[0].Name, top[1].Name, top[2].Name, top[3].Name, top[4].Name})

	require.Len(t, TopFixes(ranked[:3], TopFixLimit), 2)
	require.Empty(t, TopFixes(ranked, 0))
}

func TestGroupAndFurtherRecommendations(t *testing.T) {
	findings := []report.Finding{
		{Category: report.CategorySmartHome, Recommendation: "shared"},
		{Category: report.CategorySmartHome, Recommendation: "smart-only"},
		{Category: report.CategoryPasswords, Recommendation: "shared"},
		{Category: report.CategoryPasswords, Recommendation: "top-pick"},
		{Category: report.CategoryPrivacy, Recommendation: "top-pick"},
	}
	groups := GroupRecommendations(findings)
	require.Equal(t, []report.RecommendationGroup{
		{Category: report.CategorySmartHome, Items: []string{"shared", "smart-only"}},
		{Category: report.CategoryPasswords, Items: []string{"top-pick"}},
		{Category: report.CategoryPrivacy},
	}, groups)

	further := FurtherRecommendations(groups, []report.Finding{{Recommendation: "top-pick"}})
	require.Equal(t, []report.RecommendationGroup{
		{Category: report.CategorySmartHome, Items: []string{"shared", "smart-only"}},
	}, further)
}

func TestScoreAllYes(t *testing.T) {
	bank := checklist.Default()
	var form Form
	for _, q := range bank.Questions() {
		form = append(form, Field{Name: q.ID, Value: "yes"})
	}

	out := Score(bank, form)
	require.Equal(t, 20, out.Results.Overall.Total)
	require.Equal(t, 20, out.Results.Overall.SafeCount)
	require.Equal(t, 100.0, out.Percent)
	require.Equal(t, report.RiskLow, out.Risk.Level)
	require.Empty(t, out.Results.UnsafeFindings)
	require.Empty(t, out.Results.TopFive)
	require.Zero(t, out.FurtherCount())
}

func TestScoreEmptyForm(t *testing.T) {
	out := Score(checklist.Default(), nil)
	require.Zero(t, out.Results.Overall.Total)
	require.Zero(t, out.Percent)
	require.Equal(t, report.RiskHigh, out.Risk.Level)
}

func TestScoreExplicitPriorityIsUrgent(t *testing.T) {
	bank := checklist.Default()
	out := Score(bank, Form{
		{Name: "q1", Value: "unknown"},
		{Name: "q6", Value: "unknown"},
		{Name: "q5", Value: "no"},
	})

	require.NotEmpty(t, out.Results.TopFive)
	first := out.Results.TopFive[0]
	require.Equal(t, "q5", first.Name)
	require.Equal(t, 5.0, first.Priority)
	require.True(t, first.Urgent())

	for _, f := range out.Results.TopFive[1:] {
		require.False(t, f.Urgent(), "%s discounted to %v", f.Name, f.Priority)
	}
}

func TestScoreTopAndFurtherAreDisjoint(t *testing.T) {
	bank := checklist.Default()
	var form Form
	for i, q := range bank.Questions() {
		v := "no"
		if i%4 == 3 {
			v = "unknown"
		}
		form = append(form, Field{Name: q.ID, Value: v})
	}
	out := Score(bank, form)

	require.Len(t, out.Results.TopFive, TopFixLimit)
	require.Len(t, out.Results.UnsafeFindings, 20)

	top := make(map[string]bool)
	titles := make(map[string]bool)
	for _, f := range out.Results.TopFive {
		top[f.Recommendation] = true
		require.False(t, titles[f.Title], "duplicate title %q", f.Title)
		titles[f.Title] = true
	}
	seen := make(map[string]bool)
	for _, g := range out.Further {
		for _, rec := range g.Items {
			require.False(t, top[rec], "%q appears in both lists", rec)
			require.False(t, seen[rec], "%q listed twice", rec)
			seen[rec] = true
		}
	}
	require.Equal(t, len(seen), out.FurtherCount())
}
