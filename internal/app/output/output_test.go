package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MOYARU/cyberchecklist/internal/checklist"
	"github.com/MOYARU/cyberchecklist/internal/scoring"
)

func sampleOutcome(t *testing.T) *scoring.Outcome {
	t.Helper()
	bank, err := checklist.ParseYAML([]byte(`
pages:
  - id: page1
    questions:
      - id: q5
        title: Unique, "strong" passwords
        choices:
          - value: "yes"
          - value: "no"
            priority: 5
            recommendation: Use a password manager, then rotate.
          - value: unknown
      - id: q1
        title: Default passwords changed
      - id: q20
        title: Automatic updates
`))
	require.NoError(t, err)
	return scoring.Score(bank, scoring.Form{
		{Name: "q5", Value: "no"},
		{Name: "q1", Value: "unknown"},
		{Name: "q20", Value: "yes"},
	})
}

func TestBuildJSONRoundTrip(t *testing.T) {
	out := sampleOutcome(t)
	now := time.Date(2025, 3, 4, 5, 6, 7, 8_000_000, time.UTC)

	raw, err := BuildJSON(out, []string{"page1", "page2"}, now)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"exportedAt": "2025-03-04T05:06:07.008Z"`)

	doc, err := ParseJSON(raw)
	require.NoError(t, err)
	require.Equal(t, []string{"page1", "page2"}, doc.Pages)
	require.NotNil(t, doc.Results)
	require.Equal(t, out.Results.Overall, doc.Results.Overall)
	require.Equal(t, out.Results.Categories, doc.Results.Categories)
	require.Equal(t, out.Results.TopFive, doc.Results.TopFive)
	require.Len(t, doc.Results.Answers, 3)
}

func TestBuildJSONBeforeScoring(t *testing.T) {
	raw, err := BuildJSON(nil, nil, time.Unix(0, 0))
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.JSONEq(t, `{}`, string(doc["results"]))
	require.JSONEq(t, `[]`, string(doc["pages"]))
	require.JSONEq(t, `"1970-01-01T00:00:00.000Z"`, string(doc["exportedAt"]))
}

func TestBuildCSV(t *testing.T) {
	got, err := BuildCSV(sampleOutcome(t))
	require.NoError(t, err)

	want := strings.Join([]string{
		"Section,Key,Value",
		"Overall,Safe,1",
		"Overall,Total,3",
		"Overall,Percent,33",
		"",
		"Category,Safe,Total,Percent",
		"Password Hygiene,0,1,0",
		"Smart Home,0,1,0",
		"General,1,1,100",
		"",
		"Answers",
		"Question,Category,Answer",
		`"Unique, ""strong"" passwords",Password Hygiene,no`,
		"Default passwords changed,Smart Home,unknown",
		"Automatic updates,General,yes",
		"",
		"Top 5 Fixes (priority-desc)",
		"Title,Category,Priority,Recommendation",
		`"Unique, ""strong"" passwords",Password Hygiene,5,"Use a password manager, then rotate."`,
		"Default passwords changed,Smart Home,2.7,Review: Default passwords changed",
	}, "\n")
	require.Equal(t, want, got)
}

func TestBuildCSVBeforeScoring(t *testing.T) {
	got, err := BuildCSV(nil)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got, "Section,Key,Value\nOverall,Safe,\nOverall,Total,\nOverall,Percent,0\n"))
	require.True(t, strings.HasSuffix(got, "Title,Category,Priority,Recommendation"))
}

func TestSaveReports(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	out := sampleOutcome(t)

	jsonPath, err := SaveJSONReport(dir, "", out, []string{"page1"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "cyberchecklist-results.json"), jsonPath)

	csvPath, err := SaveCSVReport(dir, "household", out)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "household.csv"), csvPath)

	htmlPath, err := SaveHTMLReport(dir, "household", out)
	require.NoError(t, err)
	raw, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	page := string(raw)
	require.Contains(t, page, `class="result medium-high"`)
	require.Contains(t, page, `class="urgent-fix"`)
	require.Contains(t, page, "You scored 1 out of 3 (33%)")
	require.Contains(t, page, "Unique, &#34;strong&#34; passwords")
}

func TestBuildHTMLBeforeScoring(t *testing.T) {
	raw, err := BuildHTML(nil, time.Now())
	require.NoError(t, err)
	require.Contains(t, string(raw), "High Risk")
	require.Contains(t, string(raw), "No other immediate actions required")
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, sampleOutcome(t))
	text := buf.String()

	require.Contains(t, text, "Medium-High Risk")
	require.Contains(t, text, "You scored 1 out of 3 (33%)")
	require.Contains(t, text, "Your Most Urgent Fixes")
	require.Contains(t, text, "⚠️")
	require.Contains(t, text, "Password Hygiene")
	require.Contains(t, text, "No other immediate actions required")

	buf.Reset()
	PrintResults(&buf, nil)
	require.Empty(t, buf.String())
}
