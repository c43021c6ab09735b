package output

import (
	"bytes"
	"html/template"
	"time"

	msges "github.com/MOYARU/cyberchecklist/internal/messages"
	"github.com/MOYARU/cyberchecklist/internal/report"
	"github.com/MOYARU/cyberchecklist/internal/scoring"
)

type CategoryRow struct {
	Category string
	Safe     int
	Total    int
	Percent  int
}

type FixRow struct {
	Title          string
	Recommendation string
	Priority       float64
	Urgent         bool
}

type RecommendationRow struct {
	Category string
	Items    []string
}

// HTMLReportData feeds the results page template.
type HTMLReportData struct {
	Title        string
	GeneratedAt  string
	RiskLevel    string
	RiskLabel    string
	RiskMessage  string
	ScoreLine    string
	Categories   []CategoryRow
	TopFixes     []FixRow
	Further      []RecommendationRow
	FurtherCount int

	UIGenerated         string
	UICategoryBreakdown string
	UICategoryExplainer string
	UICategory          string
	UIScore             string
	UIPercent           string
	UITopFixesTitle     string
	UITopFixesIntro     string
	UIFurtherTitle      string
	UIFurtherIntro      string
	UINoFurther         string
}

func buildHTMLReportData(out *scoring.Outcome, now time.Time) HTMLReportData {
	rs := out.Results
	data := HTMLReportData{
		Title:        msges.GetUIMessage("HTMLReportTitle"),
		GeneratedAt:  now.Format("2006-01-02 15:04:05"),
		RiskLevel:    string(out.Risk.Level),
		RiskLabel:    out.Risk.Label,
		RiskMessage:  out.Risk.Message,
		ScoreLine:    msges.GetUIMessage("ScoreLine", rs.Overall.SafeCount, rs.Overall.Total, roundPercent(out.Percent)),
		FurtherCount: out.FurtherCount(),

		UIGenerated:         msges.GetUIMessage("HTMLExportedAt"),
		UICategoryBreakdown: msges.GetUIMessage("CategoryBreakdown"),
		UICategoryExplainer: msges.GetUIMessage("CategoryExplainer"),
		UICategory:          msges.GetUIMessage("CategoryHeader"),
		UIScore:             msges.GetUIMessage("ScoreHeader"),
		UIPercent:           msges.GetUIMessage("PercentHeader"),
		UITopFixesTitle:     msges.GetUIMessage("TopFixesTitle"),
		UITopFixesIntro:     msges.GetUIMessage("TopFixesIntro"),
		UIFurtherTitle:      msges.GetUIMessage("FurtherTitle", out.FurtherCount()),
		UIFurtherIntro:      msges.GetUIMessage("FurtherIntro"),
		UINoFurther:         msges.GetUIMessage("NoFurtherActions"),
	}

	for _, c := range rs.Categories {
		data.Categories = append(data.Categories, CategoryRow{
			Category: string(c.Category),
			Safe:     c.Safe,
			Total:    c.Total,
			Percent:  roundPercent(c.Percent()),
		})
	}
	for _, f := range rs.TopFive {
		f = report.SanitizeFinding(f)
		data.TopFixes = append(data.TopFixes, FixRow{
			Title:          f.Title,
			Recommendation: f.Recommendation,
			Priority:       f.Priority,
			Urgent:         f.Urgent(),
		})
	}
	for _, g := range out.Further {
		row := RecommendationRow{Category: string(g.Category)}
		for _, rec := range g.Items {
			row.Items = append(row.Items, report.PlainText(rec))
		}
		data.Further = append(data.Further, row)
	}
	return data
}

// BuildHTML renders the results block as a standalone page.
func BuildHTML(out *scoring.Outcome, now time.Time) ([]byte, error) {
	if out == nil {
		out = scoring.Score(nil, nil)
	}
	t, err := template.New("results").Parse(htmlTemplate)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, buildHTMLReportData(out, now)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveHTMLReport builds and writes <base>.html.
func SaveHTMLReport(dir, base string, out *scoring.Outcome) (string, error) {
	data, err := BuildHTML(out, time.Now())
	if err != nil {
		return "", err
	}
	return WriteExport(dir, baseName(base)+".html", data)
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; color: #222; }
  .result { border-radius: 8px; padding: 1rem 1.25rem; border-left: 6px solid #999; background: #f7f7f7; }
  .result.low { border-color: #2ecc71; }
  .result.low-medium { border-color: #a3d95b; }
  .result.medium { border-color: #f4d03f; }
  .result.medium-high { border-color: #e67e22; }
  .result.high { border-color: #e74c3c; }
  .results-table { border-collapse: collapse; width: 100%; }
  .results-table th, .results-table td { border-bottom: 1px solid #ddd; padding: .4rem; text-align: left; }
  .urgent-fix { color: #c0392b; font-weight: 600; }
  .muted { color: #666; font-size: .9rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="muted">{{.UIGenerated}}: {{.GeneratedAt}}</p>
<div class="result {{.RiskLevel}}">
  <h3>{{.RiskLabel}}</h3>
  <p>{{.ScoreLine}}</p>
  <p>{{.RiskMessage}}</p>

  <details class="cat-breakdown">
    <summary>{{.UICategoryBreakdown}}</summary>
    <p class="cat-explainer">{{.UICategoryExplainer}}</p>
    <table class="results-table">
      <thead><tr><th>{{.UICategory}}</th><th>{{.UIScore}}</th><th>{{.UIPercent}}</th></tr></thead>
      <tbody>
      {{range .Categories}}<tr><td>{{.Category}}</td><td>{{.Safe}} / {{.Total}}</td><td>{{.Percent}}%</td></tr>
      {{end}}</tbody>
    </table>
  </details>

  {{if .TopFixes}}
  <h4>{{.UITopFixesTitle}}</h4>
  <p>{{.UITopFixesIntro}}</p>
  <ol class="top-five-list">
    {{range .TopFixes}}<li{{if .Urgent}} class="urgent-fix"{{end}}>{{if .Urgent}}&#9888;&#65039; {{end}}<strong>{{.Title}}</strong> - {{.Recommendation}}</li>
    {{end}}
  </ol>
  {{end}}

  {{if .FurtherCount}}
  <details class="more-recs">
    <summary>{{.UIFurtherTitle}}</summary>
    <p class="more-recs-intro">{{.UIFurtherIntro}}</p>
    {{range .Further}}<h5>{{.Category}}</h5>
    <ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
    {{end}}
  </details>
  {{else}}
  <p><strong>{{.UINoFurther}}</strong></p>
  {{end}}
</div>
</body>
</html>
`
