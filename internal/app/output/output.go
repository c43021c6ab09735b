package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/MOYARU/cyberchecklist/internal/app/ui"
	msges "github.com/MOYARU/cyberchecklist/internal/messages"
	"github.com/MOYARU/cyberchecklist/internal/report"
	"github.com/MOYARU/cyberchecklist/internal/scoring"
)

// roundPercent rounds half up, matching how scores are displayed everywhere.
func roundPercent(p float64) int {
	return int(math.Floor(p + 0.5))
}

// PrintResults writes the results block: risk band, score, category
// breakdown, top fixes and the grouped further recommendations.
func PrintResults(w io.Writer, out *scoring.Outcome) {
	if out == nil {
		return
	}
	rs := out.Results

	headline := ui.RiskLabel(out.Risk) + "\n" +
		msges.GetUIMessage("ScoreLine", rs.Overall.SafeCount, rs.Overall.Total, roundPercent(out.Percent)) + "\n" +
		out.Risk.Message
	fmt.Fprintln(w, ui.RiskBox(out.Risk.Level, headline))

	fmt.Fprintf(w, "\n%s%s%s\n", ui.ColorWhite, msges.GetUIMessage("CategoryBreakdown"), ui.ColorReset)
	fmt.Fprintf(w, "%s%s%s\n", ui.ColorGray, msges.GetUIMessage("CategoryExplainer"), ui.ColorReset)
	printCategoryTable(w, rs.Categories)

	if len(rs.TopFive) > 0 {
		fmt.Fprintf(w, "\n%s%s%s\n", ui.ColorWhite, msges.GetUIMessage("TopFixesTitle"), ui.ColorReset)
		fmt.Fprintf(w, "%s%s%s\n", ui.ColorGray, msges.GetUIMessage("TopFixesIntro"), ui.ColorReset)
		for i, f := range rs.TopFive {
			f = report.SanitizeFinding(f)
			marker := ""
			color := priorityColor(f.Priority)
			if f.Urgent() {
				marker = ui.UrgentStyle.Render("⚠️ ")
			}
			fmt.Fprintf(w, " %d. %s%s%s%s - %s\n", i+1, marker, color, f.Title, ui.ColorReset, f.Recommendation)
		}
	}

	if out.FurtherCount() == 0 {
		fmt.Fprintf(w, "\n%s%s%s\n", ui.ColorGreen, msges.GetUIMessage("NoFurtherActions"), ui.ColorReset)
		return
	}
	fmt.Fprintf(w, "\n%s%s%s\n", ui.ColorWhite, msges.GetUIMessage("FurtherTitle", out.FurtherCount()), ui.ColorReset)
	fmt.Fprintf(w, "%s%s%s\n", ui.ColorGray, msges.GetUIMessage("FurtherIntro"), ui.ColorReset)
	for _, g := range out.Further {
		fmt.Fprintf(w, "\n %s\n", g.Category)
		for i, rec := range g.Items {
			prefix := " \t|--"
			if i == len(g.Items)-1 {
				prefix = " \t`--"
			}
			fmt.Fprintf(w, "%s %s\n", prefix, report.PlainText(rec))
		}
	}
}

func printCategoryTable(w io.Writer, categories report.CategoryTable) {
	width := len(msges.GetUIMessage("CategoryHeader"))
	for _, c := range categories {
		if n := len(c.Category); n > width {
			width = n
		}
	}
	fmt.Fprintf(w, " %-*s  %-8s  %s\n", width, msges.GetUIMessage("CategoryHeader"), msges.GetUIMessage("ScoreHeader"), msges.GetUIMessage("PercentHeader"))
	fmt.Fprintf(w, " %s\n", strings.Repeat("-", width+20))
	for _, c := range categories {
		score := fmt.Sprintf("%d / %d", c.Safe, c.Total)
		fmt.Fprintf(w, " %-*s  %-8s  %d%%\n", width, c.Category, score, roundPercent(c.Percent()))
	}
}

func priorityColor(p float64) string {
	switch {
	case p >= report.UrgentPriority:
		return ui.ColorHigh
	case p >= 4:
		return ui.ColorMedium
	default:
		return ui.ColorLow
	}
}
