package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MOYARU/cyberchecklist/internal/report"
)

var riskColors = map[report.RiskLevel]lipgloss.Color{
	report.RiskLow:        lipgloss.Color("#2ECC71"),
	report.RiskLowMedium:  lipgloss.Color("#A3D95B"),
	report.RiskMedium:     lipgloss.Color("#F4D03F"),
	report.RiskMediumHigh: lipgloss.Color("#E67E22"),
	report.RiskHigh:       lipgloss.Color("#E74C3C"),
}

var (
	TitleStyle  = lipgloss.NewStyle().Bold(true)
	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7F8C8D"))
	UrgentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E74C3C"))
)

// RiskBox frames the headline of a results block in the band's colour.
func RiskBox(level report.RiskLevel, body string) string {
	color, ok := riskColors[level]
	if !ok {
		color = lipgloss.Color("#BDC3C7")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Render(body)
}

// RiskLabel renders a band label in the band's colour.
func RiskLabel(r report.Risk) string {
	color, ok := riskColors[r.Level]
	if !ok {
		return TitleStyle.Render(r.Label)
	}
	return TitleStyle.Foreground(color).Render(r.Label)
}
