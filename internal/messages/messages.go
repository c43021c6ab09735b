package messages

import (
	"fmt"
)

// uiMessages holds the user-facing strings of the terminal UI and reports.
var uiMessages = map[string]string{
	"InteractiveWelcome":       "Welcome to the household cyber security checklist. Answer with y (yes), n (no) or u (not sure).",
	"InteractiveKeys":          "Keys: y/n/u answer, s skip, b back a page, q quit",
	"InteractiveExit":          "Exiting program.",
	"InteractiveQuitConfirm":   "Quit without finishing the assessment?",
	"PageIndicator":            "Page %d of %d",
	"AssessmentComplete":       "Assessment Complete",
	"NextButton":               "Next",
	"BackButton":               "Back",
	"CompleteButton":           "Complete Assessment",
	"ValidationSingle":         "Please answer the highlighted question before continuing.",
	"ValidationMultiple":       "Please answer all highlighted questions before continuing.",
	"ScoreLine":                "You scored %d out of %d (%d%%)",
	"CategoryBreakdown":        "Category breakdown",
	"CategoryExplainer":        "Each category shows how many of your answers were safe practices (\"Yes\") compared to the total questions. The percentage helps you see where you're strongest and where you could improve.",
	"CategoryHeader":           "Category",
	"ScoreHeader":              "Score",
	"PercentHeader":            "Percent",
	"TopFixesTitle":            "Your Most Urgent Fixes",
	"TopFixesIntro":            "Start with these actions. The higher the priority, the more urgent the fix.",
	"FurtherTitle":             "Other things you could improve (%d)",
	"FurtherIntro":             "These are extra steps you might want to look at after fixing the top 5.",
	"NoFurtherActions":         "You're doing great! No other immediate actions required at this time.",
	"ResultActions":            "[j] Download JSON  [c] Download CSV  [h] Save HTML  [r] Start Over  [q] Quit",
	"JSONReportSaved":          "JSON results saved: %s",
	"CSVReportSaved":           "CSV results saved: %s",
	"HTMLReportSaved":          "HTML results saved: %s",
	"ExportFailed":             "Export failed: %v",
	"HTMLReportTitle":          "Household Cyber Security Results",
	"HTMLExportedAt":           "Generated",
	"AssessFailed":             "Assessment failed",
	"AnswersLoaded":            "Loaded %d answers from %s",
	"UnknownAnswerValue":       "Unknown answer %q, use y, n or u.",
	"ConfigUsage":              "Usage: config show | set <key> <value>",
	"ConfigUpdated":            "Updated %s in %s",
	"BankUsage":                "Usage: bank show | export <form.html> [out.yaml]",
	"BankExported":             "Question bank written to %s",
	"QuestionPrompt":           "%d. %s",
	"QuestionFlagged":          "(!) %s",
	"RestartDone":              "Answers cleared. Starting over.",
}

// GetUIMessage returns the formatted UI string for id, or id itself when
// no string is registered.
func GetUIMessage(id string, args ...interface{}) string {
	format, ok := uiMessages[id]
	if !ok || format == "" {
		return id
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}
