package assess

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/MOYARU/cyberchecklist/internal/app/output"
	"github.com/MOYARU/cyberchecklist/internal/app/ui"
	"github.com/MOYARU/cyberchecklist/internal/checklist"
	msges "github.com/MOYARU/cyberchecklist/internal/messages"
	"github.com/MOYARU/cyberchecklist/internal/report"
	"github.com/MOYARU/cyberchecklist/internal/scoring"
)

// Options configures one batch assessment.
type Options struct {
	AnswersPath string
	Bank        *checklist.Bank
	OutputDir   string
	BaseName    string
	JSON        bool
	CSV         bool
	HTML        bool
	Out         io.Writer
	Logger      *zap.Logger
}

// RunAssessment scores an answers file against the bank, prints the results
// block and writes the requested exports.
func RunAssessment(opts Options) (*scoring.Outcome, error) {
	w := opts.Out
	if w == nil {
		w = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	bank := opts.Bank
	if bank == nil {
		bank = checklist.Default()
	}

	data, err := os.ReadFile(opts.AnswersPath)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	form, err := ParseAnswers(data)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "%s%s%s\n", ui.ColorGray, msges.GetUIMessage("AnswersLoaded", len(form), opts.AnswersPath), ui.ColorReset)

	for _, f := range form {
		if !report.Value(f.Value).Valid() {
			logger.Warn("ignoring answer", zap.String("question", f.Name), zap.String("value", f.Value))
			fmt.Fprintf(w, "%s%s%s\n", ui.ColorYellow, msges.GetUIMessage("UnknownAnswerValue", f.Value), ui.ColorReset)
		}
	}

	out := scoring.Score(bank, form)
	logger.Info("assessment scored",
		zap.String("answers", opts.AnswersPath),
		zap.Int("safe", out.Results.Overall.SafeCount),
		zap.Int("total", out.Results.Overall.Total),
		zap.String("risk", string(out.Risk.Level)),
	)

	fmt.Fprintln(w)
	output.PrintResults(w, out)

	if err := export(w, logger, opts, bank, out); err != nil {
		return out, err
	}
	return out, nil
}

func export(w io.Writer, logger *zap.Logger, opts Options, bank *checklist.Bank, out *scoring.Outcome) error {
	if opts.JSON {
		path, err := output.SaveJSONReport(opts.OutputDir, opts.BaseName, out, bank.PageIDs())
		if err != nil {
			return fmt.Errorf("json export: %w", err)
		}
		logger.Info("results exported", zap.String("format", "json"), zap.String("mime", output.JSONMimeType), zap.String("path", path))
		fmt.Fprintf(w, "\n%s%s%s\n", ui.ColorGreen, msges.GetUIMessage("JSONReportSaved", path), ui.ColorReset)
	}
	if opts.CSV {
		path, err := output.SaveCSVReport(opts.OutputDir, opts.BaseName, out)
		if err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
		logger.Info("results exported", zap.String("format", "csv"), zap.String("mime", output.CSVMimeType), zap.String("path", path))
		fmt.Fprintf(w, "%s%s%s\n", ui.ColorGreen, msges.GetUIMessage("CSVReportSaved", path), ui.ColorReset)
	}
	if opts.HTML {
		path, err := output.SaveHTMLReport(opts.OutputDir, opts.BaseName, out)
		if err != nil {
			return fmt.Errorf("html export: %w", err)
		}
		logger.Info("results exported", zap.String("format", "html"), zap.String("mime", output.HTMLMimeType), zap.String("path", path))
		fmt.Fprintf(w, "%s%s%s\n", ui.ColorGreen, msges.GetUIMessage("HTMLReportSaved", path), ui.ColorReset)
	}
	return nil
}
