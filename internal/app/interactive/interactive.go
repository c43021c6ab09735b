package interactive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MOYARU/cyberchecklist/internal/app/output"
	"github.com/MOYARU/cyberchecklist/internal/app/ui"
	"github.com/MOYARU/cyberchecklist/internal/checklist"
	msges "github.com/MOYARU/cyberchecklist/internal/messages"
	"github.com/MOYARU/cyberchecklist/internal/report"
	"github.com/MOYARU/cyberchecklist/internal/session"
)

const progressWidth = 20

var answerKeys = map[rune]report.Value{
	'y': report.ValueYes,
	'n': report.ValueNo,
	'u': report.ValueUnknown,
}

var defaultLabels = map[report.Value]string{
	report.ValueYes:     "Yes",
	report.ValueNo:      "No",
	report.ValueUnknown: "Not sure",
}

type Options struct {
	Bank      *checklist.Bank
	In        io.Reader
	Out       io.Writer
	Logger    *zap.Logger
	Highlight time.Duration
	OutputDir string
	BaseName  string
	Banner    string
}

type runner struct {
	ctrl   *session.Controller
	keys   *ui.KeyReader
	out    io.Writer
	logger *zap.Logger

	outputDir string
	baseName  string

	// cursor is the question awaiting an answer on the current page; it
	// equals the page length once every question has been visited.
	cursor int
}

// RunInteractiveMode walks the user through the questionnaire page by page,
// shows the results and offers the export actions.
func RunInteractiveMode(opts Options) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Bank == nil {
		opts.Bank = checklist.Default()
	}

	r := &runner{
		ctrl: session.New(opts.Bank,
			session.WithLogger(opts.Logger),
			session.WithHighlight(opts.Highlight)),
		keys:      ui.NewKeyReader(opts.In),
		out:       opts.Out,
		logger:    opts.Logger,
		outputDir: opts.OutputDir,
		baseName:  opts.BaseName,
	}

	if opts.Banner != "" {
		ui.PrintGradientAsciiArt(r.out)
		fmt.Fprintln(r.out, opts.Banner)
	}
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorGray, msges.GetUIMessage("InteractiveWelcome"), ui.ColorReset)
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorGray, msges.GetUIMessage("InteractiveKeys"), ui.ColorReset)

	return r.exit(r.loop())
}

func (r *runner) loop() error {
	r.cursor = r.firstUnanswered(0)
	r.renderPage()
	for {
		if r.ctrl.Results() != nil {
			done, err := r.resultsMenu()
			if err != nil || done {
				return err
			}
			continue
		}

		r.prompt()
		key, err := r.keys.ReadKey()
		if err != nil {
			return err
		}
		quit, err := r.handleKey(key)
		if err != nil || quit {
			return err
		}
	}
}

func (r *runner) exit(err error) error {
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, ui.ErrInterrupted) {
		fmt.Fprintf(r.out, "\n%s%s%s\n", ui.ColorGray, msges.GetUIMessage("InteractiveExit"), ui.ColorReset)
		return nil
	}
	return err
}

func (r *runner) answering() bool {
	return r.cursor < len(r.ctrl.CurrentPage().Questions)
}

func (r *runner) handleKey(key rune) (bool, error) {
	page := r.ctrl.CurrentPage()

	switch {
	case key == 'q':
		ok, err := ui.Confirm(r.keys, r.out, msges.GetUIMessage("InteractiveQuitConfirm"))
		if err != nil || ok {
			return true, err
		}
		r.renderPage()
		return false, nil
	case key >= '1' && key <= '9':
		if i := int(key - '1'); i < len(page.Questions) {
			r.cursor = i
		}
		return false, nil
	}

	if !r.answering() {
		if b, ok := r.ctrl.Lookup(key); ok {
			r.navigate(b)
		}
		return false, nil
	}

	q := page.Questions[r.cursor]
	switch key {
	case 'y', 'n', 'u':
		if err := r.ctrl.Select(q.ID, answerKeys[key]); err != nil {
			fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed, err, ui.ColorReset)
			return false, nil
		}
		r.advance(r.firstUnanswered(r.cursor + 1))
	case 's':
		r.advance(r.cursor + 1)
	case '\n':
		bindings := r.ctrl.Bindings()
		r.navigate(bindings[len(bindings)-1])
	case 'b':
		if b, ok := r.ctrl.Lookup('b'); ok {
			r.navigate(b)
		}
	}
	return false, nil
}

// advance moves the cursor, showing the page summary once the last
// question has been passed.
func (r *runner) advance(next int) {
	r.cursor = next
	if !r.answering() {
		r.renderPage()
	}
}

func (r *runner) navigate(b session.Binding) {
	out, err := r.ctrl.Dispatch(b.Action)

	var verr *session.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintf(r.out, "\n%s%s%s\n", ui.ColorRed, verr.Error(), ui.ColorReset)
		r.renderPage()
		r.cursor = r.indexOf(verr.Unanswered[0])
		return
	case err != nil:
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed, err, ui.ColorReset)
		return
	}

	if out != nil {
		r.renderProgress()
		fmt.Fprintln(r.out)
		output.PrintResults(r.out, out)
		return
	}
	r.cursor = r.firstUnanswered(0)
	r.renderPage()
}

func (r *runner) firstUnanswered(from int) int {
	qs := r.ctrl.CurrentPage().Questions
	for i := from; i < len(qs); i++ {
		if _, ok := r.ctrl.Selection(qs[i].ID); !ok {
			return i
		}
	}
	return len(qs)
}

func (r *runner) indexOf(questionID string) int {
	for i, q := range r.ctrl.CurrentPage().Questions {
		if q.ID == questionID {
			return i
		}
	}
	return 0
}

func (r *runner) renderProgress() {
	p := r.ctrl.Progress()
	fmt.Fprintf(r.out, "\n%s%s %s%s\n", ui.ColorGray, ui.ProgressBar(p.Fraction, progressWidth), p.Label, ui.ColorReset)
}

func (r *runner) renderPage() {
	r.renderProgress()
	page := r.ctrl.CurrentPage()
	if page.Title != "" {
		fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorWhite, page.Title, ui.ColorReset)
	}

	for i, q := range page.Questions {
		line := msges.GetUIMessage("QuestionPrompt", i+1, report.PlainText(q.Title))
		if v, ok := r.ctrl.Selection(q.ID); ok {
			line += fmt.Sprintf("  %s[%s]%s", ui.ColorGreen, choiceLabel(&q, v), ui.ColorReset)
		}
		if r.ctrl.Flagged(q.ID) {
			fmt.Fprintf(r.out, " %s%s%s\n", ui.ColorRed, msges.GetUIMessage("QuestionFlagged", line), ui.ColorReset)
			continue
		}
		fmt.Fprintf(r.out, " %s\n", line)
	}
}

func (r *runner) prompt() {
	page := r.ctrl.CurrentPage()
	if r.answering() {
		q := page.Questions[r.cursor]
		var opts []string
		for _, c := range q.Choices {
			opts = append(opts, fmt.Sprintf("[%c] %s", string(c.Value)[0], choiceLabel(&q, c.Value)))
		}
		fmt.Fprintf(r.out, "\n%s\n", msges.GetUIMessage("QuestionPrompt", r.cursor+1, report.PlainText(q.Title)))
		if q.Help != "" {
			fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorGray, report.PlainText(q.Help), ui.ColorReset)
		}
		fmt.Fprintf(r.out, "%s%s%s > ", ui.ColorGray, strings.Join(opts, "  "), ui.ColorReset)
		return
	}

	var controls []string
	for _, b := range r.ctrl.Bindings() {
		controls = append(controls, fmt.Sprintf("[%c] %s", b.Key, b.Label))
	}
	controls = append(controls, fmt.Sprintf("[1-%d] change answer", len(page.Questions)), "[q] Quit")
	fmt.Fprintf(r.out, "\n%s%s%s > ", ui.ColorGray, strings.Join(controls, "  "), ui.ColorReset)
}

func (r *runner) resultsMenu() (bool, error) {
	fmt.Fprintf(r.out, "\n%s%s%s > ", ui.ColorGray, msges.GetUIMessage("ResultActions"), ui.ColorReset)
	key, err := r.keys.ReadKey()
	if err != nil {
		return true, err
	}

	results := r.ctrl.Results()
	switch key {
	case 'j':
		path, err := output.SaveJSONReport(r.outputDir, r.baseName, results, r.ctrl.Bank().PageIDs())
		r.reportExport(output.JSONMimeType, "JSONReportSaved", path, err)
	case 'c':
		path, err := output.SaveCSVReport(r.outputDir, r.baseName, results)
		r.reportExport(output.CSVMimeType, "CSVReportSaved", path, err)
	case 'h':
		path, err := output.SaveHTMLReport(r.outputDir, r.baseName, results)
		r.reportExport(output.HTMLMimeType, "HTMLReportSaved", path, err)
	case 'r':
		r.ctrl.Restart()
		fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorGreen, msges.GetUIMessage("RestartDone"), ui.ColorReset)
		r.cursor = 0
		r.renderPage()
	case 'q':
		return true, nil
	}
	return false, nil
}

func (r *runner) reportExport(mime, msgID, path string, err error) {
	if err != nil {
		r.logger.Error("export failed", zap.String("mime", mime), zap.Error(err))
		fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorRed, msges.GetUIMessage("ExportFailed", err), ui.ColorReset)
		return
	}
	r.logger.Info("results exported", zap.String("mime", mime), zap.String("path", path))
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorGreen, msges.GetUIMessage(msgID, path), ui.ColorReset)
}

func choiceLabel(q *checklist.Question, v report.Value) string {
	if c, ok := q.Choice(v); ok && strings.TrimSpace(c.Label) != "" {
		return report.PlainText(c.Label)
	}
	return defaultLabels[v]
}
