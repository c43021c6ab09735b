package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MOYARU/cyberchecklist/internal/report"
	"github.com/MOYARU/cyberchecklist/internal/scoring"
)

const (
	JSONMimeType = "application/json;charset=utf-8"
	CSVMimeType  = "text/csv;charset=utf-8"
	HTMLMimeType = "text/html;charset=utf-8"

	DefaultBaseName = "cyberchecklist-results"
)

// JSONExport is the structured export document.
type JSONExport struct {
	ExportedAt string            `json:"exportedAt"`
	Pages      []string          `json:"pages"`
	Results    *report.ResultSet `json:"results"`
}

// BuildJSON renders the structured export. Before any scoring pass the
// results member is an empty object.
func BuildJSON(out *scoring.Outcome, pages []string, now time.Time) ([]byte, error) {
	var results any = struct{}{}
	if out != nil {
		results = out.Results
	}
	if pages == nil {
		pages = []string{}
	}

	doc := struct {
		ExportedAt string   `json:"exportedAt"`
		Pages      []string `json:"pages"`
		Results    any      `json:"results"`
	}{
		ExportedAt: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Pages:      pages,
		Results:    results,
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ParseJSON reads a structured export back.
func ParseJSON(data []byte) (*JSONExport, error) {
	var doc JSONExport
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode results export: %w", err)
	}
	return &doc, nil
}

// BuildCSV renders the flat export: overall, category breakdown, answers
// and top fixes, separated by empty rows.
func BuildCSV(out *scoring.Outcome) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	var rs report.ResultSet
	safe, total := "", ""
	if out != nil {
		rs = out.Results
		safe = strconv.Itoa(rs.Overall.SafeCount)
		total = strconv.Itoa(rs.Overall.Total)
	}

	rows := [][]string{
		{"Section", "Key", "Value"},
		{"Overall", "Safe", safe},
		{"Overall", "Total", total},
		{"Overall", "Percent", strconv.Itoa(roundPercent(rs.Overall.Percent()))},
		{},
		{"Category", "Safe", "Total", "Percent"},
	}
	for _, c := range rs.Categories {
		rows = append(rows, []string{
			string(c.Category),
			strconv.Itoa(c.Safe),
			strconv.Itoa(c.Total),
			strconv.Itoa(roundPercent(c.Percent())),
		})
	}

	rows = append(rows, []string{}, []string{"Answers"}, []string{"Question", "Category", "Answer"})
	for _, a := range rs.Answers {
		rows = append(rows, []string{a.Title, string(a.Category), string(a.Value)})
	}

	rows = append(rows, []string{}, []string{"Top 5 Fixes (priority-desc)"}, []string{"Title", "Category", "Priority", "Recommendation"})
	for _, f := range rs.TopFive {
		rows = append(rows, []string{
			f.Title,
			string(f.Category),
			strconv.FormatFloat(f.Priority, 'f', -1, 64),
			f.Recommendation,
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// WriteExport writes data to dir/name, creating dir if needed, and returns
// the written path.
func WriteExport(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// SaveJSONReport builds and writes <base>.json.
func SaveJSONReport(dir, base string, out *scoring.Outcome, pages []string) (string, error) {
	data, err := BuildJSON(out, pages, time.Now())
	if err != nil {
		return "", err
	}
	return WriteExport(dir, baseName(base)+".json", data)
}

// SaveCSVReport builds and writes <base>.csv.
func SaveCSVReport(dir, base string, out *scoring.Outcome) (string, error) {
	data, err := BuildCSV(out)
	if err != nil {
		return "", err
	}
	return WriteExport(dir, baseName(base)+".csv", []byte(data))
}

func baseName(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return DefaultBaseName
	}
	return base
}
