package report

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var reSpaces = regexp.MustCompile(`\s+`)

// PlainText flattens a recommendation snippet that may carry inline markup
// (links, emphasis) into readable text for terminals and CSV cells.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapseSpaces(s)
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return collapseSpaces(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "br" || string(name) == "li" || string(name) == "p" {
				b.WriteByte(' ')
			}
		}
	}
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// SanitizeFinding returns f with display-safe text fields.
func SanitizeFinding(f Finding) Finding {
	f.Title = PlainText(f.Title)
	f.Recommendation = PlainText(f.Recommendation)
	return f
}
