package checklist

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/MOYARU/cyberchecklist/internal/report"
)

// ParseHTML imports a checklist form. Pages are elements carrying the
// "page" class and an id; each radio input contributes a choice to the
// question named by its name attribute, with data-priority and
// data-recommendation as choice metadata. Question titles come from the
// enclosing .accordion-item's .accordion-title.
func ParseHTML(r io.Reader) (*Bank, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse checklist form: %w", err)
	}

	b := &Bank{Name: strings.TrimSpace(textOf(findFirst(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Title
	})))}

	pageNodes := findAll(doc, func(n *html.Node) bool {
		return hasClass(n, "page") && attr(n, "id") != ""
	})
	if len(pageNodes) == 0 {
		pageNodes = []*html.Node{doc}
	}

	for _, pn := range pageNodes {
		p := Page{ID: attr(pn, "id")}
		if h := findFirst(pn, func(n *html.Node) bool { return n.DataAtom == atom.H2 }); h != nil {
			p.Title = strings.TrimSpace(textOf(h))
		}
		collectQuestions(pn, "", &p)
		if len(p.Questions) > 0 {
			b.Pages = append(b.Pages, p)
		}
	}

	if err := b.init(); err != nil {
		return nil, fmt.Errorf("checklist form: %w", err)
	}
	return b, nil
}

func collectQuestions(n *html.Node, title string, p *Page) {
	if hasClass(n, "accordion-item") {
		if t := findFirst(n, func(c *html.Node) bool { return hasClass(c, "accordion-title") }); t != nil {
			title = strings.TrimSpace(textOf(t))
		}
	}

	if n.DataAtom == atom.Input && strings.EqualFold(attr(n, "type"), "radio") {
		addChoice(p, n, title)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectQuestions(c, title, p)
	}
}

func addChoice(p *Page, n *html.Node, title string) {
	name := strings.TrimSpace(attr(n, "name"))
	value := report.Value(strings.TrimSpace(attr(n, "value")))
	if name == "" || !value.Valid() {
		return
	}

	var q *Question
	for i := range p.Questions {
		if p.Questions[i].ID == name {
			q = &p.Questions[i]
			break
		}
	}
	if q == nil {
		p.Questions = append(p.Questions, Question{ID: name, Title: title})
		q = &p.Questions[len(p.Questions)-1]
	}
	if _, dup := q.Choice(value); dup {
		return
	}

	c := Choice{Value: value, Recommendation: strings.TrimSpace(attr(n, "data-recommendation"))}
	if raw := strings.TrimSpace(attr(n, "data-priority")); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			c.Priority = f
		}
	}
	if lbl := labelFor(n); lbl != "" {
		c.Label = lbl
	}
	q.Choices = append(q.Choices, c)
}

// labelFor returns the text of an enclosing <label>, if any.
func labelFor(n *html.Node) string {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.DataAtom == atom.Label {
			return strings.TrimSpace(textOf(p))
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
