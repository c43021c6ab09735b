package report

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Category string
type Value string

const (
	CategorySmartHome   Category = "Smart Home"
	CategoryPasswords   Category = "Password Hygiene"
	CategoryHomeNetwork Category = "Home Network"
	CategoryPrivacy     Category = "Privacy & Data Awareness"
	CategoryPhishing    Category = "Social Engineering & Phishing"
	CategoryGeneral     Category = "General"

	ValueYes     Value = "yes"
	ValueNo      Value = "no"
	ValueUnknown Value = "unknown"
)

// UrgentPriority marks a finding as a most-urgent fix.
const UrgentPriority = 5

// Valid reports whether v is one of the three accepted answer values.
func (v Value) Valid() bool {
	return v == ValueYes || v == ValueNo || v == ValueUnknown
}

// Unsafe reports whether the answer represents an actionable gap.
func (v Value) Unsafe() bool {
	return v == ValueNo || v == ValueUnknown
}

type Answer struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Value    Value    `json:"value"`
}

type Finding struct {
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Category       Category `json:"category"`
	Value          Value    `json:"value"`
	Priority       float64  `json:"priority"`
	Recommendation string   `json:"recommendation"`
}

func (f Finding) Urgent() bool {
	return f.Priority >= UrgentPriority
}

type Overall struct {
	SafeCount int `json:"safeCount"`
	Total     int `json:"total"`
}

func (o Overall) Percent() float64 {
	return SafePercent(o.SafeCount, o.Total)
}

type CategoryAggregate struct {
	Category Category `json:"-"`
	Safe     int      `json:"safe"`
	Total    int      `json:"total"`
}

func (c CategoryAggregate) Percent() float64 {
	return SafePercent(c.Safe, c.Total)
}

// CategoryTable keeps per-category aggregates in first-seen order and
// encodes as a JSON object keyed by category label.
type CategoryTable []CategoryAggregate

// Get returns the aggregate for c, if present.
func (t CategoryTable) Get(c Category) (CategoryAggregate, bool) {
	for _, agg := range t {
		if agg.Category == c {
			return agg, true
		}
	}
	return CategoryAggregate{}, false
}

func (t CategoryTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, agg := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(agg.Category))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(agg)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (t *CategoryTable) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*t = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}

	var out CategoryTable
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("categories: expected key, got %v", keyTok)
		}
		var agg CategoryAggregate
		if err := dec.Decode(&agg); err != nil {
			return fmt.Errorf("categories[%s]: %w", key, err)
		}
		agg.Category = Category(key)
		out = append(out, agg)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = out
	return nil
}

// ResultSet is the full output of one scoring pass.
type ResultSet struct {
	Overall        Overall       `json:"overall"`
	Categories     CategoryTable `json:"categories"`
	Answers        []Answer      `json:"answers"`
	UnsafeFindings []Finding     `json:"unsafeFindings"`
	TopFive        []Finding     `json:"topFive"`
}

// SafePercent returns safe/total as a percentage, or 0 when total is 0.
func SafePercent(safe, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(safe) / float64(total) * 100
}

// RecommendationGroup lists remediation text for one category.
type RecommendationGroup struct {
	Category Category `json:"category"`
	Items    []string `json:"items"`
}
