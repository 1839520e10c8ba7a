package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Label is the classification assigned to a message by the scoring engine.
type Label string

const (
	LabelScam  Label = "Scam"
	LabelLegit Label = "Legit"
)

// Labels lists every valid label in a stable order.
var Labels = []Label{LabelScam, LabelLegit}

// ParseLabel reports whether s names a valid label. Matching is exact, as the
// scoring engine and the history filter both use the capitalised form.
func ParseLabel(s string) (Label, bool) {
	for _, l := range Labels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

func (l Label) Valid() bool {
	_, ok := ParseLabel(string(l))
	return ok
}

// Explanations is the ordered list of reasons returned with a score. It is
// stored as a JSON array in a single column.
type Explanations []string

func (e Explanations) Value() (driver.Value, error) {
	if e == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(e))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (e *Explanations) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*e = Explanations{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("explanations: unsupported column type %T", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("explanations: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*e = out
	return nil
}

// ScoredMessage represents a row in the 'messages' table.
type ScoredMessage struct {
	ID            string       `db:"id"`
	Text          string       `db:"message"`
	Label         Label        `db:"prediction"`
	Confidence    float64      `db:"probability"`
	Explanations  Explanations `db:"explanations"`
	SourceAddress *string      `db:"source_address"` // never selected by read queries
	CreatedAt     time.Time    `db:"created_at"`
}

// ScoreOutcome is a validated answer from the scoring engine.
type ScoreOutcome struct {
	Label        Label
	Confidence   float64
	Explanations []string
}

// AnalysisResult is the payload returned for a freshly analysed message.
type AnalysisResult struct {
	ID           string    `json:"id"`
	Message      string    `json:"message"`
	Prediction   Label     `json:"prediction"`
	Probability  float64   `json:"probability"`
	Explanations []string  `json:"explanations"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewAnalysisResult shapes a stored or ephemeral message for the analyze response.
func NewAnalysisResult(m ScoredMessage) *AnalysisResult {
	explanations := []string(m.Explanations)
	if explanations == nil {
		explanations = []string{}
	}
	return &AnalysisResult{
		ID:           m.ID,
		Message:      m.Text,
		Prediction:   m.Label,
		Probability:  m.Confidence,
		Explanations: explanations,
		Timestamp:    m.CreatedAt,
	}
}
