package models

import "time"

// MessageFilter narrows history and count queries. A nil Label matches all rows.
type MessageFilter struct {
	Label *Label
}

// MessageView is a history item as exposed over the API. It has no source address.
type MessageView struct {
	ID           string    `json:"id"`
	Message      string    `json:"message"`
	Prediction   Label     `json:"prediction"`
	Probability  float64   `json:"probability"`
	Explanations []string  `json:"explanations"`
	Timestamp    time.Time `json:"timestamp"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewMessageView(m ScoredMessage) MessageView {
	explanations := []string(m.Explanations)
	if explanations == nil {
		explanations = []string{}
	}
	return MessageView{
		ID:           m.ID,
		Message:      m.Text,
		Prediction:   m.Label,
		Probability:  m.Confidence,
		Explanations: explanations,
		Timestamp:    m.CreatedAt,
		CreatedAt:    m.CreatedAt,
	}
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Skip    int  `json:"skip"`
	HasMore bool `json:"hasMore"`
}

type HistoryPage struct {
	Messages   []MessageView `json:"messages"`
	Pagination Pagination    `json:"pagination"`
}

// ConfidenceStats summarises the probabilities recorded for one label.
type ConfidenceStats struct {
	AvgProbability float64 `json:"avgProbability"`
	MinProbability float64 `json:"minProbability"`
	MaxProbability float64 `json:"maxProbability"`
}

// Stats is the aggregate view served by GET /api/stats. ScamStats and
// LegitStats are nil when no message carries that label.
type Stats struct {
	TotalMessages   int              `json:"totalMessages"`
	ScamCount       int              `json:"scamCount"`
	LegitCount      int              `json:"legitCount"`
	ScamPercentage  float64          `json:"scamPercentage"`
	LegitPercentage float64          `json:"legitPercentage"`
	ScamStats       *ConfidenceStats `json:"scamStats"`
	LegitStats      *ConfidenceStats `json:"legitStats"`
}
