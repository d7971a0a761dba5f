package model

import "time"

// AnalysisRecord is one logged analysis. It holds the verdict only; the
// message, prompt and model answer are never stored.
type AnalysisRecord struct {
	ID          int64
	Category    string
	HasLink     bool
	HasUrgency  bool
	RiskDefault string
	Risk        string
	Urgency     string
	Degraded    bool
	ModelUsed   string
	DurationMS  int64
	CreatedAt   time.Time
}

type AnalysisStats struct {
	Total      int
	Degraded   int
	ByCategory map[string]int
	ByRisk     map[string]int
	ByUrgency  map[string]int
	Since      time.Time
}
