package handler

import (
	"github.com/kingshuk-14/sathiAI/pkg/answer"
	"github.com/kingshuk-14/sathiAI/pkg/message"
)

type AnalyzeRequest struct {
	Text          string `json:"text" form:"text"`
	ExtractedText string `json:"extracted_text" form:"extracted_text"`
}

type AnalyzeResponse struct {
	Category      message.Category    `json:"category"`
	HasLink       bool                `json:"has_link"`
	HasUrgency    bool                `json:"has_urgency"`
	Sections      answer.Sections     `json:"sections"`
	Risk          message.RiskLevel   `json:"risk"`
	Urgency       answer.UrgencyLevel `json:"urgency"`
	Degraded      bool                `json:"degraded"`
	ExtractedText string              `json:"extracted_text,omitempty"`
}

type ClassifyRequest struct {
	Text string `json:"text"`
}

type ClassifyResponse struct {
	Category   message.Category `json:"category"`
	HasLink    bool             `json:"has_link"`
	HasUrgency bool             `json:"has_urgency"`
	Prompt     string           `json:"prompt"`
}

type StatsResponse struct {
	Total      int            `json:"total"`
	Degraded   int            `json:"degraded"`
	ByCategory map[string]int `json:"by_category"`
	ByRisk     map[string]int `json:"by_risk"`
	ByUrgency  map[string]int `json:"by_urgency"`
	Since      string         `json:"since"`
}

type AnalysisLogResponse struct {
	ID         int64  `json:"id"`
	Category   string `json:"category"`
	HasLink    bool   `json:"has_link"`
	HasUrgency bool   `json:"has_urgency"`
	Risk       string `json:"risk"`
	Urgency    string `json:"urgency"`
	Degraded   bool   `json:"degraded"`
	ModelUsed  string `json:"model_used"`
	DurationMS int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at"`
}

type AnalysisLogPage struct {
	Items  []AnalysisLogResponse `json:"items"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}
