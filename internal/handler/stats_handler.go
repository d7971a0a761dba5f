package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingshuk-14/sathiAI/internal/model"
	"github.com/kingshuk-14/sathiAI/pkg/message"
)

type AnalysisStore interface {
	GetStats(since time.Time, categories []string) (*model.AnalysisStats, error)
	GetRecent(limit, offset int) ([]model.AnalysisRecord, error)
	GetTotal() (int, error)
}

type StatsHandler struct {
	repository AnalysisStore
	now        func() time.Time
}

// NewStatsHandler accepts a nil store when the analysis log is disabled.
func NewStatsHandler(repository AnalysisStore) *StatsHandler {
	return &StatsHandler{repository: repository, now: time.Now}
}

func (h *StatsHandler) available(c *gin.Context) bool {
	if h.repository == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis log is not configured"})
		return false
	}
	return true
}

// GetStats counts analyses over the last ?days= days (default 7), optionally
// limited to ?category=bank,otp.
func (h *StatsHandler) GetStats(c *gin.Context) {
	if !h.available(c) {
		return
	}

	days := getQueryInt("days", 7, c)
	if days < 1 {
		days = 7
	}
	since := h.now().AddDate(0, 0, -days).UTC()

	var categories []string
	if raw := c.Query("category"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			cat := message.ParseCategory(name)
			if cat.String() != strings.ToLower(strings.TrimSpace(name)) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + name})
				return
			}
			categories = append(categories, cat.String())
		}
	}

	stats, err := h.repository.GetStats(since, categories)
	if err != nil {
		slog.Error("error fetching analysis stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		Total:      stats.Total,
		Degraded:   stats.Degraded,
		ByCategory: stats.ByCategory,
		ByRisk:     stats.ByRisk,
		ByUrgency:  stats.ByUrgency,
		Since:      since.Format(time.RFC3339),
	})
}

func toAnalysisLogResponse(a model.AnalysisRecord) AnalysisLogResponse {
	return AnalysisLogResponse{
		ID:         a.ID,
		Category:   a.Category,
		HasLink:    a.HasLink,
		HasUrgency: a.HasUrgency,
		Risk:       a.Risk,
		Urgency:    a.Urgency,
		Degraded:   a.Degraded,
		ModelUsed:  a.ModelUsed,
		DurationMS: a.DurationMS,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

func (h *StatsHandler) GetRecent(c *gin.Context) {
	if !h.available(c) {
		return
	}

	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	records, err := h.repository.GetRecent(limit, offset)
	if err != nil {
		slog.Error("error fetching analysis log", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetTotal()
	if err != nil {
		slog.Error("error fetching analysis total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := AnalysisLogPage{
		Items:  make([]AnalysisLogResponse, 0, len(records)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, r := range records {
		res.Items = append(res.Items, toAnalysisLogResponse(r))
	}

	c.JSON(http.StatusOK, res)
}
