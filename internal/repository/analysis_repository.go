package repository

import (
	"database/sql"
	"time"

	"github.com/kingshuk-14/sathiAI/internal/model"

	"github.com/lib/pq"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) SaveAnalysis(rec *model.AnalysisRecord) error {
	return r.db.QueryRow(`
		INSERT INTO analysis_log(category, has_link, has_urgency, risk_default, risk, urgency, degraded, model_used, duration_ms)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, rec.Category, rec.HasLink, rec.HasUrgency, rec.RiskDefault, rec.Risk, rec.Urgency, rec.Degraded, rec.ModelUsed, rec.DurationMS).Scan(&rec.ID, &rec.CreatedAt)
}

// GetStats counts analyses logged since the given time. A nil categories
// slice counts every category.
func (r *AnalysisRepository) GetStats(since time.Time, categories []string) (*model.AnalysisStats, error) {
	rows, err := r.db.Query(`
		SELECT category, risk, urgency, degraded, COUNT(*)
		FROM analysis_log
		WHERE created_at >= $1
		  AND ($2::text[] IS NULL OR category = ANY($2))
		GROUP BY category, risk, urgency, degraded
	`, since, pq.Array(categories))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &model.AnalysisStats{
		ByCategory: map[string]int{},
		ByRisk:     map[string]int{},
		ByUrgency:  map[string]int{},
		Since:      since,
	}

	for rows.Next() {
		var category, risk, urgency string
		var degraded bool
		var count int
		if err := rows.Scan(&category, &risk, &urgency, &degraded, &count); err != nil {
			return nil, err
		}

		stats.Total += count
		stats.ByCategory[category] += count
		stats.ByRisk[risk] += count
		stats.ByUrgency[urgency] += count
		if degraded {
			stats.Degraded += count
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *AnalysisRepository) GetRecent(limit, offset int) ([]model.AnalysisRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, category, has_link, has_urgency, risk_default, risk, urgency, degraded, model_used, duration_ms, created_at
		FROM analysis_log
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AnalysisRecord
	for rows.Next() {
		var a model.AnalysisRecord
		err := rows.Scan(&a.ID, &a.Category, &a.HasLink, &a.HasUrgency, &a.RiskDefault, &a.Risk, &a.Urgency, &a.Degraded, &a.ModelUsed, &a.DurationMS, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *AnalysisRepository) GetTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM analysis_log`).Scan(&total)
	return total, err
}
