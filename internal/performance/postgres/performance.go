package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "github.com/frahmantamala/workforce-ops/internal/core/datamodel/performance"
	"github.com/frahmantamala/workforce-ops/internal/performance"
)

// PerformanceRepository implements performance.Repository using GORM
type PerformanceRepository struct {
	db *gorm.DB
}

func NewPerformanceRepository(db *gorm.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

// Upsert relies on record_key being the primary key, so the last write for a
// user's hour wins.
func (r *PerformanceRepository) Upsert(ctx context.Context, rec performance.Record) error {
	row := model.Record{
		RecordKey:      rec.Key(),
		UserID:         rec.UserID,
		Date:           rec.Date,
		Hour:           rec.Hour,
		CompletionRate: rec.CompletionRate,
		Timestamp:      rec.Timestamp,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "record_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"completion_rate", "timestamp"}),
		}).
		Create(&row).Error
}

func (r *PerformanceRepository) ListByUser(ctx context.Context, userID string) ([]performance.Record, error) {
	var rows []model.Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]performance.Record, len(rows))
	for i, row := range rows {
		out[i] = performance.Record{
			UserID:         row.UserID,
			Date:           row.Date,
			Hour:           row.Hour,
			CompletionRate: row.CompletionRate,
			Timestamp:      row.Timestamp,
		}
	}
	return out, nil
}
