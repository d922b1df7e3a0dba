package postgres

import (
	"context"

	"gorm.io/gorm"

	model "github.com/frahmantamala/workforce-ops/internal/core/datamodel/issue"
	"github.com/frahmantamala/workforce-ops/internal/issue"
)

// IssueRepository implements issue.Repository using GORM
type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(ctx context.Context, is *issue.Issue) error {
	row := model.Issue{
		ID:          is.ID,
		UserID:      is.UserID,
		Title:       is.Title,
		Description: is.Description,
		Priority:    string(is.Priority),
		Category:    is.Category,
		Status:      string(is.Status),
		CreatedAt:   is.CreatedAt,
		UpdatedAt:   is.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *IssueRepository) ListByUser(ctx context.Context, userID string) ([]issue.Issue, error) {
	var rows []model.Issue
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]issue.Issue, len(rows))
	for i, row := range rows {
		out[i] = issue.Issue{
			ID:          row.ID,
			UserID:      row.UserID,
			Title:       row.Title,
			Description: row.Description,
			Priority:    issue.Priority(row.Priority),
			Category:    row.Category,
			Status:      issue.Status(row.Status),
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		}
	}
	return out, nil
}
