package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/frahmantamala/workforce-ops/internal/checklist"
	model "github.com/frahmantamala/workforce-ops/internal/core/datamodel/checklist"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
)

// TemplateRepository implements checklist.TemplateRepository using GORM
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) GetByRole(ctx context.Context, rl role.Role) (*checklist.Template, error) {
	var row model.Template
	err := r.db.WithContext(ctx).Where("role = ?", string(rl)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checklist.ErrTemplateNotFound
		}
		return nil, err
	}

	var items []checklist.Item
	if err := json.Unmarshal(row.Items, &items); err != nil {
		return nil, fmt.Errorf("decode template items for %s: %w", row.Role, err)
	}

	return &checklist.Template{
		ID:    row.ID,
		Role:  role.Role(row.Role),
		Title: row.Title,
		Items: items,
	}, nil
}

// Save upserts on the role column, so each role has exactly one template.
func (r *TemplateRepository) Save(ctx context.Context, t *checklist.Template) error {
	items, err := json.Marshal(t.Items)
	if err != nil {
		return fmt.Errorf("encode template items: %w", err)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	row := model.Template{
		ID:    t.ID,
		Role:  string(t.Role),
		Title: t.Title,
		Items: datatypes.JSON(items),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "role"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "items", "updated_at"}),
		}).
		Create(&row).Error
}

// SubmissionRepository implements checklist.SubmissionRepository using GORM
type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *checklist.Submission) error {
	responses, err := json.Marshal(s.Responses)
	if err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}

	row := model.Submission{
		ID:             s.ID,
		UserID:         s.UserID,
		ChecklistID:    s.ChecklistID,
		Responses:      datatypes.JSON(responses),
		Notes:          s.Notes,
		CompletionRate: s.CompletionRate,
		Date:           s.Date,
		Hour:           s.Hour,
		SubmittedAt:    s.Timestamp,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// ListByUser returns the user's most recent submissions first.
func (r *SubmissionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]checklist.Submission, error) {
	var rows []model.Submission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]checklist.Submission, 0, len(rows))
	for _, row := range rows {
		var responses []checklist.Response
		if err := json.Unmarshal(row.Responses, &responses); err != nil {
			return nil, fmt.Errorf("decode responses of %s: %w", row.ID, err)
		}
		out = append(out, checklist.Submission{
			ID:             row.ID,
			UserID:         row.UserID,
			ChecklistID:    row.ChecklistID,
			Responses:      responses,
			Notes:          row.Notes,
			CompletionRate: row.CompletionRate,
			Timestamp:      row.SubmittedAt,
			Date:           row.Date,
			Hour:           row.Hour,
		})
	}
	return out, nil
}
