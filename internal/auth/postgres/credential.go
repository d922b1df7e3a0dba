package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/workforce-ops/internal/auth"
	"github.com/frahmantamala/workforce-ops/internal/core/datamodel/credential"
)

// CredentialRepository implements auth.CredentialRepository using GORM
type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Create(ctx context.Context, userID, passwordHash string) error {
	row := credential.Credential{UserID: userID, PasswordHash: passwordHash}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *CredentialRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&credential.Credential{}).Error
}

func (r *CredentialRepository) GetPasswordHash(ctx context.Context, userID string) (string, error) {
	var row credential.Credential
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", auth.ErrCredentialNotFound
		}
		return "", err
	}
	return row.PasswordHash, nil
}
