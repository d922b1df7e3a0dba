package credential

import "time"

// Credential holds the password hash for users managed by the local identity provider.
type Credential struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Credential) TableName() string {
	return "credentials"
}
