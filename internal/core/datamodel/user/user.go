package user

import "time"

// User is shared by the sqlx profile repository (db tags) and gorm (gorm tags).
type User struct {
	ID        string    `db:"id" gorm:"column:id;primaryKey"`
	Email     string    `db:"email" gorm:"column:email;uniqueIndex;not null"`
	Name      string    `db:"name" gorm:"column:name;not null"`
	Role      string    `db:"role" gorm:"column:role;not null;default:employee"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `db:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
