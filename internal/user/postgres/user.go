package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/auth"
	"github.com/frahmantamala/workforce-ops/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
)

const uniqueViolation = "23505"

const selectProfile = `SELECT id, email, name, role, created_at, updated_at FROM users`

// ProfileRepository stores user profiles with sqlx. It backs both the signup
// flow and the profile/user listing endpoints.
type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *auth.Principal) error {
	now := p.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}
	row := user.User{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Role:      p.Role.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := r.db.Rebind(`INSERT INTO users (id, email, name, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, row.ID, row.Email, row.Name, row.Role, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*auth.Principal, error) {
	return r.getOne(ctx, selectProfile+` WHERE id = ?`, id)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*auth.Principal, error) {
	return r.getOne(ctx, selectProfile+` WHERE email = ?`, email)
}

// List returns every profile, oldest first.
func (r *ProfileRepository) List(ctx context.Context) ([]auth.Principal, error) {
	var rows []user.User
	if err := r.db.SelectContext(ctx, &rows, selectProfile+` ORDER BY created_at ASC, id ASC`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]auth.Principal, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPrincipal(row))
	}
	return out, nil
}

func (r *ProfileRepository) getOne(ctx context.Context, query string, arg interface{}) (*auth.Principal, error) {
	var row user.User
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	p := toPrincipal(row)
	return &p, nil
}

// toPrincipal maps a stored row; unknown roles read back as the default role.
func toPrincipal(row user.User) auth.Principal {
	rl, _ := role.ParseOrDefault(row.Role)
	return auth.Principal{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		Role:      rl,
		CreatedAt: row.CreatedAt,
	}
}
