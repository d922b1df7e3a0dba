package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/workforce-ops/internal/core/role"
)

// Principal is the authenticated caller attached to the request context. It is
// also the profile shape stored for every user.
type Principal struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      role.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == role.Admin
}

type contextKey string

const ContextUserKey contextKey = "auth_user"

func ContextWithUser(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextUserKey, p)
}

func UserFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ContextUserKey).(*Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// IdentityProvider owns credentials. The service only ever sees opaque user IDs.
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, email, password, name string) (string, error)
	ResolveToken(ctx context.Context, token string) (string, error)
}

// IdentityRemover is implemented by providers that can undo CreateIdentity.
// Signup uses it when the profile cannot be stored.
type IdentityRemover interface {
	DeleteIdentity(ctx context.Context, id string) error
}

// TokenIssuer is implemented by providers that mint their own tokens. Providers
// whose clients sign in elsewhere (Firebase) do not implement it.
type TokenIssuer interface {
	Authenticate(ctx context.Context, userID, password string) (Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
}

// ProfileRepository stores the profile created on signup.
type ProfileRepository interface {
	Create(ctx context.Context, p *Principal) error
	GetByID(ctx context.Context, id string) (*Principal, error)
	GetByEmail(ctx context.Context, email string) (*Principal, error)
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
