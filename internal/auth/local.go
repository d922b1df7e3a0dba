package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
)

var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository stores password hashes for locally managed identities.
type CredentialRepository interface {
	Create(ctx context.Context, userID, passwordHash string) error
	GetPasswordHash(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

// LocalProvider keeps bcrypt credentials in the service database and issues
// its own JWTs.
type LocalProvider struct {
	credentials CredentialRepository
	tokens      *JWTTokenGenerator
	bcryptCost  int
}

func NewLocalProvider(credentials CredentialRepository, tokens *JWTTokenGenerator, bcryptCost int) *LocalProvider {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &LocalProvider{credentials: credentials, tokens: tokens, bcryptCost: bcryptCost}
}

func (p *LocalProvider) CreateIdentity(ctx context.Context, _, password, _ string) (string, error) {
	hash, err := HashPassword(password, p.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	userID := uuid.NewString()
	if err := p.credentials.Create(ctx, userID, hash); err != nil {
		return "", fmt.Errorf("store credential: %w", err)
	}
	return userID, nil
}

func (p *LocalProvider) DeleteIdentity(ctx context.Context, userID string) error {
	return p.credentials.Delete(ctx, userID)
}

func (p *LocalProvider) ResolveToken(_ context.Context, token string) (string, error) {
	claims, err := p.tokens.ValidateAccessToken(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (p *LocalProvider) Authenticate(ctx context.Context, userID, password string) (Tokens, error) {
	hash, err := p.credentials.GetPasswordHash(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return Tokens{}, apperrors.ErrInvalidCredentials
		}
		return Tokens{}, err
	}

	if err := VerifyPassword(hash, password); err != nil {
		return Tokens{}, apperrors.ErrInvalidCredentials
	}

	return p.tokens.Pair(userID)
}

func (p *LocalProvider) Refresh(_ context.Context, refreshToken string) (Tokens, error) {
	claims, err := p.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return Tokens{}, err
	}
	return p.tokens.Pair(claims.Subject)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
