package auth

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
)

type Service struct {
	provider IdentityProvider
	profiles ProfileRepository
	clock    apperrors.Clock
	logger   *slog.Logger
}

func NewService(provider IdentityProvider, profiles ProfileRepository, clock apperrors.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = apperrors.SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, profiles: profiles, clock: clock, logger: logger}
}

// Signup creates the identity with the provider and stores the profile. The
// role defaults to employee.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*Principal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.profiles.GetByEmail(ctx, req.Email)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.ErrEmailTaken
	case err != nil && !errors.Is(err, apperrors.ErrUserNotFound):
		s.logger.Error("signup: profile lookup failed", "error", err)
		return nil, apperrors.NewUpstreamError("Failed to create user", err)
	}

	id, err := s.provider.CreateIdentity(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			return nil, err
		}
		s.logger.Error("signup: identity provider failed", "error", err)
		return nil, apperrors.NewUpstreamError("Failed to create user", err)
	}

	p := &Principal{
		ID:        id,
		Email:     req.Email,
		Name:      req.Name,
		Role:      req.role(),
		CreatedAt: s.clock(),
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		s.removeIdentity(ctx, id)
		if errors.Is(err, apperrors.ErrEmailTaken) {
			return nil, apperrors.ErrEmailTaken
		}
		s.logger.Error("signup: failed to store profile", "error", err, "user_id", id)
		return nil, apperrors.NewUpstreamError("Failed to create user", err)
	}

	s.logger.Info("user signed up", "user_id", p.ID, "role", p.Role)
	return p, nil
}

// removeIdentity drops an identity whose profile was never stored. Failures
// are logged; the signup error is what the caller sees.
func (s *Service) removeIdentity(ctx context.Context, id string) {
	remover, ok := s.provider.(IdentityRemover)
	if !ok {
		return
	}
	if err := remover.DeleteIdentity(ctx, id); err != nil {
		s.logger.Warn("signup: failed to remove orphaned identity", "error", err, "user_id", id)
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (Tokens, error) {
	issuer, ok := s.provider.(TokenIssuer)
	if !ok {
		return Tokens{}, apperrors.ErrUnsupported
	}
	if err := req.Validate(); err != nil {
		return Tokens{}, err
	}

	p, err := s.profiles.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return Tokens{}, apperrors.ErrInvalidCredentials
		}
		s.logger.Error("login: profile lookup failed", "error", err)
		return Tokens{}, apperrors.NewUpstreamError("Failed to authenticate", err)
	}

	tokens, err := issuer.Authenticate(ctx, p.ID, req.Password)
	if err != nil {
		if _, ok := apperrors.IsAppError(err); ok {
			s.logger.Warn("login rejected", "user_id", p.ID)
			return Tokens{}, err
		}
		s.logger.Error("login: token issue failed", "error", err, "user_id", p.ID)
		return Tokens{}, apperrors.NewUpstreamError("Failed to authenticate", err)
	}
	return tokens, nil
}

func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (Tokens, error) {
	issuer, ok := s.provider.(TokenIssuer)
	if !ok {
		return Tokens{}, apperrors.ErrUnsupported
	}
	if err := req.Validate(); err != nil {
		return Tokens{}, err
	}

	tokens, err := issuer.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if _, ok := apperrors.IsAppError(err); ok {
			return Tokens{}, err
		}
		return Tokens{}, apperrors.NewUpstreamError("Failed to refresh token", err)
	}
	return tokens, nil
}

// Resolve turns a bearer token into the caller's profile. Every failure,
// including a deleted profile, is reported as unauthorized.
func (s *Service) Resolve(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, apperrors.ErrMissingToken
	}

	id, err := s.provider.ResolveToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken.WithCause(err)
	}

	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrInvalidToken.WithCause(err)
	}
	return p, nil
}
