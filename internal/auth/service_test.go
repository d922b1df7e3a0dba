package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
)

type stubProvider struct {
	nextID     string
	createErr  error
	resolveID  string
	resolveErr error
}

func (s *stubProvider) CreateIdentity(context.Context, string, string, string) (string, error) {
	return s.nextID, s.createErr
}

func (s *stubProvider) ResolveToken(context.Context, string) (string, error) {
	return s.resolveID, s.resolveErr
}

var _ = Describe("Service", func() {
	var (
		ctx      context.Context
		profiles *memoryProfiles
		creds    *memoryCredentials
		tokens   *JWTTokenGenerator
		service  *Service
		now      time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		profiles = newMemoryProfiles()
		creds = newMemoryCredentials()
		tokens = NewJWTTokenGenerator(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcdef",
			15*time.Minute,
			24*time.Hour,
		)
		now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		provider := NewLocalProvider(creds, tokens, bcrypt.MinCost)
		service = NewService(provider, profiles, func() time.Time { return now }, nil)
	})

	signup := func(email, role string) *Principal {
		p, err := service.Signup(ctx, SignupRequest{Email: email, Password: "password123", Name: "Dana", Role: role})
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	Describe("Signup", func() {
		It("creates a profile with the requested role", func() {
			p := signup("dana@example.com", "supervisor")

			Expect(p.ID).NotTo(BeEmpty())
			Expect(p.Role).To(Equal(role.Supervisor))
			Expect(p.CreatedAt).To(Equal(now))

			stored, err := profiles.GetByID(ctx, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Email).To(Equal("dana@example.com"))
		})

		It("defaults the role to employee", func() {
			Expect(signup("e@example.com", "").Role).To(Equal(role.Employee))
		})

		It("normalises the email address", func() {
			Expect(signup("  Dana@Example.COM ", "").Email).To(Equal("dana@example.com"))
		})

		It("hashes the password", func() {
			p := signup("dana@example.com", "")
			hash, err := creds.GetPasswordHash(ctx, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(hash).NotTo(Equal("password123"))
			Expect(VerifyPassword(hash, "password123")).To(Succeed())
		})

		It("rejects an unknown role", func() {
			_, err := service.Signup(ctx, SignupRequest{Email: "a@example.com", Password: "password123", Name: "A", Role: "ceo"})
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.Details.(apperrors.ValidationErrors).Errors[0].Field).To(Equal("role"))
		})

		DescribeTable("rejects invalid input",
			func(req SignupRequest, field string) {
				_, err := service.Signup(ctx, req)
				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(apperrors.ErrCodeValidationFailed))

				var fields []string
				for _, fe := range appErr.Details.(apperrors.ValidationErrors).Errors {
					fields = append(fields, fe.Field)
				}
				Expect(fields).To(ContainElement(field))
				Expect(profiles.created).To(BeZero())
			},
			Entry("missing email", SignupRequest{Password: "password123", Name: "A"}, "email"),
			Entry("malformed email", SignupRequest{Email: "nope", Password: "password123", Name: "A"}, "email"),
			Entry("short password", SignupRequest{Email: "a@example.com", Password: "short", Name: "A"}, "password"),
			Entry("blank name", SignupRequest{Email: "a@example.com", Password: "password123", Name: "   "}, "name"),
		)

		It("refuses a duplicate email", func() {
			signup("dana@example.com", "")

			_, err := service.Signup(ctx, SignupRequest{Email: "dana@example.com", Password: "password123", Name: "Other"})
			Expect(err).To(MatchError(apperrors.ErrEmailTaken))
			Expect(profiles.created).To(Equal(1))
		})

		It("passes through the provider's duplicate email error", func() {
			svc := NewService(&stubProvider{createErr: apperrors.ErrEmailTaken}, profiles, nil, nil)
			_, err := svc.Signup(ctx, SignupRequest{Email: "x@example.com", Password: "password123", Name: "X"})
			Expect(err).To(MatchError(apperrors.ErrEmailTaken))
		})

		It("wraps provider failures as upstream errors", func() {
			svc := NewService(&stubProvider{createErr: errors.New("boom")}, profiles, nil, nil)
			_, err := svc.Signup(ctx, SignupRequest{Email: "x@example.com", Password: "password123", Name: "X"})

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
			Expect(appErr.Message).To(Equal("Failed to create user"))
		})

		It("reports a duplicate email caught by the profile store as a conflict", func() {
			profiles.createErr = apperrors.ErrEmailTaken
			_, err := service.Signup(ctx, SignupRequest{Email: "x@example.com", Password: "password123", Name: "X"})

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusConflict))
			Expect(err).To(MatchError(apperrors.ErrEmailTaken))
			Expect(creds.len()).To(BeZero())
		})

		It("removes the credential when the profile cannot be stored", func() {
			profiles.createErr = errors.New("db down")
			_, err := service.Signup(ctx, SignupRequest{Email: "x@example.com", Password: "password123", Name: "X"})
			Expect(err).To(HaveOccurred())
			Expect(creds.len()).To(BeZero())
		})

		It("wraps profile store failures as upstream errors", func() {
			profiles.err = errors.New("db down")
			_, err := service.Signup(ctx, SignupRequest{Email: "x@example.com", Password: "password123", Name: "X"})

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeUpstream))
		})
	})

	Describe("Login and Resolve", func() {
		It("issues tokens that resolve back to the profile", func() {
			p := signup("dana@example.com", "admin")

			pair, err := service.Login(ctx, LoginRequest{Email: "DANA@example.com", Password: "password123"})
			Expect(err).NotTo(HaveOccurred())

			resolved, err := service.Resolve(ctx, pair.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(resolved.ID).To(Equal(p.ID))
			Expect(resolved.Role).To(Equal(role.Admin))
		})

		It("rejects a wrong password", func() {
			signup("dana@example.com", "")
			_, err := service.Login(ctx, LoginRequest{Email: "dana@example.com", Password: "wrong-password"})
			Expect(err).To(MatchError(apperrors.ErrInvalidCredentials))
		})

		It("rejects an unknown email with the same error", func() {
			_, err := service.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "password123"})
			Expect(err).To(MatchError(apperrors.ErrInvalidCredentials))
		})

		It("reports a missing token", func() {
			_, err := service.Resolve(ctx, "")
			Expect(err).To(MatchError(apperrors.ErrMissingToken))
		})

		It("rejects a token whose profile no longer exists", func() {
			token, err := tokens.GenerateAccessToken("deleted-user")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Resolve(ctx, token)
			Expect(err).To(MatchError(apperrors.ErrInvalidToken))
		})

		It("keeps the expired-token error distinct", func() {
			svc := NewService(&stubProvider{resolveErr: apperrors.ErrTokenExpired}, profiles, nil, nil)
			_, err := svc.Resolve(ctx, "t")
			Expect(err).To(MatchError(apperrors.ErrTokenExpired))
		})

		It("maps any provider failure to unauthorized", func() {
			svc := NewService(&stubProvider{resolveErr: errors.New("network")}, profiles, nil, nil)
			_, err := svc.Resolve(ctx, "t")

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(401))
		})
	})

	Describe("Refresh", func() {
		It("exchanges a refresh token for a new pair", func() {
			signup("dana@example.com", "")
			pair, err := service.Login(ctx, LoginRequest{Email: "dana@example.com", Password: "password123"})
			Expect(err).NotTo(HaveOccurred())

			next, err := service.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
			Expect(err).NotTo(HaveOccurred())
			Expect(next.AccessToken).NotTo(BeEmpty())
		})

		It("refuses an access token", func() {
			signup("dana@example.com", "")
			pair, err := service.Login(ctx, LoginRequest{Email: "dana@example.com", Password: "password123"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Refresh(ctx, RefreshRequest{RefreshToken: pair.AccessToken})
			Expect(err).To(MatchError(apperrors.ErrInvalidToken))
		})
	})

	It("reports login as unsupported when the provider does not issue tokens", func() {
		svc := NewService(&stubProvider{}, profiles, nil, nil)

		_, err := svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "x"})
		Expect(err).To(MatchError(apperrors.ErrUnsupported))

		_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: "x"})
		Expect(err).To(MatchError(apperrors.ErrUnsupported))
	})
})
