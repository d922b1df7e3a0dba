package auth

import (
	"context"
	"errors"

	fbauth "firebase.google.com/go/v4/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
)

type fakeFirebase struct {
	createCalls int
	createErr   error
	verifyErr   error
	uid         string
	deleted     []string
}

func (f *fakeFirebase) CreateUser(_ context.Context, _ *fbauth.UserToCreate) (*fbauth.UserRecord, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &fbauth.UserRecord{UserInfo: &fbauth.UserInfo{UID: f.uid}}, nil
}

func (f *fakeFirebase) DeleteUser(_ context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return nil
}

func (f *fakeFirebase) VerifyIDToken(_ context.Context, _ string) (*fbauth.Token, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &fbauth.Token{UID: f.uid}, nil
}

var _ = Describe("FirebaseProvider", func() {
	var (
		ctx    context.Context
		client *fakeFirebase
		p      *FirebaseProvider
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = &fakeFirebase{uid: "fb-uid-1"}
		p = NewFirebaseProvider(client)
	})

	It("returns the Firebase UID for a new identity", func() {
		id, err := p.CreateIdentity(ctx, "a@example.com", "password123", "A")
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("fb-uid-1"))
		Expect(client.createCalls).To(Equal(1))
	})

	It("wraps create failures", func() {
		client.createErr = errors.New("quota")
		_, err := p.CreateIdentity(ctx, "a@example.com", "password123", "A")
		Expect(err).To(MatchError(ContainSubstring("quota")))
	})

	It("resolves a verified ID token to its UID", func() {
		id, err := p.ResolveToken(ctx, "id-token")
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("fb-uid-1"))
	})

	It("rejects tokens Firebase cannot verify", func() {
		client.verifyErr = errors.New("bad signature")
		_, err := p.ResolveToken(ctx, "id-token")
		Expect(err).To(MatchError(apperrors.ErrInvalidToken))
	})

	It("deletes the Firebase user when the profile cannot be stored", func() {
		profiles := newMemoryProfiles()
		profiles.createErr = errors.New("db down")
		svc := NewService(p, profiles, nil, nil)

		_, err := svc.Signup(ctx, SignupRequest{Email: "a@example.com", Password: "password123", Name: "A"})
		Expect(err).To(HaveOccurred())
		Expect(client.deleted).To(ConsistOf("fb-uid-1"))
	})

	It("backs a service that signs users up but cannot log them in", func() {
		profiles := newMemoryProfiles()
		svc := NewService(p, profiles, nil, nil)

		user, err := svc.Signup(ctx, SignupRequest{Email: "a@example.com", Password: "password123", Name: "A"})
		Expect(err).NotTo(HaveOccurred())
		Expect(user.ID).To(Equal("fb-uid-1"))

		resolved, err := svc.Resolve(ctx, "id-token")
		Expect(err).NotTo(HaveOccurred())
		Expect(resolved.Email).To(Equal("a@example.com"))

		_, err = svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "password123"})
		Expect(err).To(MatchError(apperrors.ErrUnsupported))
	})
})
