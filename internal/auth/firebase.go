package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
)

// FirebaseClient is the part of *fbauth.Client the provider uses.
type FirebaseClient interface {
	CreateUser(ctx context.Context, user *fbauth.UserToCreate) (*fbauth.UserRecord, error)
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
	DeleteUser(ctx context.Context, uid string) error
}

// FirebaseProvider delegates credentials to Firebase Authentication. Clients sign
// in with the Firebase SDK and send the resulting ID token as the bearer token.
type FirebaseProvider struct {
	client FirebaseClient
}

func NewFirebaseProvider(client FirebaseClient) *FirebaseProvider {
	return &FirebaseProvider{client: client}
}

// NewFirebaseClient initialises the Firebase app from a service account file,
// or from application default credentials when the file is empty.
func NewFirebaseClient(ctx context.Context, projectID, credentialsFile string) (*fbauth.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}
	return client, nil
}

func (p *FirebaseProvider) CreateIdentity(ctx context.Context, email, password, name string) (string, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(name)

	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return "", apperrors.ErrEmailTaken
		}
		return "", fmt.Errorf("firebase create user: %w", err)
	}
	return record.UID, nil
}

func (p *FirebaseProvider) ResolveToken(ctx context.Context, token string) (string, error) {
	verified, err := p.client.VerifyIDToken(ctx, token)
	if err != nil {
		if fbauth.IsIDTokenExpired(err) {
			return "", apperrors.ErrTokenExpired
		}
		return "", apperrors.ErrInvalidToken
	}
	return verified.UID, nil
}

func (p *FirebaseProvider) DeleteIdentity(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil && !fbauth.IsUserNotFound(err) {
		return fmt.Errorf("firebase delete user: %w", err)
	}
	return nil
}
