package auth

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// TokenVerifier checks a Google ID token issued through Firebase.
// *fbauth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// NewFirebaseVerifier builds the Firebase auth client from the service account
// JSON held in the environment (no credentials file on disk).
func NewFirebaseVerifier(ctx context.Context, credsJSON, projectID string) (*fbauth.Client, error) {
	if credsJSON == "" {
		return nil, errors.New("FIREBASE_CREDENTIALS_JSON must be set")
	}
	if projectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting firebase auth client: %w", err)
	}
	return client, nil
}
