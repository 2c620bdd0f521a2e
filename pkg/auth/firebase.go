package auth

import (
	"context"
	"fmt"
	"log"
	"sync"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier verifies Firebase ID tokens. The Admin SDK client is
// created on first use and reused for the life of the process; a failed
// initialization is remembered and reported on every call.
type FirebaseVerifier struct {
	projectID       string
	credentialsJSON string

	once    sync.Once
	client  *fbauth.Client
	initErr error
}

// NewFirebaseVerifier returns a verifier that connects on first use.
func NewFirebaseVerifier(projectID, credentialsJSON string) *FirebaseVerifier {
	return &FirebaseVerifier{projectID: projectID, credentialsJSON: credentialsJSON}
}

func (v *FirebaseVerifier) init(ctx context.Context) {
	var opts []option.ClientOption
	if v.credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(v.credentialsJSON)))
	}

	var cfg *firebase.Config
	if v.projectID != "" {
		cfg = &firebase.Config{ProjectID: v.projectID}
	}

	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		v.initErr = fmt.Errorf("failed to initialize firebase app: %w", err)
		return
	}
	client, err := app.Auth(ctx)
	if err != nil {
		v.initErr = fmt.Errorf("failed to initialize firebase auth client: %w", err)
		return
	}
	v.client = client
	log.Println("Firebase auth client initialized.")
}

// Verify checks idToken with Firebase and returns the signed-in identity.
// Rejected tokens wrap ErrInvalidToken.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	v.once.Do(func() { v.init(context.Background()) })
	if v.initErr != nil {
		return Identity{}, v.initErr
	}

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		log.Printf("Token verification failed: %v", err)
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	email, _ := token.Claims["email"].(string)
	return Identity{UID: token.UID, Email: email}, nil
}
