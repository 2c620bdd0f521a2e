package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNotAllowed   = errors.New("identity is not allowed to perform this action")
)

// Identity is the verified caller behind a bearer token.
type Identity struct {
	UID   string
	Email string
}

// Verifier validates identity-provider ID tokens.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	const prefix = "bearer "
	header = strings.TrimSpace(header)
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// AllowList is a case-insensitive set of admin emails.
type AllowList map[string]struct{}

// NewAllowList builds an allow-list, ignoring blank entries.
func NewAllowList(emails []string) AllowList {
	list := make(AllowList, len(emails))
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			list[e] = struct{}{}
		}
	}
	return list
}

// Allows reports whether email is listed, ignoring case and surrounding space.
func (l AllowList) Allows(email string) bool {
	email = normalizeEmail(email)
	if email == "" {
		return false
	}
	_, ok := l[email]
	return ok
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
