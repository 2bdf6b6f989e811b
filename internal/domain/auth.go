package domain

import "time"

// Identity is the authenticated caller extracted from a bearer token. Email
// is the verified address carried in the token; it seeds lazily created
// profiles.
type Identity struct {
	UserID string
	Email  string
}

// TokenIssuer issues signed bearer tokens.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the caller's identity.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}
