// Package auth provides identity verification for incoming requests.
//
// Token issuance and the surrounding identity protocol are external
// collaborators; the server only consumes "verify this token, get a user id
// or reject" through the TokenVerifier interface. The PASETO implementation
// in tokens.go exists so local development and the seed tool can mint
// verifiable tokens without an external identity provider.
package auth

import "context"

// Identity is the verified identity attached to a request.
type Identity struct {
	UserID string
}

// TokenVerifier verifies a bearer token and resolves it to an identity.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}
