// Package identity adapts the external identity provider. Accounts and
// credentials live provider-side; the rest of the application only sees this
// interface.
package identity

import "context"

// Account is the provider-side profile of a user.
type Account struct {
	UID         string
	Email       string
	Name        string
	PhoneNumber string
}

// Session is the result of a successful credential sign-in.
type Session struct {
	UID     string
	IDToken string
}

// CreateAccountParams carries the fields for a new provider account.
type CreateAccountParams struct {
	Name        string
	PhoneNumber string
	Email       string
	Password    string
}

// Provider is the external identity provider. Implementations verify
// credentials and tokens; no credential is ever stored locally.
type Provider interface {
	// CreateAccount registers a new account with the provider.
	CreateAccount(ctx context.Context, params CreateAccountParams) (*Account, error)
	// VerifyToken validates a bearer ID token and returns the account it
	// belongs to.
	VerifyToken(ctx context.Context, idToken string) (*Account, error)
	// SignInWithPassword exchanges credentials for a session token.
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	// SendPasswordReset asks the provider to email a password reset link.
	SendPasswordReset(ctx context.Context, email string) error
}
