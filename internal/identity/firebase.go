package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultEndpoint = "https://identitytoolkit.googleapis.com"
	defaultCertURL  = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

	issuerPrefix = "https://securetoken.google.com/"
)

// Firebase implements Provider over the Identity Toolkit REST API. ID tokens
// are verified locally against the provider's published certificates.
type Firebase struct {
	apiKey     string
	projectID  string
	endpoint   string
	certURL    string
	httpClient *http.Client
	keys       *keyCache
}

// Option configures a Firebase provider.
type Option func(*Firebase)

// WithHTTPClient overrides the HTTP client used for provider calls.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Firebase) { f.httpClient = c }
}

// WithEndpoint overrides the Identity Toolkit base URL.
func WithEndpoint(url string) Option {
	return func(f *Firebase) { f.endpoint = url }
}

// WithCertURL overrides the token signing certificate URL.
func WithCertURL(url string) Option {
	return func(f *Firebase) { f.certURL = url }
}

// NewFirebase creates a Firebase identity provider.
func NewFirebase(apiKey, projectID string, opts ...Option) *Firebase {
	f := &Firebase{
		apiKey:     apiKey,
		projectID:  projectID,
		endpoint:   defaultEndpoint,
		certURL:    defaultCertURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(f)
	}
	f.keys = newKeyCache()
	return f
}

// CreateAccount registers a new account via accounts:signUp.
func (f *Firebase) CreateAccount(ctx context.Context, params CreateAccountParams) (*Account, error) {
	body := map[string]any{
		"email":             params.Email,
		"password":          params.Password,
		"displayName":       params.Name,
		"returnSecureToken": true,
	}
	var out struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	}
	if err := f.post(ctx, "signUp", body, &out); err != nil {
		return nil, err
	}
	return &Account{
		UID:         out.LocalID,
		Email:       out.Email,
		Name:        params.Name,
		PhoneNumber: params.PhoneNumber,
	}, nil
}

// SignInWithPassword exchanges credentials for an ID token via
// accounts:signInWithPassword.
func (f *Firebase) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	var out struct {
		IDToken string `json:"idToken"`
		LocalID string `json:"localId"`
	}
	if err := f.post(ctx, "signInWithPassword", body, &out); err != nil {
		return nil, err
	}
	return &Session{UID: out.LocalID, IDToken: out.IDToken}, nil
}

// SendPasswordReset triggers a password reset email via accounts:sendOobCode.
func (f *Firebase) SendPasswordReset(ctx context.Context, email string) error {
	body := map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}
	return f.post(ctx, "sendOobCode", body, nil)
}

// firebaseClaims are the profile claims carried in a provider ID token.
type firebaseClaims struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	jwt.RegisteredClaims
}

// VerifyToken validates an ID token signature and claims locally.
func (f *Firebase) VerifyToken(ctx context.Context, idToken string) (*Account, error) {
	claims := &firebaseClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, f.signingKey(ctx),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(issuerPrefix+f.projectID),
		jwt.WithAudience(f.projectID),
	)
	if err != nil || !token.Valid {
		return nil, &Error{Code: CodeInvalidIDToken, Message: "invalid or expired ID token"}
	}
	if claims.Subject == "" {
		return nil, &Error{Code: CodeInvalidIDToken, Message: "ID token has no subject"}
	}
	return &Account{
		UID:         claims.Subject,
		Email:       claims.Email,
		Name:        claims.Name,
		PhoneNumber: claims.PhoneNumber,
	}, nil
}

// signingKey resolves the RSA public key for a token's kid header.
func (f *Firebase) signingKey(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no kid header")
		}
		return f.keys.get(ctx, f.httpClient, f.certURL, kid)
	}
}

// post issues an Identity Toolkit accounts call and decodes the response
// into out. Provider failures are returned as *Error.
func (f *Firebase) post(ctx context.Context, action string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", action, err)
	}

	url := fmt.Sprintf("%s/v1/accounts:%s?key=%s", f.endpoint, action, f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", action, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", action, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.Error.Message == "" {
			return fmt.Errorf("%s failed with status %d", action, resp.StatusCode)
		}
		return &Error{
			Code:    codeFromMessage(apiErr.Error.Message),
			Message: apiErr.Error.Message,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", action, err)
	}
	return nil
}
