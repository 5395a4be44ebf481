package service

import (
	"context"
	"fmt"

	"campbook/internal/identity"
	"campbook/internal/model"
	"campbook/internal/repository"
	"campbook/pkg/util"
)

// AuthService registers and logs in users against the identity provider and
// mirrors minimal profile data locally.
type AuthService struct {
	users    repository.IUserRepository
	provider identity.Provider
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.IUserRepository, provider identity.Provider) *AuthService {
	return &AuthService{users: users, provider: provider}
}

// Register creates a provider account and mirrors it as a local user with
// role "user".
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if !util.IsE164(req.PhoneNumber) {
		return nil, InvalidInput("Phone number must be in E.164 format (e.g., +1234567890)")
	}

	account, err := s.provider.CreateAccount(ctx, identity.CreateAccountParams{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		switch identity.CodeOf(err) {
		case identity.CodeEmailExists:
			return nil, Conflict("Email is already registered")
		case identity.CodeInvalidPhoneNumber:
			return nil, InvalidInput("Invalid phone number format")
		case "":
			return nil, fmt.Errorf("create provider account: %w", err)
		default:
			return nil, InvalidInput("%s", err.Error())
		}
	}

	user := &model.User{
		FirebaseUID: account.UID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Role:        model.RoleUser,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		if err == repository.ErrDuplicate {
			return nil, Conflict("Email is already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login verifies credentials with the provider and returns the local user
// together with the provider session.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.User, *identity.Session, error) {
	session, err := s.provider.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		if identity.CodeOf(err) != "" {
			return nil, nil, Unauthenticated("%s", err.Error())
		}
		return nil, nil, fmt.Errorf("provider sign-in: %w", err)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil {
		return nil, nil, NotFound("User not found")
	}
	return user, session, nil
}

// AuthenticateToken verifies a bearer ID token and resolves it to a local
// user, provisioning one on first sight.
func (s *AuthService) AuthenticateToken(ctx context.Context, idToken string) (*model.User, error) {
	account, err := s.provider.VerifyToken(ctx, idToken)
	if err != nil {
		return nil, Unauthenticated("Invalid token")
	}
	return s.ResolveOrProvision(ctx, account)
}

// ResolveOrProvision looks up the local user for a verified provider account
// and lazily creates one with role "user" if absent.
func (s *AuthService) ResolveOrProvision(ctx context.Context, account *identity.Account) (*model.User, error) {
	user, err := s.users.FindByFirebaseUID(ctx, account.UID)
	if err != nil {
		return nil, fmt.Errorf("find user by uid: %w", err)
	}
	if user != nil {
		return user, nil
	}

	name := account.Name
	if name == "" {
		name = "No Name"
	}
	created, err := s.users.Create(ctx, &model.User{
		FirebaseUID: account.UID,
		Name:        name,
		PhoneNumber: account.PhoneNumber,
		Email:       account.Email,
		Role:        model.RoleUser,
	})
	if err != nil {
		// Lost a provisioning race; the record now exists.
		if err == repository.ErrDuplicate {
			return s.users.FindByFirebaseUID(ctx, account.UID)
		}
		return nil, fmt.Errorf("provision user: %w", err)
	}
	return created, nil
}

// GetUser returns a user by id. Admins can fetch anyone; users only
// themselves.
func (s *AuthService) GetUser(ctx context.Context, requester *model.User, id string) (*model.User, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, InvalidInput("Invalid user ID format")
	}

	user, err := s.users.FindByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, NotFound("User not found")
	}

	if !requester.IsAdmin() && requester.ID != user.ID {
		return nil, Forbidden("Not authorized to access this user's details")
	}
	return user, nil
}

// ResetPassword asks the provider to send a password reset email.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	if email == "" {
		return InvalidInput("Email is required")
	}
	if err := s.provider.SendPasswordReset(ctx, email); err != nil {
		if identity.CodeOf(err) != "" {
			return InvalidInput("%s", err.Error())
		}
		return fmt.Errorf("send password reset: %w", err)
	}
	return nil
}
