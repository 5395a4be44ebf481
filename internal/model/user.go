package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User mirrors the minimal profile of an identity-provider account. The
// provider owns the credential; this record only links it to local data.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirebaseUID string             `bson:"firebaseUid" json:"-"`
	Name        string             `bson:"name" json:"name"`
	PhoneNumber string             `bson:"phoneNumber" json:"phone"`
	Email       string             `bson:"email" json:"email"`
	Role        string             `bson:"role" json:"role"`
	CreatedAt   time.Time          `bson:"createdAt" json:"-"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserView is the subset of User fields safe to return to API callers.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Role  string `json:"role"`
	UID   string `json:"uid,omitempty"`
}

// View converts a User to its public view.
func (u *User) View() UserView {
	return UserView{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Phone: u.PhoneNumber,
		Email: u.Email,
		Role:  u.Role,
		UID:   u.FirebaseUID,
	}
}
