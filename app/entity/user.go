package entity

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RolePublisher Role = "publisher"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RolePublisher, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                  string     `bson:"_id" json:"id"`
	Name                string     `bson:"name" json:"name"`
	Email               string     `bson:"email" json:"email"`
	Role                Role       `bson:"role" json:"role"`
	PasswordHash        string     `bson:"password_hash" json:"-"` // never expose in JSON
	ResetTokenHash      string     `bson:"reset_token_hash,omitempty" json:"-"`
	ResetTokenExpiresAt *time.Time `bson:"reset_token_expires_at,omitempty" json:"-"`
	CreatedAt           time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `bson:"updated_at" json:"updated_at"`
}

// HasActiveResetToken reports whether a reset token is stored and unexpired.
func (u *User) HasActiveResetToken(now time.Time) bool {
	return u.ResetTokenHash != "" && u.ResetTokenExpiresAt != nil && u.ResetTokenExpiresAt.After(now)
}
