package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of roles an identity can hold.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Identity is an authenticated actor of the portfolio.
type Identity struct {
	ID             string    `json:"id" bson:"_id"`
	Name           string    `json:"name" bson:"name"`
	Email          string    `json:"email" bson:"email"`
	PasswordHash   string    `json:"-" bson:"password_hash,omitempty"`
	Role           Role      `json:"role" bson:"role"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	AvatarURL      string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	BscMajor       string    `json:"bsc_major,omitempty" bson:"bsc_major,omitempty"`
	GraduationYear string    `json:"graduation_year,omitempty" bson:"graduation_year,omitempty"`
}

// WellFormed reports whether the identity carries what a session needs.
func (i *Identity) WellFormed() bool {
	return i != nil && i.ID != "" && i.Role.Valid()
}

// IdentityPatch is a partial profile update. Nil fields are left untouched.
type IdentityPatch struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	BscMajor       *string `json:"bsc_major,omitempty"`
	GraduationYear *string `json:"graduation_year,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p IdentityPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.AvatarURL == nil && p.BscMajor == nil && p.GraduationYear == nil
}

// Apply returns a copy of id with the patch merged in.
func (p IdentityPatch) Apply(id Identity) Identity {
	if p.Name != nil {
		id.Name = *p.Name
	}
	if p.Email != nil {
		id.Email = *p.Email
	}
	if p.AvatarURL != nil {
		id.AvatarURL = *p.AvatarURL
	}
	if p.BscMajor != nil {
		id.BscMajor = *p.BscMajor
	}
	if p.GraduationYear != nil {
		id.GraduationYear = *p.GraduationYear
	}
	return id
}
