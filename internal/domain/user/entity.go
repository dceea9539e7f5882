package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. Customers carry a membership; staff and admins do not.
type User struct {
	id                  uuid.UUID
	email               string
	passwordHash        string
	role                Role
	membership          Membership
	membershipExpiresAt *time.Time
	createdAt           time.Time
}

func NewUser(email, passwordHash string, role Role) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		membership:   MembershipNone,
	}
}

func Reconstruct(id uuid.UUID, email, passwordHash string, role Role, membership Membership, membershipExpiresAt *time.Time, createdAt time.Time) *User {
	return &User{
		id:                  id,
		email:               email,
		passwordHash:        passwordHash,
		role:                role,
		membership:          membership,
		membershipExpiresAt: membershipExpiresAt,
		createdAt:           createdAt,
	}
}

func (u *User) ID() uuid.UUID                   { return u.id }
func (u *User) Email() string                   { return u.email }
func (u *User) PasswordHash() string            { return u.passwordHash }
func (u *User) Role() Role                      { return u.role }
func (u *User) Membership() Membership          { return u.membership }
func (u *User) MembershipExpiresAt() *time.Time { return u.membershipExpiresAt }
func (u *User) CreatedAt() time.Time            { return u.createdAt }

// HasActiveMembership reports whether the user holds a paid membership that
// has not lapsed at the given instant.
func (u *User) HasActiveMembership(now time.Time) bool {
	if u.membership == MembershipNone {
		return false
	}
	if u.membershipExpiresAt == nil {
		return true
	}
	return u.membershipExpiresAt.After(now)
}

// SetMembership replaces the user's plan, clearing the expiry when the plan
// is cancelled.
func (u *User) SetMembership(m Membership, expiresAt *time.Time) {
	u.membership = m
	if m == MembershipNone {
		u.membershipExpiresAt = nil
		return
	}
	u.membershipExpiresAt = expiresAt
}
