package user

import "leisure-booking/internal/pkg/errs"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

var ErrInvalidRole = errs.New("invalid role")

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Membership is the customer's recurring plan. Members bypass per-session
// payment at checkout.
type Membership string

const (
	MembershipNone  Membership = "none"
	MembershipMonth Membership = "month"
	MembershipYear  Membership = "year"
)

var ErrInvalidMembership = errs.New("invalid membership")

func (m Membership) String() string {
	return string(m)
}

func (m Membership) IsValid() bool {
	switch m {
	case MembershipNone, MembershipMonth, MembershipYear:
		return true
	default:
		return false
	}
}

func NewMembership(s string) (Membership, error) {
	m := Membership(s)
	if !m.IsValid() {
		return "", ErrInvalidMembership
	}
	return m, nil
}
