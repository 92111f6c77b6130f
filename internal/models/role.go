package models

type Role string

const (
	RoleTenant Role = "TENANT"
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
)

// RoleSet is the capability set of one user, resolved once per operation.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	rs := make(RoleSet, len(roles))
	for _, r := range roles {
		rs[r] = struct{}{}
	}
	return rs
}

func (rs RoleSet) Has(r Role) bool {
	_, ok := rs[r]
	return ok
}
