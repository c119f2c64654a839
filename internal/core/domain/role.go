package domain

import "fmt"

// Role is one of the six subscription/staff tiers. The zero value is not a
// valid role; always construct through ParseRole or the constants below.
type Role string

const (
	RoleBasic      Role = "basic"
	RolePro        Role = "pro"
	RolePremium    Role = "premium"
	RoleEnterprise Role = "enterprise"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// roleRanks is the single source of truth for the total order used by
// authorization checks. Comparisons are always rank >= rank, never label
// equality.
var roleRanks = map[Role]int{
	RoleBasic:      0,
	RolePro:        1,
	RolePremium:    2,
	RoleEnterprise: 3,
	RoleAdmin:      4,
	RoleSuperAdmin: 5,
}

// Roles lists every valid role in ascending rank order.
var Roles = []Role{RoleBasic, RolePro, RolePremium, RoleEnterprise, RoleAdmin, RoleSuperAdmin}

// ParseRole converts a label into a Role, rejecting anything outside the
// closed set. Unknown labels are a configuration or data error and must be
// caught here, at the boundary, so the gate never sees one.
func ParseRole(label string) (Role, error) {
	r := Role(label)
	if _, ok := roleRanks[r]; !ok {
		return "", fmt.Errorf("unknown role %q", label)
	}
	return r, nil
}

// Rank returns the ordinal position of the role. Invalid roles rank below
// every valid one.
func (r Role) Rank() int {
	rank, ok := roleRanks[r]
	if !ok {
		return -1
	}
	return rank
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// AtLeast reports whether r carries at least the privileges of min.
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && r.Rank() >= min.Rank()
}

func (r Role) String() string { return string(r) }
