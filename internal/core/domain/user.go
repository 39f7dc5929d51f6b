package domain

// Role identifies a staff member's function. The Core uses it for attribution
// and capability checks only.
type Role string

const (
	RoleTeller  Role = "TELLER"
	RoleManager Role = "MANAGER"
	RoleAuditor Role = "AUDITOR"
	RoleAdmin   Role = "ADMIN"
)

// Capability is an action a role may be granted.
type Capability string

const (
	CapOnboardClient Capability = "ONBOARD_CLIENT"
	CapOpenAccount   Capability = "OPEN_ACCOUNT"
	CapMoveMoney     Capability = "MOVE_MONEY"
	CapRequestCredit Capability = "REQUEST_CREDIT"
	CapReadLedger    Capability = "READ_LEDGER"
)

var roleCapabilities = map[Role][]Capability{
	RoleTeller:  {CapOnboardClient, CapOpenAccount, CapMoveMoney, CapRequestCredit, CapReadLedger},
	RoleManager: {CapReadLedger},
	RoleAuditor: {CapReadLedger},
	RoleAdmin:   {CapReadLedger},
}

// ParseRole returns the role and whether it is known.
func ParseRole(raw string) (Role, bool) {
	r := Role(raw)
	_, ok := roleCapabilities[r]
	return r, ok
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

// Actor is the authenticated staff member on whose behalf an operation runs.
type Actor struct {
	UserID int64 `json:"userID"`
	Role   Role  `json:"role"`
}
