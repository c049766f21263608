package constant

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ValidRegisterRole reports whether a role may be chosen at registration.
// Admin accounts are provisioned out of band.
func ValidRegisterRole(r Role) bool {
	return r == RoleBuyer || r == RoleSeller
}
