package vo

// SystemRole names the roles every deployment is seeded with.
type SystemRole string

const (
	RoleUser           SystemRole = "ROLE_USER"
	RoleAdmin          SystemRole = "ROLE_ADMIN"
	RolePaymentManager SystemRole = "ROLE_PAYMENT_MANAGER"
)

func SystemRoles() []SystemRole {
	return []SystemRole{RoleUser, RoleAdmin, RolePaymentManager}
}

func (r SystemRole) String() string { return string(r) }
