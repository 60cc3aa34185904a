package constants

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Roles lists every assignable user role.
var Roles = []string{RoleUser, RoleAdmin}

// Payment methods accepted on orders.
const (
	PaymentMethodCard = "card"
)

// PaymentMethods lists every accepted payment method.
var PaymentMethods = []string{PaymentMethodCard}

// Gin context keys set by the auth middleware.
const (
	ContextUserIDKey   = "user_id"
	ContextUserRoleKey = "user_role"
)

// IsValidRole reports whether role is an assignable user role.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsValidPaymentMethod reports whether method is accepted on orders.
func IsValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
