package types

// UserRole controls which surfaces a user may reach. Role enforcement lives
// in the API layer; services only record it.
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"
	UserRoleCSR      UserRole = "csr"
)

func (r UserRole) String() string {
	return string(r)
}
