package user

import (
	"github.com/laundrycare/lce/internal/types"
)

// User represents a customer (or staff) account. The gateway customer
// reference is assigned lazily on the first charge attempt.
type User struct {
	ID               string         `gorm:"column:id" json:"id"`
	Name             string         `gorm:"column:name" json:"name"`
	Email            string         `gorm:"column:email" json:"email"`
	Phone            string         `gorm:"column:phone" json:"phone,omitempty"`
	Address          string         `gorm:"column:address" json:"address,omitempty"`
	City             string         `gorm:"column:city" json:"city,omitempty"`
	State            string         `gorm:"column:state" json:"state,omitempty"`
	Zip              string         `gorm:"column:zip" json:"zip,omitempty"`
	Role             types.UserRole `gorm:"column:role" json:"role"`
	StripeCustomerID *string        `gorm:"column:stripe_customer_id" json:"stripe_customer_id,omitempty"`

	types.BaseModel
}

func (u *User) TableName() string {
	return "lce_user_info"
}

// HasStripeCustomer reports whether a gateway customer ref was assigned.
func (u *User) HasStripeCustomer() bool {
	return u.StripeCustomerID != nil && *u.StripeCustomerID != ""
}
