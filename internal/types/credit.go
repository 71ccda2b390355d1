package types

import (
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/samber/lo"
)

// CreditType tags the origin of a credit grant. All types share the same
// consumption mechanics; only promo credits may carry an expiry.
type CreditType string

const (
	CreditTypeWelcome CreditType = "welcome"
	CreditTypeManual  CreditType = "manual"
	CreditTypeRefund  CreditType = "refund"
	CreditTypePromo   CreditType = "promo"
)

func (t CreditType) String() string {
	return string(t)
}

func (t CreditType) Validate() error {
	allowed := []CreditType{
		CreditTypeWelcome,
		CreditTypeManual,
		CreditTypeRefund,
		CreditTypePromo,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid credit type").
			WithHint("Invalid credit type").
			WithReportableDetails(map[string]any{
				"credit_type":    t,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
