package types

import (
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus is the payment lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusRefunded  InvoiceStatus = "refunded"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusPending,
		InvoiceStatusPaid,
		InvoiceStatusRefunded,
		InvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Invalid invoice status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// OrderType distinguishes pay-per-order pickups from subscription pickups
type OrderType string

const (
	OrderTypePPO          OrderType = "ppo"
	OrderTypeSubscription OrderType = "subscription"
)

func (t OrderType) String() string {
	return string(t)
}

func (t OrderType) Validate() error {
	allowed := []OrderType{OrderTypePPO, OrderTypeSubscription}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid order type").
			WithHint("Order type must be ppo or subscription").
			WithReportableDetails(map[string]any{
				"order_type":     t,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceLineType tags an invoice line with the service it bills
type InvoiceLineType string

const (
	LineTypeWashFold        InvoiceLineType = "WF"
	LineTypeDryClean        InvoiceLineType = "DC"
	LineTypeHeavyDuty       InvoiceLineType = "HD"
	LineTypePickupFee       InvoiceLineType = "FEE_PND"
	LineTypeServiceFee      InvoiceLineType = "FEE_SERVICE"
	LineTypeSubscriptionBag InvoiceLineType = "SUBSCRIPTION_BAG"
	LineTypeOverweight      InvoiceLineType = "SUB_OVERWEIGHT_LBS"
)

func (t InvoiceLineType) String() string {
	return string(t)
}
