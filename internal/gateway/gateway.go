package gateway

import (
	"context"

	"github.com/laundrycare/lce/internal/domain/user"
	"github.com/shopspring/decimal"
)

// ChargeRequest asks the processor to collect an amount from a saved
// payment method. Amounts are in the catalog's decimal currency unit; the
// gateway implementation owns any minor-unit conversion.
type ChargeRequest struct {
	Amount          decimal.Decimal
	PaymentMethodID string
	CustomerRef     string
	// IdempotencyKey guards retried calls against double-charging.
	IdempotencyKey string
	Metadata       map[string]string
}

// ChargeResult is the processor's answer to a charge request.
type ChargeResult struct {
	GatewayRef string
	Succeeded  bool
}

// RefundRequest asks the processor to refund a prior charge.
type RefundRequest struct {
	ChargeRef      string
	Amount         decimal.Decimal
	IdempotencyKey string
}

// RefundResult is the processor's answer to a refund request.
type RefundResult struct {
	GatewayRef string
	Succeeded  bool
}

// PaymentGateway is the opaque payment processor collaborator. The billing
// service treats it as fallible and possibly slow; every call is bounded by
// the caller's context.
type PaymentGateway interface {
	// CreateCustomerRef registers the user with the processor and returns
	// the external customer reference.
	CreateCustomerRef(ctx context.Context, u *user.User) (string, error)

	// Charge collects the amount. A declined charge returns a result with
	// Succeeded=false and a nil error; transport failures return an error.
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)

	// Refund reverses a prior charge by its gateway reference.
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
}
