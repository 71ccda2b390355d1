package stripe

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/laundrycare/lce/internal/config"
	"github.com/laundrycare/lce/internal/domain/user"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/gateway"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

// Gateway implements gateway.PaymentGateway on Stripe. Amounts are
// converted to integer cents at this boundary; the rest of the system
// works in decimal dollars.
type Gateway struct {
	client *stripe.Client
	logger *logger.Logger
}

func NewGateway(cfg *config.Configuration, logger *logger.Logger) *Gateway {
	return &Gateway{
		client: stripe.NewClient(cfg.Stripe.SecretKey, nil),
		logger: logger,
	}
}

var _ gateway.PaymentGateway = (*Gateway)(nil)

func (g *Gateway) CreateCustomerRef(ctx context.Context, u *user.User) (string, error) {
	params := &stripe.CustomerCreateParams{
		Email: stripe.String(u.Email),
		Name:  stripe.String(u.Name),
		Metadata: map[string]string{
			"user_id": u.ID,
		},
	}
	if u.Phone != "" {
		params.Phone = stripe.String(u.Phone)
	}

	customer, err := g.client.V1Customers.Create(ctx, params)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to register customer with the payment processor").
			WithReportableDetails(map[string]any{
				"user_id": u.ID,
			}).
			Mark(ierr.ErrPaymentFailed)
	}

	g.logger.Infow("created stripe customer",
		"user_id", u.ID,
		"stripe_customer_id", customer.ID,
	)
	return customer.ID, nil
}

func (g *Gateway) Charge(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:        stripe.Int64(toCents(req.Amount)),
		Currency:      stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
		Metadata:      req.Metadata,
	}
	if req.CustomerRef != "" {
		params.Customer = stripe.String(req.CustomerRef)
	}
	if req.IdempotencyKey != "" {
		params.IdempotencyKey = stripe.String(req.IdempotencyKey)
	}

	var intent *stripe.PaymentIntent
	// Retry transport-level failures only; the idempotency key makes the
	// retried call safe. Card declines come back as a non-retryable result.
	operation := func() error {
		var err error
		intent, err = g.client.V1PaymentIntents.Create(ctx, params)
		if err != nil {
			if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Type == stripe.ErrorTypeCard {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}
	if err := backoff.Retry(operation, retryPolicy(ctx)); err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Type == stripe.ErrorTypeCard {
			g.logger.Warnw("stripe charge declined",
				"decline_code", stripeErr.DeclineCode,
				"payment_method", req.PaymentMethodID,
			)
			ref := ""
			if stripeErr.PaymentIntent != nil {
				ref = stripeErr.PaymentIntent.ID
			}
			return &gateway.ChargeResult{GatewayRef: ref, Succeeded: false}, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Payment processor is unavailable").
			Mark(ierr.ErrPaymentFailed)
	}

	return &gateway.ChargeResult{
		GatewayRef: intent.ID,
		Succeeded:  intent.Status == stripe.PaymentIntentStatusSucceeded,
	}, nil
}

func (g *Gateway) Refund(ctx context.Context, req gateway.RefundRequest) (*gateway.RefundResult, error) {
	params := &stripe.RefundCreateParams{
		PaymentIntent: stripe.String(req.ChargeRef),
	}
	if req.Amount.IsPositive() {
		params.Amount = stripe.Int64(toCents(req.Amount))
	}
	if req.IdempotencyKey != "" {
		params.IdempotencyKey = stripe.String(req.IdempotencyKey)
	}

	var refund *stripe.Refund
	operation := func() error {
		var err error
		refund, err = g.client.V1Refunds.Create(ctx, params)
		if err != nil {
			if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Type != stripe.ErrorTypeAPI {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}
	if err := backoff.Retry(operation, retryPolicy(ctx)); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Payment processor refused the refund").
			WithReportableDetails(map[string]any{
				"charge_ref": req.ChargeRef,
			}).
			Mark(ierr.ErrRefundFailed)
	}

	return &gateway.RefundResult{
		GatewayRef: refund.ID,
		Succeeded:  refund.Status == stripe.RefundStatusSucceeded || refund.Status == stripe.RefundStatusPending,
	}, nil
}

func retryPolicy(ctx context.Context) backoff.BackOffContext {
	policy := backoff.NewExponentialBackOff()
	return backoff.WithContext(backoff.WithMaxRetries(policy, 3), ctx)
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
