package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/laundrycare/lce/internal/domain/user"
	"github.com/laundrycare/lce/internal/gateway"
)

var _ gateway.PaymentGateway = (*FakePaymentGateway)(nil)

// FakePaymentGateway is an in-memory payment processor with failure
// injection for service tests.
type FakePaymentGateway struct {
	mu sync.Mutex

	// DeclineCharges makes Charge answer Succeeded=false without error.
	DeclineCharges bool
	// ChargeErr makes Charge fail at the transport level.
	ChargeErr error
	// DeclineRefunds makes Refund answer Succeeded=false without error.
	DeclineRefunds bool
	// RefundErr makes Refund fail at the transport level.
	RefundErr error

	Charges   []gateway.ChargeRequest
	Refunds   []gateway.RefundRequest
	Customers []string

	seq int
}

func NewFakePaymentGateway() *FakePaymentGateway {
	return &FakePaymentGateway{}
}

func (g *FakePaymentGateway) CreateCustomerRef(ctx context.Context, u *user.User) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	ref := fmt.Sprintf("cus_fake_%d", g.seq)
	g.Customers = append(g.Customers, ref)
	return ref, nil
}

func (g *FakePaymentGateway) Charge(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ChargeErr != nil {
		return nil, g.ChargeErr
	}
	g.Charges = append(g.Charges, req)
	g.seq++
	ref := fmt.Sprintf("pi_fake_%d", g.seq)
	if g.DeclineCharges {
		return &gateway.ChargeResult{GatewayRef: ref, Succeeded: false}, nil
	}
	return &gateway.ChargeResult{GatewayRef: ref, Succeeded: true}, nil
}

func (g *FakePaymentGateway) Refund(ctx context.Context, req gateway.RefundRequest) (*gateway.RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.RefundErr != nil {
		return nil, g.RefundErr
	}
	g.Refunds = append(g.Refunds, req)
	g.seq++
	ref := fmt.Sprintf("re_fake_%d", g.seq)
	if g.DeclineRefunds {
		return &gateway.RefundResult{GatewayRef: ref, Succeeded: false}, nil
	}
	return &gateway.RefundResult{GatewayRef: ref, Succeeded: true}, nil
}
