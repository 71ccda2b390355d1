package service

import (
	"github.com/laundrycare/lce/internal/config"
	"github.com/laundrycare/lce/internal/domain/credit"
	"github.com/laundrycare/lce/internal/domain/holiday"
	"github.com/laundrycare/lce/internal/domain/invoice"
	"github.com/laundrycare/lce/internal/domain/pickup"
	"github.com/laundrycare/lce/internal/domain/plan"
	"github.com/laundrycare/lce/internal/domain/pricecatalog"
	"github.com/laundrycare/lce/internal/domain/subscription"
	"github.com/laundrycare/lce/internal/domain/transaction"
	"github.com/laundrycare/lce/internal/domain/user"
	"github.com/laundrycare/lce/internal/domain/zone"
	"github.com/laundrycare/lce/internal/gateway"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"
)

// ServiceParams carries commonly used dependencies across services.
// Every service embeds it so constructors stay uniform and new
// dependencies do not ripple through call sites.
type ServiceParams struct {
	Logger  *logger.Logger
	Config  *config.Configuration
	DB      postgres.IClient
	Clock   types.Clock
	Gateway gateway.PaymentGateway

	// Repositories
	UserRepo         user.Repository
	PlanRepo         plan.Repository
	SubRepo          subscription.Repository
	BagUsageRepo     subscription.BagUsageRepository
	CreditRepo       credit.Repository
	PickupRepo       pickup.Repository
	InvoiceRepo      invoice.Repository
	InvoiceLineRepo  invoice.LineRepository
	TransactionRepo  transaction.Repository
	HolidayRepo      holiday.Repository
	PriceCatalogRepo pricecatalog.Repository
	ZoneRepo         zone.Repository
}
