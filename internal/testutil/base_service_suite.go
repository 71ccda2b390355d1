package testutil

import (
	"context"
	"time"

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
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
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

// BaseServiceTestSuite provides common functionality for all service test
// suites: in-memory stores, a pass-through transaction client, a fake
// payment gateway and a pinned clock.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	stores  Stores
	db      postgres.IClient
	logger  *logger.Logger
	config  *config.Configuration
	clock   *FixedClock
	gateway *FakePaymentGateway
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.clock = NewFixedClock(time.Now().UTC())
	s.gateway = NewFakePaymentGateway()
	s.db = NewMockPostgresClient(s.logger)
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	ctx := context.Background()
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	s.ctx = ctx
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		UserRepo:         NewInMemoryUserStore(),
		PlanRepo:         NewInMemoryPlanStore(),
		SubRepo:          NewInMemorySubscriptionStore(),
		BagUsageRepo:     NewInMemoryBagUsageStore(),
		CreditRepo:       NewInMemoryCreditStore(),
		PickupRepo:       NewInMemoryPickupStore(),
		InvoiceRepo:      NewInMemoryInvoiceStore(),
		InvoiceLineRepo:  NewInMemoryInvoiceLineStore(),
		TransactionRepo:  NewInMemoryTransactionStore(),
		HolidayRepo:      NewInMemoryHolidayStore(),
		PriceCatalogRepo: NewInMemoryPriceCatalogStore(),
		ZoneRepo:         NewInMemoryZoneStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.PlanRepo.(*InMemoryPlanStore).Clear()
	s.stores.SubRepo.(*InMemorySubscriptionStore).Clear()
	s.stores.BagUsageRepo.(*InMemoryBagUsageStore).Clear()
	s.stores.CreditRepo.(*InMemoryCreditStore).Clear()
	s.stores.PickupRepo.(*InMemoryPickupStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.InvoiceLineRepo.(*InMemoryInvoiceLineStore).Clear()
	s.stores.TransactionRepo.(*InMemoryTransactionStore).Clear()
	s.stores.HolidayRepo.(*InMemoryHolidayStore).Clear()
	s.stores.PriceCatalogRepo.(*InMemoryPriceCatalogStore).Clear()
	s.stores.ZoneRepo.(*InMemoryZoneStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the in-memory repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the pass-through transaction client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the default test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetClock returns the pinned clock
func (s *BaseServiceTestSuite) GetClock() *FixedClock {
	return s.clock
}

// GetGateway returns the fake payment gateway
func (s *BaseServiceTestSuite) GetGateway() *FakePaymentGateway {
	return s.gateway
}

// GetNow returns the pinned current time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.clock.Now()
}
