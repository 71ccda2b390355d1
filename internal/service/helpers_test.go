package service

import (
	"github.com/laundrycare/lce/internal/testutil"
)

// newTestParams wires ServiceParams from the base suite's in-memory stores.
func newTestParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:  s.GetLogger(),
		Config:  s.GetConfig(),
		DB:      s.GetDB(),
		Clock:   s.GetClock(),
		Gateway: s.GetGateway(),

		UserRepo:         stores.UserRepo,
		PlanRepo:         stores.PlanRepo,
		SubRepo:          stores.SubRepo,
		BagUsageRepo:     stores.BagUsageRepo,
		CreditRepo:       stores.CreditRepo,
		PickupRepo:       stores.PickupRepo,
		InvoiceRepo:      stores.InvoiceRepo,
		InvoiceLineRepo:  stores.InvoiceLineRepo,
		TransactionRepo:  stores.TransactionRepo,
		HolidayRepo:      stores.HolidayRepo,
		PriceCatalogRepo: stores.PriceCatalogRepo,
		ZoneRepo:         stores.ZoneRepo,
	}
}
