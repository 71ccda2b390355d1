package service

import (
	"testing"

	"github.com/laundrycare/lce/internal/domain/pricecatalog"
	"github.com/laundrycare/lce/internal/testutil"
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PricingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PricingService
}

func TestPricingService(t *testing.T) {
	suite.Run(t, new(PricingServiceSuite))
}

func (s *PricingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPricingService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *PricingServiceSuite) addPriceListItem(itemType string, category pricecatalog.ServiceCategory, price string) {
	err := s.GetStores().PriceCatalogRepo.CreatePriceListItem(s.GetContext(), &pricecatalog.PriceListItem{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRICE_ITEM),
		ItemType:        itemType,
		ItemName:        itemType,
		ServiceCategory: category,
		Price:           decimal.RequireFromString(price),
		IsActive:        true,
		BaseModel:       types.GetDefaultBaseModel(s.GetContext()),
	})
	s.NoError(err)
}

func (s *PricingServiceSuite) TestMinimumApplied() {
	// 10 lbs at $2.99 is $29.90, under the $30 minimum.
	breakdown, err := s.service.CalculatePPOPrice(s.GetContext(), decimal.NewFromInt(10), nil, nil)
	s.NoError(err)

	s.True(breakdown.MinimumApplied)
	s.True(breakdown.WashFoldSubtotal.Equal(decimal.RequireFromString("29.90")), breakdown.WashFoldSubtotal.String())
	s.True(breakdown.WashFoldCharge.Equal(decimal.RequireFromString("30.00")), breakdown.WashFoldCharge.String())
	s.True(breakdown.Total.Equal(decimal.RequireFromString("44.99")), breakdown.Total.String())
}

func (s *PricingServiceSuite) TestMinimumNotAppliedAboveThreshold() {
	// 20 lbs at $2.99 is $59.80.
	breakdown, err := s.service.CalculatePPOPrice(s.GetContext(), decimal.NewFromInt(20), nil, nil)
	s.NoError(err)

	s.False(breakdown.MinimumApplied)
	s.True(breakdown.WashFoldCharge.Equal(decimal.RequireFromString("59.80")), breakdown.WashFoldCharge.String())
	s.True(breakdown.Total.Equal(decimal.RequireFromString("74.79")), breakdown.Total.String())
}

func (s *PricingServiceSuite) TestCatalogRateOverridesConfig() {
	minimum := decimal.RequireFromString("25.00")
	err := s.GetStores().PriceCatalogRepo.CreatePrice(s.GetContext(), &pricecatalog.Price{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRICE),
		ServiceType:   ServiceTypeWashFold,
		RatePerLb:     decimal.RequireFromString("3.50"),
		MinimumCharge: &minimum,
		IsActive:      true,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	})
	s.NoError(err)

	breakdown, err := s.service.CalculatePPOPrice(s.GetContext(), decimal.NewFromInt(10), nil, nil)
	s.NoError(err)
	s.True(breakdown.RatePerLb.Equal(decimal.RequireFromString("3.50")))
	s.True(breakdown.WashFoldCharge.Equal(decimal.RequireFromString("35.00")))
	s.False(breakdown.MinimumApplied)
}

func (s *PricingServiceSuite) TestItemizedCharges() {
	s.addPriceListItem("suit", pricecatalog.ServiceCategoryDryClean, "12.50")
	s.addPriceListItem("comforter", pricecatalog.ServiceCategoryHeavyDuty, "22.00")

	breakdown, err := s.service.CalculatePPOPrice(s.GetContext(), decimal.NewFromInt(10),
		[]OrderItem{{ItemType: "suit", Quantity: 2}},
		[]OrderItem{{ItemType: "comforter", Quantity: 1}},
	)
	s.NoError(err)

	s.True(breakdown.DCCharge.Equal(decimal.RequireFromString("25.00")), breakdown.DCCharge.String())
	s.True(breakdown.HDCharge.Equal(decimal.RequireFromString("22.00")), breakdown.HDCharge.String())
	// 30 + 25 + 22 + 9.99 + 5.00
	s.True(breakdown.Total.Equal(decimal.RequireFromString("91.99")), breakdown.Total.String())
}

func (s *PricingServiceSuite) TestUnknownItemPricesAsZero() {
	breakdown, err := s.service.CalculatePPOPrice(s.GetContext(), decimal.NewFromInt(10),
		[]OrderItem{{ItemType: "mystery-item", Quantity: 3}}, nil)
	s.NoError(err)

	s.True(breakdown.DCCharge.IsZero())
	s.Len(breakdown.DCItems, 1)
	s.True(breakdown.DCItems[0].UnitPrice.IsZero())
	s.True(breakdown.Total.Equal(decimal.RequireFromString("44.99")))
}

func (s *PricingServiceSuite) TestNegativeWeightRejected() {
	_, err := s.service.CalculatePPOPrice(s.GetContext(), decimal.NewFromInt(-1), nil, nil)
	s.Error(err)
}

func (s *PricingServiceSuite) TestTotalEqualsComponentSum() {
	s.addPriceListItem("suit", pricecatalog.ServiceCategoryDryClean, "12.50")

	breakdown, err := s.service.CalculatePPOPrice(s.GetContext(), decimal.NewFromInt(15),
		[]OrderItem{{ItemType: "suit", Quantity: 1}}, nil)
	s.NoError(err)

	expected := breakdown.WashFoldCharge.
		Add(breakdown.DCCharge).
		Add(breakdown.HDCharge).
		Add(breakdown.PickupFee).
		Add(breakdown.ServiceFee)
	s.True(breakdown.Total.Equal(expected))
}
