package repository

import (
	"sync"
	"testing"

	domainCredit "github.com/laundrycare/lce/internal/domain/credit"
	domainHoliday "github.com/laundrycare/lce/internal/domain/holiday"
	domainInvoice "github.com/laundrycare/lce/internal/domain/invoice"
	domainPickup "github.com/laundrycare/lce/internal/domain/pickup"
	domainPlan "github.com/laundrycare/lce/internal/domain/plan"
	domainCatalog "github.com/laundrycare/lce/internal/domain/pricecatalog"
	domainSub "github.com/laundrycare/lce/internal/domain/subscription"
	domainTxn "github.com/laundrycare/lce/internal/domain/transaction"
	domainUser "github.com/laundrycare/lce/internal/domain/user"
	domainZone "github.com/laundrycare/lce/internal/domain/zone"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// TestRepositoryFilterColumnsExist pins the raw SQL column names used in this
// package's Where/Order clauses to the columns GORM actually maps for each
// model. A filter referencing a column the writes never create would pass the
// in-memory test stores but fail against postgres, so the contract is asserted
// here at the schema level.
func TestRepositoryFilterColumnsExist(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{
			name:    "transaction",
			model:   &domainTxn.Transaction{},
			columns: []string{"id", "invoice_id", "type", "tx_status", "status", "created_at"},
		},
		{
			name:    "user",
			model:   &domainUser.User{},
			columns: []string{"id", "email", "status"},
		},
		{
			name:    "subscription",
			model:   &domainSub.Subscription{},
			columns: []string{"id", "user_id", "subscription_status", "next_billing_date", "status", "created_at"},
		},
		{
			name:    "bag_usage",
			model:   &domainSub.BagUsage{},
			columns: []string{"subscription_id", "pickup_id", "status", "created_at"},
		},
		{
			name:    "invoice",
			model:   &domainInvoice.Invoice{},
			columns: []string{"id", "user_id", "pickup_id", "status", "created_at"},
		},
		{
			name:    "invoice_line_item",
			model:   &domainInvoice.InvoiceLine{},
			columns: []string{"invoice_id", "status", "created_at"},
		},
		{
			name:    "credit",
			model:   &domainCredit.Credit{},
			columns: []string{"id", "user_id", "remaining_amount", "expires_at", "status", "created_at"},
		},
		{
			name:    "pickup",
			model:   &domainPickup.Pickup{},
			columns: []string{"id", "user_id", "pickup_date", "status"},
		},
		{
			name:    "plan",
			model:   &domainPlan.Plan{},
			columns: []string{"id", "is_active", "price", "status"},
		},
		{
			name:    "service_price",
			model:   &domainCatalog.Price{},
			columns: []string{"service_type", "is_active", "status", "created_at"},
		},
		{
			name:    "item_price",
			model:   &domainCatalog.PriceListItem{},
			columns: []string{"item_type", "service_category", "is_active", "status"},
		},
		{
			name:    "holiday",
			model:   &domainHoliday.Holiday{},
			columns: []string{"date", "is_active", "status"},
		},
		{
			name:    "zone",
			model:   &domainZone.PickupZone{},
			columns: []string{"zone_code", "is_active", "status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := schema.Parse(tt.model, &sync.Map{}, schema.NamingStrategy{})
			require.NoError(t, err)
			for _, col := range tt.columns {
				_, ok := s.FieldsByDBName[col]
				require.True(t, ok, "column %q is not mapped on %T", col, tt.model)
			}
		})
	}
}

// The completed-charge lookup reads the column the ledger writes. The type
// column on lce_user_transactions is named "type", not "transaction_type".
func TestTransactionTypeColumnName(t *testing.T) {
	s, err := schema.Parse(&domainTxn.Transaction{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	f := s.LookUpField("Type")
	require.NotNil(t, f)
	require.Equal(t, "type", f.DBName)

	_, ok := s.FieldsByDBName["transaction_type"]
	require.False(t, ok)
}
