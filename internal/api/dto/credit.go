package dto

import (
	"time"

	"github.com/laundrycare/lce/internal/domain/credit"
	"github.com/laundrycare/lce/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// GrantCreditRequest represents the request payload for a manual credit grant
type GrantCreditRequest struct {
	UserID      string           `json:"user_id" binding:"required"`
	Type        types.CreditType `json:"type" binding:"required"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Description string           `json:"description"`
	ExpiresAt   *time.Time       `json:"expires_at,omitempty"`
}

func (r *GrantCreditRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return err
	}
	return r.Type.Validate()
}

// CreditResponse represents the credit response structure
type CreditResponse struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Type            types.CreditType `json:"type"`
	Amount          decimal.Decimal  `json:"amount"`
	RemainingAmount decimal.Decimal  `json:"remaining_amount"`
	Description     string           `json:"description,omitempty"`
	ExpiresAt       *time.Time       `json:"expires_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func ToCreditResponse(c *credit.Credit) *CreditResponse {
	return &CreditResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		Type:            c.Type,
		Amount:          c.Amount,
		RemainingAmount: c.RemainingAmount,
		Description:     c.Description,
		ExpiresAt:       c.ExpiresAt,
		CreatedAt:       c.CreatedAt,
	}
}

func ToCreditResponses(credits []*credit.Credit) []*CreditResponse {
	responses := make([]*CreditResponse, 0, len(credits))
	for _, c := range credits {
		responses = append(responses, ToCreditResponse(c))
	}
	return responses
}

// BalanceResponse represents a user's available credit balance
type BalanceResponse struct {
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}
