package dto

import (
	"time"

	"github.com/laundrycare/lce/internal/domain/pickup"
	"github.com/laundrycare/lce/internal/service"
	"github.com/laundrycare/lce/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// SchedulePickupRequest represents the request payload for booking a pickup
type SchedulePickupRequest struct {
	UserID    string          `json:"user_id" binding:"required"`
	Zone      string          `json:"zone"`
	OrderType types.OrderType `json:"order_type" binding:"required"`
	Notes     string          `json:"notes"`

	// RequestedDate books a specific day instead of the earliest available.
	RequestedDate *time.Time `json:"requested_date,omitempty"`
}

func (r *SchedulePickupRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *SchedulePickupRequest) ToScheduleRequest() service.ScheduleRequest {
	return service.ScheduleRequest{
		UserID:    r.UserID,
		Zone:      r.Zone,
		OrderType: r.OrderType,
		Notes:     r.Notes,
	}
}

// ScheduleRecurringRequest represents the request payload for booking a
// recurring pickup series
type ScheduleRecurringRequest struct {
	SchedulePickupRequest
	Frequency   types.RecurringFrequency `json:"frequency" binding:"required"`
	Occurrences int                      `json:"occurrences"`
}

// PPOQuoteRequest represents the request payload for a pay-per-order quote
type PPOQuoteRequest struct {
	WeightLbs decimal.Decimal     `json:"weight_lbs"`
	DCItems   []service.OrderItem `json:"dc_items"`
	HDItems   []service.OrderItem `json:"hd_items"`
}

// PickupResponse represents the pickup response structure
type PickupResponse struct {
	ID                 string                   `json:"id"`
	UserID             string                   `json:"user_id"`
	OrderType          types.OrderType          `json:"order_type"`
	PickupDate         time.Time                `json:"pickup_date"`
	DeliveryDate       time.Time                `json:"delivery_date"`
	PickupZone         string                   `json:"pickup_zone,omitempty"`
	Status             types.PickupStatus       `json:"status"`
	IsRecurring        bool                     `json:"is_recurring"`
	RecurringFrequency types.RecurringFrequency `json:"recurring_frequency,omitempty"`
	Notes              string                   `json:"notes,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
}

func ToPickupResponse(p *pickup.Pickup) *PickupResponse {
	return &PickupResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		OrderType:          p.OrderType,
		PickupDate:         p.PickupDate,
		DeliveryDate:       p.DeliveryDate,
		PickupZone:         p.PickupZone,
		Status:             p.PickupStatus,
		IsRecurring:        p.IsRecurring,
		RecurringFrequency: p.RecurringFrequency,
		Notes:              p.Notes,
		CreatedAt:          p.CreatedAt,
	}
}

func ToPickupResponses(pickups []*pickup.Pickup) []*PickupResponse {
	responses := make([]*PickupResponse, 0, len(pickups))
	for _, p := range pickups {
		responses = append(responses, ToPickupResponse(p))
	}
	return responses
}
