package subscription

import (
	"context"
	"time"
)

// Repository defines the interface for subscription persistence
type Repository interface {
	Create(ctx context.Context, subscription *Subscription) error
	Get(ctx context.Context, id string) (*Subscription, error)
	Update(ctx context.Context, subscription *Subscription) error
	ListByUser(ctx context.Context, userID string) ([]*Subscription, error)
	// ListDueForRenewal returns active subscriptions whose next billing
	// date is on or before the given time. Used by the renewal job.
	ListDueForRenewal(ctx context.Context, asOf time.Time) ([]*Subscription, error)
}

// BagUsageRepository defines the interface for bag usage persistence
type BagUsageRepository interface {
	Create(ctx context.Context, usage *BagUsage) error
	ListBySubscription(ctx context.Context, subscriptionID string) ([]*BagUsage, error)
	GetByPickup(ctx context.Context, pickupID string) (*BagUsage, error)
}
