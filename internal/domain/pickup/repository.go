package pickup

import "context"

// Repository defines the interface for pickup persistence
type Repository interface {
	Create(ctx context.Context, pickup *Pickup) error
	Get(ctx context.Context, id string) (*Pickup, error)
	Update(ctx context.Context, pickup *Pickup) error
	ListByUser(ctx context.Context, userID string) ([]*Pickup, error)
}
