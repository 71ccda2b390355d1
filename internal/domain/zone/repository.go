package zone

import "context"

// Repository defines the interface for pickup zone lookups
type Repository interface {
	Create(ctx context.Context, zone *PickupZone) error

	// IsServiceable reports whether an active zone with the code exists.
	IsServiceable(ctx context.Context, zoneCode string) (bool, error)
}
