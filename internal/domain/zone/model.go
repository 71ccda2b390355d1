package zone

import "github.com/laundrycare/lce/internal/types"

// PickupZone is a serviceable area. Read-only for the scheduler, which
// only checks that a requested zone code is active.
type PickupZone struct {
	ID          string `gorm:"column:id" json:"id"`
	ZoneCode    string `gorm:"column:zone_code" json:"zone_code"`
	ZoneName    string `gorm:"column:zone_name" json:"zone_name"`
	Description string `gorm:"column:description" json:"description,omitempty"`
	IsActive    bool   `gorm:"column:is_active" json:"is_active"`

	types.BaseModel
}

func (z *PickupZone) TableName() string {
	return "lce_pickup_zones"
}
