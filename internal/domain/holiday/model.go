package holiday

import (
	"time"

	"github.com/laundrycare/lce/internal/types"
)

// Holiday is a calendar date on which no pickups or deliveries happen.
// Read-only from the calendar resolver's point of view.
type Holiday struct {
	ID       string    `gorm:"column:id" json:"id"`
	Name     string    `gorm:"column:name" json:"name"`
	Date     time.Time `gorm:"column:date" json:"date"`
	IsActive bool      `gorm:"column:is_active" json:"is_active"`

	types.BaseModel
}

func (h *Holiday) TableName() string {
	return "lce_holidays"
}
