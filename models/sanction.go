package models

import "time"

// Sanction bans a vehicle from the lot over an inclusive date range. Creating
// one deauthorizes the vehicle; nothing re-authorizes it automatically when
// the range ends.
type Sanction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VehicleID uint      `json:"vehicle_id" gorm:"index;not null"`
	Reason    string    `json:"reason" gorm:"size:255;not null"`
	StartDate string    `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate   string    `json:"end_date" gorm:"size:10;not null"`   // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
}
