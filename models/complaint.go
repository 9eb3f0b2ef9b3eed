package models

import "time"

// ComplaintStatus tracks how far a complaint has escalated. Escalation itself
// is driven by counting PARKING_VIOLATION alerts, the status is informational.
type ComplaintStatus string

const (
	ComplaintOpen        ComplaintStatus = "OPEN"
	ComplaintWarningSent ComplaintStatus = "WARNING_SENT"
	ComplaintBanned      ComplaintStatus = "BANNED"
)

type Complaint struct {
	ID                    uint            `json:"id" gorm:"primaryKey"`
	ComplainantEmployeeID uint            `json:"complainant_employee_id" gorm:"index;not null"`
	AccusedVehicleID      *uint           `json:"accused_vehicle_id" gorm:"index"`
	AccusedVehiclePlate   string          `json:"accused_vehicle_plate" gorm:"size:50"` // when the vehicle is not registered
	ParkingSpot           int             `json:"parking_spot" gorm:"not null"`
	PhotoPath             string          `json:"photo_path" gorm:"size:255"`
	Status                ComplaintStatus `json:"status" gorm:"size:15;not null;default:OPEN"`
	CreatedAt             time.Time       `json:"created_at"`
}
