package models

import "time"

// PlateClass is the registration category of a plate. ETAT (state) vehicles
// are required to stay in the lot during night shifts.
type PlateClass string

const (
	PlateTN   PlateClass = "TN"   // ordinary
	PlateRS   PlateClass = "RS"   // reserved series
	PlateEtat PlateClass = "ETAT" // state-owned
)

type Vehicle struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	PlateNumber  string     `json:"plate_number" gorm:"uniqueIndex;size:50;not null"` // as read by the OCR cameras
	PlateClass   PlateClass `json:"plate_class" gorm:"size:10;not null"`
	CarType      string     `json:"car_type" gorm:"size:50"`
	Color        string     `json:"color" gorm:"size:50"`
	ParkingSpot  *int       `json:"parking_spot"`
	EmployeeID   *uint      `json:"employee_id" gorm:"index"`
	IsAuthorized bool       `json:"is_authorized" gorm:"default:true"` // flipped off by sanctions
	CreatedAt    time.Time  `json:"created_at"`
}
