package models

import "time"

type AlertType string

const (
	AlertAbsence          AlertType = "ABSENCE"
	AlertLate             AlertType = "LATE"
	AlertUnauthorized     AlertType = "UNAUTHORIZED"
	AlertParkingViolation AlertType = "PARKING_VIOLATION"
)

// Alert is immutable once created; only the delivery flags are written, and
// only at creation time.
type Alert struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EmployeeID *uint     `json:"employee_id" gorm:"index"`
	VehicleID  *uint     `json:"vehicle_id" gorm:"index"`
	AlertType  AlertType `json:"alert_type" gorm:"size:20;not null"`
	Message    string    `json:"message" gorm:"type:text"`
	SentEmail  bool      `json:"sent_email" gorm:"default:false"`
	SentSMS    bool      `json:"sent_sms" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
}
