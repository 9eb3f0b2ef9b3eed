package models

import "time"

type AbsenceStatus string

const (
	AbsencePending  AbsenceStatus = "PENDING"
	AbsenceApproved AbsenceStatus = "APPROVED"
	AbsenceRejected AbsenceStatus = "REJECTED"
)

// Absence is a justified leave request. Only APPROVED rows covering today
// suppress lateness alerts.
type Absence struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	EmployeeID    uint          `json:"employee_id" gorm:"index;not null"`
	StartDate     string        `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate       string        `json:"end_date" gorm:"size:10;not null"`   // YYYY-MM-DD
	StartTime     string        `json:"start_time" gorm:"size:5"`           // HH:MM, optional
	EndTime       string        `json:"end_time" gorm:"size:5"`             // HH:MM, optional
	Justification string        `json:"justification" gorm:"type:text"`
	DocumentPath  string        `json:"document_path" gorm:"size:255"`
	Status        AbsenceStatus `json:"status" gorm:"size:10;not null;default:PENDING"`
	CreatedAt     time.Time     `json:"created_at"`
}
