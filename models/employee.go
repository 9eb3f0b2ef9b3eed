package models

import "time"

type WorkType string

const (
	WorkDay   WorkType = "DAY"
	WorkNight WorkType = "NIGHT"
	WorkBoth  WorkType = "BOTH"
)

type Employee struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"size:100;not null"`
	LastName  string    `json:"last_name" gorm:"size:100;not null"`
	Phone     string    `json:"phone" gorm:"size:20"`
	Email     string    `json:"email" gorm:"size:150"`
	WorkType  WorkType  `json:"work_type" gorm:"size:10;not null"` // DAY | NIGHT | BOTH
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`

	Vehicles      []Vehicle      `json:"vehicles,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	WorkSchedules []WorkSchedule `json:"work_schedules,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Absences      []Absence      `json:"absences,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Alerts        []Alert        `json:"alerts,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}
