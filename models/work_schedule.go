package models

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// WorkSchedule holds the expected on-site window for one weekday.
// One row per employee per day in practice.
type WorkSchedule struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EmployeeID uint      `json:"employee_id" gorm:"index;not null"`
	DayOfWeek  DayOfWeek `json:"day_of_week" gorm:"size:10;not null"`
	StartTime  string    `json:"start_time" gorm:"size:5"` // HH:MM, empty = no expected start
	EndTime    string    `json:"end_time" gorm:"size:5"`   // HH:MM
}
