package models

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"uniqueIndex;size:60;not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;size:150;not null"`
	Password   string    `json:"-" gorm:"not null"` // bcrypt hash
	FullName   string    `json:"full_name" gorm:"size:120"`
	Role       Role      `json:"role" gorm:"size:20;not null;default:employee"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	EmployeeID *uint     `json:"employee_id"` // link to the employee record, if any
	CreatedAt  time.Time `json:"created_at"`
}
