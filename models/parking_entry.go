package models

import "time"

// ParkingEntry is one OCR detection at the gate. Append-only; the alert
// engine uses it as the presence signal.
type ParkingEntry struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	PlateNumber    string     `json:"plate_number" gorm:"index;size:50"`
	EntryTime      time.Time  `json:"entry_time" gorm:"index"`
	CameraLocation string     `json:"camera_location" gorm:"size:50"`
	DetectedClass  PlateClass `json:"detected_class" gorm:"size:10"`
	Confidence     float64    `json:"confidence"`
}
