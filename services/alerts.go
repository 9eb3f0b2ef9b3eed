package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sahar-naoui/version2/models"
)

const (
	// latenessWindow is how far back a gate detection still counts as
	// "arrived" when checking a day-shift start time.
	latenessWindow = 30 * time.Minute

	// nightWindow is the trailing detection window for the night check.
	nightWindow = 2 * time.Hour

	// violationLimit is the number of PARKING_VIOLATION alerts a vehicle
	// can accumulate before a sanction is created.
	violationLimit = 3

	// sanctionDays is the length of an automatic ban.
	sanctionDays = 3

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var weekdays = map[time.Weekday]models.DayOfWeek{
	time.Monday:    models.Monday,
	time.Tuesday:   models.Tuesday,
	time.Wednesday: models.Wednesday,
	time.Thursday:  models.Thursday,
	time.Friday:    models.Friday,
	time.Saturday:  models.Saturday,
	time.Sunday:    models.Sunday,
}

// AlertService evaluates presence rules and raises alerts/sanctions.
// Notification failures degrade to false delivery flags; database errors
// propagate to the caller.
type AlertService struct {
	db       *gorm.DB
	notifier Notifier
	now      func() time.Time
}

func NewAlertService(db *gorm.DB, notifier Notifier) *AlertService {
	return &AlertService{db: db, notifier: notifier, now: time.Now}
}

// IsVehiclePresent reports whether a gate detection for plate exists in
// [asOf-window, asOf], inclusive on both ends.
func (s *AlertService) IsVehiclePresent(plate string, asOf time.Time, window time.Duration) (bool, error) {
	var n int64
	err := s.db.Model(&models.ParkingEntry{}).
		Where("plate_number = ? AND entry_time >= ? AND entry_time <= ?", plate, asOf.Add(-window), asOf).
		Count(&n).Error
	return n > 0, err
}

// CheckAndSendAbsenceAlerts raises a LATE alert for every active employee who
// is expected on-site right now (wall clock equals schedule start + 1 minute,
// to the minute), has no approved absence covering today, and has no vehicle
// detected within the last 30 minutes.
func (s *AlertService) CheckAndSendAbsenceAlerts() error {
	now := s.now()
	today := now.Format(dateLayout)

	day, ok := weekdays[now.Weekday()]
	if !ok {
		return nil
	}

	var employees []models.Employee
	if err := s.db.Where("is_active = ?", true).Find(&employees).Error; err != nil {
		return err
	}

	for _, emp := range employees {
		var sched models.WorkSchedule
		err := s.db.Where("employee_id = ? AND day_of_week = ?", emp.ID, day).First(&sched).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if sched.StartTime == "" {
			continue
		}

		start, err := time.Parse(timeLayout, sched.StartTime)
		if err != nil {
			continue // malformed schedule row
		}
		checkpoint := start.Add(time.Minute)
		if now.Hour() != checkpoint.Hour() || now.Minute() != checkpoint.Minute() {
			continue
		}

		var approved int64
		if err := s.db.Model(&models.Absence{}).
			Where("employee_id = ? AND start_date <= ? AND end_date >= ? AND status = ?",
				emp.ID, today, today, models.AbsenceApproved).
			Count(&approved).Error; err != nil {
			return err
		}
		if approved > 0 {
			continue
		}

		var vehicles []models.Vehicle
		if err := s.db.Where("employee_id = ?", emp.ID).Find(&vehicles).Error; err != nil {
			return err
		}

		for _, v := range vehicles {
			present, err := s.IsVehiclePresent(v.PlateNumber, now, latenessWindow)
			if err != nil {
				return err
			}
			if present {
				continue
			}

			msg := fmt.Sprintf("Vehicle %s not detected in the parking lot at %s", v.PlateNumber, sched.StartTime)
			if err := s.raiseAlert(&emp, &v, models.AlertLate, msg,
				fmt.Sprintf("Lateness alert - %s", v.PlateNumber),
				fmt.Sprintf("Hello %s %s,\n\nYour vehicle %s was not detected in the parking lot at %s.\nPlease contact the administration if you have a justification.",
					emp.FirstName, emp.LastName, v.PlateNumber, sched.StartTime),
				fmt.Sprintf("STEG ALERT: vehicle %s was not detected at %s", v.PlateNumber, sched.StartTime),
			); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckNightVehiclePresence raises an ABSENCE alert for every authorized
// state-class vehicle of a night/both-shift employee that has no detection in
// the last 2 hours. Only runs during night hours (20:00-08:00).
func (s *AlertService) CheckNightVehiclePresence() error {
	now := s.now()
	hour := now.Hour()
	if hour < 20 && hour >= 8 {
		return nil
	}

	var vehicles []models.Vehicle
	if err := s.db.Where("plate_class = ? AND is_authorized = ?", models.PlateEtat, true).
		Find(&vehicles).Error; err != nil {
		return err
	}

	for _, v := range vehicles {
		if v.EmployeeID == nil {
			continue
		}

		var emp models.Employee
		err := s.db.First(&emp, *v.EmployeeID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if emp.WorkType != models.WorkNight && emp.WorkType != models.WorkBoth {
			continue
		}

		present, err := s.IsVehiclePresent(v.PlateNumber, now, nightWindow)
		if err != nil {
			return err
		}
		if present {
			continue
		}

		msg := fmt.Sprintf("State vehicle %s absent during the night", v.PlateNumber)
		if err := s.raiseAlert(&emp, &v, models.AlertAbsence, msg,
			"Alert - state vehicle absent at night",
			fmt.Sprintf("Your state vehicle %s was not detected in the parking lot during the night.", v.PlateNumber),
			fmt.Sprintf("STEG ALERT: state vehicle %s absent during the night", v.PlateNumber),
		); err != nil {
			return err
		}
	}
	return nil
}

// ProcessComplaintAlert handles a new or updated complaint: it records a
// PARKING_VIOLATION alert against the accused vehicle's owner and, once the
// vehicle has accumulated violationLimit such alerts, creates a 3-day
// sanction and revokes the vehicle's authorization. Complaints that resolve
// to no vehicle or no owner are left unattributed.
func (s *AlertService) ProcessComplaintAlert(complaint *models.Complaint) error {
	vehicle, err := s.resolveAccusedVehicle(complaint)
	if err != nil {
		return err
	}
	if vehicle == nil || vehicle.EmployeeID == nil {
		return nil
	}

	var emp models.Employee
	err = s.db.First(&emp, *vehicle.EmployeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Vehicle %s occupied reserved spot #%d (complaint #%d)",
		vehicle.PlateNumber, complaint.ParkingSpot, complaint.ID)
	if err := s.raiseAlert(&emp, vehicle, models.AlertParkingViolation, msg,
		"Warning - reserved parking spot occupied",
		fmt.Sprintf("Hello %s %s,\n\nYou received a warning for occupying parking spot #%d reserved for a colleague.\nAfter %d violations your vehicle will be banned from the lot for %d days.",
			emp.FirstName, emp.LastName, complaint.ParkingSpot, violationLimit, sanctionDays),
		fmt.Sprintf("STEG WARNING: vehicle %s reported on reserved spot #%d", vehicle.PlateNumber, complaint.ParkingSpot),
	); err != nil {
		return err
	}

	if complaint.Status == models.ComplaintOpen {
		complaint.Status = models.ComplaintWarningSent
		if err := s.db.Model(complaint).Update("status", models.ComplaintWarningSent).Error; err != nil {
			return err
		}
	}

	var violations int64
	if err := s.db.Model(&models.Alert{}).
		Where("vehicle_id = ? AND alert_type = ?", vehicle.ID, models.AlertParkingViolation).
		Count(&violations).Error; err != nil {
		return err
	}
	if violations < violationLimit {
		return nil
	}

	today := s.now().Format(dateLayout)
	var covering int64
	if err := s.db.Model(&models.Sanction{}).
		Where("vehicle_id = ? AND start_date <= ? AND end_date >= ?", vehicle.ID, today, today).
		Count(&covering).Error; err != nil {
		return err
	}
	if covering > 0 {
		return nil // already banned for today, don't stack sanctions
	}

	endDate := s.now().AddDate(0, 0, sanctionDays).Format(dateLayout)
	sanction := models.Sanction{
		VehicleID: vehicle.ID,
		Reason:    fmt.Sprintf("Repeated reserved-spot occupation (complaint #%d)", complaint.ID),
		StartDate: today,
		EndDate:   endDate,
	}
	if err := s.db.Create(&sanction).Error; err != nil {
		return err
	}
	if err := s.db.Model(&models.Vehicle{}).Where("id = ?", vehicle.ID).
		Update("is_authorized", false).Error; err != nil {
		return err
	}

	complaint.Status = models.ComplaintBanned
	if err := s.db.Model(complaint).Update("status", models.ComplaintBanned).Error; err != nil {
		return err
	}

	if emp.Email != "" {
		s.notifier.SendEmail(emp.Email,
			"Sanction - banned from the parking lot",
			fmt.Sprintf("Hello %s %s,\n\nFollowing repeated occupation of reserved parking spots, your vehicle %s is banned from the lot from %s to %s.",
				emp.FirstName, emp.LastName, vehicle.PlateNumber, today, endDate))
	}
	return nil
}

func (s *AlertService) resolveAccusedVehicle(complaint *models.Complaint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if complaint.AccusedVehicleID != nil {
		err := s.db.First(&vehicle, *complaint.AccusedVehicleID).Error
		if err == nil {
			return &vehicle, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if complaint.AccusedVehiclePlate != "" {
		err := s.db.Where("plate_number = ?", complaint.AccusedVehiclePlate).First(&vehicle).Error
		if err == nil {
			return &vehicle, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// raiseAlert persists the alert, then attempts delivery and records the
// outcome flags. Delivery is attempted only for contact fields the employee
// actually has.
func (s *AlertService) raiseAlert(emp *models.Employee, v *models.Vehicle, typ models.AlertType, msg, subject, body, sms string) error {
	empID, vehID := emp.ID, v.ID
	alert := models.Alert{
		EmployeeID: &empID,
		VehicleID:  &vehID,
		AlertType:  typ,
		Message:    msg,
	}
	if err := s.db.Create(&alert).Error; err != nil {
		return err
	}

	if emp.Email != "" {
		alert.SentEmail = s.notifier.SendEmail(emp.Email, subject, body)
	}
	if emp.Phone != "" {
		alert.SentSMS = s.notifier.SendSMS(emp.Phone, sms)
	}

	return s.db.Model(&models.Alert{}).Where("id = ?", alert.ID).
		Updates(map[string]any{"sent_email": alert.SentEmail, "sent_sms": alert.SentSMS}).Error
}
