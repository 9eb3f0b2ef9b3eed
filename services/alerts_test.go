package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
)

type fakeNotifier struct {
	emails  []string
	sms     []string
	emailOK bool
	smsOK   bool
}

func (f *fakeNotifier) SendEmail(to, subject, body string) bool {
	f.emails = append(f.emails, to)
	return f.emailOK
}

func (f *fakeNotifier) SendSMS(to, message string) bool {
	f.sms = append(f.sms, to)
	return f.smsOK
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T, at time.Time) (*AlertService, *fakeNotifier, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	n := &fakeNotifier{emailOK: true, smsOK: true}
	svc := NewAlertService(db, n)
	svc.now = func() time.Time { return at }
	return svc, n, db
}

func seedEmployee(t *testing.T, db *gorm.DB, work models.WorkType) models.Employee {
	t.Helper()
	emp := models.Employee{
		FirstName: "Sami",
		LastName:  "Ben Salah",
		Phone:     "+216 20 000 000",
		Email:     "sami@steg.tn",
		WorkType:  work,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&emp).Error)
	return emp
}

func seedVehicle(t *testing.T, db *gorm.DB, empID uint, plate string, class models.PlateClass) models.Vehicle {
	t.Helper()
	v := models.Vehicle{
		PlateNumber:  plate,
		PlateClass:   class,
		EmployeeID:   &empID,
		IsAuthorized: true,
	}
	require.NoError(t, db.Create(&v).Error)
	return v
}

// monday0901 is a Monday at 09:01, one minute past a 09:00 shift start.
var monday0901 = time.Date(2025, 6, 2, 9, 1, 0, 0, time.UTC)

func TestIsVehiclePresentWindowBoundaries(t *testing.T) {
	asOf := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	svc, _, db := newTestService(t, asOf)

	cases := []struct {
		name  string
		entry time.Time
		want  bool
	}{
		{"at lower bound", asOf.Add(-30 * time.Minute), true},
		{"at upper bound", asOf, true},
		{"inside window", asOf.Add(-10 * time.Minute), true},
		{"just before window", asOf.Add(-30*time.Minute - time.Second), false},
		{"after as-of", asOf.Add(time.Second), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, db.Where("1 = 1").Delete(&models.ParkingEntry{}).Error)
			require.NoError(t, db.Create(&models.ParkingEntry{
				PlateNumber: "123 TN 456",
				EntryTime:   tc.entry,
			}).Error)

			got, err := svc.IsVehiclePresent("123 TN 456", asOf, 30*time.Minute)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)

			// unchanged log, same answer
			again, err := svc.IsVehiclePresent("123 TN 456", asOf, 30*time.Minute)
			require.NoError(t, err)
			require.Equal(t, got, again)
		})
	}
}

func TestIsVehiclePresentNoEntries(t *testing.T) {
	svc, _, _ := newTestService(t, monday0901)
	present, err := svc.IsVehiclePresent("999 TN 999", monday0901, 30*time.Minute)
	require.NoError(t, err)
	require.False(t, present)
}

func TestAbsenceAlertsLateEmployee(t *testing.T) {
	svc, n, db := setupLatenessCase(t, monday0901, "09:00")

	require.NoError(t, svc.CheckAndSendAbsenceAlerts())

	var alerts []models.Alert
	require.NoError(t, db.Find(&alerts).Error)
	require.Len(t, alerts, 1)
	require.Equal(t, models.AlertLate, alerts[0].AlertType)
	require.True(t, alerts[0].SentEmail)
	require.True(t, alerts[0].SentSMS)
	require.Equal(t, []string{"sami@steg.tn"}, n.emails)
}

// setupLatenessCase sets up one active day-shift employee with a vehicle
// and a Monday schedule starting at start.
func setupLatenessCase(t *testing.T, at time.Time, start string) (*AlertService, *fakeNotifier, *gorm.DB) {
	t.Helper()
	svc, n, db := newTestService(t, at)
	emp := seedEmployee(t, db, models.WorkDay)
	seedVehicle(t, db, emp.ID, "100 TN 200", models.PlateTN)
	require.NoError(t, db.Create(&models.WorkSchedule{
		EmployeeID: emp.ID,
		DayOfWeek:  models.Monday,
		StartTime:  start,
		EndTime:    "17:00",
	}).Error)
	return svc, n, db
}

func TestAbsenceAlertsExactMinuteOnly(t *testing.T) {
	// 09:02 is one minute past the checkpoint; the monitor must not fire.
	svc, _, db := setupLatenessCase(t, monday0901.Add(time.Minute), "09:00")

	require.NoError(t, svc.CheckAndSendAbsenceAlerts())

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAbsenceAlertsMinuteRollover(t *testing.T) {
	// 09:59 start -> checkpoint is 10:00
	at := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	svc, _, db := setupLatenessCase(t, at, "09:59")

	require.NoError(t, svc.CheckAndSendAbsenceAlerts())

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAbsenceAlertsApprovedAbsenceSuppresses(t *testing.T) {
	svc, _, db := setupLatenessCase(t, monday0901, "09:00")

	var emp models.Employee
	require.NoError(t, db.First(&emp).Error)
	require.NoError(t, db.Create(&models.Absence{
		EmployeeID: emp.ID,
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-03",
		Status:     models.AbsenceApproved,
	}).Error)

	require.NoError(t, svc.CheckAndSendAbsenceAlerts())

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAbsenceAlertsPendingAbsenceDoesNotSuppress(t *testing.T) {
	svc, _, db := setupLatenessCase(t, monday0901, "09:00")

	var emp models.Employee
	require.NoError(t, db.First(&emp).Error)
	require.NoError(t, db.Create(&models.Absence{
		EmployeeID: emp.ID,
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-03",
		Status:     models.AbsencePending,
	}).Error)

	require.NoError(t, svc.CheckAndSendAbsenceAlerts())

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAbsenceAlertsVehicleDetected(t *testing.T) {
	svc, _, db := setupLatenessCase(t, monday0901, "09:00")

	require.NoError(t, db.Create(&models.ParkingEntry{
		PlateNumber: "100 TN 200",
		EntryTime:   monday0901.Add(-15 * time.Minute),
	}).Error)

	require.NoError(t, svc.CheckAndSendAbsenceAlerts())

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAbsenceAlertsInactiveEmployeeSkipped(t *testing.T) {
	svc, _, db := setupLatenessCase(t, monday0901, "09:00")
	require.NoError(t, db.Model(&models.Employee{}).Where("1 = 1").
		Update("is_active", false).Error)

	require.NoError(t, svc.CheckAndSendAbsenceAlerts())

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAbsenceAlertsNotifierFailureRecorded(t *testing.T) {
	svc, n, db := setupLatenessCase(t, monday0901, "09:00")
	n.emailOK = false
	n.smsOK = false

	require.NoError(t, svc.CheckAndSendAbsenceAlerts())

	var alert models.Alert
	require.NoError(t, db.First(&alert).Error)
	require.False(t, alert.SentEmail)
	require.False(t, alert.SentSMS)
}

func TestNightPresenceAlert(t *testing.T) {
	at := time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC)
	svc, _, db := newTestService(t, at)

	emp := seedEmployee(t, db, models.WorkNight)
	seedVehicle(t, db, emp.ID, "300 ETAT 1", models.PlateEtat)

	require.NoError(t, svc.CheckNightVehiclePresence())

	var alert models.Alert
	require.NoError(t, db.First(&alert).Error)
	require.Equal(t, models.AlertAbsence, alert.AlertType)
	require.Equal(t, emp.ID, *alert.EmployeeID)
}

func TestNightPresenceRecentDetectionNoAlert(t *testing.T) {
	at := time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC)
	svc, _, db := newTestService(t, at)

	emp := seedEmployee(t, db, models.WorkBoth)
	seedVehicle(t, db, emp.ID, "300 ETAT 1", models.PlateEtat)
	require.NoError(t, db.Create(&models.ParkingEntry{
		PlateNumber: "300 ETAT 1",
		EntryTime:   at.Add(-90 * time.Minute),
	}).Error)

	require.NoError(t, svc.CheckNightVehiclePresence())

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestNightPresenceSkipsDayShiftAndOrdinaryPlates(t *testing.T) {
	at := time.Date(2025, 6, 3, 2, 0, 0, 0, time.UTC)
	svc, _, db := newTestService(t, at)

	day := seedEmployee(t, db, models.WorkDay)
	seedVehicle(t, db, day.ID, "400 ETAT 2", models.PlateEtat)

	night := seedEmployee(t, db, models.WorkNight)
	seedVehicle(t, db, night.ID, "500 TN 600", models.PlateTN)

	require.NoError(t, svc.CheckNightVehiclePresence())

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestNightPresenceNoopDuringDay(t *testing.T) {
	at := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	svc, _, db := newTestService(t, at)

	emp := seedEmployee(t, db, models.WorkNight)
	seedVehicle(t, db, emp.ID, "300 ETAT 1", models.PlateEtat)

	require.NoError(t, svc.CheckNightVehiclePresence())

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	require.Zero(t, count)
}

func seedComplaint(t *testing.T, db *gorm.DB, complainant uint, vehicleID *uint, plate string) models.Complaint {
	t.Helper()
	c := models.Complaint{
		ComplainantEmployeeID: complainant,
		AccusedVehicleID:      vehicleID,
		AccusedVehiclePlate:   plate,
		ParkingSpot:           12,
		Status:                models.ComplaintOpen,
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func TestComplaintAlertBelowThreshold(t *testing.T) {
	svc, n, db := newTestService(t, monday0901)

	owner := seedEmployee(t, db, models.WorkDay)
	accused := seedVehicle(t, db, owner.ID, "700 TN 800", models.PlateTN)
	complainant := seedEmployee(t, db, models.WorkDay)

	complaint := seedComplaint(t, db, complainant.ID, &accused.ID, "")
	require.NoError(t, svc.ProcessComplaintAlert(&complaint))

	var alerts []models.Alert
	require.NoError(t, db.Find(&alerts).Error)
	require.Len(t, alerts, 1)
	require.Equal(t, models.AlertParkingViolation, alerts[0].AlertType)
	require.Equal(t, models.ComplaintWarningSent, complaint.Status)
	require.Len(t, n.emails, 1)

	var sanctions int64
	require.NoError(t, db.Model(&models.Sanction{}).Count(&sanctions).Error)
	require.Zero(t, sanctions)

	var fresh models.Vehicle
	require.NoError(t, db.First(&fresh, accused.ID).Error)
	require.True(t, fresh.IsAuthorized)
}

func TestComplaintEscalationAtThreshold(t *testing.T) {
	svc, n, db := newTestService(t, monday0901)

	owner := seedEmployee(t, db, models.WorkDay)
	accused := seedVehicle(t, db, owner.ID, "700 TN 800", models.PlateTN)
	complainant := seedEmployee(t, db, models.WorkDay)

	// two prior violations on record
	for i := 0; i < 2; i++ {
		ownerID, vehID := owner.ID, accused.ID
		require.NoError(t, db.Create(&models.Alert{
			EmployeeID: &ownerID,
			VehicleID:  &vehID,
			AlertType:  models.AlertParkingViolation,
			Message:    "prior violation",
		}).Error)
	}

	complaint := seedComplaint(t, db, complainant.ID, &accused.ID, "")
	require.NoError(t, svc.ProcessComplaintAlert(&complaint))

	var sanction models.Sanction
	require.NoError(t, db.First(&sanction).Error)
	require.Equal(t, accused.ID, sanction.VehicleID)
	require.Equal(t, "2025-06-02", sanction.StartDate)
	require.Equal(t, "2025-06-05", sanction.EndDate)

	var fresh models.Vehicle
	require.NoError(t, db.First(&fresh, accused.ID).Error)
	require.False(t, fresh.IsAuthorized)

	require.Equal(t, models.ComplaintBanned, complaint.Status)
	// warning email plus final sanction notice
	require.Len(t, n.emails, 2)
}

func TestComplaintNoSecondSanctionWhileCovered(t *testing.T) {
	svc, _, db := newTestService(t, monday0901)

	owner := seedEmployee(t, db, models.WorkDay)
	accused := seedVehicle(t, db, owner.ID, "700 TN 800", models.PlateTN)
	complainant := seedEmployee(t, db, models.WorkDay)

	for i := 0; i < 3; i++ {
		ownerID, vehID := owner.ID, accused.ID
		require.NoError(t, db.Create(&models.Alert{
			EmployeeID: &ownerID,
			VehicleID:  &vehID,
			AlertType:  models.AlertParkingViolation,
		}).Error)
	}
	require.NoError(t, db.Create(&models.Sanction{
		VehicleID: accused.ID,
		Reason:    "existing ban",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-04",
	}).Error)

	complaint := seedComplaint(t, db, complainant.ID, &accused.ID, "")
	require.NoError(t, svc.ProcessComplaintAlert(&complaint))

	var sanctions int64
	require.NoError(t, db.Model(&models.Sanction{}).Count(&sanctions).Error)
	require.EqualValues(t, 1, sanctions)
}

func TestComplaintResolvesVehicleByPlate(t *testing.T) {
	svc, _, db := newTestService(t, monday0901)

	owner := seedEmployee(t, db, models.WorkDay)
	seedVehicle(t, db, owner.ID, "700 TN 800", models.PlateTN)
	complainant := seedEmployee(t, db, models.WorkDay)

	complaint := seedComplaint(t, db, complainant.ID, nil, "700 TN 800")
	require.NoError(t, svc.ProcessComplaintAlert(&complaint))

	var alerts int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&alerts).Error)
	require.EqualValues(t, 1, alerts)
}

func TestComplaintUnknownVehicleNoop(t *testing.T) {
	svc, _, db := newTestService(t, monday0901)

	complainant := seedEmployee(t, db, models.WorkDay)
	complaint := seedComplaint(t, db, complainant.ID, nil, "NO SUCH PLATE")
	require.NoError(t, svc.ProcessComplaintAlert(&complaint))

	var alerts int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&alerts).Error)
	require.Zero(t, alerts)
	require.Equal(t, models.ComplaintOpen, complaint.Status)
}

func TestComplaintOwnerlessVehicleNoop(t *testing.T) {
	svc, _, db := newTestService(t, monday0901)

	v := models.Vehicle{PlateNumber: "900 RS 100", PlateClass: models.PlateRS, IsAuthorized: true}
	require.NoError(t, db.Create(&v).Error)
	complainant := seedEmployee(t, db, models.WorkDay)

	complaint := seedComplaint(t, db, complainant.ID, &v.ID, "")
	require.NoError(t, svc.ProcessComplaintAlert(&complaint))

	var alerts int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&alerts).Error)
	require.Zero(t, alerts)
}
