package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sahar-naoui/version2/config"
	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/models"
	"github.com/sahar-naoui/version2/services"
)

func newEntryHandler(t *testing.T) *ParkingEntryHandler {
	t.Helper()
	setupTestDB(t)
	notifier := services.NewNotifier(&config.Config{})
	return NewParkingEntryHandler(services.NewAlertService(database.DB, notifier))
}

func seedOwnedVehicle(t *testing.T, plate string, authorized bool) models.Vehicle {
	t.Helper()
	emp := models.Employee{
		FirstName: "Leila",
		LastName:  "Trabelsi",
		Phone:     "+216 21 000 000",
		Email:     "leila@steg.tn",
		WorkType:  models.WorkDay,
		IsActive:  true,
	}
	require.NoError(t, database.DB.Create(&emp).Error)
	v := models.Vehicle{
		PlateNumber:  plate,
		PlateClass:   models.PlateTN,
		EmployeeID:   &emp.ID,
		IsAuthorized: authorized,
	}
	require.NoError(t, database.DB.Create(&v).Error)
	return v
}

func entryBody(plate string) string {
	return fmt.Sprintf(
		`{"plate_number":%q,"entry_time":%q,"camera_location":"gate-1","detected_class":"TN","confidence":0.97}`,
		plate, time.Now().UTC().Format(time.RFC3339))
}

func TestParkingEntryRejectsDeauthorizedVehicle(t *testing.T) {
	h := newEntryHandler(t)
	v := seedOwnedVehicle(t, "200 TN 300", false)

	rec := postJSON(t, h.Create, "/api/parking/entries", entryBody("200 TN 300"))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "VEHICLE_NOT_AUTHORIZED")

	var alerts []models.Alert
	require.NoError(t, database.DB.Find(&alerts).Error)
	require.Len(t, alerts, 1)
	require.Equal(t, models.AlertUnauthorized, alerts[0].AlertType)
	require.Equal(t, *v.EmployeeID, *alerts[0].EmployeeID)

	var entries int64
	require.NoError(t, database.DB.Model(&models.ParkingEntry{}).Count(&entries).Error)
	require.Zero(t, entries)
}

func TestParkingEntryAcceptsAuthorizedVehicle(t *testing.T) {
	h := newEntryHandler(t)
	seedOwnedVehicle(t, "200 TN 300", true)

	rec := postJSON(t, h.Create, "/api/parking/entries", entryBody("200 TN 300"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var entry models.ParkingEntry
	require.NoError(t, database.DB.First(&entry).Error)
	require.Equal(t, "200 TN 300", entry.PlateNumber)
	require.Equal(t, "gate-1", entry.CameraLocation)

	var alerts int64
	require.NoError(t, database.DB.Model(&models.Alert{}).
		Where("alert_type = ?", models.AlertUnauthorized).Count(&alerts).Error)
	require.Zero(t, alerts)
}

func TestParkingEntryUnknownPlateAccepted(t *testing.T) {
	h := newEntryHandler(t)

	rec := postJSON(t, h.Create, "/api/parking/entries", entryBody("999 RS 111"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var entries int64
	require.NoError(t, database.DB.Model(&models.ParkingEntry{}).Count(&entries).Error)
	require.EqualValues(t, 1, entries)
}

func TestParkingEntryMissingPlateRejected(t *testing.T) {
	h := newEntryHandler(t)

	rec := postJSON(t, h.Create, "/api/parking/entries", entryBody(""))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "MISSING_FIELDS")
}
