package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/sahar-naoui/version2/config"
	"github.com/sahar-naoui/version2/database"
	"github.com/sahar-naoui/version2/handlers"
	"github.com/sahar-naoui/version2/middlewares"
	"github.com/sahar-naoui/version2/models"
	"github.com/sahar-naoui/version2/services"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	notifier := services.NewNotifier(cfg)
	alertSvc := services.NewAlertService(database.DB, notifier)

	auth := handlers.NewAuthHandler(cfg)
	pub := handlers.NewPublicHandler(cfg)
	emp := handlers.NewEmployeeHandler()
	veh := handlers.NewVehicleHandler()
	sched := handlers.NewScheduleHandler()
	abs := handlers.NewAbsenceHandler(cfg)
	comp := handlers.NewComplaintHandler(cfg, alertSvc)
	sanc := handlers.NewSanctionHandler()
	alert := handlers.NewAlertHandler(alertSvc)
	entry := handlers.NewParkingEntryHandler(alertSvc)
	user := handlers.NewUserHandler()

	// ===== Health =====
	e.GET("/health", handlers.Health)
	e.GET("/api/health", handlers.Health)

	// ===== Public =====
	e.POST("/api/auth/login", auth.Login)
	e.POST("/api/auth/register", auth.Register)
	e.GET("/api/public/work-schedules", sched.List)
	e.GET("/api/public/steg-phone", pub.Phone)

	// Gate OCR ingest (trusted network, no user auth)
	e.POST("/api/parking/entries", entry.Create)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Authenticated account =====
	me := e.Group("/api/auth", authMW)
	me.GET("/me", auth.Me)
	me.PUT("/profile", auth.UpdateProfile)

	// ===== Employee space (any role) =====
	empSpace := e.Group("/api/employee", authMW,
		middlewares.RequireRole(models.RoleEmployee, models.RoleHR, models.RoleAdmin))
	empSpace.GET("/parking-spot", pub.MyParkingSpot)
	empSpace.GET("/absences", abs.ListMine)
	empSpace.POST("/absences", abs.Create)
	empSpace.GET("/alerts", alert.ListMine)
	empSpace.POST("/complaints", comp.Create)

	// ===== Admin + HR =====
	mgmt := e.Group("/api/admin", authMW,
		middlewares.RequireRole(models.RoleAdmin, models.RoleHR))
	mgmt.GET("/employees", emp.List)
	mgmt.POST("/employees", emp.Create)
	mgmt.GET("/employees/:id", emp.Get)
	mgmt.PUT("/employees/:id", emp.Update)
	mgmt.DELETE("/employees/:id", emp.Delete)

	mgmt.GET("/vehicles", veh.List)
	mgmt.POST("/vehicles", veh.Create)
	mgmt.GET("/vehicles/:id", veh.Get)
	mgmt.PUT("/vehicles/:id", veh.Update)
	mgmt.DELETE("/vehicles/:id", veh.Delete)

	mgmt.GET("/complaints", comp.List)
	mgmt.PUT("/complaints/:id", comp.Update)

	mgmt.GET("/absences", abs.List)
	mgmt.PUT("/absences/:id/verify", abs.Verify)

	mgmt.POST("/sanctions", sanc.Create)
	mgmt.GET("/sanctions", sanc.List)

	mgmt.GET("/profiles", user.List)
	mgmt.PUT("/profiles/:id", user.Update)

	mgmt.GET("/parking-entries", entry.List)

	// ===== Admin only =====
	admin := e.Group("/api/admin", authMW, middlewares.RequireRole(models.RoleAdmin))
	admin.GET("/hr", user.ListHR)
	admin.POST("/hr", user.CreateHR)

	admin.GET("/work-schedules", sched.List)
	admin.POST("/work-schedules", sched.Create)
	admin.PUT("/work-schedules/:id", sched.Update)
	admin.DELETE("/work-schedules/:id", sched.Delete)

	admin.GET("/alerts", alert.List)
	admin.POST("/check-alerts", alert.Check)
}
