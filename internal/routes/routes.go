package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studiobella/spa-admin-api/internal/audit"
	"github.com/studiobella/spa-admin-api/internal/cache"
	"github.com/studiobella/spa-admin-api/internal/config"
	"github.com/studiobella/spa-admin-api/internal/handlers"
	infraRepo "github.com/studiobella/spa-admin-api/internal/infra/repository"
	"github.com/studiobella/spa-admin-api/internal/middleware"
	ucAppointment "github.com/studiobella/spa-admin-api/internal/usecase/appointment"
	ucStats "github.com/studiobella/spa-admin-api/internal/usecase/stats"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	c *cache.Cache,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES
	// ======================================================
	scheduleAppointmentUC := ucAppointment.NewScheduleAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	queryAppointmentsUC := ucAppointment.NewQueryAppointments(
		appointmentRepo,
	)

	dashboardUC := ucStats.NewGetDashboard(
		appointmentRepo,
		c,
		log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	clientHandler := handlers.NewClientHandler(db, auditDispatcher, log)
	employeeHandler := handlers.NewEmployeeHandler(db, auditDispatcher, log)
	categoryHandler := handlers.NewCategoryHandler(db, auditDispatcher, log)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher, log)

	appointmentHandler := handlers.NewAppointmentHandler(
		scheduleAppointmentUC,
		updateAppointmentUC,
		cancelAppointmentUC,
		queryAppointmentsUC,
		c,
		log,
	)

	statsHandler := handlers.NewStatsHandler(dashboardUC, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, log)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			// ------------------------------
			// EMPLOYEES
			// ------------------------------
			secured.GET("/employees", employeeHandler.List)
			secured.POST("/employees", employeeHandler.Create)
			secured.GET("/employees/:id", employeeHandler.Get)
			secured.PUT("/employees/:id", employeeHandler.Update)
			secured.DELETE("/employees/:id", employeeHandler.Delete)

			// ------------------------------
			// CATEGORIES
			// ------------------------------
			secured.GET("/categories", categoryHandler.List)
			secured.POST("/categories", categoryHandler.Create)
			secured.GET("/categories/:id", categoryHandler.Get)
			secured.PUT("/categories/:id", categoryHandler.Update)
			secured.DELETE("/categories/:id", categoryHandler.Delete)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Cancel)

			// ------------------------------
			// STATS / AUDIT
			// ------------------------------
			secured.GET("/stats", statsHandler.Dashboard)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
