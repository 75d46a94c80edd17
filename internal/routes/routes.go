package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/makeup-studio/internal/audit"
	"github.com/BruksfildServices01/makeup-studio/internal/auth"
	"github.com/BruksfildServices01/makeup-studio/internal/config"
	"github.com/BruksfildServices01/makeup-studio/internal/handlers"
	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
	infraRepo "github.com/BruksfildServices01/makeup-studio/internal/infra/repository"
	"github.com/BruksfildServices01/makeup-studio/internal/metrics"
	"github.com/BruksfildServices01/makeup-studio/internal/middleware"
	"github.com/BruksfildServices01/makeup-studio/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/makeup-studio/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/makeup-studio/internal/usecase/catalog"
)

// Infra holds the process-wide collaborators built by the caller.
type Infra struct {
	Logger  zerolog.Logger
	Cache   ucCatalog.ServiceListCache
	Metrics *metrics.Metrics
	Audit   *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(infra.Logger, infra.Metrics))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	serviceRepo := infraRepo.NewServiceGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	loc := timezone.Location(cfg.StudioTimezone)

	// ======================================================
	// USE CASES: CATALOG
	// ======================================================
	listServicesUC := ucCatalog.NewListServices(serviceRepo, infra.Cache)
	getServiceUC := ucCatalog.NewGetService(serviceRepo)
	createServiceUC := ucCatalog.NewCreateService(serviceRepo, infra.Cache, infra.Audit, infra.Logger)
	updateServiceUC := ucCatalog.NewUpdateService(serviceRepo, infra.Cache, infra.Audit, infra.Logger)
	deleteServiceUC := ucCatalog.NewDeleteService(serviceRepo, infra.Cache, infra.Audit, infra.Logger)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		serviceRepo,
		infra.Audit,
		infra.Metrics,
		infra.Logger,
	)

	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		appointmentRepo,
		infra.Audit,
		infra.Metrics,
		infra.Logger,
	)

	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		serviceRepo,
		ucAppointment.StudioHours{
			Location: loc,
			Open:     cfg.StudioOpen,
			Close:    cfg.StudioClose,
			Step:     time.Duration(cfg.SlotStepMinutes) * time.Minute,
		},
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	serviceHandler := handlers.NewServiceHandler(
		listServicesUC,
		getServiceUC,
		createServiceUC,
		updateServiceUC,
		deleteServiceUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		ucAppointment.NewCancelAppointment(updateStatusUC),
		ucAppointment.NewGetAppointment(appointmentRepo),
		ucAppointment.NewListAppointments(appointmentRepo),
		ucAppointment.NewListAppointmentsByEmail(appointmentRepo),
		availabilityUC,
		loc,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db, loc)

	// ======================================================
	// OPERATIONS
	// ======================================================
	r.NoRoute(func(c *gin.Context) {
		httperr.NotFound(c, "route_not_found", "No route matches "+c.Request.Method+" "+c.Request.URL.Path+".")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if infra.Metrics != nil {
		r.GET("/metrics", gin.WrapH(infra.Metrics.Handler()))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	authenticated := middleware.AuthMiddleware(cfg)
	adminOnly := middleware.RequireRole(auth.RoleAdmin)
	bookingLimit := middleware.RateLimitMiddleware(cfg.RateLimitPerMinute)

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)
		api.GET("/appointments/availability", bookingLimit, appointmentHandler.Availability)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(authenticated)
		{
			secured.GET("/appointments/me", appointmentHandler.ListMine)
			secured.POST("/appointments", bookingLimit, appointmentHandler.Create)
			secured.PUT("/appointments/:id/cancel", appointmentHandler.Cancel)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(authenticated, adminOnly)
		{
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)

			admin.GET("/appointments", appointmentHandler.ListAll)
			admin.GET("/appointments/:id", appointmentHandler.GetByID)
			admin.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

// Handler serves r with /api paths matched case-insensitively, so clients
// calling /api/Services or /api/Appointments/me reach the same routes. Every
// /api segment is lowercase or numeric, so lowering the path is lossless.
func Handler(r *gin.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		p := req.URL.Path
		if len(p) >= 5 && strings.EqualFold(p[:5], "/api/") {
			if lower := strings.ToLower(p); lower != p {
				req.URL.Path = lower
				req.URL.RawPath = ""
			}
		}
		r.ServeHTTP(w, req)
	})
}
