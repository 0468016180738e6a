package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/troia-reservas/internal/audit"
	"github.com/BruksfildServices01/troia-reservas/internal/config"
	domain "github.com/BruksfildServices01/troia-reservas/internal/domain/reservation"
	"github.com/BruksfildServices01/troia-reservas/internal/handlers"
	"github.com/BruksfildServices01/troia-reservas/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/troia-reservas/internal/infra/repository"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	"github.com/BruksfildServices01/troia-reservas/internal/middleware"
	"github.com/BruksfildServices01/troia-reservas/internal/timezone"
	ucReservation "github.com/BruksfildServices01/troia-reservas/internal/usecase/reservation"
)

// Deps are the long-lived collaborators built in main. Redis and Exporter
// are optional.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *logger.Logger
	Audit    *audit.Dispatcher
	Redis    *redis.Client
	Exporter ucReservation.Exporter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins...))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	var reservationRepo domain.Repository = infraRepo.NewReservationGormRepository(d.DB)
	profileRepo := infraRepo.NewProfileGormRepository(d.DB)

	var (
		limiter middleware.Limiter
		revoked middleware.RevocationChecker
		revoker handlers.TokenRevoker
	)
	if d.Redis != nil {
		reservationRepo = cache.NewCapacityCache(reservationRepo, d.Redis, cfg.Redis.CapacityTTL, d.Log)
		limiter = cache.NewRateLimiter(d.Redis, cfg.RateLimit.Requests, cfg.RateLimit.Window)

		denylist := cache.NewTokenDenylist(d.Redis)
		revoked, revoker = denylist, denylist
	}

	today := timezone.SystemClock(cfg.Timezone)

	// ======================================================
	// 🧠 USE CASES (RESERVAS)
	// ======================================================
	checkCapacityUC := ucReservation.NewCheckCapacity(reservationRepo, d.Log)

	createPublicUC := ucReservation.NewCreatePublicReservation(
		reservationRepo,
		checkCapacityUC,
		d.Audit,
		today,
		cfg.LargePartyURL,
		d.Log,
	)

	listUC := ucReservation.NewListReservations(reservationRepo, today)
	createAdminUC := ucReservation.NewCreateAdminReservation(reservationRepo, d.Audit)
	updateUC := ucReservation.NewUpdateReservation(reservationRepo, d.Audit)
	deleteUC := ucReservation.NewDeleteReservation(reservationRepo, d.Audit)
	exportUC := ucReservation.NewExportDay(reservationRepo, d.Exporter, d.Audit, d.Log)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(checkCapacityUC, createPublicUC, d.Log)
	confirmationHandler := handlers.NewConfirmationHandler()

	adminReservationHandler := handlers.NewAdminReservationHandler(
		listUC,
		createAdminUC,
		updateUC,
		deleteUC,
		exportUC,
		d.Log,
	)

	authHandler := handlers.NewAuthHandler(profileRepo, revoker, cfg, d.Audit, d.Log)
	meHandler := handlers.NewMeHandler(profileRepo, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, cfg.Timezone)

	authRequired := middleware.AuthMiddleware(cfg, revoked, d.Log)

	// ======================================================
	// 🌍 ROTAS WEB (HTML)
	// ======================================================
	r.GET("/obrigado", confirmationHandler.Show)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/capacity", publicHandler.Capacity)
			publicAPI.POST(
				"/reservations",
				middleware.RateLimit(limiter, "reservations", d.Log),
				publicHandler.CreateReservation,
			)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		authAPI.Use(middleware.RateLimit(limiter, "auth", d.Log))
		{
			authAPI.POST("/sign-up", authHandler.SignUp)
			authAPI.POST("/sign-in", authHandler.SignIn)
			authAPI.POST("/sign-out", authRequired, authHandler.SignOut)
		}

		api.GET("/me", authRequired, meHandler.GetMe)

		// ------------------------------
		// 🔐 PAINEL (admin)
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(authRequired, middleware.RequireAdmin(profileRepo, d.Log))
		{
			admin.GET("/reservations", adminReservationHandler.List)
			admin.POST("/reservations", adminReservationHandler.Create)
			admin.POST("/reservations/export", adminReservationHandler.Export)
			admin.PATCH("/reservations/:id", adminReservationHandler.Update)
			admin.DELETE("/reservations/:id", adminReservationHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
