package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spotjobs/spotjobs-api/internal/api/handler"
	"github.com/spotjobs/spotjobs-api/internal/api/middleware"
	"github.com/spotjobs/spotjobs-api/internal/core/domain"
	"github.com/spotjobs/spotjobs-api/internal/core/service"
	mongorepo "github.com/spotjobs/spotjobs-api/internal/infrastructure/db/mongo"
	redisstore "github.com/spotjobs/spotjobs-api/internal/infrastructure/db/redis"
)

// Dependencies carries the externally constructed collaborators the router
// cannot build itself.
type Dependencies struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	Notifier   service.Notifier
	Blobs      service.BlobStore
	Dispatcher service.ScoringDispatcher

	JWTSecret     string
	CallbackToken string
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(deps.Mongo)
	companyRepo := mongorepo.NewCompanyRepository(deps.Mongo)
	jobRepo := mongorepo.NewJobRepository(deps.Mongo)
	appRepo := mongorepo.NewApplicationRepository(deps.Mongo)

	staging := redisstore.NewStagingStore(deps.Redis)
	dedup := redisstore.NewScoringDedup(deps.Redis)

	// --- Services ---
	registrationService := service.NewRegistrationService(
		userRepo, companyRepo, staging, deps.Notifier, deps.Blobs,
		deps.JWTSecret, 24*time.Hour, deps.Log)
	authService := service.NewAuthService(userRepo, deps.JWTSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, companyRepo, deps.Blobs, deps.Log)
	applicationService := service.NewApplicationService(
		appRepo, jobRepo, userRepo, companyRepo, deps.Dispatcher, deps.Log)
	scoringService := service.NewScoringService(appRepo, dedup, deps.Log)
	jobService := service.NewJobService(jobRepo)
	companyService := service.NewCompanyService(companyRepo, jobRepo, appRepo, userRepo, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(registrationService, authService)
	userHandler := handler.NewUserHandler(userService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	scoringHandler := handler.NewScoringHandler(scoringService, deps.CallbackToken)
	jobHandler := handler.NewJobHandler(jobService)
	companyHandler := handler.NewCompanyHandler(companyService)

	authRequired := middleware.Auth(deps.JWTSecret)
	recruiterOnly := middleware.RequireRole(domain.RoleRecruiter)

	// --- User routes ---
	users := e.Group("/api/users")
	users.POST("/send-verification-otp", authHandler.SendVerificationCode)
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/logout", userHandler.Logout)
	users.POST("/forgot-password", authHandler.ForgotPassword)
	users.POST("/verify-otp", authHandler.VerifyResetCode)
	users.POST("/reset-password", authHandler.ResetPassword)

	users.GET("/user", userHandler.Me, authRequired)
	users.GET("/user/:id", userHandler.Get, authRequired)
	users.POST("/profile/update", userHandler.UpdateProfile, authRequired)
	users.PATCH("/profile/update-resume", userHandler.UpdateResume, authRequired)

	users.POST("/apply", applicationHandler.Apply, authRequired)
	users.GET("/applications", applicationHandler.List, authRequired)
	users.POST("/check-applied", applicationHandler.CheckApplied, authRequired)

	// Scoring callback; token-guarded instead of JWT-guarded.
	users.PATCH("/update-application-score", scoringHandler.UpdateScore)

	// --- Job routes ---
	jobs := e.Group("/api/jobs")
	jobs.GET("", jobHandler.List)
	jobs.GET("/jobsById/:id", jobHandler.ListByCompany)
	jobs.GET("/:id", jobHandler.Get)

	// --- Company routes (recruiters only) ---
	company := e.Group("/api/company", authRequired, recruiterOnly)
	company.GET("/company", companyHandler.Get)
	company.GET("/company-details/:id", companyHandler.GetByID)
	company.POST("/post-job", companyHandler.PostJob)
	company.GET("/applicants", companyHandler.Applicants)
	company.GET("/job-applicants/:jobId", companyHandler.ApplicantsByJob)
	company.GET("/list-jobs", companyHandler.PostedJobs)
	company.PUT("/change-status", companyHandler.ChangeStatus)
	company.POST("/change-visiblity", companyHandler.ChangeVisibility)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
