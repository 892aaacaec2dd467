package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pasiware/faceclock/internal/api/handler"
	"github.com/pasiware/faceclock/internal/api/middleware"
	"github.com/pasiware/faceclock/internal/recognizer"
	"github.com/pasiware/faceclock/internal/repository"
	"github.com/pasiware/faceclock/internal/service"
)

type Dependencies struct {
	DB         *pgxpool.Pool
	Recognizer recognizer.Recognizer
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Faceclock API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check endpoints
	var pool *pgxpool.Pool
	if r.deps != nil {
		pool = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pool)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	if r.deps == nil {
		return
	}

	employeeRepo := repository.NewEmployeeRepository(r.deps.DB)
	attendanceRepo := repository.NewAttendanceRepository(r.deps.DB)
	settingsRepo := repository.NewSettingsRepository(r.deps.DB)
	verificationRepo := repository.NewVerificationLogRepository(r.deps.DB)

	attendanceService := service.NewAttendanceService(
		employeeRepo,
		attendanceRepo,
		settingsRepo,
		verificationRepo,
		r.deps.Recognizer,
		r.logger,
	)

	faceHandler := handler.NewFaceHandler(attendanceService, r.logger)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService, r.logger)

	// Rate limiting keyed by client IP
	r.rateLimiter = middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())

	face := r.app.Group("/api/face", r.rateLimiter.Handler())
	face.Post("/register", faceHandler.Register)
	face.Get("/status/:emp_id", faceHandler.Status)
	face.Post("/check-in", attendanceHandler.CheckIn)
	face.Post("/check-out", attendanceHandler.CheckOut)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.Shutdown()
}
