package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"smart-campus/internal/config"
	"smart-campus/internal/handler"
	"smart-campus/internal/middleware"
	"smart-campus/internal/repository"
	"smart-campus/internal/service"
	"smart-campus/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (media upload will not work)", err)
	}

	manager := repository.NewManager(db)
	services := service.NewServices(manager, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Use(middleware.RequestInfo())

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/refresh", h.Auth.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/dashboard", h.Dashboard.Home)
	protected.Get("/dashboard/stats", middleware.RequireRole("faculty"), h.Dashboard.Stats)

	users := protected.Group("/users")
	users.Get("/me", h.User.Me)
	users.Put("/me", h.User.UpdateProfile)
	users.Post("/me/change-password", h.User.ChangePassword)
	users.Get("/", middleware.RequireRole("admin"), h.User.List)
	users.Get("/:userId", middleware.RequireRole("admin"), h.User.Get)
	users.Post("/:userId/role", middleware.RequireRole("admin"), h.User.AssignRole)
	users.Patch("/:userId/status", middleware.RequireRole("admin"), h.User.SetActive)
	users.Delete("/:userId", middleware.RequireRole("admin"), h.User.Delete)

	requests := protected.Group("/permission-requests")
	requests.Post("/", h.PermissionRequest.Create)
	requests.Get("/", h.PermissionRequest.List)
	requests.Get("/:requestId", h.PermissionRequest.Get)
	requests.Post("/:requestId/approve", h.PermissionRequest.Approve)
	requests.Post("/:requestId/reject", h.PermissionRequest.Reject)

	clubs := protected.Group("/clubs")
	clubs.Post("/", h.Club.Create)
	clubs.Get("/", h.Club.List)
	clubs.Get("/:clubId", h.Club.Get)
	clubs.Put("/:clubId", h.Club.Update)
	clubs.Delete("/:clubId", h.Club.Delete)
	clubs.Post("/:clubId/join", h.Club.Join)
	clubs.Post("/:clubId/leave", h.Club.Leave)

	events := protected.Group("/events")
	events.Post("/", h.Event.Create)
	events.Get("/", h.Event.List)
	events.Get("/:eventId", h.Event.Get)
	events.Put("/:eventId", h.Event.Update)
	events.Delete("/:eventId", h.Event.Delete)
	events.Post("/:eventId/attend", h.Event.Attend)
	events.Post("/:eventId/unattend", h.Event.Unattend)

	lostItems := protected.Group("/lost-items")
	lostItems.Post("/", h.LostItem.Create)
	lostItems.Get("/", h.LostItem.List)
	lostItems.Get("/:itemId", h.LostItem.Get)
	lostItems.Put("/:itemId", h.LostItem.Update)
	lostItems.Delete("/:itemId", h.LostItem.Delete)

	feedbackRoutes := protected.Group("/feedback")
	feedbackRoutes.Post("/", h.Feedback.Create)
	feedbackRoutes.Get("/", middleware.RequireRole("faculty"), h.Feedback.List)
	feedbackRoutes.Get("/:feedbackId", h.Feedback.Get)
	feedbackRoutes.Patch("/:feedbackId/status", middleware.RequireRole("faculty"), h.Feedback.UpdateStatus)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:notificationId/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	media := protected.Group("/media")
	media.Post("/", h.Media.Upload)

	audit := protected.Group("/audit")
	audit.Get("/recent", middleware.RequireRole("admin"), h.Audit.Recent)
}
