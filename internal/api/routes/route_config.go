package routes

import (
	"Go-Course-Market/internal/api/handlers"
	"Go-Course-Market/internal/middleware"
	"Go-Course-Market/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	CourseHandler       handlers.CourseHandler
	EntitlementHandler  handlers.EntitlementHandler
	PurchaseHandler     handlers.PurchaseHandler
	ReferralHandler     handlers.ReferralHandler
	LeaderboardHandler  handlers.LeaderboardHandler
	NotificationHandler handlers.NotificationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Courses()
	c.Purchases()
	c.Referrals()
	c.Leaderboard()
	c.Notifications()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Courses() {
	courses := c.App.Group("/api/v1/courses")

	courses.Get("", c.CourseHandler.GetCourses)
	courses.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.CourseHandler.CreateCourse)
	courses.Post("/cover", c.Middleware.AuthMiddleware(c.JWTService), c.CourseHandler.UploadCover)
	courses.Get("/:id", c.CourseHandler.GetCourse)

	// Entitlement is checked with optional auth: free courses are open to
	// anonymous viewers.
	courses.Get("/:id/entitlement", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.EntitlementHandler.CheckEntitlement)
}

func (c *Config) Purchases() {
	purchases := c.App.Group("/api/v1/purchases", c.Middleware.AuthMiddleware(c.JWTService))
	purchases.Post("", c.PurchaseHandler.RecordPurchase)
}

func (c *Config) Referrals() {
	referrals := c.App.Group("/api/v1/referrals", c.Middleware.AuthMiddleware(c.JWTService))
	referrals.Get("/stats", c.ReferralHandler.GetStats)
}

func (c *Config) Leaderboard() {
	leaderboard := c.App.Group("/api/v1/leaderboard")
	leaderboard.Get("", c.LeaderboardHandler.GetLeaderboard)
	leaderboard.Post("/refresh", c.Middleware.AuthMiddleware(c.JWTService), c.LeaderboardHandler.RefreshLeaderboard)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))
	notifications.Get("", c.NotificationHandler.GetNotifications)
	notifications.Patch("/:id/read", c.NotificationHandler.MarkRead)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}
