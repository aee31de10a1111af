package config

import (
	"Go-Course-Market/internal/api/handlers"
	"Go-Course-Market/internal/api/routes"
	"Go-Course-Market/internal/middleware"
	"Go-Course-Market/internal/utils"
	"Go-Course-Market/internal/utils/storage"
	"Go-Course-Market/pkg/chain"
	"Go-Course-Market/pkg/course"
	"Go-Course-Market/pkg/entitlement"
	"Go-Course-Market/pkg/jwt"
	"Go-Course-Market/pkg/leaderboard"
	"Go-Course-Market/pkg/notification"
	"Go-Course-Market/pkg/purchase"
	"Go-Course-Market/pkg/referral"
	"Go-Course-Market/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	oracle := chain.NewOracleFromConfig()

	// Repository
	userRepository := user.NewUserRepository(db)
	courseRepository := course.NewCourseRepository(db)
	purchaseRepository := purchase.NewPurchaseRepository(db)
	referralRepository := referral.NewReferralRepository(db)
	leaderboardRepository := leaderboard.NewLeaderboardRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	referralService := referral.NewReferralService(referralRepository)
	leaderboardService := leaderboard.NewLeaderboardService(leaderboardRepository)
	notificationService := notification.NewNotificationService(notificationRepository, userRepository)
	courseService := course.NewCourseService(
		courseRepository,
		userRepository,
		leaderboardService,
		oracle,
		s3,
	)
	purchaseService := purchase.NewPurchaseService(
		purchaseRepository,
		courseRepository,
		userRepository,
		referralService,
		leaderboardService,
		notificationService,
	)
	entitlementService := entitlement.NewEntitlementService(
		courseRepository,
		purchaseRepository,
		oracle,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	courseHandler := handlers.NewCourseHandler(courseService, validator)
	entitlementHandler := handlers.NewEntitlementHandler(entitlementService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, validator)
	referralHandler := handlers.NewReferralHandler(referralService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		CourseHandler:       courseHandler,
		EntitlementHandler:  entitlementHandler,
		PurchaseHandler:     purchaseHandler,
		ReferralHandler:     referralHandler,
		LeaderboardHandler:  leaderboardHandler,
		NotificationHandler: notificationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
