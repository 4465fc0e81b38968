package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"minniemissions/handlers"
	"minniemissions/middleware"
	"minniemissions/models"
	"minniemissions/services"
	"minniemissions/store"
	"minniemissions/utils"
	"minniemissions/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // covers the 2MB avatar ceiling with headroom
	})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.ContactSubmission{},
		&models.Profile{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if os.Getenv("R2_ACCESS_KEY_ID") != "" {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
	} else {
		log.Println("⚠️  R2 credentials not set — storing avatars on local disk")
		if err := utils.EnsureUploadDir(); err != nil {
			log.Fatal("failed to ensure upload dir:", err)
		}
	}

	st := store.NewStore()
	ledger := services.NewSimulatedLedger()

	missionService := services.NewMissionService(st)
	walletService := services.NewWalletService(ledger, st)
	meetupService := services.NewMeetupService(st, walletService, ledger)
	contactService := services.NewContactService(db)
	profileService := services.NewProfileService(db)
	aiService := services.NewFandomAIService(os.Getenv("OPENAI_API_KEY"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	profileSyncWorker := workers.NewProfileSyncWorker(profileService, st)
	profileSyncWorker.Start(ctx)
	go workers.PollMeetupStatuses(ctx, st, 1*time.Minute)

	missionService.StartExpiryScheduler()

	// ✅ Setup routes — enforced Gateway auth everywhere
	handlers.SetupMissionRoutes(app, missionService)
	handlers.SetupWalletRoutes(app, walletService)
	handlers.SetupMeetupRoutes(app, meetupService, st)
	handlers.SetupFandomRoutes(app, aiService, st)
	handlers.SetupReferralRoutes(app, st)
	handlers.SetupContactRoutes(app, contactService)
	handlers.SetupProfileRoutes(app, profileService)

	app.Static("/uploads", "./uploads")

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Profile Sync Worker running")
	log.Println("✅ Meetup status polling running (every 1m)")
	log.Println("✅ Mission expiry scheduler running (every 1m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
