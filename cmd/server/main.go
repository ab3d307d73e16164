package main

import (
	"log"
	"net/http"

	"familyinvitations/config"
	"familyinvitations/internal/adapters/auth"
	"familyinvitations/internal/adapters/email"
	"familyinvitations/internal/adapters/spreadsheet"
	deliveryhttp "familyinvitations/internal/delivery/http"
	"familyinvitations/internal/delivery/http/controllers"
	"familyinvitations/internal/delivery/http/middleware"
	"familyinvitations/internal/domain"
	"familyinvitations/internal/repository/postgres"
	"familyinvitations/internal/services"
)

// @title Family Invitations API
// @version 1.0
// @description Invitation links, RSVP responses, and admin management for a family event.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	familyRepo := postgres.NewFamilyRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	userRepo := postgres.NewSystemUserRepository(db)
	feed := postgres.NewChangeFeed(cfg.DBUrl, logger)

	// Adapters
	hasher := auth.NewBcryptHasher(10)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	builder := spreadsheet.NewXLSXBuilder()
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		log.Fatalf("Failed to create mailer: %v", err)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	rsvpService := services.NewRSVPService(familyRepo, invitationRepo, emailService, cfg.HostNotifyEmail, logger)
	familyService := services.NewFamilyService(familyRepo, feed, builder, logger)
	invitationService := services.NewInvitationService(invitationRepo, feed, builder, logger)
	authService := services.NewAuthService(userRepo, hasher, issuer, cfg.TokenExpiry)

	profile := domain.NameProfileBasic
	if cfg.NameProfile == "extended" {
		profile = domain.NameProfileExtended
	}

	// Controllers
	rsvpController := controllers.NewRSVPController(logger, rsvpService, profile)
	familyController := controllers.NewFamilyController(logger, familyService)
	invitationController := controllers.NewInvitationController(logger, invitationService)
	authController := controllers.NewAuthController(logger, authService, cfg.TokenExpiry, cfg.Environment == "production")

	mux := deliveryhttp.NewRouter(rsvpController, familyController, invitationController, authController, verifier)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
