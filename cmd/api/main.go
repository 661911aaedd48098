package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/seasonwork/seasonwork-backend-go/internal/config"
	appHTTP "github.com/seasonwork/seasonwork-backend-go/internal/handler/http"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/database"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/email"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/jwt"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/storage"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/stripe"
	"github.com/seasonwork/seasonwork-backend-go/internal/repository/postgresql"
	authService "github.com/seasonwork/seasonwork-backend-go/internal/service/auth"
	billingService "github.com/seasonwork/seasonwork-backend-go/internal/service/billing"
	listingService "github.com/seasonwork/seasonwork-backend-go/internal/service/listing"
	verificationService "github.com/seasonwork/seasonwork-backend-go/internal/service/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	verificationRepo := postgresql.NewVerificationRepository(db)
	listingRepo := postgresql.NewListingRepository(db)
	applicationRepo := postgresql.NewApplicationRepository(db)
	billingRepo := postgresql.NewBillingRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	case "minio":
		fileStorage, err = storage.NewMinioStorage(
			cfg.Storage.MinioEndpoint,
			cfg.Storage.MinioAccessKey,
			cfg.Storage.MinioSecretKey,
			cfg.Storage.MinioBucket,
			cfg.Storage.MinioUseSSL,
		)
		if err != nil {
			log.Fatal("Failed to initialize minio storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	stripeClient := stripe.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.APIBaseURL)
	webhookVerifier := stripe.NewWebhookVerifier(cfg.Stripe.WebhookSecret)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	verificationSvc := verificationService.NewVerificationService(db, verificationRepo, userRepo, fileStorage, emailService, cfg.Upload)
	listingSvc := listingService.NewListingService(db, listingRepo, applicationRepo, billingRepo, userRepo)
	billingSvc := billingService.NewBillingService(db, billingRepo, userRepo, stripeClient, emailService, cfg.Stripe)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	verificationHandler := appHTTP.NewVerificationHandler(verificationSvc, cfg.Upload.MaxSizeBytes)
	listingHandler := appHTTP.NewListingHandler(listingSvc)
	billingHandler := appHTTP.NewBillingHandler(billingSvc, webhookVerifier)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		verificationHandler,
		listingHandler,
		billingHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
