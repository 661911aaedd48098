package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/seasonwork/seasonwork-backend-go/internal/config"
	"github.com/seasonwork/seasonwork-backend-go/internal/handler/http/middleware"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	verificationHandler VerificationHandler,
	listingHandler ListingHandler,
	billingHandler BillingHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "seasonwork-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// The provider calls this endpoint; it authenticates with its
		// signature, not a bearer token.
		r.Post("/billing/webhook", billingHandler.Webhook)

		// Public listing reads; a bearer token widens visibility
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Get("/listings", listingHandler.Search)
			r.Get("/listings/{listingID}", listingHandler.Get)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/verify", func(r chi.Router) {
				r.Post("/documents", verificationHandler.Submit)
				r.Get("/documents", verificationHandler.ListDocuments)
				r.Get("/documents/{documentID}", verificationHandler.GetDocument)
				r.Get("/documents/{documentID}/file", verificationHandler.DownloadDocument)
				r.Get("/status", verificationHandler.Status)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/pending", verificationHandler.ListPending)
					r.Post("/documents/{documentID}/resolve", verificationHandler.Resolve)
				})
			})

			r.With(middleware.EmployerOnly).Post("/listings", listingHandler.Create)
			r.Patch("/listings/{listingID}", listingHandler.Update)
			r.Post("/listings/{listingID}/apply", listingHandler.Apply)
			r.Get("/listings/{listingID}/applications", listingHandler.ListApplications)

			r.Route("/billing", func(r chi.Router) {
				r.Get("/account", billingHandler.GetAccount)
				r.With(middleware.EmployerOnly).Post("/checkout-session", billingHandler.CreateCheckoutSession)
			})
		})
	})
	return r
}
