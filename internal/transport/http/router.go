package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/go-contacts-api/internal/application/auth"
	"github.com/go-contacts-api/internal/application/avatar"
	"github.com/go-contacts-api/internal/application/contact"
	"github.com/go-contacts-api/internal/application/outbox"
	"github.com/go-contacts-api/internal/config"
	jwtinfra "github.com/go-contacts-api/internal/infrastructure/jwt"
	"github.com/go-contacts-api/internal/transport/http/handler"
	appmiddleware "github.com/go-contacts-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    UserRepository
	ContactRepo ContactRepository
	Consumed    ConsumedTokenStore
	S3Store     ObjectStore
	Outbox      *outbox.Outbox
	JWTProvider *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider, deps.UserRepo)

	// 5 requests/second, burst of 10, applied to the public auth endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:      deps.UserRepo,
		Tokens:        deps.JWTProvider,
		Consumed:      deps.Consumed,
		Mail:          deps.Outbox,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	avatarSvc := avatar.NewService(avatar.ServiceDeps{
		Store:    deps.S3Store,
		UserRepo: deps.UserRepo,
	})
	contactSvc := contact.NewService(deps.ContactRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	avatarH := handler.NewAvatarHandler(avatarSvc)
	contactH := handler.NewContactHandler(contactSvc)

	// Public routes
	r.Get("/health-check", healthH.Check)
	r.With(sensitiveRL.Limit).Post("/register/", authH.Register)
	r.With(sensitiveRL.Limit).Get("/verify-email/", authH.VerifyEmail)
	r.With(sensitiveRL.Limit).Post("/login/", authH.Login)
	r.With(sensitiveRL.Limit).Post("/token/refresh/", authH.Refresh)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Post("/upload-avatar/", avatarH.Upload)

		r.Post("/contacts/", contactH.Create)
		r.Get("/contacts/", contactH.List)
		r.Get("/contacts/{id}", contactH.Get)
		r.Put("/contacts/{id}", contactH.Update)
		r.Delete("/contacts/{id}", contactH.Delete)
	})

	return r
}
