package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bacheca/board-api/internal/api/handler"
	"github.com/bacheca/board-api/internal/api/middleware"
	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

// Deps carries everything the router wires into handlers. The database
// handles are only used by the readiness probe; all business traffic goes
// through the service ports.
type Deps struct {
	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret    string
	DashboardURL string
	Log          zerolog.Logger

	Auth       ports.AuthService
	Sessions   ports.SessionManager
	Listings   ports.ListingService
	Favorites  ports.FavoriteService
	Newsletter ports.NewsletterService
	Uploads    ports.UploadService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bacheca"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, d.Favorites)
	sessionHandler := handler.NewSessionHandler(d.Sessions)
	listingHandler := handler.NewListingHandler(d.Listings)
	favoriteHandler := handler.NewFavoriteHandler(d.Favorites)
	userHandler := handler.NewUserHandler(d.Auth)
	newsletterHandler := handler.NewNewsletterHandler(d.Newsletter, d.DashboardURL)
	uploadHandler := handler.NewUploadHandler(d.Uploads)

	authRequired := middleware.Auth(d.JWTSecret, d.Sessions)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authRequired)

	e.GET("/v1/jobs", listingHandler.Jobs)
	e.GET("/v1/jobs/:id", listingHandler.JobByID)
	e.GET("/v1/services", listingHandler.Services)
	e.GET("/v1/services/:id", listingHandler.ServiceByID)
	e.GET("/v1/categories", listingHandler.Categories)

	// --- Session routes ---
	session := e.Group("/v1/session", authRequired)
	session.GET("", sessionHandler.Get)
	session.POST("/refresh", sessionHandler.Refresh)
	session.POST("/activity", sessionHandler.Activity)

	// --- Favorites (any authenticated role) ---
	favorites := e.Group("/v1/favorites", authRequired)
	favorites.GET("", favoriteHandler.List)
	favorites.POST("/toggle", favoriteHandler.Toggle)

	// --- Admin panel ---
	admin := e.Group("/v1/admin", authRequired, adminOnly)
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)

	admin.POST("/categories", listingHandler.CreateCategory)
	admin.PUT("/categories/:id", listingHandler.UpdateCategory)
	admin.DELETE("/categories/:id", listingHandler.DeleteCategory)

	admin.POST("/listings", listingHandler.Create)
	admin.PUT("/listings/:id", listingHandler.Update)
	admin.DELETE("/listings/:id", listingHandler.Delete)

	admin.POST("/newsletter", newsletterHandler.Send)
	admin.POST("/uploads", uploadHandler.Store, echomiddleware.BodyLimit("6M"))

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
