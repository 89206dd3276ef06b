package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/websiters/gastroreview/docs"
	"github.com/websiters/gastroreview/internal/api/handler"
	"github.com/websiters/gastroreview/internal/api/middleware"
	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

// Deps carries the wired collaborators the router needs. Construction of the
// token service, with its fatal signing-key validation, happens in main, not
// here.
type Deps struct {
	DB    *mongo.Database
	Redis *redis.Client

	Users         ports.UserRepository
	TokenService  ports.TokenService
	AuthService   ports.AuthService
	UserService   ports.UserService
	Restaurants   ports.RestaurantService
	Dishes        ports.DishService
	Reviews       ports.ReviewService
	Notifications ports.NotificationService
	Favorites     ports.FavoriteService
	Alerts        ports.AlertService

	// PublicPrefixes overrides the default unauthenticated allow-list when
	// non-empty.
	PublicPrefixes []string
}

// NewRouter builds and returns the Echo instance with all middleware and
// routes registered. Per-request flow: recover → request id → logging →
// metrics → authentication → authorization policy → handler.
func NewRouter(d Deps, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gastroreview"))

	public := d.PublicPrefixes
	if len(public) == 0 {
		public = middleware.DefaultPublicPrefixes
	}

	// Authentication resolves the caller; the policy table authorizes the
	// route. Both run before every handler, in that order.
	auth := middleware.NewAuthenticator(d.TokenService, d.Users, public, log)
	e.Use(auth.Middleware())
	e.Use(newPolicy(public).Middleware())

	// --- Auth routes (signin/signup aliases kept for older clients) ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/api/users/signin", authHandler.Login)
	e.POST("/api/users/signup", authHandler.Signup)

	// --- Users ---
	userHandler := handler.NewUserHandler(d.UserService)
	e.GET("/api/users/me", userHandler.Me)
	e.GET("/api/users", userHandler.List)

	// --- Restaurants and menu writes ---
	restaurantHandler := handler.NewRestaurantHandler(d.Restaurants)
	dishHandler := handler.NewDishHandler(d.Dishes)
	e.POST("/api/restaurants", restaurantHandler.Create)
	e.GET("/api/restaurants", restaurantHandler.List)
	e.GET("/api/restaurants/:id", restaurantHandler.Get)
	e.PATCH("/api/restaurants/:id", restaurantHandler.Update)
	e.POST("/api/restaurants/:id/dishes", dishHandler.Create)
	e.PATCH("/api/restaurants/:id/dishes/:dishId", dishHandler.Update)
	e.DELETE("/api/restaurants/:id/dishes/:dishId", dishHandler.Delete)

	// --- Public dish reads ---
	e.GET("/api/dishes", dishHandler.List)
	e.GET("/api/dishes/:id", dishHandler.Get)

	// --- Reviews, ratings, comments ---
	reviewHandler := handler.NewReviewHandler(d.Reviews)
	e.POST("/api/reviews", reviewHandler.Create)
	e.GET("/api/reviews", reviewHandler.List)
	e.GET("/api/reviews/:id", reviewHandler.Get)
	e.PATCH("/api/reviews/:id", reviewHandler.Update)
	e.DELETE("/api/reviews/:id", reviewHandler.Delete)
	e.POST("/api/reviews/:id/ratings", reviewHandler.Rate)
	e.POST("/api/reviews/:id/comments", reviewHandler.Comment)
	e.GET("/api/reviewCommentAnalysis/:commentId", reviewHandler.Analysis)

	// --- Notifications ---
	notificationHandler := handler.NewNotificationHandler(d.Notifications)
	e.GET("/api/notifications", notificationHandler.List)
	e.POST("/api/notifications/:id/read", notificationHandler.MarkRead)

	// --- Favorites (always scoped to the caller) ---
	favoriteHandler := handler.NewFavoriteHandler(d.Favorites)
	e.POST("/api/favorite-restaurants", favoriteHandler.MarkRestaurant)
	e.GET("/api/favorite-restaurants", favoriteHandler.ListRestaurants)
	e.DELETE("/api/favorite-restaurants/:restaurantId", favoriteHandler.UnmarkRestaurant)
	e.POST("/api/favorite-reviews", favoriteHandler.MarkReview)
	e.GET("/api/favorite-reviews", favoriteHandler.ListReviews)
	e.DELETE("/api/favorite-reviews/:reviewId", favoriteHandler.UnmarkReview)

	// --- Moderation alerts ---
	alertHandler := handler.NewAlertHandler(d.Alerts)
	e.POST("/api/alerts", alertHandler.Create)
	e.GET("/api/alerts", alertHandler.List)
	e.GET("/api/alerts/:id", alertHandler.Get)
	e.DELETE("/api/alerts/:id", alertHandler.Delete)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB, d.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}

// newPolicy builds the ordered route-authorization table. First match wins;
// anything unmatched requires an authenticated principal.
func newPolicy(publicPrefixes []string) *middleware.Policy {
	rules := make([]middleware.RouteRule, 0, len(publicPrefixes)+4)
	for _, prefix := range publicPrefixes {
		rules = append(rules, middleware.Public(prefix))
	}
	rules = append(rules,
		middleware.AnyRole("/swagger", domain.RoleAdmin),
		middleware.AnyRole("/api/restaurants", domain.RoleOwner, domain.RoleAdmin),
		middleware.Authenticated("/api/users/me"),
		middleware.AnyRole("/api/users", domain.RoleAdmin),
	)
	return middleware.NewPolicy(rules...)
}
