package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"campbook/internal/config"
	"campbook/internal/metrics"
	"campbook/internal/middleware"
	"campbook/internal/model"
	"campbook/internal/version"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupRouter(cfg *config.Config, h *Handlers, s *Services, rateLimiter *middleware.RateLimiter, mongoClient *mongo.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetTrustedProxies(nil)

	collector := metrics.NewCollector()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(slog.Default()))
	r.Use(collector.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", healthz(mongoClient))
	r.GET("/metrics", gin.WrapH(collector.Handler()))

	authenticate := middleware.Authenticate(s.Auth)
	limited := rateLimiter.Middleware()

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", limited, h.Auth.Register)
		auth.POST("/login", limited, h.Auth.Login)
		auth.POST("/reset-password", limited, h.Auth.ResetPassword)
		auth.GET("/me", authenticate, h.Auth.Me)
		auth.GET("/logout", authenticate, h.Auth.Logout)
		auth.GET("/:id", authenticate, h.Auth.GetUser)
	}

	campgrounds := api.Group("/campgrounds")
	{
		campgrounds.GET("", h.Campground.List)
		campgrounds.GET("/:id", h.Campground.Get)

		privileged := campgrounds.Group("", authenticate, middleware.Authorize(model.RoleAdmin))
		privileged.POST("", h.Campground.Create)
		privileged.PUT("/:id", h.Campground.Update)
		privileged.DELETE("/:id", h.Campground.Delete)
	}

	bookings := api.Group("/bookings", authenticate)
	{
		bookings.GET("", h.Booking.List)
		bookings.GET("/dashboard", middleware.Authorize(model.RoleAdmin), h.Booking.Dashboard)
		bookings.GET("/:id", h.Booking.Get)

		managed := bookings.Group("", middleware.Authorize(model.RoleAdmin, model.RoleUser))
		managed.POST("", h.Booking.Create)
		managed.PUT("/:id", h.Booking.Update)
		managed.DELETE("/:id", h.Booking.Delete)
	}

	return r
}

// healthz reports service identity and store reachability.
func healthz(client *mongo.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx, nil); err != nil {
			status = "unreachable"
		}
		c.JSON(http.StatusOK, model.NewSuccessResponse(gin.H{
			"service":  "campbook",
			"version":  version.Get(),
			"database": status,
		}))
	}
}
