package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campbook/internal/config"
	"campbook/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Server represents the HTTP server
type Server struct {
	cfg         *config.Config
	router      *gin.Engine
	mongo       *mongo.Client
	services    *Services
	rateLimiter *middleware.RateLimiter
}

// New creates a new server instance: connects to MongoDB, ensures indexes
// and wires repositories, services and handlers together.
func New(cfg *config.Config) (*Server, error) {
	mongoClient, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	if err := EnsureIndexes(context.Background(), db); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	repos := InitRepositories(db)
	services := InitServices(cfg, repos)
	handlers := InitHandlers(services)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	router := setupRouter(cfg, handlers, services, rateLimiter, mongoClient)

	return &Server{
		cfg:         cfg,
		router:      router,
		mongo:       mongoClient,
		services:    services,
		rateLimiter: rateLimiter,
	}, nil
}

// Connect establishes and pings the MongoDB connection
func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Close releases server resources and disconnects MongoDB
func (s *Server) Close() error {
	s.rateLimiter.Stop()
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run starts the server
func (s *Server) Run() error {
	slog.Info("server listening", slog.String("address", s.cfg.Server.Address()))
	return s.router.Run(s.cfg.Server.Address())
}
