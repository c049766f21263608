package main

import (
	"context"
	"net/http"
	"time"

	authapp "github.com/tindaph/tindaph/application/auth"
	productapp "github.com/tindaph/tindaph/application/product"
	"github.com/tindaph/tindaph/cmd/config"
	mongoclient "github.com/tindaph/tindaph/cmd/mongo"
	redisclient "github.com/tindaph/tindaph/cmd/redis"
	_ "github.com/tindaph/tindaph/docs"
	productRepo "github.com/tindaph/tindaph/repository/product"
	redisRepo "github.com/tindaph/tindaph/repository/redis"
	userRepo "github.com/tindaph/tindaph/repository/user"
	"github.com/tindaph/tindaph/transport"
	"github.com/tindaph/tindaph/utils/logger"
	validatorx "github.com/tindaph/tindaph/utils/validator"
	"go.uber.org/zap"
)

// @title TindaPH API
// @version 1.0
// @description TindaPH storefront API documentation
// @host localhost:4000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	validatorx.Init()

	// Connect to MongoDB
	if err := mongoclient.New(cfg); err != nil {
		logger.Fatal("err connect mongodb", zap.Error(err))
	}
	defer func() {
		_ = mongoclient.Close()
	}()

	// Initialize Redis client (optional product cache)
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	db := mongoclient.Get()

	// Initialize repositories
	UserRepo := userRepo.NewUserRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	CacheRepo := redisRepo.NewRepository(cfg.Redis.CacheTTL)

	// Ensure indexes: unique email, product text search, listing order
	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := UserRepo.CreateIndexes(indexCtx); err != nil {
		logger.Fatal("err create user indexes", zap.Error(err))
	}
	if err := ProductRepo.CreateIndexes(indexCtx); err != nil {
		logger.Fatal("err create product indexes", zap.Error(err))
	}

	// Initialize application layers
	AuthApp := authapp.NewAuthApp(cfg, UserRepo)
	ProductApp := productapp.NewProductApp(ProductRepo, UserRepo, CacheRepo)

	httpTransport := transport.NewTransport(AuthApp, ProductApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
