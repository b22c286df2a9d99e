package main

import (
	"github.com/vuminhhoangg/E-Store-sub000/internal/auth"
	"github.com/vuminhhoangg/E-Store-sub000/internal/cart"
	"github.com/vuminhhoangg/E-Store-sub000/internal/config"
	httpcontroller "github.com/vuminhhoangg/E-Store-sub000/internal/controllers/http"
	"github.com/vuminhhoangg/E-Store-sub000/internal/db"
	"github.com/vuminhhoangg/E-Store-sub000/internal/events"
	"github.com/vuminhhoangg/E-Store-sub000/internal/logger"
	"github.com/vuminhhoangg/E-Store-sub000/internal/metrics"
	"github.com/vuminhhoangg/E-Store-sub000/internal/middleware"
	"github.com/vuminhhoangg/E-Store-sub000/internal/order"
	"github.com/vuminhhoangg/E-Store-sub000/internal/product"
	"github.com/vuminhhoangg/E-Store-sub000/internal/user"
	"github.com/vuminhhoangg/E-Store-sub000/internal/warranty"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	var publisher order.EventPublisher
	if cfg.AmqpURL != "" {
		p, err := events.NewPublisher(cfg.AmqpURL, events.Exchange)
		if err != nil {
			// Orders still work without the broker; events are best effort.
			log.Warn("event publisher unavailable", zap.Error(err))
		} else {
			defer p.Close()
			publisher = p
		}
	}

	stats := metrics.NewStore()
	revocations := auth.NewRevocationStore(redisClient)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, revocations)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, cartRepo, productRepo, publisher, stats)

	claimRepo := warranty.NewRepository(database)
	claimSvc := warranty.NewService(claimRepo, orderRepo, publisher, stats)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logging(stats),
		middleware.Authenticate(revocations),
	)

	handler := httpcontroller.NewHandler(userSvc, productSvc, cartSvc, orderSvc, claimSvc, redisClient, stats)
	handler.RegisterRoutes(router, middleware.NewRateLimiter())

	log.Info("server starting", zap.String("port", cfg.AppPort))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
