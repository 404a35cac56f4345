package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go-event-platform/config"
	"go-event-platform/internal/database"
	"go-event-platform/internal/handler"
	"go-event-platform/internal/queue"
	"go-event-platform/internal/repository"
	"go-event-platform/internal/service"
	"go-event-platform/internal/stats"
	"go-event-platform/internal/worker"
	"go-event-platform/pkg/clock"
	"go-event-platform/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	hitQueue, err := queue.NewRedisStreamHitQueue(rdb, "server-"+uuid.NewString(), nil)
	if err != nil {
		log.Fatalf("Failed to initialize hit queue: %v", err)
	}

	statsClient := stats.NewHTTPClient(cfg.Stats.URL)
	hitWorker := worker.NewHitWorker(statsClient, hitQueue)
	go func() {
		if err := hitWorker.Start(ctx); err != nil {
			logger.WithComponent("main").Error("Hit worker stopped: " + err.Error())
		}
	}()

	clk := clock.System()

	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	compilationRepo := repository.NewCompilationRepository(pool, eventRepo)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)

	views := stats.NewStatsViewsProvider(statsClient, clk)

	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo, eventRepo)
	eventService := service.NewEventService(eventRepo, userRepo, categoryRepo, requestRepo, views, clk)
	requestService := service.NewRequestService(pool, requestRepo, eventRepo, userRepo, clk)
	compilationService := service.NewCompilationService(compilationRepo, requestRepo, views)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, eventService, clk)

	router := gin.Default()
	handler.NewUserHandler(userService).RegisterRoutes(router)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(router)
	handler.NewEventHandler(eventService, hitQueue, clk, cfg.Stats.AppName).RegisterRoutes(router)
	handler.NewRequestHandler(requestService).RegisterRoutes(router)
	handler.NewCompilationHandler(compilationService).RegisterRoutes(router)
	handler.NewSubscriptionHandler(subscriptionService).RegisterRoutes(router)

	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
