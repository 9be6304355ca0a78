package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"traintrack/config"
	"traintrack/cron"
	"traintrack/database"
	accountRepoPkg "traintrack/database/repository/account"
	allocationRepoPkg "traintrack/database/repository/allocation"
	applicationRepoPkg "traintrack/database/repository/application"
	recordsRepoPkg "traintrack/database/repository/records"
	"traintrack/handlers"
	"traintrack/middleware"
	"traintrack/routes"
	"traintrack/services/account"
	"traintrack/services/notification"
	"traintrack/services/scheduler"
	"traintrack/services/workflow"
	"traintrack/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	allocRepo := allocationRepoPkg.NewMongoAllocationRepo()
	appRepo := applicationRepoPkg.NewMongoApplicationRepo()
	acctRepo := accountRepoPkg.NewMongoAccountRepo()
	catalogueRepo := recordsRepoPkg.NewMongoCatalogueRepo()

	// notification queue.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()
	notificationService := notification.NewDefaultNotificationService(queueClient)
	cron.InitNotificationWorker()

	// services.
	lockManager := utils.NewRedisLockManager(
		utils.GetLockClient(),
		time.Duration(config.AppConfig.SchedulerLockTTLSeconds)*time.Second,
	)
	schedulingService := &scheduler.DefaultSchedulingService{
		Repo:            allocRepo,
		Records:         catalogueRepo,
		Accounts:        acctRepo,
		Locks:           lockManager,
		Notifier:        notificationService,
		ExclusiveBounds: config.AppConfig.SchedulerExclusiveBounds,
	}
	workflowService := &workflow.DefaultWorkflowService{
		Apps:     appRepo,
		Accounts: acctRepo,
		Notifier: notificationService,
	}
	accountService := &account.DefaultAccountService{
		Repo: acctRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		AccountRepo: acctRepo,
		Allocation:  handlers.NewAllocationHandler(schedulingService),
		Application: handlers.NewApplicationHandler(workflowService),
		Auth:        handlers.NewAuthHandler(accountService),
		Records:     handlers.NewRecordsHandler(catalogueRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetLockClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
