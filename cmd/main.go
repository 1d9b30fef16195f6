package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"gocrm/internal/caching"
	"gocrm/internal/graphclient"
	"gocrm/internal/handlers"
	"gocrm/internal/jobs"
	"gocrm/internal/jobs/background"
	"gocrm/internal/repositories"
	"gocrm/internal/services"
	"gocrm/pkg/database"
)

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	graphqlURL := os.Getenv("GRAPHQL_URL")
	if graphqlURL == "" {
		graphqlURL = fmt.Sprintf("http://localhost:%d/graphql", port)
	}

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create repositories
	customerRepo := repositories.NewCustomerRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)

	// Create services
	querySvc := services.NewQueryService(customerRepo, productRepo, orderRepo, cacheSvc)
	customerSvc := services.NewCustomerService(customerRepo)
	productSvc := services.NewProductService(productRepo, cacheSvc)
	orderSvc := services.NewOrderService(orderRepo, customerRepo, productRepo)
	reportSvc := services.NewReportService(pool)

	// Create handlers
	graphqlHandlers := handlers.NewGraphQLHandlers(querySvc, customerSvc, productSvc, orderSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Scheduled jobs call back through the API boundary
	jobClient := graphclient.New(graphqlURL, 30*time.Second)
	heartbeat := jobs.NewHeartbeatJob(jobClient, jobs.NewLogSink("/tmp/crm_heartbeat_log.txt", "crm_heartbeat_log.txt"))
	lowStock := jobs.NewLowStockJob(jobClient, jobs.NewLogSink("/tmp/low_stock_updates_log.txt", "low_stock_updates_log.txt"))
	report := jobs.NewWeeklyReportJob(reportSvc, jobs.NewLogSink("/tmp/crm_report_log.txt", "crm_report_log.txt"))
	reminders := jobs.NewOrderReminderJob(jobClient, jobs.NewLogSink("/tmp/order_reminders_log.txt", "order_reminders_log.txt"))

	scheduler, err := background.NewJobScheduler(heartbeat, lowStock, report, reminders)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.POST("/graphql", graphqlHandlers.Execute)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	log.Printf("CRM server starting on port %d", port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
