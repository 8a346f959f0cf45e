package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fadilmartias/resumind/internal/config"
	"github.com/fadilmartias/resumind/internal/domain/fiber/handler"
	"github.com/fadilmartias/resumind/internal/metrics"
	"github.com/fadilmartias/resumind/internal/middleware"
	"github.com/fadilmartias/resumind/internal/model"
	"github.com/fadilmartias/resumind/internal/rasterize"
	"github.com/fadilmartias/resumind/internal/repository"
	"github.com/fadilmartias/resumind/internal/service"
	"github.com/fadilmartias/resumind/internal/storage"
	"github.com/fadilmartias/resumind/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	log.SetLevel(logLevel(appConfig.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: appConfig.MaxBodyBytes,
		// AI feedback can take well over a minute
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"success": false, "message": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.SessionHeader,
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.Session())
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	pipelineMetrics := metrics.NewPipelineMetrics(registry)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	var (
		kv      repository.KVStore
		catalog repository.JobCatalog
	)
	if config.LoadDBConfig().Enabled() {
		db := ConnectDB()
		kv = repository.NewKVRepository(db)
		catalog = repository.NewJobRepository(db)
	} else {
		log.Warn("DB_HOST not set, records are kept in memory")
		kv = repository.NewMemoryKV()
		catalog = repository.NewMemoryJobCatalog()
	}

	blobs, err := storage.NewBlobStore(ctx)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	ai, embedder, err := service.NewAIProvider(ctx, blobs)
	if err != nil {
		log.Fatalf("ai provider: %v", err)
	}

	ingestion := usecase.NewIngestionUsecase(usecase.Deps{
		Blobs:      blobs,
		KV:         kv,
		AI:         ai,
		Rasterizer: rasterize.New(nil),
		Metrics:    pipelineMetrics,
	})
	resumes := usecase.NewResumeUsecase(kv, blobs)
	assistant := usecase.NewAssistantUsecase(resumes, ai, service.NewJobSearcher(catalog, embedder), blobs, pipelineMetrics)
	catalogUC := usecase.NewCatalogUsecase(catalog, embedder)

	api := app.Group("/api")
	api.Post("/resumes", middleware.RateLimiter(5, 1*time.Minute))
	handler.NewResumeHandler(ingestion, resumes).RegisterRoutes(api)
	handler.NewAssistantHandler(assistant).RegisterRoutes(api)
	handler.NewJobHandler(catalogUC).RegisterRoutes(api)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Debugf("Active goroutines: %d", runtime.NumGoroutine())
			}
		}
	}()

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Errorw("shutdown failed", "error", err)
		}
	}()

	log.Infow("Server running", "port", appConfig.Port, "env", appConfig.Env)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func logLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	pgDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	pgDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	pgDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Fatalf("could not enable pgvector: %v", err)
	}
	if err := db.AutoMigrate(&model.KVEntry{}, &model.Job{}); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	return db
}
