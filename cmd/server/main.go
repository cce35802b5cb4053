package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/ravichandra178/mynitrends/configs"
	"github.com/ravichandra178/mynitrends/internal/api"
	"github.com/ravichandra178/mynitrends/internal/api/handlers"
	"github.com/ravichandra178/mynitrends/internal/generation"
	job "github.com/ravichandra178/mynitrends/internal/jobs"
	"github.com/ravichandra178/mynitrends/internal/queue"
	"github.com/ravichandra178/mynitrends/internal/repository"
	"github.com/ravichandra178/mynitrends/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	setupLogger(cfg.Env)

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	var client *asynq.Client
	var redisConn asynq.RedisConnOpt
	if cfg.RedisURI != "" {
		redisConn, err = redisOpt(cfg.RedisURI)
		if err != nil {
			log.Fatalf("Invalid REDIS_URI: %v", err)
		}
		client = asynq.NewClient(redisConn)
		defer client.Close()
	} else {
		slog.Warn("REDIS_URI not set, scheduled posts are published by the auto-post job only")
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    10 * 1024 * 1024, // 10 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "path", c.Path(), "error", err)
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	prometheus := fiberprometheus.New("mynitrends")
	prometheus.RegisterAt(app, "/metrics")

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(prometheus.Middleware)
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Client-Info, Apikey",
		MaxAge:       3600,
	}))

	trendRepo := repository.NewTrendRepository(db)
	postRepo := repository.NewPostRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	historyRepo := repository.NewPostingHistoryRepository(db)
	autoReplyRepo := repository.NewAutoReplyRepository(db)

	var images generation.ImageStore
	if cfg.R2.Enabled() {
		r2Service, err := service.NewR2Service(context.Background(), cfg.R2)
		if err != nil {
			log.Fatalf("Failed to configure R2: %v", err)
		}
		images = r2Service
	}
	generator := generation.NewFromConfig(cfg, images)

	settingsService := service.NewSettingsService(settingsRepo, *cfg)
	facebookService := service.NewFacebookService(*cfg)
	trendService := service.NewTrendService(trendRepo, generator)
	postService := service.NewPostService(db, postRepo, trendRepo, historyRepo, generator)
	publishService := service.NewPublishService(postRepo, historyRepo, settingsService, facebookService)
	autoReplyService := service.NewAutoReplyService(autoReplyRepo, generator)

	api.SetupRoutes(app, api.Handlers{
		Health:    handlers.NewHealthHandler(db),
		Trend:     handlers.NewTrendHandler(trendService),
		Post:      handlers.NewPostHandler(postService, client),
		Settings:  handlers.NewSettingsHandler(settingsService),
		Facebook:  handlers.NewFacebookHandler(publishService),
		AutoReply: handlers.NewAutoReplyHandler(autoReplyService),
	})

	// cron jobs
	autoPostJob := job.NewAutoPostJob(publishService)
	engagementJob := job.NewEngagementRefreshJob(postRepo, publishService)
	trendJob := job.NewTrendDiscoveryJob(trendService)

	c := cron.New()
	addJob(c, cfg.Jobs.AutoPostSchedule, "auto-post", autoPostJob.PublishDuePosts)
	addJob(c, cfg.Jobs.EngagementSchedule, "engagement-refresh", engagementJob.RefreshEngagement)
	addJob(c, cfg.Trends.Schedule, "trend-discovery", trendJob.DiscoverTrends)
	c.Start()
	defer c.Stop()

	// queue
	var worker *asynq.Server
	if client != nil {
		queueW := queue.NewQueue(publishService)
		worker = asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 5,
		})

		go func() {
			log.Println("Starting the Asynq server...")
			if err := worker.Run(queueW.NewServeMux()); err != nil {
				log.Fatalf("Could not start Asynq server: %v", err)
			}
		}()
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, worker)
}

func setupLogger(env string) {
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}

// redisOpt accepts either a redis:// URI or a bare host:port address.
func redisOpt(uri string) (asynq.RedisConnOpt, error) {
	if strings.Contains(uri, "://") {
		return asynq.ParseRedisURI(uri)
	}
	return asynq.RedisClientOpt{Addr: uri}, nil
}

// addJob registers fn on c. An empty spec disables the job.
func addJob(c *cron.Cron, spec, name string, fn func()) {
	if spec == "" {
		slog.Info("cron job disabled", "job", name)
		return
	}
	if err := c.AddFunc(spec, fn); err != nil {
		log.Fatalf("Invalid schedule %q for %s: %v", spec, name, err)
	}
	slog.Info("cron job scheduled", "job", name, "spec", spec)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, worker *asynq.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if worker != nil {
		worker.Shutdown()
	}

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	log.Println("Server shutdown complete.")
}
