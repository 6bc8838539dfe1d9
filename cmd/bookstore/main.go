package main

import (
	"context"
	"flag"
	"os"
	"sync"
	"time"

	"github.com/emzola/bookstore/clients"
	"github.com/emzola/bookstore/config"
	"github.com/emzola/bookstore/data"
	_ "github.com/emzola/bookstore/docs"
	"github.com/emzola/bookstore/handler"
	"github.com/emzola/bookstore/internal/jsonlog"
	"github.com/emzola/bookstore/internal/mailer"
	"github.com/emzola/bookstore/repository"
	"github.com/emzola/bookstore/repository/postgres"
	"github.com/emzola/bookstore/service"
	"github.com/jellydator/ttlcache/v3"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

// @title Bookstore API
// @version 1.0
// @description Book catalogue with search, filtering and pagination, plus JWT authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	configPath := flag.String("config", "config.yaml", "Path to the YAML configuration file")
	flag.Parse()

	// A missing .env file is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil {
		logger.PrintInfo("no .env file loaded", nil)
	}

	// Initialize configuration
	cfg, err := config.Decode(*configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	level, err := jsonlog.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	logger = jsonlog.New(os.Stdout, level)

	// Initialize repository
	var repo repository.Repository
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.OpenDBConn(cfg)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		defer db.Close()
		logger.PrintInfo("database connection pool established", nil)
		err = postgres.Migrate(context.Background(), db)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		repo = repository.New(db)
	default:
		repo = repository.NewMemory(data.SeedBooks())
		logger.PrintInfo("using in-memory repository", nil)
	}

	// Cover storage is optional
	var storage service.CoverStorage
	if cfg.S3.Bucket != "" {
		s3Client, err := clients.NewS3Client(context.Background(), cfg)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		storage = s3Client
	}

	// Other shared resources: waitgroup and rate limiter cache
	var wg sync.WaitGroup
	limiters := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](3 * time.Minute))
	go limiters.Start()
	defer limiters.Stop()

	// Application layers
	mail := mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
	svc := service.New(cfg, &wg, logger.With("layer", "service"), repo, mail, storage)
	err = svc.SeedRolesAndAdmin(context.Background())
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	h := handler.New(cfg, logger.With("layer", "handler"), limiters, svc)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: svc,
		handler: h,
	}

	// Start HTTP server
	err = app.serve(&wg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
