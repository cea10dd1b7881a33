package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shop_api/internal/config"
	"github.com/Skotchmaster/shop_api/internal/db"
	"github.com/Skotchmaster/shop_api/internal/events"
	"github.com/Skotchmaster/shop_api/internal/httpserver"
	"github.com/Skotchmaster/shop_api/internal/logging"
	authmw "github.com/Skotchmaster/shop_api/internal/middleware/auth"
	"github.com/Skotchmaster/shop_api/internal/repo"
	"github.com/Skotchmaster/shop_api/internal/search"
	"github.com/Skotchmaster/shop_api/internal/service"
	"github.com/Skotchmaster/shop_api/internal/storage"
	"github.com/Skotchmaster/shop_api/internal/tokens"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.ServiceName, cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	tm, err := tokens.NewManager(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	var (
		publisher events.Publisher = events.Nop{}
		producer  *events.Producer
	)
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		publisher = producer
	} else {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS not set")
	}

	var index search.Index = search.Disabled{}
	if cfg.ESURL != "" {
		es, err := search.NewClient(search.ClientConfig{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		index = search.NewESIndex(es, cfg.ESIndex)
	} else {
		logger.Warn("search_disabled", "reason", "ES_URL not set")
	}

	images, uploadDir, err := newImageStore(cfg)
	if err != nil {
		log.Fatalf("image store init error: %v", err)
	}

	r := &repo.GormRepo{DB: gdb}
	links := httpserver.Links{BaseURL: cfg.PublicURL}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Pre(ecM.RemoveTrailingSlash())
	e.Use(httpserver.Middleware(logger)...)

	httpserver.Register(e, &httpserver.Deps{
		DB:    gdb,
		Guard: authmw.NewGuard(tm),
		Auth: &httpserver.AuthHTTP{
			Svc:   &service.AuthService{Repo: r, Tokens: tm, Events: publisher},
			Links: links,
		},
		Catalog: &httpserver.CatalogHTTP{
			Svc:   &service.CatalogService{Repo: r, Images: images, Index: index, Events: publisher},
			Links: links,
		},
		Orders: &httpserver.OrderHTTP{
			Svc:   &service.OrderService{Repo: r, Products: r, Events: publisher},
			Links: links,
		},
		UploadDir: uploadDir,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		logger.Info("server_started", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_failed", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka_close_failed", "error", err)
		}
	}

	logger.Info("shutdown_complete")
}

// newImageStore returns the configured store and, for the disk store, the
// directory to serve statically.
func newImageStore(cfg config.Config) (storage.ImageStore, string, error) {
	if cfg.ImageStore == "s3" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		return s, "", err
	}

	s, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, "", err
	}
	return s, cfg.UploadDir, nil
}
