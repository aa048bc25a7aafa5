package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kmalyshev/shopcart/internal/config"
	"github.com/kmalyshev/shopcart/internal/es"
	"github.com/kmalyshev/shopcart/internal/httpserver"
	"github.com/kmalyshev/shopcart/internal/logging"
	"github.com/kmalyshev/shopcart/internal/mykafka"
	"github.com/kmalyshev/shopcart/internal/repo"
	"github.com/kmalyshev/shopcart/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(httpserver.LoggerIntoContext(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KafkaBrokers != "" {
		producer = mykafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","))
		defer producer.Close()
	}

	gormRepo := &repo.GormRepo{DB: db}

	cartHandler := &httpserver.CartHTTP{
		Svc:      &service.CartService{Repo: gormRepo},
		Producer: producer,
	}
	authHandler := &httpserver.AuthHTTP{
		Svc: &service.AuthService{
			Repo:          gormRepo,
			JWTSecret:     cfg.JWTSecret,
			RefreshSecret: cfg.RefreshSecret,
		},
		Producer: producer,
	}
	catalogHandler := &httpserver.CatalogHTTP{
		Svc:      &service.CatalogService{Repo: gormRepo},
		Producer: producer,
		ESIndex:  cfg.ESIndex,
	}

	var searchHandler *httpserver.SearchHTTP
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(es.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
		})
		if err != nil {
			log.Fatalf("es init error: %v", err)
		}
		catalogHandler.ES = esClient
		searchHandler = &httpserver.SearchHTTP{
			Svc: &service.SearchService{ES: esClient, Index: cfg.ESIndex},
		}
	}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    authHandler,
		CartHandler:    cartHandler,
		CatalogHandler: catalogHandler,
		SearchHandler:  searchHandler,
		JWTSecret:      cfg.JWTSecret,
	})

	port := cfg.ServerPort
	if port == "" {
		port = "8080"
	}

	go func() {
		logger.Info("starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
