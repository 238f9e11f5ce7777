package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ticketsim/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"ticketsim/internal/auth"
	"ticketsim/internal/cache"
	"ticketsim/internal/config"
	"ticketsim/internal/handler"
	"ticketsim/internal/qr"
	"ticketsim/internal/repository"
	"ticketsim/internal/router"
	"ticketsim/internal/service"
)

// @title Ticket Strategy Simulator API
// @version 1.0
// @description Registers users, scores ticket-grab strategies, keeps a per-user history and renders QR codes.
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := repository.NewStore(cfg)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}
	defer store.Close()
	log.Printf("using %s store", cfg.StoreDriver)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheClient.Ping(ctx); err != nil {
			log.Printf("Warning: redis unreachable, serving without cache: %v", err)
		}
		cancel()
	}

	// Initialize services
	accountService, err := service.NewAccountService(store, auth.NewBcryptHasher(cfg.BcryptCost))
	if err != nil {
		log.Fatalf("account service init: %v", err)
	}
	simulationService := service.NewSimulationService(store, cacheClient, cfg.HistoryCacheTTL)
	qrService := service.NewQRService(qr.NewPNGEncoder(cfg.QRSize), cacheClient, cfg.QRCacheTTL)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		cfg,
		handler.NewAuthHandler(accountService),
		handler.NewSimulationHandler(simulationService),
		handler.NewQRHandler(qrService),
	)

	docs.SwaggerInfo.Host = swaggerHost(cfg)
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

// swaggerHost strips any scheme from SWAGGER_HOST, defaulting to the
// local listen address.
func swaggerHost(cfg *config.Config) string {
	if cfg.SwaggerHost == "" {
		return "localhost:" + cfg.ServerPort
	}
	host := strings.TrimPrefix(cfg.SwaggerHost, "http://")
	return strings.TrimPrefix(host, "https://")
}
