package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/plateful/ordering-service/internal/application/use_cases"
	"github.com/plateful/ordering-service/internal/config"
	"github.com/plateful/ordering-service/internal/infrastructure/http/handlers"
	"github.com/plateful/ordering-service/internal/infrastructure/memory"
	"github.com/plateful/ordering-service/internal/infrastructure/persistence/postgres"
	"github.com/plateful/ordering-service/internal/infrastructure/persistence/redis"
	"github.com/plateful/ordering-service/internal/pkg/clock"
	"github.com/plateful/ordering-service/internal/pkg/generator"
	"github.com/plateful/ordering-service/internal/pkg/logger"
)

type Server struct {
	server          *http.Server
	logger          *logger.Logger
	sessions        *redis.SessionStore
	healthHandler   *handlers.HealthHandler
	catalogHandler  *handlers.CatalogHandler
	cartHandler     *handlers.CartHandler
	checkoutHandler *handlers.CheckoutHandler
	loyaltyHandler  *handlers.LoyaltyHandler
}

func NewServer(cfg *config.Config, pgConn *postgres.Connection, redisConn *redis.Connection, logger *logger.Logger) *Server {
	catalogRepo := postgres.NewCatalogRepository(pgConn)
	ledgerRepo := postgres.NewLedgerRepository(pgConn)

	catalogCache := redis.NewCatalogCache(
		redisConn,
		catalogRepo,
		time.Duration(cfg.Loyalty.CatalogCacheSeconds)*time.Second,
		logger,
	)
	sessions := redis.NewSessionStore(
		redisConn,
		time.Duration(cfg.Loyalty.SessionTTLMinutes)*time.Minute,
	)

	carts := memory.NewCartStore()

	checkoutUseCase := use_cases.NewCheckoutUseCase(
		carts,
		ledgerRepo,
		generator.NewReferenceGenerator(),
		logger,
	)

	catalogHandler := handlers.NewCatalogHandler(catalogRepo, logger)
	cartHandler := handlers.NewCartHandler(carts, catalogRepo, catalogCache, ledgerRepo, logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutUseCase, logger)
	loyaltyHandler := handlers.NewLoyaltyHandler(ledgerRepo, logger)
	healthHandler := handlers.NewHealthHandler(pgConn.GetDB(), redisConn.GetClient(), clock.NewRealClock(), logger)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server:          server,
		logger:          logger,
		sessions:        sessions,
		healthHandler:   healthHandler,
		catalogHandler:  catalogHandler,
		cartHandler:     cartHandler,
		checkoutHandler: checkoutHandler,
		loyaltyHandler:  loyaltyHandler,
	}
}

func (s *Server) ListenAndServe() error {
	s.server.Handler = s.setupRoutes()

	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
