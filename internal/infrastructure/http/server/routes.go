package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plateful/ordering-service/internal/infrastructure/http/middleware"
	"github.com/plateful/ordering-service/internal/infrastructure/http/response"
	"github.com/plateful/ordering-service/internal/infrastructure/monitoring"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", s.healthHandler.HandleHealth())

	mux.HandleFunc("/restaurants", s.handleRestaurantCollection)
	mux.HandleFunc("/restaurants/", s.handleRestaurantRoutes)

	mux.HandleFunc("/cart", s.handleCart)
	mux.HandleFunc("/cart/items", s.handleCartItems)
	mux.HandleFunc("/cart/items/", s.handleCartItem)
	mux.HandleFunc("/cart/clear", s.handleCartClear)

	mux.HandleFunc("/checkout", s.checkoutHandler.HandleCheckout())
	mux.HandleFunc("/checkout/state", s.checkoutHandler.HandleCheckoutState())

	mux.HandleFunc("/loyalty/balance", s.handleLoyaltyBalance)

	handler := middleware.NewRecoveryMiddleware(s.logger)(mux)
	handler = middleware.NewAuthMiddleware(s.sessions, s.logger)(handler)
	handler = middleware.NewLoggingMiddleware(s.logger)(handler)
	handler = monitoring.WrapHandler(handler)
	handler = s.corsMiddleware(handler)
	handler = s.timeoutMiddleware(handler)

	return handler
}

func (s *Server) handleRestaurantCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.WriteError(w, http.StatusMethodNotAllowed, response.StatusError, "Method not allowed")
		return
	}
	s.catalogHandler.HandleGetRestaurants(w, r)
}

func (s *Server) handleRestaurantRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/restaurants/")
	parts := strings.Split(path, "/")

	if len(parts) == 1 && parts[0] != "" {
		if r.Method == http.MethodGet {
			s.catalogHandler.HandleGetRestaurant(w, r)
			return
		}
	} else if len(parts) == 2 && parts[1] == "items" {
		if r.Method == http.MethodGet {
			s.catalogHandler.HandleGetRestaurantItems(w, r)
			return
		}
	}

	http.NotFound(w, r)
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.WriteError(w, http.StatusMethodNotAllowed, response.StatusError, "Method not allowed")
		return
	}
	s.cartHandler.HandleGetCart(w, r)
}

func (s *Server) handleCartItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteError(w, http.StatusMethodNotAllowed, response.StatusError, "Method not allowed")
		return
	}
	s.cartHandler.HandleAddItem(w, r)
}

func (s *Server) handleCartItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		response.WriteError(w, http.StatusMethodNotAllowed, response.StatusError, "Method not allowed")
		return
	}
	s.cartHandler.HandleRemoveItem(w, r)
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteError(w, http.StatusMethodNotAllowed, response.StatusError, "Method not allowed")
		return
	}
	s.cartHandler.HandleClearCart(w, r)
}

func (s *Server) handleLoyaltyBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.WriteError(w, http.StatusMethodNotAllowed, response.StatusError, "Method not allowed")
		return
	}
	s.loyaltyHandler.HandleGetBalance(w, r)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-CSRF-Token")
		w.Header().Set("Access-Control-Expose-Headers", "Link")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, 30*time.Second, "Request timeout")
}
