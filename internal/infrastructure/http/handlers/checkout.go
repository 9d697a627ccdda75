package handlers

import (
	"net/http"

	"github.com/plateful/ordering-service/internal/application/use_cases"
	"github.com/plateful/ordering-service/internal/domain/errors"
	"github.com/plateful/ordering-service/internal/domain/order"
	"github.com/plateful/ordering-service/internal/infrastructure/http/middleware"
	"github.com/plateful/ordering-service/internal/infrastructure/http/response"
	"github.com/plateful/ordering-service/internal/infrastructure/monitoring"
	"github.com/plateful/ordering-service/internal/pkg/logger"
)

type CheckoutHandler struct {
	useCase *use_cases.CheckoutUseCase
	log     *logger.Logger
}

func NewCheckoutHandler(useCase *use_cases.CheckoutUseCase, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		useCase: useCase,
		log:     log,
	}
}

type CheckoutResponse struct {
	Reference     string `json:"reference"`
	AmountCharged string `json:"amount_charged"`
	PointsUsed    int64  `json:"points_used"`
	PointsEarned  int64  `json:"points_earned"`
	NewBalance    int64  `json:"new_balance"`
}

type CheckoutStateResponse struct {
	State string `json:"state"`
}

func (h *CheckoutHandler) HandleCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		session := middleware.SessionFromContext(r.Context())
		if !session.Authenticated {
			response.WriteDomainError(w, errors.ErrNoSession)
			return
		}

		h.log.Info("Checkout request received",
			"user_id", session.UserID,
			"method", r.Method,
			"url", r.URL.String(),
		)

		monitoring.RecordCheckoutAttempt()

		result, err := h.useCase.Run(r.Context(), session)
		if err != nil {
			h.log.Error("Checkout failed",
				"user_id", session.UserID,
				"error", err.Error(),
			)
			monitoring.RecordCheckoutFailure(err.Error())
			response.WriteDomainError(w, err)
			return
		}

		monitoring.RecordCheckoutSuccess(result.PointsUsed, result.PointsEarned)

		response.WriteSuccess(w, CheckoutResponse{
			Reference:     result.Reference,
			AmountCharged: order.FormatCents(result.AmountChargedCents),
			PointsUsed:    result.PointsUsed,
			PointsEarned:  result.PointsEarned,
			NewBalance:    result.NewBalance,
		})
	}
}

func (h *CheckoutHandler) HandleCheckoutState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		session := middleware.SessionFromContext(r.Context())
		if !session.Authenticated {
			response.WriteDomainError(w, errors.ErrNoSession)
			return
		}

		state := h.useCase.State(session.UserID)
		response.WriteSuccess(w, CheckoutStateResponse{State: state.String()})
	}
}
