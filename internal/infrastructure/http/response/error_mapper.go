package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/plateful/ordering-service/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = map[error]ErrorMapping{
	domainErrors.ErrNoSession: {
		HTTPStatus: http.StatusUnauthorized,
		Status:     StatusUnauthorized,
		Message:    "No authenticated session",
	},
	domainErrors.ErrEmptyCart: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Cart is empty",
	},
	domainErrors.ErrZeroTotal: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Order total is zero, nothing to charge",
	},
	domainErrors.ErrInvalidQuantity: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Quantity must be positive",
	},
	domainErrors.ErrItemNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Food item not found",
	},
	domainErrors.ErrRestaurantNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Restaurant not found",
	},
	domainErrors.ErrRestaurantConflict: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Cart holds items from another restaurant",
	},
	domainErrors.ErrLedgerRead: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusServiceUnavailable,
		Message:    "Could not read points balance, try again",
	},
	domainErrors.ErrLedgerWrite: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusServiceUnavailable,
		Message:    "Could not update points balance, try again",
	},
	domainErrors.ErrCheckoutInProgress: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Checkout already in progress",
	},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for domainErr, mapping := range errorMappings {
		if errors.Is(err, domainErr) {
			return mapping.HTTPStatus, Error(mapping.Status, mapping.Message)
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error")
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
