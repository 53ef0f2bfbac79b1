package gin

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/propmarket/server/internal/domain/notification"
	"github.com/propmarket/server/internal/domain/payment"
	apperrors "github.com/propmarket/server/internal/utils/errors"
	"github.com/propmarket/server/internal/utils/logger"
)

// toAppError maps domain errors to HTTP errors.
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, payment.ErrPaymentNotFound):
		return apperrors.NotFound("payment")
	case errors.Is(err, payment.ErrListingNotFound):
		return apperrors.NotFound("listing")
	case errors.Is(err, notification.ErrNotificationNotFound):
		return apperrors.NotFound("notification")

	case errors.Is(err, payment.ErrForbidden):
		return apperrors.Forbidden("")

	case errors.Is(err, payment.ErrAlreadyPaid):
		return apperrors.Conflict("ALREADY_PAID", "This listing has already been paid for")
	case errors.Is(err, payment.ErrAlreadyFinalized):
		return apperrors.Conflict("ALREADY_FINALIZED", "Payment has already been completed")
	case errors.Is(err, payment.ErrInvalidTransition):
		return apperrors.Conflict("INVALID_TRANSITION", "Payment cannot change to the requested status")
	case errors.Is(err, payment.ErrConcurrentUpdate):
		return apperrors.Conflict("CONCURRENT_UPDATE", "Payment was modified by another request, please retry")

	case errors.Is(err, payment.ErrInvalidBoostDuration):
		return apperrors.ValidationError("Unsupported boost duration")
	case errors.Is(err, payment.ErrValidation):
		return apperrors.ValidationError(err.Error())

	case errors.Is(err, payment.ErrInvalidSignature):
		return apperrors.Unauthorized("Invalid webhook signature")

	case errors.Is(err, payment.ErrGatewayRejected):
		return apperrors.BadGateway("GATEWAY_REJECTED", "Payment gateway rejected the request")
	case errors.Is(err, payment.ErrGatewayUnavailable):
		return apperrors.ServiceUnavailable("GATEWAY_UNAVAILABLE", "Payment gateway is temporarily unavailable, please retry")

	case errors.Is(err, payment.ErrEffectApplication):
		return apperrors.Internal("Payment received but could not be applied yet, please retry verification", err)

	default:
		return apperrors.Internal("Internal server error", err)
	}
}

// handleError renders err and logs server-side failures.
func handleError(c *gin.Context, log *logger.Logger, err error) {
	appErr := toAppError(err)
	if appErr.StatusCode >= 500 {
		log.WithRequest(c.Request.Context()).Error("request failed",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"error", err,
		)
	}
	_ = c.Error(err)
	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

// badRequest renders a validation error.
func badRequest(c *gin.Context, message string) {
	appErr := apperrors.ValidationError(message)
	c.JSON(appErr.StatusCode, appErr.ToResponse())
}
