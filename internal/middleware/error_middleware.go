package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/pkg/apperrors"
	"github.com/acadsys/aims/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Workflow errors
// carry their structured details (current status, clashing course, credit
// totals) so the client can render a specific message.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()
	details := apperrors.Details(err)

	respond := func(status int, code dto.ErrorCode) {
		errorDetail := dto.NewErrorDetail(code, message)
		if details != nil {
			errorDetail = errorDetail.WithDetails(details)
		}
		c.JSON(status, dto.NewErrorResponse(errorDetail))
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidGrade):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed)

	case errors.Is(err, apperrors.ErrScheduleConflict):
		respond(http.StatusConflict, dto.ErrorCodeScheduleConflict)

	case errors.Is(err, apperrors.ErrCreditLimitExceeded):
		respond(http.StatusConflict, dto.ErrorCodeCreditLimitExceeded)

	case errors.Is(err, apperrors.ErrAlreadyProcessed):
		respond(http.StatusConflict, dto.ErrorCodeAlreadyProcessed)

	case errors.Is(err, apperrors.ErrDuplicateEnrollment):
		respond(http.StatusConflict, dto.ErrorCodeDuplicateEnrollment)

	case errors.Is(err, apperrors.ErrNotPermitted):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden)

	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrOfferingNotFound),
		errors.Is(err, apperrors.ErrProposalNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrTermNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrSlotNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound)

	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials)

	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden)

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists)

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}
