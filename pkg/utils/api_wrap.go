package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Quiz session not found")
	case errors.Is(err, ErrUnknownOption):
		RespondError(c, http.StatusBadRequest, "Option is not valid for this step")
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusBadRequest, "Unknown plan")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrStepNotReached):
		RespondError(c, http.StatusConflict, "Quiz step not reached yet")
	case errors.Is(err, ErrPaymentProvider):
		log.Error().Err(err).Str("trace_id", traceID(c)).Msg("payment provider error")
		RespondError(c, http.StatusBadGateway, "Payment provider unavailable")
	case errors.Is(err, ErrDatabaseError):
		log.Error().Err(err).Str("trace_id", traceID(c)).Msg("database error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Error().Err(err).Str("trace_id", traceID(c)).Msg("unknown error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
