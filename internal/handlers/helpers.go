package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Kola-Kola/personal-finance/internal/errors"
	"github.com/Kola-Kola/personal-finance/internal/ledger"
	"github.com/Kola-Kola/personal-finance/internal/logger"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// parsePathID returns a non-empty path parameter.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id := strings.TrimSpace(c.Param(param))
	if id == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseFlexibleTime accepts RFC3339, YYYY-MM-DD and YYYY-MM.
func parseFlexibleTime(s string) (time.Time, error) {
	t, err := ledger.ParseDate(s)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use RFC3339, YYYY-MM-DD or YYYY-MM")
	}
	return t, nil
}

// parseMonthParam reads an optional YYYY-MM value. The zero Month is
// returned for an empty value.
func parseMonthParam(v, name string) (ledger.Month, error) {
	if v == "" {
		return ledger.Month{}, nil
	}
	m, err := ledger.ParseMonth(v)
	if err != nil {
		return ledger.Month{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+name+", use YYYY-MM")
	}
	return m, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Named("http").Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Named("http").Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
