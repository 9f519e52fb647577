package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kola-Kola/personal-finance/internal/live"
)

// StateReader exposes the live snapshot. *live.View satisfies it.
type StateReader interface {
	State() live.State
}

// StateHandler serves the live snapshot.
type StateHandler struct {
	reader StateReader
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(reader StateReader) *StateHandler {
	return &StateHandler{reader: reader}
}

// GetState returns the latest snapshot
// @Summary     Live state
// @Description Every transaction as of the last store change, whether the first load is pending, and the last recoverable error
// @Tags        state
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} live.State "Snapshot"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /state [get]
func (h *StateHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.reader.State())
}
