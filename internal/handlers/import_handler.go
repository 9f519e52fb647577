package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kola-Kola/personal-finance/internal/services"
)

// maxImportBytes bounds the size of an uploaded export.
const maxImportBytes = 10 << 20

// ImportHandler loads legacy exports.
type ImportHandler struct {
	importService services.ImportServicer
	auditService  services.AuditServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService services.ImportServicer, auditService services.AuditServicer) *ImportHandler {
	return &ImportHandler{importService: importService, auditService: auditService}
}

// ImportLegacy handles a bulk import
// @Summary     Import legacy export
// @Description Create transactions from a JSON export of the legacy browser app. Records that cannot be converted are reported and skipped.
// @Tags        import
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body []importer.Record true "Exported transactions"
// @Success     200 {object} importer.Result "Import summary"
// @Failure     400 {object} ErrorResponse "Malformed export"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     503 {object} ErrorResponse "Import not configured"
// @Router      /import [post]
func (h *ImportHandler) ImportLegacy(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	result, err := h.importService.ImportLegacy(c.Request.Context(), body)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("IMPORT_TRANSACTIONS", "transaction", "", c.ClientIP(),
		map[string]any{"imported": result.Imported, "skipped": len(result.Skipped)})

	c.JSON(http.StatusOK, gin.H{"import": result})
}
