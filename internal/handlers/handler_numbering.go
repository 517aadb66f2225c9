package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// numberPlaceholder is returned by preview when no counter exists yet for the
// scope. Document creation still fails for such a scope; only the preview
// degrades gracefully.
const numberPlaceholder = "PENDING"

// numberingHandler handles document number previews and scope seeding.
type numberingHandler struct {
	numberingService portssvc.NumberingSvcFacade
	companyService   portssvc.CompanySvcFacade
}

func newNumberingHandler(ns portssvc.NumberingSvcFacade, cs portssvc.CompanySvcFacade) *numberingHandler {
	return &numberingHandler{numberingService: ns, companyService: cs}
}

func registerNumberingRoutes(rg *gin.RouterGroup, numberingService portssvc.NumberingSvcFacade, companyService portssvc.CompanySvcFacade) {
	h := newNumberingHandler(numberingService, companyService)

	sequences := rg.Group("/sequences")
	{
		sequences.POST("", h.createSequence)
		sequences.GET("/preview", h.previewNumber)
	}
}

// createSequence godoc
// @Summary Seed a document numbering counter
// @Description Creates the counter for a (branch, document type) scope
// @Tags numbering
// @Accept json
// @Produce json
// @Param companyId path string true "Company ID"
// @Param sequence body dto.CreateSequenceRequest true "Scope, prefix and starting number"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Scope already exists"
// @Security BearerAuth
// @Router /companies/{companyId}/sequences [post]
func (h *numberingHandler) createSequence(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")

	var req dto.CreateSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSequence", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	scope := domain.NumberingScope{CompanyID: companyID, BranchID: req.BranchID, DocType: req.DocType}
	if err := h.numberingService.CreateScope(c.Request.Context(), userID, scope, req.Prefix, req.StartAt); err != nil {
		respondServiceError(c, logger, err, "Failed to create numbering scope")
		return
	}

	logger.Info("Numbering scope created",
		slog.String("branch_id", req.BranchID), slog.String("doc_type", string(req.DocType)))
	c.JSON(http.StatusCreated, gin.H{"status": "created"})
}

// previewNumber godoc
// @Summary Preview the next document number
// @Description Formats the number the next document in the scope will receive without consuming it. Returns a placeholder when the scope has no counter yet.
// @Tags numbering
// @Produce json
// @Param companyId path string true "Company ID"
// @Param branchId query string true "Branch ID"
// @Param docType query string true "Document type"
// @Success 200 {object} dto.NumberPreviewResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /companies/{companyId}/sequences/preview [get]
func (h *numberingHandler) previewNumber(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")

	var params dto.NumberPreviewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for PreviewNumber", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	if err := h.companyService.AuthorizeUserAction(c.Request.Context(), userID, companyID, domain.RoleReadOnly); err != nil {
		respondServiceError(c, logger, err, "Failed to preview number")
		return
	}

	scope := domain.NumberingScope{CompanyID: companyID, BranchID: params.BranchID, DocType: params.DocType}
	number, err := h.numberingService.Preview(c.Request.Context(), scope, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Unseeded scope: the UI still gets something to render.
			c.JSON(http.StatusOK, dto.NumberPreviewResponse{DocumentNumber: numberPlaceholder, Placeholder: true})
			return
		}
		respondServiceError(c, logger, err, "Failed to preview number")
		return
	}

	c.JSON(http.StatusOK, dto.NumberPreviewResponse{DocumentNumber: number})
}
