package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// documentHandler handles financial document requests.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:documentId", h.getDocument)
		documents.PUT("/:documentId", h.updateDocument)
		documents.POST("/:documentId/cancel", h.cancelDocument)
	}
}

// createDocument godoc
// @Summary Create a financial document
// @Description Creates an invoice, bill, quotation, credit note or debit note. Totals are computed server-side; declared amounts beyond the money tolerance are rejected.
// @Tags documents
// @Accept json
// @Produce json
// @Param companyId path string true "Company ID"
// @Param document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input or declared amount drift"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Branch, party or numbering scope not found"
// @Security BearerAuth
// @Router /companies/{companyId}/documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), userID, companyID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create document")
		return
	}

	logger.Info("Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("document_number", doc.DocumentNumber))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List a company's documents of one type
// @Description Returns a keyset-paginated page, newest first
// @Tags documents
// @Produce json
// @Param companyId path string true "Company ID"
// @Param docType query string true "Document type"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /companies/{companyId}/documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")

	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListDocuments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	docs, nextToken, err := h.documentService.ListDocuments(c.Request.Context(), userID, companyID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list documents")
		return
	}

	responses := make([]dto.DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = dto.ToDocumentResponse(&docs[i])
	}
	c.JSON(http.StatusOK, dto.ListDocumentsResponse{Documents: responses, NextToken: nextToken})
}

// getDocument godoc
// @Summary Get a document with its line items
// @Tags documents
// @Produce json
// @Param companyId path string true "Company ID"
// @Param documentId path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
// @Router /companies/{companyId}/documents/{documentId} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")
	documentID := c.Param("documentId")

	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), userID, companyID, documentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve document")
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// updateDocument godoc
// @Summary Update a document
// @Description Patches metadata, or replaces the line items and recomputes totals when items are supplied. Item edits are blocked once any payment has been applied.
// @Tags documents
// @Accept json
// @Produce json
// @Param companyId path string true "Company ID"
// @Param documentId path string true "Document ID"
// @Param document body dto.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input or document cancelled"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document has payments applied"
// @Security BearerAuth
// @Router /companies/{companyId}/documents/{documentId} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")
	documentID := c.Param("documentId")

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), userID, companyID, documentID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update document")
		return
	}

	logger.Info("Document updated", slog.String("document_id", documentID))
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// cancelDocument godoc
// @Summary Cancel a document
// @Description Cancels an unpaid document. Cancelling an already cancelled document is a no-op.
// @Tags documents
// @Produce json
// @Param companyId path string true "Company ID"
// @Param documentId path string true "Document ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document has payments applied"
// @Security BearerAuth
// @Router /companies/{companyId}/documents/{documentId}/cancel [post]
func (h *documentHandler) cancelDocument(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")
	documentID := c.Param("documentId")

	if err := h.documentService.CancelDocument(c.Request.Context(), userID, companyID, documentID); err != nil {
		respondServiceError(c, logger, err, "Failed to cancel document")
		return
	}

	logger.Info("Document cancelled", slog.String("document_id", documentID))
	c.Status(http.StatusNoContent)
}
