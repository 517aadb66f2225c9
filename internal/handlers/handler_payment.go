package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles payment recording and re-allocation requests.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:paymentId", h.getPayment)
		payments.PUT("/:paymentId", h.updatePayment)
	}
}

// createPayment godoc
// @Summary Record a payment
// @Description Records a payment and applies it to the party's open documents. With no selections the amount spreads oldest first; selections are applied all-or-nothing. ADVANCE mode books the whole amount to the party advance.
// @Tags payments
// @Accept json
// @Produce json
// @Param companyId path string true "Company ID"
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input or rejected allocation batch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Party or deposit account not found"
// @Failure 409 {object} map[string]string "Document balance changed concurrently"
// @Security BearerAuth
// @Router /companies/{companyId}/payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), userID, companyID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.Int("allocations", len(payment.Allocations)))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List a company's payments
// @Description Returns a keyset-paginated page, newest first
// @Tags payments
// @Produce json
// @Param companyId path string true "Company ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /companies/{companyId}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	payments, nextToken, err := h.paymentService.ListPayments(c.Request.Context(), userID, companyID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list payments")
		return
	}

	responses := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = dto.ToPaymentResponse(&payments[i])
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: responses, NextToken: nextToken})
}

// getPayment godoc
// @Summary Get a payment with its allocations
// @Tags payments
// @Produce json
// @Param companyId path string true "Company ID"
// @Param paymentId path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /companies/{companyId}/payments/{paymentId} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")
	paymentID := c.Param("paymentId")

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), userID, companyID, paymentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// updatePayment godoc
// @Summary Update a payment
// @Description Patches metadata, or rebuilds the allocation set when selections are supplied. Re-allocation reverses the old document effects and applies the new ones atomically; posted ledger entries are untouched.
// @Tags payments
// @Accept json
// @Produce json
// @Param companyId path string true "Company ID"
// @Param paymentId path string true "Payment ID"
// @Param payment body dto.UpdatePaymentRequest true "Fields to update"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input or rejected allocation batch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Document balance changed concurrently"
// @Security BearerAuth
// @Router /companies/{companyId}/payments/{paymentId} [put]
func (h *paymentHandler) updatePayment(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")
	paymentID := c.Param("paymentId")

	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), userID, companyID, paymentID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update payment")
		return
	}

	logger.Info("Payment updated", slog.String("payment_id", paymentID))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}
