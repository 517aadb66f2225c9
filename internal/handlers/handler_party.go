package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// partyHandler handles customer and vendor requests.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

func newPartyHandler(ps portssvc.PartySvcFacade) *partyHandler {
	return &partyHandler{partyService: ps}
}

func registerPartyRoutes(rg *gin.RouterGroup, partyService portssvc.PartySvcFacade) {
	h := newPartyHandler(partyService)

	parties := rg.Group("/parties")
	{
		parties.POST("", h.createParty)
		parties.GET("", h.listParties)
		parties.GET("/:partyId", h.getParty)
	}
}

// createParty godoc
// @Summary Create a customer or vendor
// @Description Creates a party and opens its receivable or payable ledger account
// @Tags parties
// @Accept json
// @Produce json
// @Param companyId path string true "Company ID"
// @Param party body dto.CreatePartyRequest true "Party details"
// @Success 201 {object} dto.PartyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /companies/{companyId}/parties [post]
func (h *partyHandler) createParty(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")

	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateParty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), userID, companyID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create party")
		return
	}

	logger.Info("Party created", slog.String("party_id", party.PartyID))
	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

// listParties godoc
// @Summary List a company's active parties
// @Tags parties
// @Produce json
// @Param companyId path string true "Company ID"
// @Param partyType query string false "Filter by party type (CUSTOMER or VENDOR)"
// @Success 200 {array} dto.PartyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /companies/{companyId}/parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")

	var params dto.ListPartiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListParties", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	parties, err := h.partyService.ListParties(c.Request.Context(), userID, companyID, params.PartyType)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list parties")
		return
	}

	responses := make([]dto.PartyResponse, len(parties))
	for i := range parties {
		responses[i] = dto.ToPartyResponse(&parties[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getParty godoc
// @Summary Get a party by ID
// @Tags parties
// @Produce json
// @Param companyId path string true "Company ID"
// @Param partyId path string true "Party ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Security BearerAuth
// @Router /companies/{companyId}/parties/{partyId} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")
	partyID := c.Param("partyId")

	party, err := h.partyService.GetPartyByID(c.Request.Context(), userID, companyID, partyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve party")
		return
	}

	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}
