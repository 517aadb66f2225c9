package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler handles ledger account requests.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{accountService: as, ledgerService: ls}
}

// registerAccountRoutes registers account and statement routes under a company.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(accountService, ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountId", h.getAccount)
		accounts.GET("/:accountId/ledger", h.getLedger)
	}
}

// createAccount godoc
// @Summary Create a ledger account
// @Tags accounts
// @Accept json
// @Produce json
// @Param companyId path string true "Company ID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /companies/{companyId}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, companyID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List a company's active accounts
// @Tags accounts
// @Produce json
// @Param companyId path string true "Company ID"
// @Success 200 {array} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /companies/{companyId}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID, companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list accounts")
		return
	}

	responses := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = dto.ToAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce json
// @Param companyId path string true "Company ID"
// @Param accountId path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /companies/{companyId}/accounts/{accountId} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")
	accountID := c.Param("accountId")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), userID, companyID, accountID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getLedger godoc
// @Summary Get an account statement
// @Description Returns the account's entries for [from, to) with read-time running balances
// @Tags accounts
// @Produce json
// @Param companyId path string true "Company ID"
// @Param accountId path string true "Account ID"
// @Param from query string true "Period start (inclusive), YYYY-MM-DD"
// @Param to query string true "Period end (exclusive), YYYY-MM-DD"
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /companies/{companyId}/accounts/{accountId}/ledger [get]
func (h *accountHandler) getLedger(c *gin.Context) {
	logger, userID, ok := requestScope(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")
	accountID := c.Param("accountId")

	var params dto.LedgerQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for GetLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	statement, err := h.ledgerService.GetAccountStatement(c.Request.Context(), userID, companyID, accountID, params.From, params.To)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build account statement")
		return
	}

	c.JSON(http.StatusOK, statement)
}
