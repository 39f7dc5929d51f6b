package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/teller_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/teller_ledger_app/internal/dto"
	"github.com/SscSPs/teller_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests related to client onboarding.
type clientHandler struct {
	tellerService portssvc.TellerSvcFacade
}

func newClientHandler(ts portssvc.TellerSvcFacade) *clientHandler {
	return &clientHandler{tellerService: ts}
}

// onboardClient godoc
// @Summary Onboard a client
// @Description Registers a client together with its first account and opening deposit
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   client body dto.OnboardClientRequest true "Client and first account details"
// @Success 201 {object} dto.OnboardClientResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role may not onboard clients"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Failed to onboard client"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) onboardClient(c *gin.Context) {
	var req dto.OnboardClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	res, err := h.tellerService.CreateClientWithFirstAccount(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to onboard client")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Client onboarded", slog.Int64("client_id", res.Client.ClientID))
	c.JSON(http.StatusCreated, dto.ToOnboardClientResponse(res))
}

// openAccount godoc
// @Summary Open an additional account
// @Description Opens another account for an existing client
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   clientID path int true "Client ID"
// @Param   account body dto.OpenAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Client not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to open account"
// @Security BearerAuth
// @Router /clients/{clientID}/accounts [post]
func (h *clientHandler) openAccount(c *gin.Context) {
	clientID, ok := idParam(c, "clientID")
	if !ok {
		return
	}
	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	account, err := h.tellerService.CreateAdditionalAccount(c.Request.Context(), clientID, req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to open account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List a client's accounts
// @Tags clients
// @Produce  json
// @Param   clientID path int true "Client ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 404 {object} dto.ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /clients/{clientID}/accounts [get]
func (h *clientHandler) listAccounts(c *gin.Context) {
	clientID, ok := idParam(c, "clientID")
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	accounts, err := h.tellerService.ListClientAccounts(c.Request.Context(), clientID, actor)
	if err != nil {
		respondWithError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}
