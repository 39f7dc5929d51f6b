package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/teller_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/teller_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// transferHandler handles internal transfers between accounts.
type transferHandler struct {
	tellerService portssvc.TellerSvcFacade
}

func newTransferHandler(ts portssvc.TellerSvcFacade) *transferHandler {
	return &transferHandler{tellerService: ts}
}

// createTransfer godoc
// @Summary Transfer between two accounts
// @Description Debits the source and credits the destination. Both legs commit or neither does.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or same account"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ErrorResponse "Account inactive or insufficient funds"
// @Failure 500 {object} dto.ErrorResponse "Outcome unknown"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable, nothing recorded"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	res, err := h.tellerService.MakeInternalTransfer(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to transfer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransferResponse(res))
}
