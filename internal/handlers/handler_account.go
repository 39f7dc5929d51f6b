package handlers

import (
	"context"
	"net/http"

	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/teller_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/teller_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// accountHandler handles HTTP requests on a single account.
type accountHandler struct {
	tellerService portssvc.TellerSvcFacade
}

func newAccountHandler(ts portssvc.TellerSvcFacade) *accountHandler {
	return &accountHandler{tellerService: ts}
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	accountID, ok := idParam(c, "accountID")
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	account, err := h.tellerService.GetAccount(c.Request.Context(), accountID, actor)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listTransactions godoc
// @Summary List transactions for an account
// @Description Newest first
// @Tags accounts
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Param   limit query int false "Maximum number of transactions" default(50)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	accountID, ok := idParam(c, "accountID")
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	txns, err := h.tellerService.ListAccountTransactions(c.Request.Context(), accountID, params.Limit, actor)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}
	res := dto.ListTransactionsResponse{Transactions: make([]dto.TransactionResponse, len(txns))}
	for i := range txns {
		res.Transactions[i] = dto.ToTransactionResponse(&txns[i])
	}
	c.JSON(http.StatusOK, res)
}

// deposit godoc
// @Summary Deposit into an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Param   deposit body dto.AmountRequest true "Amount"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ErrorResponse "Account inactive"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable, nothing recorded"
// @Security BearerAuth
// @Router /accounts/{accountID}/deposits [post]
func (h *accountHandler) deposit(c *gin.Context) {
	h.moveMoney(c, h.tellerService.MakeDeposit, "Failed to record deposit")
}

// withdraw godoc
// @Summary Withdraw from an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Param   withdrawal body dto.AmountRequest true "Amount"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ErrorResponse "Account inactive or insufficient funds"
// @Security BearerAuth
// @Router /accounts/{accountID}/withdrawals [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	h.moveMoney(c, h.tellerService.MakeWithdrawal, "Failed to record withdrawal")
}

// moneyOp is the shape shared by MakeDeposit and MakeWithdrawal.
type moneyOp func(ctx context.Context, accountID int64, amount decimal.Decimal, actor domain.Actor) (*domain.Transaction, error)

func (h *accountHandler) moveMoney(c *gin.Context, op moneyOp, failMsg string) {
	accountID, ok := idParam(c, "accountID")
	if !ok {
		return
	}
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	txn, err := op(c.Request.Context(), accountID, req.Amount, actor)
	if err != nil {
		respondWithError(c, err, failMsg)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// requestCredit godoc
// @Summary Request credit against an account
// @Description Records a PENDING_APPROVAL credit request. Balances are not touched.
// @Tags credit
// @Accept  json
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Param   credit body dto.RequestCreditRequest true "Credit terms"
// @Success 201 {object} dto.CreditRequestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid terms"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ErrorResponse "Account inactive or credit limit exceeded"
// @Security BearerAuth
// @Router /accounts/{accountID}/credit-requests [post]
func (h *accountHandler) requestCredit(c *gin.Context) {
	accountID, ok := idParam(c, "accountID")
	if !ok {
		return
	}
	var req dto.RequestCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	credit, err := h.tellerService.RequestCredit(c.Request.Context(), accountID, req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to request credit")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCreditRequestResponse(credit))
}

// listCreditRequests godoc
// @Summary List credit requests for an account
// @Tags credit
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Success 200 {object} dto.ListCreditRequestsResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/credit-requests [get]
func (h *accountHandler) listCreditRequests(c *gin.Context) {
	accountID, ok := idParam(c, "accountID")
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	credits, err := h.tellerService.ListAccountCreditRequests(c.Request.Context(), accountID, actor)
	if err != nil {
		respondWithError(c, err, "Failed to list credit requests")
		return
	}
	res := dto.ListCreditRequestsResponse{CreditRequests: make([]dto.CreditRequestResponse, len(credits))}
	for i := range credits {
		res.CreditRequests[i] = dto.ToCreditRequestResponse(&credits[i])
	}
	c.JSON(http.StatusOK, res)
}
