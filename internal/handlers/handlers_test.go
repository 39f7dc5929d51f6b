package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/teller_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/teller_ledger_app/internal/dto"
	"github.com/SscSPs/teller_ledger_app/internal/handlers"
	"github.com/SscSPs/teller_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TellerService ---
type MockTellerService struct {
	mock.Mock
}

func (m *MockTellerService) CreateClientWithFirstAccount(ctx context.Context, req dto.OnboardClientRequest, actor domain.Actor) (*domain.OnboardingResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OnboardingResult), args.Error(1)
}

func (m *MockTellerService) CreateAdditionalAccount(ctx context.Context, clientID int64, req dto.OpenAccountRequest, actor domain.Actor) (*domain.Account, error) {
	args := m.Called(ctx, clientID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockTellerService) MakeDeposit(ctx context.Context, accountID int64, amount decimal.Decimal, actor domain.Actor) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, amount, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTellerService) MakeWithdrawal(ctx context.Context, accountID int64, amount decimal.Decimal, actor domain.Actor) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, amount, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTellerService) MakeInternalTransfer(ctx context.Context, req dto.TransferRequest, actor domain.Actor) (*domain.TransferResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferResult), args.Error(1)
}

func (m *MockTellerService) RequestCredit(ctx context.Context, accountID int64, req dto.RequestCreditRequest, actor domain.Actor) (*domain.CreditRequest, error) {
	args := m.Called(ctx, accountID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditRequest), args.Error(1)
}

func (m *MockTellerService) GetAccount(ctx context.Context, accountID int64, actor domain.Actor) (*domain.Account, error) {
	args := m.Called(ctx, accountID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockTellerService) ListClientAccounts(ctx context.Context, clientID int64, actor domain.Actor) ([]domain.Account, error) {
	args := m.Called(ctx, clientID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockTellerService) ListAccountTransactions(ctx context.Context, accountID int64, limit int, actor domain.Actor) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, limit, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTellerService) ListAccountCreditRequests(ctx context.Context, accountID int64, actor domain.Actor) ([]domain.CreditRequest, error) {
	args := m.Called(ctx, accountID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditRequest), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TellerSvcFacade = (*MockTellerService)(nil)

// --- Test Suite ---
type TellerHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockTeller *MockTellerService
	jwtSecret  string
}

var tellerActor = domain.Actor{UserID: 7, Role: domain.RoleTeller}

func decimalEq(want string) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString(want))
	})
}

// generateTestToken creates a signed staff JWT for testing.
func (suite *TellerHandlerTestSuite) generateTestToken(userID int64, role domain.Role) string {
	claims := middleware.StaffClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "teller-test",
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TellerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockTeller = new(MockTellerService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterTellerRoutes(v1, suite.mockTeller)
}

func (suite *TellerHandlerTestSuite) do(method, url string, body any, role domain.Role) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(tellerActor.UserID, role))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TellerHandlerTestSuite) errorBody(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var body dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- Test Cases ---

func (suite *TellerHandlerTestSuite) TestOnboardClient_Created() {
	req := dto.OnboardClientRequest{
		FirstName: "Ana", LastName: "Pérez", Email: "ana@example.com", Phone: "555",
		AccountKind: "CHECKING", OpeningBalance: decimal.NewFromInt(100),
	}
	result := &domain.OnboardingResult{
		Client:  domain.Client{ClientID: 1, Email: "ana@example.com"},
		Account: domain.Account{AccountID: 42, ClientID: 1, Kind: domain.Checking, Balance: decimal.NewFromInt(100), Status: domain.AccountActive},
	}
	suite.mockTeller.On("CreateClientWithFirstAccount", mock.Anything,
		mock.MatchedBy(func(r dto.OnboardClientRequest) bool { return r.Email == req.Email }),
		tellerActor).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/clients", req, domain.RoleTeller)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.OnboardClientResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(int64(1), body.ClientID)
	suite.Equal(int64(42), body.Account.AccountID)
	suite.mockTeller.AssertExpectations(suite.T())
}

func (suite *TellerHandlerTestSuite) TestOnboardClient_DuplicateEmail() {
	suite.mockTeller.On("CreateClientWithFirstAccount", mock.Anything, mock.Anything, tellerActor).
		Return(nil, apperrors.ErrDuplicateEmail).Once()

	w := suite.do(http.MethodPost, "/api/v1/clients", dto.OnboardClientRequest{
		FirstName: "A", LastName: "B", Email: "a@b.co", Phone: "1", AccountKind: "CHECKING", OpeningBalance: decimal.NewFromInt(1),
	}, domain.RoleTeller)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(apperrors.KindDuplicateEmail, suite.errorBody(w).Kind)
}

func (suite *TellerHandlerTestSuite) TestOnboardClient_MissingFieldsRejectedByBinding() {
	w := suite.do(http.MethodPost, "/api/v1/clients", map[string]any{"firstName": "A"}, domain.RoleTeller)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(apperrors.KindValidation, suite.errorBody(w).Kind)
	suite.mockTeller.AssertNotCalled(suite.T(), "CreateClientWithFirstAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TellerHandlerTestSuite) TestDeposit_Created() {
	txn := &domain.Transaction{TransactionID: uuid.NewString(), AccountID: 42, Amount: decimal.RequireFromString("50.25"), CreatedAt: time.Now()}
	suite.mockTeller.On("MakeDeposit", mock.Anything, int64(42), decimalEq("50.25"), tellerActor).Return(txn, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/42/deposits", map[string]any{"amount": "50.25"}, domain.RoleTeller)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(txn.TransactionID, body.TransactionID)
	suite.True(decimal.RequireFromString("50.25").Equal(body.Amount))
	suite.mockTeller.AssertExpectations(suite.T())
}

func (suite *TellerHandlerTestSuite) TestDeposit_BadAccountID() {
	w := suite.do(http.MethodPost, "/api/v1/accounts/abc/deposits", map[string]any{"amount": "1"}, domain.RoleTeller)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTeller.AssertNotCalled(suite.T(), "MakeDeposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TellerHandlerTestSuite) TestWithdrawal_ErrorKinds() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{name: "insufficient funds", err: fmt.Errorf("%w: account 42", apperrors.ErrInsufficientFunds), wantStatus: http.StatusUnprocessableEntity, wantKind: apperrors.KindInsufficientFunds},
		{name: "inactive", err: apperrors.ErrInactiveAccount, wantStatus: http.StatusUnprocessableEntity, wantKind: apperrors.KindInactiveAccount},
		{name: "not found", err: apperrors.ErrNotFound, wantStatus: http.StatusNotFound, wantKind: apperrors.KindNotFound},
		{name: "validation", err: fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation), wantStatus: http.StatusBadRequest, wantKind: apperrors.KindValidation},
		{name: "store down", err: fmt.Errorf("%w: connection refused", apperrors.ErrStore), wantStatus: http.StatusServiceUnavailable, wantKind: apperrors.KindStore},
		{name: "uncertain", err: apperrors.ErrOutcomeUncertain, wantStatus: http.StatusInternalServerError, wantKind: apperrors.KindOutcomeUncertain},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockTeller.On("MakeWithdrawal", mock.Anything, int64(42), decimalEq("10"), tellerActor).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/accounts/42/withdrawals", map[string]any{"amount": 10}, domain.RoleTeller)

			suite.Equal(tt.wantStatus, w.Code)
			suite.Equal(tt.wantKind, suite.errorBody(w).Kind)
		})
	}
}

func (suite *TellerHandlerTestSuite) TestStoreFailureHidesCause() {
	suite.mockTeller.On("MakeWithdrawal", mock.Anything, int64(42), mock.Anything, tellerActor).
		Return(nil, fmt.Errorf("%w: dial tcp 10.0.0.5:5432", apperrors.ErrStore)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/42/withdrawals", map[string]any{"amount": 10}, domain.RoleTeller)

	suite.NotContains(w.Body.String(), "10.0.0.5")
}

func (suite *TellerHandlerTestSuite) TestTransfer() {
	result := &domain.TransferResult{
		TransferID: uuid.NewString(),
		Debit:      domain.Transaction{AccountID: 42, Amount: decimal.NewFromInt(-200)},
		Credit:     domain.Transaction{AccountID: 43, Amount: decimal.NewFromInt(200)},
	}
	suite.mockTeller.On("MakeInternalTransfer", mock.Anything,
		mock.MatchedBy(func(r dto.TransferRequest) bool {
			return r.FromAccountID == 42 && r.ToAccountID == 43 && r.Amount.Equal(decimal.NewFromInt(200))
		}), tellerActor).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transfers", map[string]any{"fromAccountID": 42, "toAccountID": 43, "amount": "200"}, domain.RoleTeller)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(result.TransferID, body.TransferID)
	suite.Equal(int64(43), body.Credit.AccountID)
}

func (suite *TellerHandlerTestSuite) TestTransfer_SameAccount() {
	suite.mockTeller.On("MakeInternalTransfer", mock.Anything, mock.Anything, tellerActor).
		Return(nil, apperrors.ErrSameAccount).Once()

	w := suite.do(http.MethodPost, "/api/v1/transfers", map[string]any{"fromAccountID": 42, "toAccountID": 42, "amount": "1"}, domain.RoleTeller)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(apperrors.KindSameAccount, suite.errorBody(w).Kind)
}

func (suite *TellerHandlerTestSuite) TestRequestCredit_LimitExceeded() {
	suite.mockTeller.On("RequestCredit", mock.Anything, int64(42), mock.Anything, tellerActor).
		Return(nil, apperrors.ErrCreditLimitExceeded).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/42/credit-requests",
		map[string]any{"principal": "1000", "annualRate": "12", "termMonths": 24}, domain.RoleTeller)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal(apperrors.KindCreditLimitExceeded, suite.errorBody(w).Kind)
}

func (suite *TellerHandlerTestSuite) TestListTransactions_Limit() {
	auditor := domain.Actor{UserID: tellerActor.UserID, Role: domain.RoleAuditor}
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), AccountID: 42, Amount: decimal.NewFromInt(5)},
		{TransactionID: uuid.NewString(), AccountID: 42, Amount: decimal.NewFromInt(100)},
	}
	suite.mockTeller.On("ListAccountTransactions", mock.Anything, int64(42), 10, auditor).Return(txns, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/42/transactions?limit=10", nil, domain.RoleAuditor)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Transactions, 2)
	suite.Equal(txns[0].TransactionID, body.Transactions[0].TransactionID)
}

func (suite *TellerHandlerTestSuite) TestListTransactions_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/42/transactions?limit=5000", nil, domain.RoleAuditor)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TellerHandlerTestSuite) TestAuditorCannotMoveMoney() {
	w := suite.do(http.MethodPost, "/api/v1/accounts/42/deposits", map[string]any{"amount": "1"}, domain.RoleAuditor)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockTeller.AssertNotCalled(suite.T(), "MakeDeposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TellerHandlerTestSuite) TestMissingToken() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/42", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TellerHandlerTestSuite) TestUnknownRoleInToken() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/42", nil, domain.Role("JANITOR"))
	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestTellerHandler(t *testing.T) {
	suite.Run(t, new(TellerHandlerTestSuite))
}
