package handlers

import (
	"context"
	"net/http"

	"fuel_pump_registry/internal/models"
	"fuel_pump_registry/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID       int
	signUpErr      error
	genTokenToken  string
	genTokenErr    error
	parsePrincipal models.Principal
	parseErr       error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (models.Principal, error) {
	m.lastParseToken = token
	return m.parsePrincipal, m.parseErr
}

// mockRegistry returns canned values and records the arguments it was called with.
type mockRegistry struct {
	pump  models.FuelPump
	pumps []models.FuelPump
	txs   []models.Transaction
	err   error

	lastID        string
	lastInput     service.PumpInput
	lastQuantity  float64
	lastPrincipal string
	lastFilter    service.TransactionFilter
	lastStatus    string
	calls         []string
}

func (m *mockRegistry) Create(ctx context.Context, in service.PumpInput) (models.FuelPump, error) {
	m.calls = append(m.calls, "create")
	m.lastInput = in
	return m.pump, m.err
}
func (m *mockRegistry) Get(ctx context.Context, id string) (models.FuelPump, error) {
	m.calls = append(m.calls, "get")
	m.lastID = id
	return m.pump, m.err
}
func (m *mockRegistry) ListAll(ctx context.Context) ([]models.FuelPump, error) {
	m.calls = append(m.calls, "list_all")
	return m.pumps, m.err
}
func (m *mockRegistry) Update(ctx context.Context, id string, in service.PumpInput) (models.FuelPump, error) {
	m.calls = append(m.calls, "update")
	m.lastID = id
	m.lastInput = in
	return m.pump, m.err
}
func (m *mockRegistry) Delete(ctx context.Context, id string) (models.FuelPump, error) {
	m.calls = append(m.calls, "delete")
	m.lastID = id
	return m.pump, m.err
}
func (m *mockRegistry) Dispense(ctx context.Context, id string, quantity float64, principal string) (models.FuelPump, error) {
	m.calls = append(m.calls, "dispense")
	m.lastID = id
	m.lastQuantity = quantity
	m.lastPrincipal = principal
	return m.pump, m.err
}
func (m *mockRegistry) ListTransactions(ctx context.Context, id string, f service.TransactionFilter) ([]models.Transaction, error) {
	m.calls = append(m.calls, "list_transactions")
	m.lastID = id
	m.lastFilter = f
	return m.txs, m.err
}
func (m *mockRegistry) SetStatus(ctx context.Context, id string, status string) (models.FuelPump, error) {
	m.calls = append(m.calls, "set_status")
	m.lastID = id
	m.lastStatus = status
	return m.pump, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, StreamConfig{})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
