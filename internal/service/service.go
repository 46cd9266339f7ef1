package service

import (
	"context"

	"fuel_pump_registry/internal/logger"
	"fuel_pump_registry/internal/models"
	"fuel_pump_registry/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (models.Principal, error)
}

// Registry is the fuel pump registry: CRUD, dispensing and status control.
type Registry interface {
	Create(ctx context.Context, in PumpInput) (models.FuelPump, error)
	Get(ctx context.Context, id string) (models.FuelPump, error)
	ListAll(ctx context.Context) ([]models.FuelPump, error)
	Update(ctx context.Context, id string, in PumpInput) (models.FuelPump, error)
	Delete(ctx context.Context, id string) (models.FuelPump, error)
	Dispense(ctx context.Context, id string, quantity float64, principal string) (models.FuelPump, error)
	ListTransactions(ctx context.Context, id string, f TransactionFilter) ([]models.Transaction, error)
	SetStatus(ctx context.Context, id string, status string) (models.FuelPump, error)
}

// Service aggregates all sub-services.
type Service struct {
	Registry
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, auth AuthConfig, log *logger.Logger) *Service {
	return &Service{
		Registry:      NewRegistryService(repos.Pumps, log),
		Authorization: NewAuthService(repos.Auth, auth),
	}
}
