package repository

import (
	"context"
	"errors"
	"fmt"

	"fuel_pump_registry/internal/config"
	"fuel_pump_registry/internal/models"
	"fuel_pump_registry/internal/repository/db"
)

var (
	// ErrPumpNotFound is returned by PumpStore implementations when the key is absent.
	ErrPumpNotFound = errors.New("fuel pump not found")
	// ErrUsernameTaken is returned when signing up an existing username.
	ErrUsernameTaken = errors.New("username already taken")
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// PumpStore is an ordered key/value map from pump id to pump.
// Insert overwrites an existing key. Values returns pumps in key order,
// but callers must not depend on that.
type PumpStore interface {
	Get(ctx context.Context, id string) (models.FuelPump, error)
	Insert(ctx context.Context, p models.FuelPump) error
	Remove(ctx context.Context, id string) error
	Values(ctx context.Context) ([]models.FuelPump, error)
}

type Repository struct {
	Pumps PumpStore
	Auth  Authorization

	close func() error
}

// Open builds the repositories for the configured storage driver.
func Open(cfg config.DBConfig) (*Repository, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		conn, err := db.InitDB(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &Repository{
			Pumps: NewPumpSQLite(conn),
			Auth:  NewUserRepository(conn),
			close: conn.Close,
		}, nil
	case config.DriverBolt:
		bdb, err := OpenBolt(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &Repository{
			Pumps: NewPumpBolt(bdb),
			Auth:  NewUserBolt(bdb),
			close: bdb.Close,
		}, nil
	case config.DriverMemory:
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// NewMemoryRepository returns a process-local repository set.
func NewMemoryRepository() *Repository {
	return &Repository{
		Pumps: NewPumpMemory(),
		Auth:  NewUserMemory(),
	}
}

// Close releases the underlying database handle, if any.
func (r *Repository) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}
