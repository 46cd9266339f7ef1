package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fuel_pump_registry/internal/models"
)

type PumpSQLite struct {
	db *sql.DB
}

func NewPumpSQLite(db *sql.DB) *PumpSQLite {
	return &PumpSQLite{db: db}
}

// Ensure implementation of PumpStore interface at compile time.
var _ PumpStore = (*PumpSQLite)(nil)

const (
	upsertPumpSQL = `
		INSERT INTO fuel_pumps (id, pump_number, fuel_type, fuel_quantity, status, transactions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			pump_number=excluded.pump_number,
			fuel_type=excluded.fuel_type,
			fuel_quantity=excluded.fuel_quantity,
			status=excluded.status,
			transactions=excluded.transactions,
			updated_at=excluded.updated_at
	`

	selectPumpColumns = `SELECT id, pump_number, fuel_type, fuel_quantity, status, transactions, created_at, updated_at FROM fuel_pumps`

	selectPumpByIDSQL = selectPumpColumns + ` WHERE id = ?`
	selectPumpsSQL    = selectPumpColumns + ` ORDER BY id ASC`
	deletePumpSQL     = `DELETE FROM fuel_pumps WHERE id = ?`
)

// marshalTransactions converts the log to a JSON array; nil becomes "[]".
func marshalTransactions(txs []models.Transaction) (string, error) {
	if txs == nil {
		txs = []models.Transaction{}
	}
	b, err := json.Marshal(txs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalTransactions parses the JSON column, never returning nil.
func unmarshalTransactions(s string) ([]models.Transaction, error) {
	out := []models.Transaction{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Transaction{}
	}
	return out, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPump(row rowScanner) (models.FuelPump, error) {
	var (
		p         models.FuelPump
		fuelType  string
		status    string
		txJSON    string
		updatedAt sql.NullTime
	)
	if err := row.Scan(
		&p.ID,
		&p.PumpNumber,
		&fuelType,
		&p.FuelQuantity,
		&status,
		&txJSON,
		&p.CreatedAt,
		&updatedAt,
	); err != nil {
		return models.FuelPump{}, err
	}

	txs, err := unmarshalTransactions(txJSON)
	if err != nil {
		return models.FuelPump{}, fmt.Errorf("decode transactions of pump %q: %w", p.ID, err)
	}
	p.Transactions = txs
	p.FuelType = models.FuelType(fuelType)
	p.Status = models.PumpStatus(status)
	p.CreatedAt = p.CreatedAt.UTC()
	if updatedAt.Valid {
		ts := updatedAt.Time.UTC()
		p.UpdatedAt = &ts
	}
	return p, nil
}

// Get fetches one pump by id.
func (r *PumpSQLite) Get(ctx context.Context, id string) (models.FuelPump, error) {
	p, err := scanPump(r.db.QueryRowContext(ctx, selectPumpByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FuelPump{}, ErrPumpNotFound
		}
		return models.FuelPump{}, fmt.Errorf("select pump %q: %w", id, err)
	}
	return p, nil
}

// Insert upserts the pump row. Timestamps are always persisted as UTC.
func (r *PumpSQLite) Insert(ctx context.Context, p models.FuelPump) error {
	txJSON, err := marshalTransactions(p.Transactions)
	if err != nil {
		return fmt.Errorf("encode transactions of pump %q: %w", p.ID, err)
	}

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var updatedAt any
	if p.UpdatedAt != nil {
		updatedAt = p.UpdatedAt.UTC()
	}

	_, err = r.db.ExecContext(ctx, upsertPumpSQL,
		p.ID,
		p.PumpNumber,
		string(p.FuelType),
		p.FuelQuantity,
		string(p.Status),
		txJSON,
		createdAt.UTC(),
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert pump %q: %w", p.ID, err)
	}
	return nil
}

// Remove deletes the pump row; ErrPumpNotFound when nothing was deleted.
func (r *PumpSQLite) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deletePumpSQL, id)
	if err != nil {
		return fmt.Errorf("delete pump %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for pump %q: %w", id, err)
	}
	if n == 0 {
		return ErrPumpNotFound
	}
	return nil
}

// Values returns every pump ordered by id.
func (r *PumpSQLite) Values(ctx context.Context) ([]models.FuelPump, error) {
	rows, err := r.db.QueryContext(ctx, selectPumpsSQL)
	if err != nil {
		return nil, fmt.Errorf("select pumps: %w", err)
	}
	defer rows.Close()

	out := make([]models.FuelPump, 0, 16)
	for rows.Next() {
		p, err := scanPump(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
