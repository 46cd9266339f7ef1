package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"fuel_pump_registry/internal/logger"
	"fuel_pump_registry/internal/metrics"
	"fuel_pump_registry/internal/models"
	"fuel_pump_registry/internal/repository"

	"github.com/google/uuid"
)

const maxIDLength = 128

// Operation names used in logs and metrics.
const (
	opCreate           = "create"
	opGet              = "get"
	opListAll          = "list_all"
	opUpdate           = "update"
	opDelete           = "delete"
	opDispense         = "dispense"
	opListTransactions = "list_transactions"
	opSetStatus        = "set_status"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// IDGenerator supplies fresh pump identifiers.
type IDGenerator interface {
	NewID() string
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return uuid.NewString() }

// RegistryService owns the pump map. Every operation runs under mu, so a
// read-modify-write on a pump can never interleave with another one.
type RegistryService struct {
	mu    sync.Mutex
	store repository.PumpStore
	clock Clock
	ids   IDGenerator
	log   *logger.Logger
}

func NewRegistryService(store repository.PumpStore, log *logger.Logger) *RegistryService {
	return &RegistryService{
		store: store,
		clock: systemClock{},
		ids:   uuidGenerator{},
		log:   log.Named("registry"),
	}
}

// Create validates the input and stores a new Active pump with an empty log.
func (s *RegistryService) Create(ctx context.Context, in PumpInput) (pump models.FuelPump, err error) {
	defer func() { s.observe(opCreate, pump.ID, err) }()

	fuelType, err := validateInput(in)
	if err != nil {
		return models.FuelPump{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pump = models.FuelPump{
		ID:           s.ids.NewID(),
		PumpNumber:   in.PumpNumber,
		FuelType:     fuelType,
		FuelQuantity: in.FuelQuantity,
		Status:       models.StatusActive,
		Transactions: []models.Transaction{},
		CreatedAt:    s.now(),
	}
	if err := s.store.Insert(ctx, pump); err != nil {
		return models.FuelPump{}, fmt.Errorf("%w: insert pump %q: %w", ErrStorage, pump.ID, err)
	}
	metrics.PumpAdded()
	return pump, nil
}

// Get returns the pump stored under id.
func (s *RegistryService) Get(ctx context.Context, id string) (pump models.FuelPump, err error) {
	defer func() { s.observe(opGet, id, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx, id)
}

// ListAll returns every stored pump. Order is not part of the contract.
func (s *RegistryService) ListAll(ctx context.Context) (pumps []models.FuelPump, err error) {
	defer func() { s.observe(opListAll, "", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	pumps, err = s.store.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list pumps: %w", ErrStorage, err)
	}
	if pumps == nil {
		pumps = []models.FuelPump{}
	}
	metrics.SetPumpCount(len(pumps))
	return pumps, nil
}

// Update overwrites the caller-owned fields. id, createdAt, status and the
// transaction log are left as they are.
func (s *RegistryService) Update(ctx context.Context, id string, in PumpInput) (pump models.FuelPump, err error) {
	defer func() { s.observe(opUpdate, id, err) }()

	fuelType, err := validateInput(in)
	if err != nil {
		return models.FuelPump{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx, id)
	if err != nil {
		return models.FuelPump{}, err
	}

	next := current.Clone()
	next.PumpNumber = in.PumpNumber
	next.FuelType = fuelType
	next.FuelQuantity = in.FuelQuantity
	s.touch(&next)

	return s.save(ctx, next)
}

// Delete removes the pump and returns what was stored.
func (s *RegistryService) Delete(ctx context.Context, id string) (pump models.FuelPump, err error) {
	defer func() { s.observe(opDelete, id, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	pump, err = s.load(ctx, id)
	if err != nil {
		return models.FuelPump{}, err
	}
	if err := s.store.Remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPumpNotFound) {
			return models.FuelPump{}, fmt.Errorf("%w: pump %q", ErrNotFound, id)
		}
		return models.FuelPump{}, fmt.Errorf("%w: remove pump %q: %w", ErrStorage, id, err)
	}
	metrics.PumpRemoved()
	return pump, nil
}

// Dispense removes quantity from an Active pump and appends a transaction
// attributed to principal. Guards run in order: existence, status, quantity.
func (s *RegistryService) Dispense(ctx context.Context, id string, quantity float64, principal string) (pump models.FuelPump, err error) {
	defer func() { s.observe(opDispense, id, err) }()

	if !isPositive(quantity) {
		return models.FuelPump{}, fmt.Errorf("%w: quantity must be greater than 0", ErrInvalidInput)
	}
	if strings.TrimSpace(principal) == "" {
		return models.FuelPump{}, fmt.Errorf("%w: caller identity is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx, id)
	if err != nil {
		return models.FuelPump{}, err
	}
	if current.Status != models.StatusActive {
		return models.FuelPump{}, fmt.Errorf("%w: pump %q is %s", ErrInvalidState, id, current.Status)
	}
	if current.FuelQuantity < quantity {
		return models.FuelPump{}, fmt.Errorf("%w: pump %q has %g, requested %g",
			ErrInsufficientQuantity, id, current.FuelQuantity, quantity)
	}

	next := current.Clone()
	next.FuelQuantity -= quantity
	s.touch(&next)
	next.Transactions = append(next.Transactions, models.Transaction{
		Timestamp:         *next.UpdatedAt,
		QuantityDispensed: quantity,
		User:              principal,
	})

	pump, err = s.save(ctx, next)
	if err != nil {
		return models.FuelPump{}, err
	}
	metrics.RecordDispense(string(pump.FuelType), quantity)
	if s.log != nil {
		s.log.Infow("fuel_dispensed", "pump_id", id, "quantity", quantity, "remaining", pump.FuelQuantity, "user", principal)
	}
	return pump, nil
}

// ListTransactions returns the pump's log in append order, optionally
// restricted to [From, To].
func (s *RegistryService) ListTransactions(ctx context.Context, id string, f TransactionFilter) (txs []models.Transaction, err error) {
	defer func() { s.observe(opListTransactions, id, err) }()

	from, to, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pump, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]models.Transaction, 0, len(pump.Transactions))
	for _, tx := range pump.Transactions {
		if !from.IsZero() && tx.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && tx.Timestamp.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

// SetStatus overwrites the pump's status.
func (s *RegistryService) SetStatus(ctx context.Context, id string, status string) (pump models.FuelPump, err error) {
	defer func() { s.observe(opSetStatus, id, err) }()

	st, err := models.ParsePumpStatus(status)
	if err != nil {
		return models.FuelPump{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx, id)
	if err != nil {
		return models.FuelPump{}, err
	}

	next := current.Clone()
	next.Status = st
	s.touch(&next)

	pump, err = s.save(ctx, next)
	if err != nil {
		return models.FuelPump{}, err
	}
	if s.log != nil && current.Status != st {
		s.log.Infow("pump_status_changed", "pump_id", id, "from", current.Status, "to", st)
	}
	return pump, nil
}

// ----- helpers (callers hold mu) -----

func (s *RegistryService) load(ctx context.Context, id string) (models.FuelPump, error) {
	if err := validateID(id); err != nil {
		return models.FuelPump{}, err
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPumpNotFound) {
			return models.FuelPump{}, fmt.Errorf("%w: pump %q", ErrNotFound, id)
		}
		return models.FuelPump{}, fmt.Errorf("%w: get pump %q: %w", ErrStorage, id, err)
	}
	return p, nil
}

// save writes p back; it is always the last step of a mutation.
func (s *RegistryService) save(ctx context.Context, p models.FuelPump) (models.FuelPump, error) {
	if err := s.store.Insert(ctx, p); err != nil {
		return models.FuelPump{}, fmt.Errorf("%w: write pump %q: %w", ErrStorage, p.ID, err)
	}
	return p, nil
}

// touch stamps updatedAt, never moving it backwards.
func (s *RegistryService) touch(p *models.FuelPump) {
	now := s.now()
	if p.UpdatedAt != nil && now.Before(*p.UpdatedAt) {
		now = *p.UpdatedAt
	}
	p.UpdatedAt = &now
}

func (s *RegistryService) now() time.Time {
	return s.clock.Now().UTC()
}

func (s *RegistryService) observe(op, id string, err error) {
	result := resultLabel(err)
	metrics.RecordOperation(op, result)
	if s.log == nil || err == nil {
		return
	}
	if result == metrics.ResultStorageError {
		s.log.Errorw("registry_operation_failed", "op", op, "pump_id", id, "err", err)
		return
	}
	s.log.Debugw("registry_operation_rejected", "op", op, "pump_id", id, "reason", result, "err", err)
}

// ----- validation -----

func validateID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	case strings.TrimSpace(id) != id:
		return fmt.Errorf("%w: id %q has surrounding whitespace", ErrInvalidInput, id)
	case len(id) > maxIDLength:
		return fmt.Errorf("%w: id longer than %d bytes", ErrInvalidInput, maxIDLength)
	}
	return nil
}

func validateInput(in PumpInput) (models.FuelType, error) {
	var problems []string
	if in.PumpNumber <= 0 {
		problems = append(problems, "pumpNumber must be greater than 0")
	}
	fuelType, err := models.ParseFuelType(in.FuelType)
	if err != nil {
		problems = append(problems, err.Error())
	}
	if !isPositive(in.FuelQuantity) {
		problems = append(problems, "fuelQuantity must be greater than 0")
	}
	if len(problems) > 0 {
		return "", fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return fuelType, nil
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}

var errInvalidTimeRange = fmt.Errorf("%w: from must be <= to", ErrInvalidInput)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter converts bounds to UTC and checks their order.
func normalizeAndValidateFilter(f TransactionFilter) (time.Time, time.Time, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, errInvalidTimeRange
	}
	return from, to, nil
}
