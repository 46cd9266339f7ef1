package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// FuelType is the grade of fuel a pump delivers.
type FuelType string

const (
	FuelRegular FuelType = "Regular"
	FuelPremium FuelType = "Premium"
	FuelDiesel  FuelType = "Diesel"
)

// PumpStatus controls whether a pump may dispense.
type PumpStatus string

const (
	StatusActive       PumpStatus = "Active"
	StatusMaintenance  PumpStatus = "Maintenance"
	StatusOutOfService PumpStatus = "Out-of-Service"
)

var (
	ErrUnknownFuelType   = errors.New("unknown fuel type")
	ErrUnknownPumpStatus = errors.New("unknown pump status")
)

// FuelPump is a single physical pump and its dispensing history.
type FuelPump struct {
	ID           string        `json:"id"`
	PumpNumber   int           `json:"pumpNumber"`
	FuelType     FuelType      `json:"fuelType"`
	FuelQuantity float64       `json:"fuelQuantity"`
	Status       PumpStatus    `json:"status"`
	Transactions []Transaction `json:"transactions"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    *time.Time    `json:"updatedAt,omitempty"` // nil until the first mutation
}

// Transaction records one dispense. Never modified after it is appended.
type Transaction struct {
	Timestamp         time.Time `json:"timestamp"`
	QuantityDispensed float64   `json:"quantityDispensed"`
	User              string    `json:"user"`
}

// Clone returns a copy that shares no memory with p.
func (p FuelPump) Clone() FuelPump {
	out := p
	out.Transactions = slices.Clone(p.Transactions)
	if out.Transactions == nil {
		out.Transactions = []Transaction{}
	}
	if p.UpdatedAt != nil {
		ts := *p.UpdatedAt
		out.UpdatedAt = &ts
	}
	return out
}

// canonicalKey folds case and the separators people type between words,
// so "out of service", "OUT_OF_SERVICE" and "OutOfService" compare equal.
func canonicalKey(s string) string {
	r := strings.NewReplacer("-", "", "_", "", " ", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

// ParseFuelType maps user input onto the closed set of fuel types.
func ParseFuelType(s string) (FuelType, error) {
	for _, ft := range []FuelType{FuelRegular, FuelPremium, FuelDiesel} {
		if canonicalKey(s) == canonicalKey(string(ft)) {
			return ft, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be Regular, Premium or Diesel", ErrUnknownFuelType, s)
}

// ParsePumpStatus maps user input onto the closed set of pump statuses.
func ParsePumpStatus(s string) (PumpStatus, error) {
	for _, st := range []PumpStatus{StatusActive, StatusMaintenance, StatusOutOfService} {
		if canonicalKey(s) == canonicalKey(string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be Active, Maintenance or Out-of-Service", ErrUnknownPumpStatus, s)
}
