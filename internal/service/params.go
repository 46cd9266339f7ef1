package service

import "time"

// PumpInput carries the caller-owned pump fields for create and update.
type PumpInput struct {
	PumpNumber   int
	FuelType     string  // Regular | Premium | Diesel
	FuelQuantity float64 // must be > 0
}

// TransactionFilter narrows a pump's transaction log by time.
type TransactionFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
}
