package fuel_pump_registry

import "fuel_pump_registry/internal/models"

// PumpRequest is the body of create and update calls.
type PumpRequest struct {
	PumpNumber   int     `json:"pumpNumber" binding:"required" example:"1"`
	FuelType     string  `json:"fuelType" binding:"required" example:"Regular"` // Regular | Premium | Diesel
	FuelQuantity float64 `json:"fuelQuantity" binding:"required" example:"1000"`
}

// DispenseRequest asks a pump to deliver Quantity units of fuel.
type DispenseRequest struct {
	Quantity float64 `json:"quantity" binding:"required" example:"25.5"`
}

// StatusRequest sets a pump's operational status.
type StatusRequest struct {
	Status string `json:"status" binding:"required" example:"Maintenance"` // Active | Maintenance | Out-of-Service
}

type PumpListResponse struct {
	Count int               `json:"count"`
	Pumps []models.FuelPump `json:"pumps"`
}

type TransactionListResponse struct {
	Count        int                  `json:"count"`
	Transactions []models.Transaction `json:"transactions"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
