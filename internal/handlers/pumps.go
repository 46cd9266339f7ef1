package handlers

import (
	"errors"
	"net/http"
	"time"

	fuelpump "fuel_pump_registry"
	"fuel_pump_registry/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errInvalidBodyPref = "invalid body: "
	errUnauthenticated = "caller identity missing"
	errInternal        = "internal error"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, fuelpump.ErrorResponse{Error: userMsg})
}

// httpStatusFor maps registry error kinds onto HTTP status codes.
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrInsufficientQuantity):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondRegistryError writes the mapped status. Client errors carry the
// error text; server errors are logged and hidden.
func (h *Handler) respondRegistryError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code := httpStatusFor(err)
	if code == http.StatusInternalServerError {
		h.logAndJSONError(c, code, errInternal, logKey, err, kv...)
		return
	}
	c.JSON(code, fuelpump.ErrorResponse{Error: err.Error()})
}

func (h *Handler) bindOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, fuelpump.ErrorResponse{Error: errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

func toInput(req fuelpump.PumpRequest) service.PumpInput {
	return service.PumpInput{
		PumpNumber:   req.PumpNumber,
		FuelType:     req.FuelType,
		FuelQuantity: req.FuelQuantity,
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Create pump
// @Description  New pumps start Active with an empty transaction log.
// @Tags         pumps
// @Accept       json
// @Produce      json
// @Param        body  body      fuelpump.PumpRequest  true  "Pump payload"
// @Success      201   {object}  models.FuelPump
// @Failure      400   {object}  fuelpump.ErrorResponse
// @Failure      401   {object}  fuelpump.ErrorResponse
// @Failure      500   {object}  fuelpump.ErrorResponse
// @Router       /api/v1/pumps [post]
// @Security     BearerAuth
func (h *Handler) createPump(c *gin.Context) {
	var req fuelpump.PumpRequest
	if !h.bindOrBadRequest(c, &req) {
		return
	}
	p, err := h.services.Registry.Create(c.Request.Context(), toInput(req))
	if err != nil {
		h.respondRegistryError(c, "pump_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary      List pumps
// @Tags         pumps
// @Produce      json
// @Success      200  {object}  fuelpump.PumpListResponse
// @Failure      401  {object}  fuelpump.ErrorResponse
// @Failure      500  {object}  fuelpump.ErrorResponse
// @Router       /api/v1/pumps [get]
// @Security     BearerAuth
func (h *Handler) listPumps(c *gin.Context) {
	pumps, err := h.services.Registry.ListAll(c.Request.Context())
	if err != nil {
		h.respondRegistryError(c, "pump_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, fuelpump.PumpListResponse{Count: len(pumps), Pumps: pumps})
}

// @Summary      Get pump
// @Tags         pumps
// @Produce      json
// @Param        id   path      string  true  "Pump id"
// @Success      200  {object}  models.FuelPump
// @Failure      400  {object}  fuelpump.ErrorResponse
// @Failure      401  {object}  fuelpump.ErrorResponse
// @Failure      404  {object}  fuelpump.ErrorResponse
// @Router       /api/v1/pumps/{id} [get]
// @Security     BearerAuth
func (h *Handler) getPump(c *gin.Context) {
	id := c.Param("id")
	p, err := h.services.Registry.Get(c.Request.Context(), id)
	if err != nil {
		h.respondRegistryError(c, "pump_get_failed", err, "pump_id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Update pump
// @Description  Overwrites pumpNumber, fuelType and fuelQuantity. Status and transactions are kept.
// @Tags         pumps
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Pump id"
// @Param        body  body      fuelpump.PumpRequest  true  "Pump payload"
// @Success      200   {object}  models.FuelPump
// @Failure      400   {object}  fuelpump.ErrorResponse
// @Failure      401   {object}  fuelpump.ErrorResponse
// @Failure      404   {object}  fuelpump.ErrorResponse
// @Router       /api/v1/pumps/{id} [put]
// @Security     BearerAuth
func (h *Handler) updatePump(c *gin.Context) {
	var req fuelpump.PumpRequest
	if !h.bindOrBadRequest(c, &req) {
		return
	}
	id := c.Param("id")
	p, err := h.services.Registry.Update(c.Request.Context(), id, toInput(req))
	if err != nil {
		h.respondRegistryError(c, "pump_update_failed", err, "pump_id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Delete pump
// @Tags         pumps
// @Produce      json
// @Param        id   path      string  true  "Pump id"
// @Success      200  {object}  models.FuelPump  "the removed pump"
// @Failure      401  {object}  fuelpump.ErrorResponse
// @Failure      404  {object}  fuelpump.ErrorResponse
// @Router       /api/v1/pumps/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deletePump(c *gin.Context) {
	id := c.Param("id")
	p, err := h.services.Registry.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondRegistryError(c, "pump_delete_failed", err, "pump_id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Dispense fuel
// @Description  Only Active pumps dispense. The transaction is attributed to the token's user.
// @Tags         pumps
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Pump id"
// @Param        body  body      fuelpump.DispenseRequest  true  "Quantity"
// @Success      200   {object}  models.FuelPump
// @Failure      400   {object}  fuelpump.ErrorResponse
// @Failure      401   {object}  fuelpump.ErrorResponse
// @Failure      404   {object}  fuelpump.ErrorResponse
// @Failure      409   {object}  fuelpump.ErrorResponse  "pump not Active or not enough fuel"
// @Router       /api/v1/pumps/{id}/dispense [post]
// @Security     BearerAuth
func (h *Handler) dispense(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fuelpump.ErrorResponse{Error: errUnauthenticated})
		return
	}
	var req fuelpump.DispenseRequest
	if !h.bindOrBadRequest(c, &req) {
		return
	}
	id := c.Param("id")
	p, err := h.services.Registry.Dispense(c.Request.Context(), id, req.Quantity, principal.Name())
	if err != nil {
		h.respondRegistryError(c, "pump_dispense_failed", err, "pump_id", id, "quantity", req.Quantity)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      List transactions
// @Description  Dispense history in append order. 'from'/'to' accept RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'; a date-only 'to' covers the whole day.
// @Tags         pumps
// @Produce      json
// @Param        id    path      string  true   "Pump id"
// @Param        from  query     string  false  "Start of range"  example(2025-08-01)
// @Param        to    query     string  false  "End of range"    example(2025-08-31)
// @Success      200   {object}  fuelpump.TransactionListResponse
// @Failure      400   {object}  fuelpump.ErrorResponse
// @Failure      401   {object}  fuelpump.ErrorResponse
// @Failure      404   {object}  fuelpump.ErrorResponse
// @Router       /api/v1/pumps/{id}/transactions [get]
// @Security     BearerAuth
func (h *Handler) listTransactions(c *gin.Context) {
	var (
		from time.Time
		to   time.Time
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, fuelpump.ErrorResponse{Error: errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, fuelpump.ErrorResponse{Error: errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	id := c.Param("id")
	txs, err := h.services.Registry.ListTransactions(c.Request.Context(), id, service.TransactionFilter{From: from, To: to})
	if err != nil {
		h.respondRegistryError(c, "pump_transactions_failed", err, "pump_id", id)
		return
	}
	c.JSON(http.StatusOK, fuelpump.TransactionListResponse{Count: len(txs), Transactions: txs})
}

// @Summary      Set pump status
// @Tags         pumps
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Pump id"
// @Param        body  body      fuelpump.StatusRequest  true  "Status payload"
// @Success      200   {object}  models.FuelPump
// @Failure      400   {object}  fuelpump.ErrorResponse
// @Failure      401   {object}  fuelpump.ErrorResponse
// @Failure      404   {object}  fuelpump.ErrorResponse
// @Router       /api/v1/pumps/{id}/status [put]
// @Security     BearerAuth
func (h *Handler) setStatus(c *gin.Context) {
	var req fuelpump.StatusRequest
	if !h.bindOrBadRequest(c, &req) {
		return
	}
	id := c.Param("id")
	p, err := h.services.Registry.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondRegistryError(c, "pump_set_status_failed", err, "pump_id", id, "status", req.Status)
		return
	}
	c.JSON(http.StatusOK, p)
}
