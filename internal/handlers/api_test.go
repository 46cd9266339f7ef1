package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fuel_pump_registry/internal/logger"
	"fuel_pump_registry/internal/models"
	"fuel_pump_registry/internal/repository"
	"fuel_pump_registry/internal/service"

	"github.com/gin-gonic/gin"
)

// Exercises the real services behind the router on the memory store.
func TestAPI_SignInCreateDispense(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repos := repository.NewMemoryRepository()
	services := service.NewService(repos, service.AuthConfig{SigningKey: []byte("k"), TokenTTL: time.Hour}, logger.NewNop())
	r := NewHandler(services, logger.NewNop(), StreamConfig{}).InitRoutes()

	call := func(method, path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := call(http.MethodPost, "/auth/sign-up", "", `{"username":"alice","password":"pw"}`); w.Code != http.StatusOK {
		t.Fatalf("sign-up status=%d body=%s", w.Code, w.Body.String())
	}
	if w := call(http.MethodPost, "/auth/sign-up", "", `{"username":"alice","password":"pw"}`); w.Code != http.StatusConflict {
		t.Fatalf("duplicate sign-up status=%d", w.Code)
	}
	w := call(http.MethodPost, "/auth/sign-in", "", `{"username":"alice","password":"pw"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("sign-in status=%d body=%s", w.Code, w.Body.String())
	}
	var tok struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &tok)

	w = call(http.MethodPost, "/api/v1/pumps", tok.Token, `{"pumpNumber":1,"fuelType":"Regular","fuelQuantity":100}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	var p models.FuelPump
	_ = json.Unmarshal(w.Body.Bytes(), &p)

	w = call(http.MethodPost, "/api/v1/pumps/"+p.ID+"/dispense", tok.Token, `{"quantity":30}`)
	if w.Code != http.StatusOK {
		t.Fatalf("dispense status=%d body=%s", w.Code, w.Body.String())
	}
	w = call(http.MethodPost, "/api/v1/pumps/"+p.ID+"/dispense", tok.Token, `{"quantity":80}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("overdraw status=%d", w.Code)
	}
	w = call(http.MethodPut, "/api/v1/pumps/"+p.ID+"/status", tok.Token, `{"status":"Maintenance"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("set status=%d body=%s", w.Code, w.Body.String())
	}
	w = call(http.MethodPost, "/api/v1/pumps/"+p.ID+"/dispense", tok.Token, `{"quantity":10}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("dispense on Maintenance status=%d", w.Code)
	}

	w = call(http.MethodGet, "/api/v1/pumps/"+p.ID+"/transactions", tok.Token, "")
	var out struct {
		Count        int                  `json:"count"`
		Transactions []models.Transaction `json:"transactions"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 1 || out.Transactions[0].User != "alice" || out.Transactions[0].QuantityDispensed != 30 {
		t.Fatalf("unexpected transactions %+v", out)
	}

	if w := call(http.MethodDelete, "/api/v1/pumps/"+p.ID, tok.Token, ""); w.Code != http.StatusOK {
		t.Fatalf("delete status=%d", w.Code)
	}
	if w := call(http.MethodGet, "/api/v1/pumps/"+p.ID, tok.Token, ""); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status=%d", w.Code)
	}
}
