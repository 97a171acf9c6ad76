package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/siddhantjain/macro-tracker/internal/model"
	"github.com/siddhantjain/macro-tracker/internal/store"
	"github.com/siddhantjain/macro-tracker/internal/tracker"
)

type emptyProvider struct{}

func (emptyProvider) Name() string { return "empty" }

func (emptyProvider) Search(context.Context, string, int) ([]model.NutritionInfo, error) {
	return nil, nil
}

func (emptyProvider) GetByID(context.Context, string) (*model.NutritionInfo, error) {
	return nil, fmt.Errorf("not found")
}

func newTestServer(t *testing.T, token string) (*Server, *tracker.Tracker) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := store.New(t.TempDir(), time.UTC)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	tr := tracker.New(emptyProvider{}, s)
	return New(tr, token), tr
}

func floatPtr(v float64) *float64 { return &v }

func TestSummaryEndpoint(t *testing.T) {
	t.Parallel()

	srv, tr := newTestServer(t, "")
	if _, err := tr.LogFood(context.Background(), tracker.LogFoodInput{
		Name:     "oats",
		Quantity: 1,
		Unit:     "serving",
		Calories: floatPtr(350),
		ProteinG: floatPtr(12),
	}); err != nil {
		t.Fatalf("log food: %v", err)
	}
	if _, err := tr.LogWater(500, "ml"); err != nil {
		t.Fatalf("log water: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/summary?tz=UTC", nil)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var summary tracker.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Food.Calories != 350 || summary.Food.ProteinG != 12 {
		t.Fatalf("unexpected food totals: %+v", summary.Food)
	}
	if summary.Water.TotalML != 500 {
		t.Fatalf("unexpected water total: %+v", summary.Water)
	}
	if summary.Goals.Calories != 2000 {
		t.Fatalf("expected default goals in summary, got %+v", summary.Goals)
	}
}

func TestWaterEndpoint(t *testing.T) {
	t.Parallel()

	srv, tr := newTestServer(t, "")
	if _, err := tr.LogWater(2, "glasses"); err != nil {
		t.Fatalf("log water: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/water?tz=UTC", nil)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var status tracker.WaterStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.TotalML != 474 {
		t.Fatalf("expected 474 ml, got %+v", status)
	}
}

func TestSummaryRejectsInvalidTimezone(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/summary?tz=Mars%2FOlympus", nil)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBasicAuthGatesAPI(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, "secret")
	router := srv.Router()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	req.SetBasicAuth("macro", "secret")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with credentials, got %d: %s", w.Code, w.Body.String())
	}
}

func TestWeekEndpointShape(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/week?tz=UTC", nil)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var payload struct {
		Days     []rangeDay  `json:"days"`
		Goals    model.Goals `json:"goals"`
		Timezone string      `json:"timezone"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(payload.Days))
	}
	if payload.Days[6].Date != time.Now().UTC().Format("2006-01-02") {
		t.Fatalf("expected today last, got %s", payload.Days[6].Date)
	}
	if payload.Timezone != "UTC" {
		t.Fatalf("expected tz echoed back, got %q", payload.Timezone)
	}
}

func TestDashboardRenders(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?tz=UTC", nil)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct == "" || ct == "application/json" {
		t.Fatalf("expected HTML content type, got %q", ct)
	}
}
