package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"tour-route-service/internal/adapters/directions"
	"tour-route-service/internal/api/dto"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/services"

	"github.com/paulmach/orb"
)

type fixedPlaceRepo struct {
	places []*domain.Place
}

func (r *fixedPlaceRepo) ListPlaces(ctx context.Context) ([]*domain.Place, error) {
	return r.places, nil
}

type capturedEvents struct {
	published []*domain.Itinerary
}

func (e *capturedEvents) PublishGenerated(it *domain.Itinerary) error {
	e.published = append(e.published, it)
	return nil
}

var (
	handlerPtA = orb.Point{0, 0}
	handlerPtB = orb.Point{0.01, 0}
)

func newItineraryHandler(legs []directions.MockLeg) (*ItineraryHandler, *capturedEvents) {
	repo := &fixedPlaceRepo{places: []*domain.Place{
		{Name: "A", Location: handlerPtA},
		{Name: "B", Location: handlerPtB},
	}}

	events := &capturedEvents{}
	h := &ItineraryHandler{
		Builder: &services.Builder{
			Places: repo,
			Index:  services.NewEdgeIndex(nil),
			Router: &services.LegRouter{Provider: directions.NewMockRouteProvider(legs)},
		},
		State:  services.NewItineraryState(),
		Events: events,
	}
	return h, events
}

func postItinerary(t *testing.T, h *ItineraryHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/itineraries", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestCreateItinerary(t *testing.T) {
	h, events := newItineraryHandler([]directions.MockLeg{
		{From: handlerPtA, To: handlerPtB, Mode: domain.ModeDriving, Seconds: 600, Meters: 3000},
	})

	rec := postItinerary(t, h, `{"stops": ["A", "B"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var res dto.BuildItineraryResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Itinerary.TotalDurationSeconds != 600 {
		t.Fatalf("duration = %d, want 600", res.Itinerary.TotalDurationSeconds)
	}
	if res.Itinerary.DurationMinutes != 10 {
		t.Fatalf("duration minutes = %v, want 10", res.Itinerary.DurationMinutes)
	}
	if res.Excluded != 0 {
		t.Fatalf("excluded = %d, want 0", res.Excluded)
	}
	if len(res.Itinerary.Labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(res.Itinerary.Labels))
	}

	if h.State.Current() == nil {
		t.Fatal("the built itinerary must be stored")
	}
	if len(events.published) != 1 {
		t.Fatalf("published events = %d, want 1", len(events.published))
	}
}

func TestCreateItineraryRejectsConcurrentGenerate(t *testing.T) {
	h, _ := newItineraryHandler(nil)

	if err := h.State.BeginGenerate(); err != nil {
		t.Fatalf("claim generate slot: %v", err)
	}
	defer h.State.EndGenerate()

	rec := postItinerary(t, h, `{"stops": ["A", "B"]}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestCreateItineraryTooFewStops(t *testing.T) {
	h, _ := newItineraryHandler(nil)

	rec := postItinerary(t, h, `{"stops": ["A"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateItineraryUnresolvableStops(t *testing.T) {
	h, _ := newItineraryHandler(nil)

	rec := postItinerary(t, h, `{"stops": ["Ghost", "Phantom"]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var res struct {
		Error    string                `json:"error"`
		Warnings []dto.WarningResponse `json:"warnings"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("warnings = %d, want 2", len(res.Warnings))
	}
}

func TestCreateItineraryAllLegsFailPreservesState(t *testing.T) {
	h, _ := newItineraryHandler(nil) // no registered pairs: every leg request fails

	prior := &domain.Itinerary{Stops: []string{"A", "B"}}
	h.State.Replace(prior)

	rec := postItinerary(t, h, `{"stops": ["A", "B"]}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if h.State.Current() != prior {
		t.Fatal("a failed build must leave the prior itinerary untouched")
	}
}

func TestCreateItineraryInvalidMode(t *testing.T) {
	h, _ := newItineraryHandler(nil)

	rec := postItinerary(t, h, `{"stops": ["A", "B"], "mode": "teleport"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateItineraryRejectsUnknownFields(t *testing.T) {
	h, _ := newItineraryHandler(nil)

	rec := postItinerary(t, h, `{"stops": ["A", "B"], "bogus": true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCurrentItineraryLifecycle(t *testing.T) {
	h, _ := newItineraryHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/itineraries/current", nil)
	rec := httptest.NewRecorder()
	h.Current(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 before any build", rec.Code)
	}

	h.State.Replace(&domain.Itinerary{
		Stops: []string{"A", "B"},
		Mode:  domain.ModeWalking,
		Legs: []domain.Leg{{
			Index:    0,
			From:     "A",
			To:       "B",
			Status:   domain.LegStatusOK,
			Geometry: orb.LineString{{0, 0}, {0.01, 0}},
		}},
	})

	rec = httptest.NewRecorder()
	h.Current(rec, httptest.NewRequest(http.MethodGet, "/itineraries/current", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.ItineraryResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Labels) != 1 {
		t.Fatal("labels must be recomputed on read")
	}

	rec = httptest.NewRecorder()
	h.Current(rec, httptest.NewRequest(http.MethodDelete, "/itineraries/current", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if h.State.Current() != nil {
		t.Fatal("DELETE must clear the stored itinerary")
	}

	rec = httptest.NewRecorder()
	h.Current(rec, httptest.NewRequest(http.MethodPost, "/itineraries/current", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
