package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"tour-route-service/internal/api/dto"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/services"
)

// Receives itinerary summaries after a successful build; satisfied by
// publisher.ItineraryPublisher. May be nil when no event feed is configured.
type ItineraryEvents interface {
	PublishGenerated(it *domain.Itinerary) error
}

// ItineraryHandler orchestrates itinerary generation and exposes the current
// itinerary slot.
type ItineraryHandler struct {
	Builder *services.Builder
	State   *services.ItineraryState
	Events  ItineraryEvents
}

// Create handles POST /itineraries: build a fresh itinerary from the
// requested stop sequence and atomically replace the stored one.
func (h *ItineraryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.BuildItineraryRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Stops) < 2 {
		writeError(w, r, http.StatusBadRequest, "at least 2 stops are required")
		return
	}

	mode := domain.TravelMode(req.Mode)
	if req.Mode == "" {
		mode = domain.ModeDriving
	}
	if !mode.Valid() {
		writeError(w, r, http.StatusBadRequest, "mode must be \"driving\" or \"walking\"")
		return
	}

	// Serialize writers: a second generate is rejected while one is running.
	if err := h.State.BeginGenerate(); err != nil {
		writeError(w, r, http.StatusConflict, err.Error())
		return
	}
	defer h.State.EndGenerate()

	it, warnings, err := h.Builder.Build(r.Context(), services.BuildItineraryRequest{
		Stops: req.Stops,
		Mode:  mode,
	})
	if err != nil {
		status := http.StatusInternalServerError
		msg := "internal server error"
		switch {
		case errors.Is(err, domain.ErrInsufficientStops):
			status = http.StatusUnprocessableEntity
			msg = "fewer than 2 stops could be resolved"
		case errors.Is(err, domain.ErrRouteGenerationFailed):
			status = http.StatusBadGateway
			msg = "no leg could be routed"
		default:
			log.Printf("build itinerary failed: %v", err)
		}

		// Prior state is preserved on fatal build errors; the warnings still
		// tell the caller which stops and legs were the problem.
		writeJSON(w, r, status, map[string]any{
			"error":    msg,
			"warnings": dto.NewWarningResponses(warnings),
		})
		return
	}

	h.State.Replace(it)

	if h.Events != nil {
		if err := h.Events.PublishGenerated(it); err != nil {
			log.Printf("publish itinerary event failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, dto.BuildItineraryResponse{
		Itinerary: dto.NewItineraryResponse(it, services.PlaceLabels(it.Legs)),
		Warnings:  dto.NewWarningResponses(warnings),
		Excluded:  len(warnings),
	})
}

// Current handles GET and DELETE on /itineraries/current. Label anchors are
// recomputed on every read; they are render-pass data, never stored.
func (h *ItineraryHandler) Current(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		it := h.State.Current()
		if it == nil {
			writeError(w, r, http.StatusNotFound, "no itinerary has been generated")
			return
		}
		writeJSON(w, r, http.StatusOK, dto.NewItineraryResponse(it, services.PlaceLabels(it.Legs)))

	case http.MethodDelete:
		h.State.Clear()
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "cleared"})

	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
	}
}
