package api

import (
	"net/http"
	"tour-route-service/internal/api/handlers"
	"tour-route-service/internal/ports"
	"tour-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	db handlers.Pinger,
	repo ports.PlaceRepository,
	builder *services.Builder,
	state *services.ItineraryState,
	events handlers.ItineraryEvents,
) http.Handler {
	mux := http.NewServeMux()

	placeHandler := &handlers.PlaceHandler{Repo: repo}
	itineraryHandler := &handlers.ItineraryHandler{
		Builder: builder,
		State:   state,
		Events:  events,
	}

	mux.HandleFunc("/health", handlers.NewHealth(db))
	mux.HandleFunc("/places", placeHandler.List)
	mux.HandleFunc("/itineraries", itineraryHandler.Create)
	mux.HandleFunc("/itineraries/current", itineraryHandler.Current)

	return loggingMiddleware(mux)
}
