package handlers

import (
	"log"
	"net/http"
	"tour-route-service/internal/api/dto"
	"tour-route-service/internal/ports"
)

// PlaceHandler exposes the read-only place dataset for stop pickers.
type PlaceHandler struct {
	Repo ports.PlaceRepository
}

func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	places, err := h.Repo.ListPlaces(r.Context())
	if err != nil {
		log.Printf("list places failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPlacesResponse{
		Places: make([]dto.PlaceResponse, 0, len(places)),
	}
	for _, p := range places {
		res.Places = append(res.Places, dto.PlaceResponse{
			Name: p.Name,
			Lon:  p.Location.Lon(),
			Lat:  p.Location.Lat(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
