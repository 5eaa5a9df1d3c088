package dto

import (
	"math"
	"time"
	"tour-route-service/internal/domain"
)

type BuildItineraryRequest struct {
	Stops []string `json:"stops"`
	Mode  string   `json:"mode"`
}

type LegResponse struct {
	Index           int         `json:"index"`
	From            string      `json:"from"`
	To              string      `json:"to"`
	Status          string      `json:"status"`
	DurationSeconds int         `json:"duration_seconds"`
	DistanceMeters  int         `json:"distance_meters"`
	Geometry        [][]float64 `json:"geometry"`
}

type LabelResponse struct {
	LegIndex int     `json:"leg_index"`
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
}

type WarningResponse struct {
	Code    string `json:"code"`
	Subject string `json:"subject"`
	Detail  string `json:"detail"`
}

type ItineraryResponse struct {
	Stops                []string        `json:"stops"`
	Mode                 string          `json:"mode"`
	Legs                 []LegResponse   `json:"legs"`
	Labels               []LabelResponse `json:"labels"`
	TotalDurationSeconds int             `json:"total_duration_seconds"`
	TotalDistanceMeters  int             `json:"total_distance_meters"`
	DurationMinutes      float64         `json:"duration_minutes"`
	DistanceKm           float64         `json:"distance_km"`
	GeneratedAt          time.Time       `json:"generated_at"`
}

type BuildItineraryResponse struct {
	Itinerary ItineraryResponse `json:"itinerary"`
	Warnings  []WarningResponse `json:"warnings"`
	Excluded  int               `json:"excluded"`
}

// NewItineraryResponse converts an itinerary and its freshly computed label
// anchors into wire shape. Display units (minutes, kilometers) are derived
// here, at the presentation boundary; the stored totals stay in seconds and
// meters.
func NewItineraryResponse(it *domain.Itinerary, labels []domain.LabelAnchor) ItineraryResponse {
	legs := make([]LegResponse, 0, len(it.Legs))
	for _, l := range it.Legs {
		geometry := make([][]float64, 0, len(l.Geometry))
		for _, p := range l.Geometry {
			geometry = append(geometry, []float64{p.Lon(), p.Lat()})
		}

		legs = append(legs, LegResponse{
			Index:           l.Index,
			From:            l.From,
			To:              l.To,
			Status:          string(l.Status),
			DurationSeconds: l.DurationSeconds,
			DistanceMeters:  l.DistanceMeters,
			Geometry:        geometry,
		})
	}

	labelsOut := make([]LabelResponse, 0, len(labels))
	for _, a := range labels {
		labelsOut = append(labelsOut, LabelResponse{
			LegIndex: a.LegIndex,
			Lon:      a.Position.Lon(),
			Lat:      a.Position.Lat(),
		})
	}

	return ItineraryResponse{
		Stops:                it.Stops,
		Mode:                 string(it.Mode),
		Legs:                 legs,
		Labels:               labelsOut,
		TotalDurationSeconds: it.TotalDurationSeconds,
		TotalDistanceMeters:  it.TotalDistanceMeters,
		DurationMinutes:      DurationMinutes(it.TotalDurationSeconds),
		DistanceKm:           DistanceKm(it.TotalDistanceMeters),
		GeneratedAt:          it.GeneratedAt,
	}
}

func NewWarningResponses(warnings []domain.Warning) []WarningResponse {
	out := make([]WarningResponse, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, WarningResponse{Code: w.Code, Subject: w.Subject, Detail: w.Detail})
	}
	return out
}

// DurationMinutes converts seconds to display minutes, one decimal place.
func DurationMinutes(seconds int) float64 {
	return math.Round(float64(seconds)/60*10) / 10
}

// DistanceKm converts meters to display kilometers, two decimal places.
func DistanceKm(meters int) float64 {
	return math.Round(float64(meters)/1000*100) / 100
}
