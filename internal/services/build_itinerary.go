package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/ports"
)

const defaultMaxConcurrentLegs = 4

// Counters the builder reports into; satisfied by metrics.Collector.
type BuildMetrics interface {
	StopSkipped()
	SnapFallback()
	LegRouted(status string)
	BuildObserved(outcome string, d time.Duration)
}

type BuildItineraryRequest struct {
	Stops []string
	Mode  domain.TravelMode
}

// Builder owns one itinerary build: snap every stop, route each consecutive
// pair, and aggregate totals over the legs that succeeded.
type Builder struct {
	Places            ports.PlaceRepository
	Index             *EdgeIndex
	Router            *LegRouter
	MaxConcurrentLegs int
	Metrics           BuildMetrics
}

// Build computes a fresh itinerary for the requested stop sequence.
//
// Stops that cannot be snapped are dropped with a recorded warning; legs
// that fail to route are recorded with their status and excluded from the
// totals. Build fails outright only with domain.ErrInsufficientStops (fewer
// than 2 snapped points) or domain.ErrRouteGenerationFailed (every leg
// failed); in both cases no itinerary is returned and the warnings still
// describe what went wrong.
func (b *Builder) Build(ctx context.Context, req BuildItineraryRequest) (*domain.Itinerary, []domain.Warning, error) {
	start := time.Now()

	it, warnings, err := b.build(ctx, req)

	outcome := "succeeded"
	switch {
	case err != nil:
		outcome = "failed"
	case len(warnings) > 0:
		outcome = "partial"
	}
	b.observe(outcome, time.Since(start))

	return it, warnings, err
}

func (b *Builder) build(ctx context.Context, req BuildItineraryRequest) (*domain.Itinerary, []domain.Warning, error) {
	if !req.Mode.Valid() {
		return nil, nil, fmt.Errorf("build itinerary: unsupported travel mode %q", req.Mode)
	}

	if len(req.Stops) < 2 {
		return nil, nil, fmt.Errorf("build itinerary: %d stops requested: %w", len(req.Stops), domain.ErrInsufficientStops)
	}

	places, err := b.Places.ListPlaces(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("build itinerary: list places: %w", err)
	}

	snapper := NewSnapper(places, b.Index)

	warnings := []domain.Warning{}
	snapped := make([]domain.SnappedPoint, 0, len(req.Stops))
	for _, name := range req.Stops {
		sp, err := snapper.Snap(name)
		if err != nil {
			warnings = append(warnings, domain.Warning{
				Code:    domain.WarnStopSkipped,
				Subject: name,
				Detail:  err.Error(),
			})
			if b.Metrics != nil {
				b.Metrics.StopSkipped()
			}
			continue
		}

		if !sp.OnNetwork && b.Metrics != nil {
			b.Metrics.SnapFallback()
		}
		snapped = append(snapped, sp)
	}

	if len(snapped) < 2 {
		return nil, warnings, fmt.Errorf(
			"build itinerary: %d of %d stops snapped: %w",
			len(snapped), len(req.Stops), domain.ErrInsufficientStops,
		)
	}

	legs := b.routeLegs(ctx, snapped, req.Mode)

	okCount := 0
	totalSeconds := 0
	totalMeters := 0
	for _, leg := range legs {
		if b.Metrics != nil {
			b.Metrics.LegRouted(string(leg.Status))
		}

		switch leg.Status {
		case domain.LegStatusOK:
			okCount++
			totalSeconds += leg.DurationSeconds
			totalMeters += leg.DistanceMeters
		case domain.LegStatusNoRoute:
			warnings = append(warnings, domain.Warning{
				Code:    domain.WarnLegNoRoute,
				Subject: fmt.Sprintf("%s -> %s", leg.From, leg.To),
				Detail:  fmt.Sprintf("leg %d has no route", leg.Index),
			})
		case domain.LegStatusRequestFailed:
			warnings = append(warnings, domain.Warning{
				Code:    domain.WarnLegRequestFailed,
				Subject: fmt.Sprintf("%s -> %s", leg.From, leg.To),
				Detail:  fmt.Sprintf("leg %d request failed", leg.Index),
			})
		}
	}

	if okCount == 0 {
		return nil, warnings, fmt.Errorf("build itinerary: all %d legs failed: %w", len(legs), domain.ErrRouteGenerationFailed)
	}

	order := make([]string, 0, len(snapped))
	for _, sp := range snapped {
		order = append(order, sp.Place)
	}

	return &domain.Itinerary{
		Stops:                order,
		Mode:                 req.Mode,
		Legs:                 legs,
		TotalDurationSeconds: totalSeconds,
		TotalDistanceMeters:  totalMeters,
		GeneratedAt:          time.Now().UTC(),
	}, warnings, nil
}

// routeLegs fans the per-pair provider calls out across a bounded worker
// pool. Leg calls are independent, so one failure never cancels siblings;
// results are reassembled into stop order before being returned.
func (b *Builder) routeLegs(ctx context.Context, snapped []domain.SnappedPoint, mode domain.TravelMode) []domain.Leg {
	n := len(snapped) - 1
	legs := make([]domain.Leg, n)

	limit := b.MaxConcurrentLegs
	if limit <= 0 {
		limit = defaultMaxConcurrentLegs
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			legs[idx] = b.Router.RouteLeg(ctx, idx, snapped[idx], snapped[idx+1], mode)
		}(i)
	}

	wg.Wait()
	return legs
}

func (b *Builder) observe(outcome string, d time.Duration) {
	if b.Metrics != nil {
		b.Metrics.BuildObserved(outcome, d)
	}
	log.Printf("op=build_itinerary outcome=%s dur=%dms", outcome, d.Milliseconds())
}
