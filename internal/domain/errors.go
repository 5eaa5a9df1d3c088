package domain

import "errors"

// Fatal build errors. Per-stop and per-leg problems are not errors; they are
// collected as Warnings alongside a best-effort result.
var (
	ErrPlaceNotFound         = errors.New("place not found in dataset")
	ErrInvalidCoordinate     = errors.New("place has no valid coordinate")
	ErrInsufficientStops     = errors.New("fewer than 2 routable stops")
	ErrRouteGenerationFailed = errors.New("no leg could be routed")
)

const (
	WarnStopSkipped      = "stop_skipped"
	WarnLegNoRoute       = "leg_no_route"
	WarnLegRequestFailed = "leg_request_failed"
)

// Warning records one skipped stop or excluded leg so callers can surface
// both the result and the list of exclusions.
type Warning struct {
	Code    string
	Subject string
	Detail  string
}
