package models

import "errors"

// Navigation
var (
	ErrInvalidRoute = errors.New("route path needs at least two points")
	ErrInvalidState = errors.New("operation not allowed in current navigation state")
)

// Trip planning
var (
	ErrAddressNotFound    = errors.New("address not found")
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrMissingDestination = errors.New("destination is required")
	ErrNoActivePlan       = errors.New("no trip has been planned")
	ErrNoActiveTrip       = errors.New("no navigation in progress")
	ErrRouteNotFound      = errors.New("no route with that id")
)
