package models

type NavigationStatus string

const (
	NotStarted NavigationStatus = "not_started"
	InProgress NavigationStatus = "in_progress"
	Completed  NavigationStatus = "completed"
	Cancelled  NavigationStatus = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s NavigationStatus) Terminal() bool {
	return s == Completed || s == Cancelled
}

// Remaining is the estimated distance and time left on a trip.
type Remaining struct {
	DistanceKm float64 `json:"distance_km"`
	EtaMinutes float64 `json:"eta_minutes"`
}

// NavigationState is a read-only snapshot of a navigation session.
type NavigationState struct {
	Status        NavigationStatus `json:"status"`
	RouteID       string           `json:"route_id,omitempty"`
	RouteKind     RouteKind        `json:"route_kind,omitempty"`
	ProgressIndex int              `json:"progress_index"`
	PathLength    int              `json:"path_length"`
	Position      *Coordinate      `json:"position,omitempty"`
	Remaining     *Remaining       `json:"remaining,omitempty"`
}
