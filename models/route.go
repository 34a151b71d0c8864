package models

// RouteCandidate is one synthesized option between a trip's start and end.
type RouteCandidate struct {
	ID              string       `json:"id"`
	Kind            RouteKind    `json:"kind"`
	DistanceKm      float64      `json:"distance_km"`
	DurationMinutes float64      `json:"duration_minutes"`
	SafetyScore     float64      `json:"safety_score"`
	RoadQuality     RoadQuality  `json:"road_quality"`
	Path            []Coordinate `json:"path"`
}

// Start returns the first path point.
func (r RouteCandidate) Start() Coordinate {
	if len(r.Path) == 0 {
		return Coordinate{}
	}
	return r.Path[0]
}

// End returns the last path point.
func (r RouteCandidate) End() Coordinate {
	if len(r.Path) == 0 {
		return Coordinate{}
	}
	return r.Path[len(r.Path)-1]
}

// TripPlan is the result of one planning request.
type TripPlan struct {
	ID            string           `json:"id"`
	Pickup        Place            `json:"pickup"`
	Drop          Place            `json:"drop"`
	StraightKm    float64          `json:"straight_line_km"`
	Candidates    []RouteCandidate `json:"candidates"`
	SelectedRoute string           `json:"selected_route_id"`
}

// Selected returns the selected candidate, if any.
func (p *TripPlan) Selected() (RouteCandidate, bool) {
	return p.Candidate(p.SelectedRoute)
}

// Candidate looks up a candidate by id.
func (p *TripPlan) Candidate(id string) (RouteCandidate, bool) {
	for _, c := range p.Candidates {
		if c.ID == id {
			return c, true
		}
	}
	return RouteCandidate{}, false
}

// Place is a resolved trip endpoint.
type Place struct {
	Query    string     `json:"query,omitempty"`
	Location Coordinate `json:"location"`
}
