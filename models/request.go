package models

// PlanRequest asks for route candidates either by free-text addresses or by
// explicit coordinates. Coordinates win when both are given.
type PlanRequest struct {
	Pickup string      `json:"pickup,omitempty"`
	Drop   string      `json:"drop,omitempty"`
	Start  *Coordinate `json:"start,omitempty"`
	End    *Coordinate `json:"end,omitempty"`
}

type AdvanceRequest struct {
	Steps *int `json:"steps,omitempty"`
}

type ProgressRequest struct {
	Index *int `json:"index" binding:"required"`
}
