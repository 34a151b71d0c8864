package models

// RouteKind names one of the synthesized route options.
type RouteKind string

const (
	Fastest   RouteKind = "fastest"
	Safest    RouteKind = "safest"
	Smoothest RouteKind = "smoothest"
	Unknown   RouteKind = ""
)

// RouteKinds is the fixed presentation order.
var RouteKinds = []RouteKind{Fastest, Safest, Smoothest}

type RoadQuality string

const (
	RoadGood    RoadQuality = "good"
	RoadAverage RoadQuality = "average"
	RoadPoor    RoadQuality = "poor"
)
