package models

type IncidentType string

const (
	IncidentLighting   IncidentType = "lighting"
	IncidentSuspicious IncidentType = "suspicious"
	IncidentHarassment IncidentType = "harassment"
	IncidentRoad       IncidentType = "road"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type SafetyIncident struct {
	ID          string       `json:"id" mapstructure:"id"`
	Type        IncidentType `json:"type" mapstructure:"type"`
	Location    Coordinate   `json:"location" mapstructure:"location"`
	Description string       `json:"description" mapstructure:"description"`
	Severity    Severity     `json:"severity" mapstructure:"severity"`
}

type SafePlaceType string

const (
	PlacePolice   SafePlaceType = "police"
	PlaceHospital SafePlaceType = "hospital"
	PlacePharmacy SafePlaceType = "pharmacy"
)

type SafePlace struct {
	ID       string        `json:"id" mapstructure:"id"`
	Type     SafePlaceType `json:"type" mapstructure:"type"`
	Name     string        `json:"name" mapstructure:"name"`
	Location Coordinate    `json:"location" mapstructure:"location"`
	IsOpen   bool          `json:"is_open" mapstructure:"is_open"`
}

// SafePlaceDistance pairs a safe place with its distance from a query point.
type SafePlaceDistance struct {
	SafePlace
	DistanceKm float64 `json:"distance_km"`
}

// Fixtures is the static reference data handed to the services at
// construction time.
type Fixtures struct {
	User            UserProfile      `json:"user" mapstructure:"user"`
	Contacts        []TrustedContact `json:"contacts" mapstructure:"contacts"`
	CurrentLocation Coordinate       `json:"current_location" mapstructure:"current_location"`
	Incidents       []SafetyIncident `json:"incidents" mapstructure:"incidents"`
	SafePlaces      []SafePlace      `json:"safe_places" mapstructure:"safe_places"`
}

// DefaultFixtures returns the built-in Bengaluru (MG Road area) data set.
func DefaultFixtures() Fixtures {
	return Fixtures{
		User: UserProfile{
			Name:   "Priya Sharma",
			Email:  "priya.s@example.com",
			Phone:  "+91 98765 43210",
			Avatar: "PS",
			Preferences: UserPreferences{
				LocationSharing: true,
			},
		},
		Contacts: []TrustedContact{
			{ID: "1", Name: "Amma", Phone: "+91 98765 00001", Avatar: "A"},
			{ID: "2", Name: "Rahul (Brother)", Phone: "+91 98765 00002", Avatar: "R"},
			{ID: "3", Name: "Sneha", Phone: "+91 98765 00003", Avatar: "S"},
		},
		CurrentLocation: Coordinate{Lat: 12.9716, Lng: 77.5946},
		Incidents: []SafetyIncident{
			{ID: "1", Type: IncidentLighting, Location: Coordinate{Lat: 12.9750, Lng: 77.6000}, Description: "Street lights out on corner", Severity: SeverityMedium},
			{ID: "2", Type: IncidentHarassment, Location: Coordinate{Lat: 12.9650, Lng: 77.5900}, Description: "Verbal harassment reported", Severity: SeverityHigh},
			{ID: "3", Type: IncidentSuspicious, Location: Coordinate{Lat: 12.9800, Lng: 77.5950}, Description: "Suspicious group gathering", Severity: SeverityLow},
		},
		SafePlaces: []SafePlace{
			{ID: "sp1", Type: PlacePolice, Name: "Cubbon Park Police Station", Location: Coordinate{Lat: 12.9780, Lng: 77.5920}, IsOpen: true},
			{ID: "sp2", Type: PlaceHospital, Name: "St. Martha's Hospital", Location: Coordinate{Lat: 12.9700, Lng: 77.5850}, IsOpen: true},
			{ID: "sp3", Type: PlacePolice, Name: "Ashok Nagar Police Station", Location: Coordinate{Lat: 12.9730, Lng: 77.6050}, IsOpen: true},
			{ID: "sp4", Type: PlaceHospital, Name: "Mallya Hospital", Location: Coordinate{Lat: 12.9680, Lng: 77.5960}, IsOpen: true},
		},
	}
}
