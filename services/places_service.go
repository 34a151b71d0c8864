package services

import (
	"sort"
	"sync/atomic"

	"github.com/mohamedthameursassi/saferoute/geo"
	"github.com/mohamedthameursassi/saferoute/models"
)

// PlacesService serves the static reference data. The data set can be
// swapped at runtime, e.g. after a config reload.
type PlacesService struct {
	fixtures atomic.Pointer[models.Fixtures]
}

func NewPlacesService(fixtures models.Fixtures) *PlacesService {
	ps := &PlacesService{}
	ps.Replace(fixtures)
	return ps
}

func (ps *PlacesService) Replace(fixtures models.Fixtures) {
	ps.fixtures.Store(&fixtures)
}

func (ps *PlacesService) Fixtures() models.Fixtures {
	return *ps.fixtures.Load()
}

func (ps *PlacesService) CurrentLocation() models.Coordinate {
	return ps.fixtures.Load().CurrentLocation
}

func (ps *PlacesService) Profile() models.UserProfile {
	return ps.fixtures.Load().User
}

func (ps *PlacesService) Contacts() []models.TrustedContact {
	return append([]models.TrustedContact(nil), ps.fixtures.Load().Contacts...)
}

type SafePlaceFilter struct {
	Near     *models.Coordinate
	OpenOnly bool
	Type     models.SafePlaceType
}

// SafePlaces returns the places matching filter, nearest first when
// filter.Near is set and in fixture order otherwise.
func (ps *PlacesService) SafePlaces(filter SafePlaceFilter) []models.SafePlaceDistance {
	var out []models.SafePlaceDistance
	for _, p := range ps.fixtures.Load().SafePlaces {
		if filter.OpenOnly && !p.IsOpen {
			continue
		}
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		d := models.SafePlaceDistance{SafePlace: p}
		if filter.Near != nil {
			d.DistanceKm = geo.Distance(*filter.Near, p.Location)
		}
		out = append(out, d)
	}
	if filter.Near != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DistanceKm < out[j].DistanceKm
		})
	}
	return out
}

// NearestSafePlace returns the closest open safe place to c.
func (ps *PlacesService) NearestSafePlace(c models.Coordinate) (models.SafePlaceDistance, bool) {
	places := ps.SafePlaces(SafePlaceFilter{Near: &c, OpenOnly: true})
	if len(places) == 0 {
		return models.SafePlaceDistance{}, false
	}
	return places[0], true
}

// Incidents returns reported incidents, optionally limited to one severity.
func (ps *PlacesService) Incidents(severity models.Severity) []models.SafetyIncident {
	var out []models.SafetyIncident
	for _, in := range ps.fixtures.Load().Incidents {
		if severity == "" || in.Severity == severity {
			out = append(out, in)
		}
	}
	return out
}

// IncidentsNear returns the incidents within radiusKm of c.
func (ps *PlacesService) IncidentsNear(c models.Coordinate, radiusKm float64) []models.SafetyIncident {
	var out []models.SafetyIncident
	for _, in := range ps.fixtures.Load().Incidents {
		if geo.Distance(c, in.Location) <= radiusKm {
			out = append(out, in)
		}
	}
	return out
}
