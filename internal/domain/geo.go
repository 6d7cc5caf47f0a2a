package domain

import (
	"math"
	"sort"

	"incidentTrust/pkg/e"
)

const (
	// EarthRadiusMeters is the IUGG mean earth radius.
	EarthRadiusMeters = 6371008.8

	MaxNearbyRadiusMeters = 50_000.0
	DefaultNearbyLimit    = 50
)

type GeoPoint struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Validate rejects coordinates outside [-180,180]x[-90,90]. Out of range
// longitudes are not wrapped.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lng) || math.IsNaN(p.Lat) {
		return e.Validation("coordinates must be numbers")
	}
	if p.Lng < -180 || p.Lng > 180 {
		return e.Validation("longitude %v out of range [-180,180]", p.Lng)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return e.Validation("latitude %v out of range [-90,90]", p.Lat)
	}
	return nil
}

// Haversine returns the great-circle distance between a and b in meters.
func Haversine(a, b GeoPoint) float64 {
	dLat := deg2rad(b.Lat - a.Lat)
	dLng := deg2rad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

type NearbyQuery struct {
	Point        GeoPoint
	RadiusMeters float64
	// Type restricts matches to one category; empty matches all.
	Type  IncidentType
	Limit int
}

func (q NearbyQuery) Validate() error {
	if err := q.Point.Validate(); err != nil {
		return err
	}
	if math.IsNaN(q.RadiusMeters) || q.RadiusMeters <= 0 || q.RadiusMeters > MaxNearbyRadiusMeters {
		return e.Validation("radius must be in (0, %v] meters", MaxNearbyRadiusMeters)
	}
	if q.Type != "" && !q.Type.Valid() {
		return e.Validation("unknown incident type %q", q.Type)
	}
	if q.Limit < 0 {
		return e.Validation("limit must not be negative")
	}
	return nil
}

func (q NearbyQuery) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultNearbyLimit
	}
	return q.Limit
}

type NearbyIncident struct {
	Incident       *Incident `json:"incident"`
	DistanceMeters float64   `json:"distance_m"`
}

// RankNearby filters candidates by q and orders them by ascending distance.
// Terminal incidents never match. Equal distances are ordered by id.
func RankNearby(candidates []*Incident, q NearbyQuery) []NearbyIncident {
	out := make([]NearbyIncident, 0, 8)
	for _, inc := range candidates {
		if inc == nil || inc.Status.IsTerminal() {
			continue
		}
		if q.Type != "" && inc.Type != q.Type {
			continue
		}
		d := Haversine(q.Point, inc.Location)
		if d <= q.RadiusMeters {
			out = append(out, NearbyIncident{Incident: inc, DistanceMeters: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceMeters != out[j].DistanceMeters {
			return out[i].DistanceMeters < out[j].DistanceMeters
		}
		return out[i].Incident.ID.String() < out[j].Incident.ID.String()
	})
	if limit := q.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out
}
