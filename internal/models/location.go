package models

import (
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrLocationNotFound is returned when no location has the requested id.
var ErrLocationNotFound = errors.New("location not found")

// Location is the caller-owned address record that verification standardizes and geocodes in place.
type Location struct {
	ID         int64    `json:"id"`
	Street1    string   `json:"street1"`
	Street2    string   `json:"street2"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postal_code"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`

	StandardizeAttemptedServiceType string     `json:"standardize_attempted_service_type"`
	StandardizeAttemptedAt          *time.Time `json:"standardize_attempted_at"`
	StandardizeAttemptedResult      string     `json:"standardize_attempted_result"`
	StandardizedAt                  *time.Time `json:"standardized_at"`
	GeocodeAttemptedServiceType     string     `json:"geocode_attempted_service_type"`
	GeocodeAttemptedAt              *time.Time `json:"geocode_attempted_at"`
	GeocodedAt                      *time.Time `json:"geocoded_at"`
}

// SetPointFromLatLong sets the spatial position of the location.
// It reports false and leaves the location untouched when the coordinates are not a valid WGS84 position.
func (l *Location) SetPointFromLatLong(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}

	l.Latitude = &lat
	l.Longitude = &lon
	return true
}

// Point returns the position as an orb point (lon, lat). ok is false when either coordinate is unset.
func (l *Location) Point() (p orb.Point, ok bool) {
	if l.Latitude == nil || l.Longitude == nil {
		return orb.Point{}, false
	}
	return orb.Point{*l.Longitude, *l.Latitude}, true
}

// Address returns the location's address fields as verification input.
func (l *Location) Address() AddressInput {
	return AddressInput{
		Street1:    l.Street1,
		Street2:    l.Street2,
		City:       l.City,
		State:      l.State,
		PostalCode: l.PostalCode,
	}
}

// AddressInput holds the free-form address fields used to build a verification query.
type AddressInput struct {
	Street1    string `json:"street1" form:"street1"`
	Street2    string `json:"street2" form:"street2"`
	City       string `json:"city" form:"city"`
	State      string `json:"state" form:"state"`
	PostalCode string `json:"postal_code" form:"postal_code"`
}

// Empty reports whether no address field is set.
func (a AddressInput) Empty() bool {
	return a.Street1 == "" && a.Street2 == "" && a.City == "" && a.State == "" && a.PostalCode == ""
}
