package models

import (
	"fmt"
	"math"
)

// Coordinates is a resolved point. Venues hold a *Coordinates so that a pair is
// either fully present or absent; a lone latitude or longitude cannot be stored.
type Coordinates struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// NewCoordinates validates a longitude/latitude pair
func NewCoordinates(longitude, latitude float64) (Coordinates, error) {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) || math.IsNaN(latitude) || math.IsInf(latitude, 0) {
		return Coordinates{}, fmt.Errorf("coordinates must be finite: [%v, %v]", longitude, latitude)
	}
	if longitude < -180 || longitude > 180 {
		return Coordinates{}, fmt.Errorf("longitude %v out of range", longitude)
	}
	if latitude < -90 || latitude > 90 {
		return Coordinates{}, fmt.Errorf("latitude %v out of range", latitude)
	}
	return Coordinates{Longitude: longitude, Latitude: latitude}, nil
}

// CoordinatesFromPair builds coordinates from two optional components.
// Returns nil unless both are present and valid.
func CoordinatesFromPair(longitude, latitude *float64) *Coordinates {
	if longitude == nil || latitude == nil {
		return nil
	}
	c, err := NewCoordinates(*longitude, *latitude)
	if err != nil {
		return nil
	}
	return &c
}

// Pair returns the point in [longitude, latitude] order
func (c Coordinates) Pair() [2]float64 {
	return [2]float64{c.Longitude, c.Latitude}
}
