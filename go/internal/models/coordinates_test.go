package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinates(t *testing.T) {
	c, err := NewCoordinates(-0.1, 51.5)
	require.NoError(t, err)
	assert.Equal(t, [2]float64{-0.1, 51.5}, c.Pair())

	_, err = NewCoordinates(181, 0)
	assert.Error(t, err)

	_, err = NewCoordinates(0, -91)
	assert.Error(t, err)

	_, err = NewCoordinates(math.NaN(), 0)
	assert.Error(t, err)
}

func TestCoordinatesFromPair(t *testing.T) {
	lng, lat := -1.0, 53.9

	c := CoordinatesFromPair(&lng, &lat)
	require.NotNil(t, c)
	assert.Equal(t, Coordinates{Longitude: -1.0, Latitude: 53.9}, *c)

	assert.Nil(t, CoordinatesFromPair(&lng, nil), "a lone longitude is never kept")
	assert.Nil(t, CoordinatesFromPair(nil, &lat), "a lone latitude is never kept")
	assert.Nil(t, CoordinatesFromPair(nil, nil))

	bad := 200.0
	assert.Nil(t, CoordinatesFromPair(&bad, &lat))
}
