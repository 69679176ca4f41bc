package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine_ZeroAtIdentity(t *testing.T) {
	assert.Zero(t, Haversine(3.139, 101.6869, 3.139, 101.6869))
}

func TestHaversine_Symmetric(t *testing.T) {
	d1 := Haversine(3.139, 101.6869, 3.0738, 101.5183)
	d2 := Haversine(3.0738, 101.5183, 3.139, 101.6869)
	assert.InDelta(t, d1, d2, 1e-9, "distance must be symmetric")
}

func TestHaversine_KnownDistance(t *testing.T) {
	// KLCC to Stadium Merdeka is roughly 2.1 km.
	d := Haversine(3.15785, 101.71165, 3.13898, 101.70050)
	assert.InDelta(t, 2440, d, 200)
}

func TestHaversine_SmallOffsets(t *testing.T) {
	// One degree of latitude is ~111 km, so 0.001 degrees is ~111 m.
	d := Haversine(3.1000, 101.7000, 3.1010, 101.7000)
	assert.InDelta(t, 111.2, d, 1.0)
}
