package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferenceSnapshot_Weight(t *testing.T) {
	snap := NewPreferenceSnapshot([]PreferenceWeight{
		{Category: CategoryRestaurant, Weight: 1.5},
		{Category: CategoryRestaurant, VenueID: "v42", Weight: 0.5},
		{Category: CategoryOutdoor, Weight: -2.0},
	})

	assert.InDelta(t, 1.5, snap.Weight(CategoryRestaurant, ""), 1e-9)
	assert.InDelta(t, 2.0, snap.Weight(CategoryRestaurant, "v42"), 1e-9, "venue weight stacks on category weight")
	assert.InDelta(t, 1.5, snap.Weight(CategoryRestaurant, "other"), 1e-9, "unknown venue falls back to category weight")
	assert.InDelta(t, -2.0, snap.Weight(CategoryOutdoor, ""), 1e-9)
	assert.InDelta(t, 0.0, snap.Weight(CategoryCafe, ""), 1e-9, "unseen category weighs zero")
	assert.Equal(t, 3, snap.Len())
}

func TestPreferenceSnapshot_Empty(t *testing.T) {
	snap := EmptyPreferenceSnapshot()
	assert.InDelta(t, 0.0, snap.Weight(CategoryRestaurant, "v1"), 1e-9)
	assert.Equal(t, 0, snap.Len())
}

func TestClampFloat(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{4.0, -5, 5, 4.0},
		{7.3, -5, 5, 5.0},
		{-9.0, -5, 5, -5.0},
		{-5.0, -5, 5, -5.0},
		{5.0, -5, 5, 5.0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, ClampFloat(tc.v, tc.lo, tc.hi), 1e-9, "clamp(%v)", tc.v)
	}
}
