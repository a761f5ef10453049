package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearCostIntersection(t *testing.T) {
	testCases := []struct {
		name     string
		alpha1   float64
		beta1    float64
		alpha2   float64
		beta2    float64
		wantX    float64
		wantOkay bool
	}{
		{
			name:   "steep small pipe vs flat big pipe",
			alpha1: 2, beta1: 1,
			alpha2: 1, beta2: 6,
			wantX:    5,
			wantOkay: true,
		},
		{
			name:   "intersection at origin",
			alpha1: 3, beta1: 0,
			alpha2: 1, beta2: 0,
			wantX:    0,
			wantOkay: true,
		},
		{
			name:   "parallel lines",
			alpha1: 1.5, beta1: 1,
			alpha2: 1.5, beta2: 2,
			wantOkay: false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			x, ok := LinearCostIntersection(tt.alpha1, tt.beta1, tt.alpha2, tt.beta2)
			assert.Equal(t, tt.wantOkay, ok)
			if tt.wantOkay {
				assert.InDelta(t, tt.wantX, x, EPS)
				assert.InDelta(t, tt.alpha1*x+tt.beta1, tt.alpha2*x+tt.beta2, EPS)
			}
		})
	}
}

func TestFloatComparisons(t *testing.T) {
	assert.True(t, Eq(1.0, 1.0+EPS/2))
	assert.True(t, Lt(1.0, 1.1))
	assert.False(t, Lt(1.0, 1.0+EPS/2))
	assert.True(t, Le(1.0+EPS/2, 1.0))
	assert.True(t, Ge(1.0, 1.0+EPS/2))
	assert.True(t, Gt(2.0, 1.0))
}
