package rectpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristics_ExactlySix(t *testing.T) {
	all := Heuristics()
	require.Len(t, all, 6)
	assert.Equal(t, []Heuristic{
		BestShortSideFit, BestLongSideFit, BestAreaFit, BottomLeft, ContactPoint, BestSquareFit,
	}, all)
	for _, h := range all {
		assert.True(t, h.Valid())
		assert.NotNil(t, positionFinders[h], h.String())
	}
	assert.False(t, Heuristic(6).Valid())
}

func TestParseHeuristic(t *testing.T) {
	tests := []struct {
		in   string
		want Heuristic
	}{
		{"BestShortSideFit", BestShortSideFit},
		{"bestlongsidefit", BestLongSideFit},
		{"BAF", BestAreaFit},
		{"bl", BottomLeft},
		{"ContactPoint", ContactPoint},
		{"bsf", BestSquareFit},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHeuristic(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHeuristic_Unknown(t *testing.T) {
	_, err := ParseHeuristic("Guillotine")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownHeuristic)
	assert.Contains(t, err.Error(), "Guillotine")
}

func TestHeuristic_String(t *testing.T) {
	assert.Equal(t, "BestSquareFit", BestSquareFit.String())
	assert.Equal(t, "Heuristic(9)", Heuristic(9).String())

	for _, h := range Heuristics() {
		parsed, err := ParseHeuristic(h.String())
		require.NoError(t, err)
		assert.Equal(t, h, parsed)
	}
}
