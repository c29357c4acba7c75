package advisor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullPPRSettings(t *testing.T) *LeagueSettings {
	t.Helper()
	raw := map[string]any{
		"settings": map[string]any{
			"roster_positions": []any{
				map[string]any{"position": "QB", "count": 1},
				map[string]any{"position": "RB", "count": 2},
				map[string]any{"position": "WR", "count": 2},
				map[string]any{"position": "TE", "count": 1},
				map[string]any{"position": "W/R/T", "count": 1},
				map[string]any{"position": "BN", "count": 5},
			},
			"scoring": map[string]any{"ppr": "full"},
		},
	}
	settings, err := ParseSettings(raw)
	require.NoError(t, err)
	return settings
}

func TestParseSettingsCapacity(t *testing.T) {
	settings := fullPPRSettings(t)

	assert.Equal(t, 1, settings.StartingSlotCapacity(QB))
	assert.Equal(t, 3, settings.StartingSlotCapacity(RB), "flex counts toward RB")
	assert.Equal(t, 3, settings.StartingSlotCapacity(WR))
	assert.Equal(t, 2, settings.StartingSlotCapacity(TE))
	assert.Equal(t, 0, settings.StartingSlotCapacity(K))
	assert.Equal(t, 7, settings.StartingSlots())
	assert.Equal(t, 5, settings.BenchSize)
	assert.Equal(t, 1.0, settings.Scoring.PPR)
}

func TestParseSettingsCapacitySumCoversStartingSlots(t *testing.T) {
	settings := fullPPRSettings(t)

	total := 0
	for _, pos := range settings.StartingPositions() {
		total += settings.StartingSlotCapacity(pos)
	}
	assert.GreaterOrEqual(t, total, settings.StartingSlots())
}

func TestParseSettingsDefaultsToStandardScoring(t *testing.T) {
	raw := map[string]any{
		"roster_positions": []any{
			map[string]any{"position": "QB", "count": 1},
		},
	}
	settings, err := ParseSettings(raw)
	require.NoError(t, err)

	assert.Equal(t, 0.0, settings.Scoring.PPR)
	assert.Equal(t, 4.0, settings.Scoring.PassTD)
	assert.Equal(t, -2.0, settings.Scoring.FumbleLost)
}

func TestParseSettingsHalfPPRAndOverrides(t *testing.T) {
	raw := map[string]any{
		"roster_positions": []any{
			map[string]any{"position": "QB", "count": 1},
		},
		"scoring": map[string]any{
			"ppr":     "half",
			"pass_td": 6,
		},
		"faab":                100,
		"trade_deadline_week": 11,
	}
	settings, err := ParseSettings(raw)
	require.NoError(t, err)

	assert.Equal(t, 0.5, settings.Scoring.PPR)
	assert.Equal(t, 6.0, settings.Scoring.PassTD)
	assert.Equal(t, 100, settings.FAABBudget)
	assert.Equal(t, 11, settings.TradeDeadlineWeek)
}

func TestParseSettingsErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{name: "nil configuration", raw: nil},
		{name: "empty roster", raw: map[string]any{"roster_positions": []any{}}},
		{
			name: "negative slot count",
			raw: map[string]any{
				"roster_positions": []any{
					map[string]any{"position": "RB", "count": -1},
				},
			},
		},
		{
			name: "scoring not an object",
			raw: map[string]any{
				"roster_positions": []any{
					map[string]any{"position": "QB", "count": 1},
				},
				"scoring": "ppr",
			},
		},
		{
			name: "bench only",
			raw: map[string]any{
				"roster_positions": []any{
					map[string]any{"position": "BN", "count": 5},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings(tt.raw)
			var parseErr *SettingsParseError
			require.Error(t, err)
			assert.True(t, errors.As(err, &parseErr), "expected *SettingsParseError, got %v", err)
		})
	}
}

func TestParseSettingsTradeDeadlineObject(t *testing.T) {
	raw := map[string]any{
		"roster_positions": []any{
			map[string]any{"position": "QB", "count": 1},
		},
		"trade_deadline": map[string]any{"week": 12},
	}
	settings, err := ParseSettings(raw)
	require.NoError(t, err)
	assert.Equal(t, 12, settings.TradeDeadlineWeek)
}
