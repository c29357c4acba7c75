package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreUsesPPRAdjustment(t *testing.T) {
	settings := fullPPRSettings(t)

	c := Candidate{ID: "p1", Position: WR, Projection: 10, Receptions: 5}
	assert.Equal(t, 15.0, Score(c, settings))

	standard, err := ParseSettings(map[string]any{
		"roster_positions": []any{map[string]any{"position": "WR", "count": 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, Score(c, standard), "standard scoring ignores receptions")
}

func TestScoreMonotonicInProjection(t *testing.T) {
	settings := fullPPRSettings(t)

	base := Candidate{ID: "p1", Position: RB, Receptions: 3, Trend: 1}
	prev := -1.0
	for proj := 0.5; proj <= 30; proj += 0.5 {
		c := base
		c.Projection = proj
		score := Score(c, settings)
		assert.GreaterOrEqual(t, score, prev, "projection %.1f scored lower than a smaller projection", proj)
		prev = score
	}
}

func TestScoreMonotonicAcrossStatLineFloor(t *testing.T) {
	settings := fullPPRSettings(t)

	c := Candidate{
		ID:       "p1",
		Position: WR,
		Stats: map[string]float64{
			"rec":    6,
			"rec_yd": 80,
			"rec_td": 1,
		},
	}
	prev := Score(c, settings)
	assert.Equal(t, 20.0, prev)

	for i := 1; i <= 250; i++ {
		c.Projection = float64(i) / 10
		score := Score(c, settings)
		assert.GreaterOrEqual(t, score, prev, "raising the projection to %.1f dropped the score", c.Projection)
		prev = score
	}

	// A tiny projection never undercuts the stat-line floor; a large one
	// takes over.
	c.Projection = 0.1
	assert.Equal(t, 20.0, Score(c, settings))
	c.Projection = 25
	assert.Equal(t, 25.0, Score(c, settings))
}

func TestScoreFallsBackToStatLine(t *testing.T) {
	settings := fullPPRSettings(t)

	c := Candidate{
		ID:       "p1",
		Position: WR,
		Stats: map[string]float64{
			"rec":    6,
			"rec_yd": 80,
			"rec_td": 1,
		},
	}
	// 6 receptions + 8.0 yardage + 6.0 TD under full PPR.
	assert.Equal(t, 20.0, Score(c, settings))
}

func TestComputePointsOffenseWithBonus(t *testing.T) {
	raw := map[string]any{
		"roster_positions": []any{map[string]any{"position": "QB", "count": 1}},
		"scoring": map[string]any{
			"bonuses": []any{
				map[string]any{"description": "300 yard game", "stat": "pass_yd", "threshold": 300, "points": 3},
			},
		},
	}
	settings, err := ParseSettings(raw)
	require.NoError(t, err)

	stats := map[string]float64{
		"pass_td":  2,
		"pass_yd":  320,
		"pass_int": 1,
	}
	// 8 + 12.8 - 2 + 3 bonus.
	assert.Equal(t, 21.8, ComputePoints(QB, stats, settings))
}

func TestComputePointsDSTBuckets(t *testing.T) {
	settings := fullPPRSettings(t)

	tests := []struct {
		allowed float64
		want    float64
	}{
		{allowed: 0, want: 10.0},
		{allowed: 3, want: 7.0},
		{allowed: 20, want: 1.0},
		{allowed: 35, want: -4.0},
		{allowed: 42, want: -4.0},
	}
	for _, tt := range tests {
		got := ComputePoints(DST, map[string]float64{"points_allowed": tt.allowed}, settings)
		assert.Equal(t, tt.want, got, "points allowed %.0f", tt.allowed)
	}

	full := map[string]float64{"sack": 3, "int": 2, "fum_rec": 1, "td": 1, "points_allowed": 10}
	// 3 + 4 + 2 + 6 + 4 bucket.
	assert.Equal(t, 19.0, ComputePoints(DST, full, settings))
}

func TestComputePointsKicker(t *testing.T) {
	settings := fullPPRSettings(t)

	stats := map[string]float64{"xp": 3, "fg_0-39": 1, "fg_40-49": 1, "fg_50+": 1}
	assert.Equal(t, 15.0, ComputePoints(K, stats, settings))
}

func TestHardOut(t *testing.T) {
	assert.True(t, Out.HardOut())
	assert.True(t, Doubtful.HardOut())
	assert.True(t, Suspended.HardOut())
	assert.True(t, InjuryStatus("ir").HardOut())
	assert.False(t, Questionable.HardOut())
	assert.False(t, Healthy.HardOut())
}

func TestScoreMissingFieldsDefaultToZero(t *testing.T) {
	settings := fullPPRSettings(t)
	assert.Equal(t, 0.0, Score(Candidate{ID: "p1", Position: TE}, settings))
}
