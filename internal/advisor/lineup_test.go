package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeLineupRequiresSettings(t *testing.T) {
	_, err := OptimizeLineup(DefaultConfig(), nil, nil, nil)
	assert.ErrorIs(t, err, ErrMissingSettings)
}

func TestOptimizeLineupForcesByeSwapRegardlessOfMargin(t *testing.T) {
	settings := fullPPRSettings(t)
	candidates := []Candidate{
		{ID: "rb.on.bye", Position: RB, Projection: 15, OnBye: true},
		{ID: "rb.healthy", Position: RB, Projection: 14},
		{ID: "rb.bench", Position: RB, Projection: 5},
		{ID: "wr.star", Position: WR, Projection: 18},
	}
	starters := map[string][]string{
		"RB": {"rb.on.bye", "rb.healthy"},
	}

	swaps, err := OptimizeLineup(DefaultConfig(), settings, candidates, starters)
	require.NoError(t, err)
	require.Len(t, swaps, 1)

	swap := swaps[0]
	assert.True(t, swap.Forced)
	assert.Equal(t, "rb.on.bye", swap.OutPlayerID)
	assert.Equal(t, "rb.bench", swap.InPlayerID)
	assert.Negative(t, swap.Delta, "forced swap ignores the projection delta")
}

func TestOptimizeLineupForcesHardOutSwap(t *testing.T) {
	settings := fullPPRSettings(t)
	candidates := []Candidate{
		{ID: "wr.out", Position: WR, Projection: 20, Injury: Out},
		{ID: "wr.bench", Position: WR, Projection: 8},
	}
	starters := map[string][]string{"WR": {"wr.out"}}

	swaps, err := OptimizeLineup(DefaultConfig(), settings, candidates, starters)
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	assert.True(t, swaps[0].Forced)
	assert.Equal(t, "wr.bench", swaps[0].InPlayerID)
}

func TestOptimizeLineupNeverSwapsInByeOrHardOut(t *testing.T) {
	settings := fullPPRSettings(t)
	candidates := []Candidate{
		{ID: "te.starter", Position: TE, Projection: 4},
		{ID: "te.on.bye", Position: TE, Projection: 25, OnBye: true},
		{ID: "te.doubtful", Position: TE, Projection: 25, Injury: Doubtful},
	}
	starters := map[string][]string{"TE": {"te.starter"}}

	swaps, err := OptimizeLineup(DefaultConfig(), settings, candidates, starters)
	require.NoError(t, err)
	assert.Empty(t, swaps)
}

func TestOptimizeLineupHonorsMaterialityMargin(t *testing.T) {
	settings := fullPPRSettings(t)
	starters := map[string][]string{"QB": {"qb.starter"}}

	marginal := []Candidate{
		{ID: "qb.starter", Position: QB, Projection: 10},
		{ID: "qb.bench", Position: QB, Projection: 11.9},
	}
	swaps, err := OptimizeLineup(DefaultConfig(), settings, marginal, starters)
	require.NoError(t, err)
	assert.Empty(t, swaps, "a 1.9 point gain does not clear the 2.0 margin")

	material := []Candidate{
		{ID: "qb.starter", Position: QB, Projection: 10},
		{ID: "qb.bench", Position: QB, Projection: 12.5},
	}
	swaps, err = OptimizeLineup(DefaultConfig(), settings, material, starters)
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	assert.Equal(t, "qb.bench", swaps[0].InPlayerID)
	assert.InDelta(t, 2.5, swaps[0].Delta, 0.001)
}

func TestOptimizeLineupClaimsEachCandidateOnce(t *testing.T) {
	settings := fullPPRSettings(t)
	candidates := []Candidate{
		{ID: "wr.low", Position: WR, Projection: 5},
		{ID: "wr.mid", Position: WR, Projection: 6},
		{ID: "wr.stud", Position: WR, Projection: 20},
	}
	starters := map[string][]string{"WR": {"wr.low", "wr.mid"}}

	swaps, err := OptimizeLineup(DefaultConfig(), settings, candidates, starters)
	require.NoError(t, err)
	require.Len(t, swaps, 1, "the lone bench candidate fills only one slot")
	assert.Equal(t, "wr.stud", swaps[0].InPlayerID)
	assert.Equal(t, "wr.low", swaps[0].OutPlayerID, "largest gap wins the contention")

	seen := map[string]bool{}
	for _, swap := range swaps {
		assert.False(t, seen[swap.InPlayerID], "candidate %s claimed twice", swap.InPlayerID)
		seen[swap.InPlayerID] = true
	}
}

func TestOptimizeLineupQuestionableReducesPriority(t *testing.T) {
	settings := fullPPRSettings(t)
	candidates := []Candidate{
		{ID: "rb.starter", Position: RB, Projection: 5},
		{ID: "rb.q", Position: RB, Projection: 12, Injury: Questionable},
		{ID: "rb.clean", Position: RB, Projection: 12},
	}
	starters := map[string][]string{"RB": {"rb.starter"}}

	swaps, err := OptimizeLineup(DefaultConfig(), settings, candidates, starters)
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	assert.Equal(t, "rb.clean", swaps[0].InPlayerID, "equal projections prefer the healthy candidate")
}

func TestOptimizeLineupOrdersForcedBeforeValueSwaps(t *testing.T) {
	settings := fullPPRSettings(t)
	candidates := []Candidate{
		{ID: "qb.out", Position: QB, Projection: 18, Injury: Out},
		{ID: "qb.bench", Position: QB, Projection: 12},
		{ID: "te.starter", Position: TE, Projection: 3},
		{ID: "te.bench", Position: TE, Projection: 14},
	}
	starters := map[string][]string{
		"QB": {"qb.out"},
		"TE": {"te.starter"},
	}

	swaps, err := OptimizeLineup(DefaultConfig(), settings, candidates, starters)
	require.NoError(t, err)
	require.Len(t, swaps, 2)
	assert.True(t, swaps[0].Forced, "forced swap leads the output")
	assert.Equal(t, "qb.bench", swaps[0].InPlayerID)
	assert.Equal(t, "te.bench", swaps[1].InPlayerID)
}

func TestOptimizeLineupIsDeterministic(t *testing.T) {
	settings := fullPPRSettings(t)
	candidates := []Candidate{
		{ID: "rb.a", Position: RB, Projection: 9},
		{ID: "rb.b", Position: RB, Projection: 9},
		{ID: "rb.c", Position: RB, Projection: 16},
		{ID: "rb.d", Position: RB, Projection: 16},
		{ID: "wr.a", Position: WR, Projection: 7, OnBye: true},
		{ID: "wr.b", Position: WR, Projection: 11},
		{ID: "te.a", Position: TE, Projection: 6, Injury: Questionable},
		{ID: "te.b", Position: TE, Projection: 10},
	}
	starters := map[string][]string{
		"RB": {"rb.a", "rb.b"},
		"WR": {"wr.a"},
		"TE": {"te.a"},
	}

	first, err := OptimizeLineup(DefaultConfig(), settings, candidates, starters)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := OptimizeLineup(DefaultConfig(), settings, candidates, starters)
		require.NoError(t, err)
		require.Equal(t, first, again, "identical inputs must produce identical output")
	}
}

func TestOptimizeLineupDoesNotMutateStarters(t *testing.T) {
	settings := fullPPRSettings(t)
	candidates := []Candidate{
		{ID: "qb.starter", Position: QB, Projection: 5},
		{ID: "qb.bench", Position: QB, Projection: 15},
	}
	starters := map[string][]string{"QB": {"qb.starter"}}

	_, err := OptimizeLineup(DefaultConfig(), settings, candidates, starters)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"QB": {"qb.starter"}}, starters)
}
