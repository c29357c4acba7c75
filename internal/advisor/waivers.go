package advisor

import (
	"math"
	"sort"
)

// Waiver budget modes.
const (
	WaiverTypeFAAB     = "faab"
	WaiverTypePriority = "priority"
)

// WaiverRecommendation is one ranked pickup. Bid is zero under priority
// waivers, where rank order alone conveys priority.
type WaiverRecommendation struct {
	PlayerID string
	Name     string
	Position Position
	Score    float64
	Bid      int

	trend    float64
	schedule float64
}

// RankFreeAgents scores free agents against the roster's positional needs and
// returns the top pickups in descending adjusted score. Under FAAB waivers
// each recommendation carries a bid that grows with score, no single bid
// exceeds the configured ceiling fraction of the remaining budget, and the
// bids never sum past faabRemaining. Pure: the notification side effect lives
// with the caller.
func RankFreeAgents(cfg Config, settings *LeagueSettings, startersCount map[Position]int, freeAgents []Candidate, faabRemaining int, waiverType string, topN int) ([]WaiverRecommendation, error) {
	if settings == nil {
		return nil, ErrMissingSettings
	}
	if waiverType != WaiverTypeFAAB && waiverType != WaiverTypePriority {
		return nil, &InvalidWaiverTypeError{Type: waiverType}
	}

	recs := make([]WaiverRecommendation, 0, len(freeAgents))
	for _, fa := range freeAgents {
		score := Score(fa, settings)
		score += cfg.TrendWeight * fa.Trend
		score += cfg.ScheduleWeight * (2.0 - fa.ScheduleDifficulty)
		if startersCount[fa.Position] < settings.StartingSlotCapacity(fa.Position) {
			score += cfg.NeedBonus
		}
		recs = append(recs, WaiverRecommendation{
			PlayerID: fa.ID,
			Name:     fa.Name,
			Position: fa.Position,
			Score:    round2(score),
			trend:    fa.Trend,
			schedule: fa.ScheduleDifficulty,
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		if recs[i].trend != recs[j].trend {
			return recs[i].trend > recs[j].trend
		}
		if recs[i].schedule != recs[j].schedule {
			return recs[i].schedule < recs[j].schedule
		}
		return recs[i].PlayerID < recs[j].PlayerID
	})

	if topN < len(recs) {
		if topN < 0 {
			topN = 0
		}
		recs = recs[:topN]
	}

	if waiverType == WaiverTypeFAAB {
		allocateBids(cfg, recs, faabRemaining)
	}
	return recs, nil
}

// allocateBids splits the remaining budget proportionally to score. Floor
// division keeps the total within budget without a second normalization pass,
// and the per-bid ceiling clamp preserves monotonicity in score.
func allocateBids(cfg Config, recs []WaiverRecommendation, faabRemaining int) {
	if faabRemaining <= 0 {
		return
	}
	ceiling := int(math.Floor(cfg.FAABCeilingFraction * float64(faabRemaining)))

	total := 0.0
	for _, r := range recs {
		if r.Score > 0 {
			total += r.Score
		}
	}
	if total <= 0 {
		return
	}

	for i, r := range recs {
		if r.Score <= 0 {
			continue
		}
		bid := int(math.Floor(float64(faabRemaining) * r.Score / total))
		if bid > ceiling {
			bid = ceiling
		}
		recs[i].Bid = bid
	}
}
