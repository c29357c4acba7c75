package advisor

import (
	"fmt"
	"sort"
	"strings"
)

// Swap proposes starting InPlayerID in place of OutPlayerID at Slot.
type Swap struct {
	Slot        string
	InPlayerID  string
	OutPlayerID string
	Reason      string
	Delta       float64
	Forced      bool
}

// pendingSeat is a started player still open for replacement during
// allocation.
type pendingSeat struct {
	slot     string
	outID    string
	outScore float64
	forced   bool
	pool     []Candidate
}

// OptimizeLineup proposes slot-legal swaps that increase expected points.
// Players on bye or carrying a hard-out injury tag are never recommended in;
// an incumbent on bye or hard-out is replaced regardless of margin, ahead of
// all value swaps. Each incoming candidate is claimed by at most one slot,
// allocated greedily by descending score gap with deterministic tie-breaks,
// so identical inputs always produce identical output. currentStarters maps
// slot label to the started player ids and is not mutated.
func OptimizeLineup(cfg Config, settings *LeagueSettings, candidates []Candidate, currentStarters map[string][]string) ([]Swap, error) {
	if settings == nil {
		return nil, ErrMissingSettings
	}

	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	starting := map[string]bool{}
	for _, ids := range currentStarters {
		for _, id := range ids {
			starting[id] = true
		}
	}

	// Per-slot pools of startable, slot-eligible, non-starting candidates,
	// best first.
	pools := map[string][]Candidate{}
	for _, slot := range settings.RosterSlots {
		if slot.IsBench() {
			continue
		}
		var pool []Candidate
		for _, c := range candidates {
			if starting[c.ID] || c.OnBye || c.Injury.HardOut() {
				continue
			}
			if !slotEligible(slot.Label, c.Position) {
				continue
			}
			pool = append(pool, c)
		}
		sort.Slice(pool, func(i, j int) bool {
			si, sj := adjustedScore(cfg, pool[i], settings), adjustedScore(cfg, pool[j], settings)
			if si != sj {
				return si > sj
			}
			return pool[i].ID < pool[j].ID
		})
		pools[slot.Label] = pool
	}

	var seats []pendingSeat
	for _, slot := range settings.RosterSlots {
		if slot.IsBench() {
			continue
		}
		outIDs := append([]string(nil), currentStarters[slot.Label]...)
		sort.Strings(outIDs)
		for _, outID := range outIDs {
			seat := pendingSeat{slot: slot.Label, outID: outID, pool: pools[slot.Label]}
			if inc, ok := byID[outID]; ok {
				seat.outScore = adjustedScore(cfg, inc, settings)
				seat.forced = inc.OnBye || inc.Injury.HardOut()
			}
			seats = append(seats, seat)
		}
	}

	swaps := allocateSwaps(cfg, settings, seats, byID)

	sort.SliceStable(swaps, func(i, j int) bool {
		if swaps[i].Forced != swaps[j].Forced {
			return swaps[i].Forced
		}
		if swaps[i].Delta != swaps[j].Delta {
			return swaps[i].Delta > swaps[j].Delta
		}
		return swaps[i].InPlayerID < swaps[j].InPlayerID
	})
	return swaps, nil
}

// allocateSwaps greedily resolves slot contention: each round picks the best
// remaining (seat, alternative) pairing, claims the incoming candidate, and
// repeats until no proposal clears its bar.
func allocateSwaps(cfg Config, settings *LeagueSettings, seats []pendingSeat, byID map[string]Candidate) []Swap {
	claimed := map[string]bool{}
	replaced := map[string]bool{}
	var swaps []Swap

	for {
		bestIdx := -1
		var bestIn Candidate
		var bestGap float64
		for i, seat := range seats {
			if replaced[seat.outID] {
				continue
			}
			alt, ok := bestAvailable(seat.pool, claimed)
			if !ok {
				continue
			}
			gap := round2(adjustedScore(cfg, alt, settings) - seat.outScore)
			if !seat.forced && gap < cfg.SwapMargin {
				continue
			}
			if bestIdx < 0 || betterProposal(seats[i], gap, alt, seats[bestIdx], bestGap, bestIn, cfg, settings) {
				bestIdx, bestIn, bestGap = i, alt, gap
			}
		}
		if bestIdx < 0 {
			return swaps
		}

		seat := seats[bestIdx]
		claimed[bestIn.ID] = true
		replaced[seat.outID] = true
		swaps = append(swaps, Swap{
			Slot:        seat.slot,
			InPlayerID:  bestIn.ID,
			OutPlayerID: seat.outID,
			Reason:      swapReason(seat, bestIn, bestGap, byID),
			Delta:       bestGap,
			Forced:      seat.forced,
		})
	}
}

// betterProposal orders contending proposals: forced first, then higher gap,
// then higher-scored candidate, then lexicographic player id.
func betterProposal(a pendingSeat, gapA float64, inA Candidate, b pendingSeat, gapB float64, inB Candidate, cfg Config, settings *LeagueSettings) bool {
	if a.forced != b.forced {
		return a.forced
	}
	if gapA != gapB {
		return gapA > gapB
	}
	sa, sb := adjustedScore(cfg, inA, settings), adjustedScore(cfg, inB, settings)
	if sa != sb {
		return sa > sb
	}
	if inA.ID != inB.ID {
		return inA.ID < inB.ID
	}
	return a.outID < b.outID
}

func bestAvailable(pool []Candidate, claimed map[string]bool) (Candidate, bool) {
	for _, c := range pool {
		if !claimed[c.ID] {
			return c, true
		}
	}
	return Candidate{}, false
}

func swapReason(seat pendingSeat, in Candidate, gap float64, byID map[string]Candidate) string {
	inc, known := byID[seat.outID]
	if seat.forced {
		cause := "unavailable"
		if inc.OnBye {
			cause = "on bye"
		} else if inc.Injury.HardOut() {
			cause = fmt.Sprintf("ruled %s", strings.ToUpper(string(inc.Injury)))
		}
		return fmt.Sprintf("%s: %s is %s, start %s", seat.slot, seat.outID, cause, in.ID)
	}
	outName := seat.outID
	if known && inc.Name != "" {
		outName = inc.Name
	}
	inName := in.ID
	if in.Name != "" {
		inName = in.Name
	}
	return fmt.Sprintf("%s: %s over %s (+%.1f)", seat.slot, inName, outName, gap)
}

// slotEligible reports whether a position may fill the labeled slot.
func slotEligible(label string, pos Position) bool {
	if eligible, ok := flexEligibility[label]; ok {
		for _, p := range eligible {
			if p == pos {
				return true
			}
		}
		return false
	}
	return normalizePosition(label) == pos
}

// adjustedScore discounts questionable players so they rank below healthy
// alternatives with equal projections.
func adjustedScore(cfg Config, c Candidate, settings *LeagueSettings) float64 {
	score := Score(c, settings)
	if InjuryStatus(strings.ToUpper(string(c.Injury))) == Questionable {
		score = round2(score * cfg.QuestionableFactor)
	}
	return score
}
