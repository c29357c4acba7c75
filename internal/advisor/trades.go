package advisor

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// TradePlayer is a roster entry as seen by the trade advisor, carrying a
// short-horizon and a playoff-horizon projection.
type TradePlayer struct {
	ID          string
	Name        string
	Position    Position
	ProjNext3   float64
	PlayoffProj float64
	ByeNext3    int
	Injury      InjuryStatus
	Volatility  float64
}

// TeamState summarizes one side of a potential trade. ManagerProfile is an
// opaque pass-through used only as a tie-break hint.
type TeamState struct {
	TeamID             string
	StartersBySlot     map[Position]int
	BenchRedundancy    map[Position]int
	ByeExposure        int
	Injuries           int
	ScheduleDifficulty float64
	ManagerProfile     map[string]string
	Roster             []TradePlayer
}

// TradeProposal is a candidate swap between the two teams. ScoreFrom and
// ScoreTo are the net gains for the offering and receiving side; both are
// non-negative for every surfaced proposal. Score is the smaller of the two.
type TradeProposal struct {
	OfferFrom string
	OfferTo   string
	Send      []string
	Receive   []string
	ScoreFrom float64
	ScoreTo   float64
	Score     float64
	Rationale string
}

const (
	byePenaltyPerWeek   = 3.0
	hardInjuryPenalty   = 2.0
	questionablePenalty = 1.0
	maxPackagePairs     = 6
)

// ProposeTrades enumerates 1-for-1 and 2-for-2 swaps pairing each team's
// positional surplus against the other team's needs, scores each side's net
// gain, and keeps only proposals where both sides come out non-negative. No
// one-sided proposal is surfaced, however large the winning side's gain.
// Results rank by the smaller side's gain descending and truncate to topK.
// Advisory only: nothing here executes a trade.
func ProposeTrades(cfg Config, settings *LeagueSettings, teamA, teamB TeamState, topK int) ([]TradeProposal, error) {
	if settings == nil {
		return nil, ErrMissingSettings
	}

	needsA := positionalNeeds(teamA, settings)
	needsB := positionalNeeds(teamB, settings)

	fromA := tradables(teamA, needsB)
	fromB := tradables(teamB, needsA)

	var proposals []TradeProposal
	consider := func(sendA, sendB []TradePlayer) {
		deltaA := sideDelta(cfg, teamA, needsA, sendB, sendA)
		deltaB := sideDelta(cfg, teamB, needsB, sendA, sendB)
		if deltaA < 0 || deltaB < 0 {
			return
		}
		proposals = append(proposals, TradeProposal{
			OfferFrom: teamA.TeamID,
			OfferTo:   teamB.TeamID,
			Send:      playerIDs(sendA),
			Receive:   playerIDs(sendB),
			ScoreFrom: deltaA,
			ScoreTo:   deltaB,
			Score:     math.Min(deltaA, deltaB),
			Rationale: fmt.Sprintf("%s nets %+.1f, %s nets %+.1f", teamA.TeamID, deltaA, teamB.TeamID, deltaB),
		})
	}

	for _, pa := range fromA {
		for _, pb := range fromB {
			consider([]TradePlayer{pa}, []TradePlayer{pb})
		}
	}

	pairsA := packagePairs(fromA, teamA)
	pairsB := packagePairs(fromB, teamB)
	for _, sa := range pairsA {
		for _, sb := range pairsB {
			consider(sa, sb)
		}
	}

	sortProposals(proposals, teamA, teamB)
	if topK < len(proposals) {
		if topK < 0 {
			topK = 0
		}
		proposals = proposals[:topK]
	}
	return proposals, nil
}

// positionalNeeds marks positions where the team starts fewer players than
// the settings allow, plus positions exposed to an upcoming bye.
func positionalNeeds(team TeamState, settings *LeagueSettings) map[Position]float64 {
	needs := map[Position]float64{}
	for _, pos := range settings.StartingPositions() {
		gap := settings.StartingSlotCapacity(pos) - team.StartersBySlot[pos]
		if gap > 0 {
			needs[pos] = float64(gap)
		}
	}
	if team.ByeExposure > 0 {
		for _, p := range team.Roster {
			if p.ByeNext3 > 0 && needs[p.Position] < 1 {
				needs[p.Position] = 1
			}
		}
	}
	return needs
}

// tradables returns the sender's players at positions that are surplus for
// the sender and needed by the receiver, most valuable first. Restricting the
// pool to surplus keeps enumeration at O(needs x surplus) and guarantees the
// sender's bench depth never drops below its redundancy floor.
func tradables(sender TeamState, receiverNeeds map[Position]float64) []TradePlayer {
	var out []TradePlayer
	for _, p := range sender.Roster {
		if sender.BenchRedundancy[p.Position] <= 0 {
			continue
		}
		if receiverNeeds[p.Position] <= 0 {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProjNext3 != out[j].ProjNext3 {
			return out[i].ProjNext3 > out[j].ProjNext3
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// packagePairs builds 2-player packages from the tradable pool, capped to
// keep the search bounded. A same-position pair needs redundancy of at least
// two so the package cannot hollow out the position.
func packagePairs(pool []TradePlayer, team TeamState) [][]TradePlayer {
	var pairs [][]TradePlayer
	for i := 0; i < len(pool) && len(pairs) < maxPackagePairs; i++ {
		for j := i + 1; j < len(pool) && len(pairs) < maxPackagePairs; j++ {
			if pool[i].Position == pool[j].Position && team.BenchRedundancy[pool[i].Position] < 2 {
				continue
			}
			pairs = append(pairs, []TradePlayer{pool[i], pool[j]})
		}
	}
	return pairs
}

// sideDelta scores one side's net change: incoming minus outgoing value for
// filled-need slots, a playoff-horizon weighted term, bye relief when the
// incoming players remove a zero-score exposure, and a volatility risk
// penalty on what arrives.
func sideDelta(cfg Config, team TeamState, needs map[Position]float64, incoming, outgoing []TradePlayer) float64 {
	in, out := 0.0, 0.0
	playoffIn, playoffOut := 0.0, 0.0
	risk := 0.0
	for _, p := range incoming {
		in += playerValue(cfg, p, team, needs[p.Position])
		playoffIn += p.PlayoffProj
		risk += p.Volatility
	}
	for _, p := range outgoing {
		out += playerValue(cfg, p, team, needs[p.Position])
		playoffOut += p.PlayoffProj
	}

	delta := in - out
	delta += cfg.PlayoffWeight * (playoffIn - playoffOut)
	delta -= cfg.RiskWeight * risk
	if team.ByeExposure > 0 && anyWithoutBye(incoming) {
		delta += cfg.ByeReliefBonus
	}
	return round2(delta)
}

func playerValue(cfg Config, p TradePlayer, team TeamState, need float64) float64 {
	value := p.ProjNext3
	value -= byePenaltyPerWeek * float64(p.ByeNext3)
	if p.Injury.HardOut() {
		value -= hardInjuryPenalty
	} else if InjuryStatus(strings.ToUpper(string(p.Injury))) == Questionable {
		value -= questionablePenalty
	}
	value -= p.Volatility
	value -= team.ScheduleDifficulty
	value += cfg.NeedBonus * need
	return value
}

func anyWithoutBye(players []TradePlayer) bool {
	for _, p := range players {
		if p.ByeNext3 == 0 {
			return true
		}
	}
	return false
}

func playerIDs(players []TradePlayer) []string {
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}

// sortProposals favors the most mutually beneficial proposals first. When the
// minimum gain ties, the larger combined gain wins; a "risk":"low" manager
// profile on either side then prefers the calmer package, as a hint only.
func sortProposals(proposals []TradeProposal, teamA, teamB TeamState) {
	riskAverse := teamA.ManagerProfile["risk"] == "low" || teamB.ManagerProfile["risk"] == "low"
	volByID := map[string]float64{}
	for _, p := range append(append([]TradePlayer(nil), teamA.Roster...), teamB.Roster...) {
		volByID[p.ID] = p.Volatility
	}
	packageVol := func(ids []string) float64 {
		total := 0.0
		for _, id := range ids {
			total += volByID[id]
		}
		return total
	}

	sort.SliceStable(proposals, func(i, j int) bool {
		if proposals[i].Score != proposals[j].Score {
			return proposals[i].Score > proposals[j].Score
		}
		totalI := proposals[i].ScoreFrom + proposals[i].ScoreTo
		totalJ := proposals[j].ScoreFrom + proposals[j].ScoreTo
		if totalI != totalJ {
			return totalI > totalJ
		}
		if riskAverse {
			volI := packageVol(proposals[i].Send) + packageVol(proposals[i].Receive)
			volJ := packageVol(proposals[j].Send) + packageVol(proposals[j].Receive)
			if volI != volJ {
				return volI < volJ
			}
		}
		sendI, sendJ := strings.Join(proposals[i].Send, ","), strings.Join(proposals[j].Send, ",")
		if sendI != sendJ {
			return sendI < sendJ
		}
		return strings.Join(proposals[i].Receive, ",") < strings.Join(proposals[j].Receive, ",")
	})
}
