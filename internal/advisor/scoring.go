package advisor

import (
	"math"
	"strings"
)

// InjuryStatus is the availability tag carried on a candidate.
type InjuryStatus string

const (
	Healthy      InjuryStatus = ""
	Questionable InjuryStatus = "Q"
	Doubtful     InjuryStatus = "D"
	Out          InjuryStatus = "OUT"
	Suspended    InjuryStatus = "SUSPENDED"
)

// HardOut reports whether the status disqualifies the player from starting.
// Questionable reduces priority but does not exclude.
func (s InjuryStatus) HardOut() bool {
	switch InjuryStatus(strings.ToUpper(string(s))) {
	case Doubtful, Out, Suspended, "IR":
		return true
	}
	return false
}

// Candidate is a player record as consumed by the engines. Candidates are
// built fresh per invocation from upstream data and never mutated; the
// engines derive scores instead of writing back.
type Candidate struct {
	ID       string
	Name     string
	Position Position

	// Projection is the base weekly point projection. Zero when absent;
	// a full stat line in Stats is scored instead if provided.
	Projection float64

	// Receptions is the expected reception count, used for the PPR
	// adjustment.
	Receptions float64

	// Trend is the recent usage/points delta. ScheduleDifficulty ranges
	// 0 (easy) to 3 (hard) over the upcoming stretch.
	Trend              float64
	ScheduleDifficulty float64

	Injury InjuryStatus
	OnBye  bool

	Stats map[string]float64
}

// Score computes the settings-aware fantasy value of a candidate. The result
// is monotonic in the base projection: a strictly larger projection never
// scores lower, all else equal. A stat line acts as a floor under the base
// projection, so providing one can only raise the score. Missing numeric
// fields contribute zero.
func Score(c Candidate, settings *LeagueSettings) float64 {
	base := c.Projection
	if len(c.Stats) > 0 {
		if computed := ComputePoints(c.Position, c.Stats, settings); computed > base {
			base = computed
		}
	}
	return round2(base + settings.Scoring.PPR*c.Receptions)
}

// ComputePoints scores a full stat line under the league's rules. Stats keys
// follow the provider's naming (pass_td, rush_yd, rec, sack, points_allowed,
// fg_0-39, xp, ...); absent stats count as zero.
func ComputePoints(pos Position, stats map[string]float64, settings *LeagueSettings) float64 {
	rules := settings.Scoring
	switch pos {
	case DST:
		return round2(dstPoints(stats, rules))
	case K:
		return round2(kickerPoints(stats, rules))
	default:
		return round2(offensePoints(stats, rules))
	}
}

func offensePoints(stats map[string]float64, rules ScoringRules) float64 {
	total := 0.0
	total += rules.PassTD * stats["pass_td"]
	total += rules.PassYd * stats["pass_yd"]
	total += rules.PassInt * stats["pass_int"]
	total += rules.RushTD * stats["rush_td"]
	total += rules.RushYd * stats["rush_yd"]
	total += rules.RecTD * stats["rec_td"]
	total += rules.RecYd * stats["rec_yd"]
	total += rules.PPR * stats["rec"]
	total += rules.FumbleLost * stats["fumble_lost"]

	for _, bonus := range rules.Bonuses {
		if stats[bonus.Stat] >= bonus.Threshold {
			total += bonus.Points
		}
	}
	return total
}

func kickerPoints(stats map[string]float64, rules ScoringRules) float64 {
	total := rules.ExtraPoint * stats["xp"]
	for bucket, points := range rules.FieldGoal {
		total += points * stats["fg_"+bucket]
	}
	return total
}

func dstPoints(stats map[string]float64, rules ScoringRules) float64 {
	total := 0.0
	total += rules.DSTTD * stats["td"]
	total += rules.DSTSack * stats["sack"]
	total += rules.DSTInt * stats["int"]
	total += rules.DSTFumRec * stats["fum_rec"]
	total += bucketPoints(stats["points_allowed"], rules.DSTPointsAllowed)
	return total
}

// bucketPoints resolves a bucketed table with keys like "0", "1-6" and "35+".
func bucketPoints(value float64, table map[string]float64) float64 {
	for key, points := range table {
		switch {
		case strings.HasSuffix(key, "+"):
			if low := asFloat(strings.TrimSuffix(key, "+")); value >= low {
				return points
			}
		case strings.Contains(key, "-"):
			parts := strings.SplitN(key, "-", 2)
			if asFloat(parts[0]) <= value && value <= asFloat(parts[1]) {
				return points
			}
		default:
			if value == asFloat(key) {
				return points
			}
		}
	}
	return 0.0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
