package advisor

// Config carries the tuning thresholds shared by the engines. Callers pass it
// explicitly on every invocation so the engines stay pure and independently
// testable; nothing in this package reads process-wide state.
type Config struct {
	// SwapMargin is the minimum score improvement before a non-forced
	// lineup swap is proposed.
	SwapMargin float64

	// QuestionableFactor discounts a questionable player's score when
	// ranking lineup alternatives. Questionable reduces priority but does
	// not exclude.
	QuestionableFactor float64

	// NeedBonus is added to a free agent's score when the roster starts
	// fewer players at that position than the settings allow.
	NeedBonus float64

	// TrendWeight and ScheduleWeight scale the waiver ranker's recent-usage
	// and upcoming-schedule modifiers.
	TrendWeight    float64
	ScheduleWeight float64

	// FAABCeilingFraction caps any single recommended bid at this fraction
	// of the remaining budget.
	FAABCeilingFraction float64

	// PlayoffWeight scales the playoff-horizon projection term in trade
	// scoring.
	PlayoffWeight float64

	// ByeReliefBonus credits a trade side when the incoming players remove
	// a bye-week zero-score exposure.
	ByeReliefBonus float64

	// RiskWeight penalizes the volatility of incoming trade players.
	RiskWeight float64
}

// DefaultConfig returns the calibrated defaults. Deployments override them
// through the config package.
func DefaultConfig() Config {
	return Config{
		SwapMargin:          2.0,
		QuestionableFactor:  0.85,
		NeedBonus:           2.0,
		TrendWeight:         0.5,
		ScheduleWeight:      1.0,
		FAABCeilingFraction: 0.25,
		PlayoffWeight:       0.5,
		ByeReliefBonus:      2.5,
		RiskWeight:          0.3,
	}
}
