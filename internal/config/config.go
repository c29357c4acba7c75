package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/mfinley/rostercoach/internal/advisor"
)

type Config struct {
	TelegramBot TelegramBot
	YahooAPI    YahooAPI
	Database    Database
	Schedule    Schedule
	Advisor     Advisor
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type YahooAPI struct {
	ClientID     string `envconfig:"YAHOO_CLIENT_ID" required:"true"`
	ClientSecret string `envconfig:"YAHOO_CLIENT_SECRET" required:"true"`
	RefreshToken string `envconfig:"YAHOO_REFRESH_TOKEN" required:"true"`
	LeagueKey    string `envconfig:"LEAGUE_KEY" required:"true"`
	TeamKey      string `envconfig:"TEAM_KEY" required:"true"`

	// TradeTargets lists the team keys the scheduled trade scan runs
	// against.
	TradeTargets []string `envconfig:"TRADE_TARGETS"`
}

type Database struct {
	URL string `envconfig:"DATABASE_URL" required:"true"`
}

// Schedule holds the cron expressions for the recurring engine runs, in the
// league's timezone.
type Schedule struct {
	Timezone   string `envconfig:"SCHEDULE_TZ" default:"America/Chicago"`
	LineupCron string `envconfig:"LINEUP_CRON" default:"0 9 * * SUN"`
	WaiverCron string `envconfig:"WAIVER_CRON" default:"0 8 * * TUE"`
	TradeCron  string `envconfig:"TRADE_CRON" default:"0 9 * * WED"`
}

// Advisor exposes the engine tuning thresholds. Defaults reflect current
// product calibration; the values flow into advisor.Config and are never read
// from inside the engines.
type Advisor struct {
	SwapMargin          float64 `envconfig:"SWAP_MARGIN" default:"2.0"`
	QuestionableFactor  float64 `envconfig:"QUESTIONABLE_FACTOR" default:"0.85"`
	NeedBonus           float64 `envconfig:"NEED_BONUS" default:"2.0"`
	TrendWeight         float64 `envconfig:"TREND_WEIGHT" default:"0.5"`
	ScheduleWeight      float64 `envconfig:"SCHEDULE_WEIGHT" default:"1.0"`
	FAABCeilingFraction float64 `envconfig:"FAAB_CEILING_FRACTION" default:"0.25"`
	PlayoffWeight       float64 `envconfig:"PLAYOFF_WEIGHT" default:"0.5"`
	ByeReliefBonus      float64 `envconfig:"BYE_RELIEF_BONUS" default:"2.5"`
	RiskWeight          float64 `envconfig:"RISK_WEIGHT" default:"0.3"`
	WaiverType          string  `envconfig:"WAIVER_TYPE" default:"faab"`
	FAABRemaining       int     `envconfig:"FAAB_REMAINING" default:"100"`
	TopWaivers          int     `envconfig:"TOP_WAIVERS" default:"5"`
	TopTrades           int     `envconfig:"TOP_TRADES" default:"3"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// EngineConfig maps the environment tuning onto the advisor's config value.
func (c *Config) EngineConfig() advisor.Config {
	return advisor.Config{
		SwapMargin:          c.Advisor.SwapMargin,
		QuestionableFactor:  c.Advisor.QuestionableFactor,
		NeedBonus:           c.Advisor.NeedBonus,
		TrendWeight:         c.Advisor.TrendWeight,
		ScheduleWeight:      c.Advisor.ScheduleWeight,
		FAABCeilingFraction: c.Advisor.FAABCeilingFraction,
		PlayoffWeight:       c.Advisor.PlayoffWeight,
		ByeReliefBonus:      c.Advisor.ByeReliefBonus,
		RiskWeight:          c.Advisor.RiskWeight,
	}
}
