package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mfinley/rostercoach/internal/advisor"
	"github.com/mfinley/rostercoach/internal/models"
	"github.com/mfinley/rostercoach/internal/notify"
	"github.com/mfinley/rostercoach/internal/repository/memory"
	"github.com/mfinley/rostercoach/internal/repository/postgres"
)

const metadataMaxAge = 24 * time.Hour

// LeagueAPI is the provider surface the service consumes.
type LeagueAPI interface {
	GetLeagueMetadata() (*models.LeagueMetadata, error)
	GetLeagueSettingsRaw() (map[string]any, error)
	GetTeamRoster(teamKey string, week int) (*models.TeamRoster, error)
	GetFreeAgents() ([]models.RosterEntry, error)
	GetTeamSnapshot(teamKey string) (*models.TeamSnapshot, error)
	FindPlayer(name string, week int) (models.PlayerSearchResult, error)
}

// InboxStore records notifications and audit entries and serves the inbox
// commands.
type InboxStore interface {
	notify.Notifier
	List(ctx context.Context, kind string) ([]postgres.Notification, error)
	MarkRead(ctx context.Context, id string) error
	UnreadCount(ctx context.Context) (int, error)
	RecordAudit(ctx context.Context, engine, detail string) error
}

// Options carries the non-tuning service settings.
type Options struct {
	TeamKey    string
	WaiverType string
	FAABBudget int
	TopWaivers int
	TopTrades  int
}

// AdvisorService glues the provider data to the advisor engines, records the
// outcome through the inbox, and formats reports for the bot.
type AdvisorService struct {
	api   LeagueAPI
	repo  *memory.Repository
	inbox InboxStore
	cfg   advisor.Config
	opts  Options
}

func NewAdvisorService(api LeagueAPI, repo *memory.Repository, inbox InboxStore, cfg advisor.Config, opts Options) *AdvisorService {
	return &AdvisorService{api: api, repo: repo, inbox: inbox, cfg: cfg, opts: opts}
}

// getSettings returns the cached parsed settings, refreshing from the
// provider when absent. Engines are never run without settings.
func (s *AdvisorService) getSettings() (*advisor.LeagueSettings, error) {
	if settings := s.repo.GetSettings(); settings != nil {
		return settings, nil
	}
	raw, err := s.api.GetLeagueSettingsRaw()
	if err != nil {
		return nil, fmt.Errorf("error fetching league settings: %w", err)
	}
	settings, err := advisor.ParseSettings(raw)
	if err != nil {
		return nil, err
	}
	s.repo.SaveSettings(settings)
	return settings, nil
}

func (s *AdvisorService) getMetadata() (*models.LeagueMetadata, error) {
	if metadata := s.repo.GetMetadata(metadataMaxAge); metadata != nil {
		return metadata, nil
	}
	metadata, err := s.api.GetLeagueMetadata()
	if err != nil {
		return nil, fmt.Errorf("error fetching league metadata: %w", err)
	}
	s.repo.SaveMetadata(metadata)
	return metadata, nil
}

func (s *AdvisorService) GetCurrentWeek() (int, error) {
	metadata, err := s.getMetadata()
	if err != nil {
		return 0, err
	}
	return metadata.CurrentWeek, nil
}

// RunLineupCheck fetches the roster, runs the optimizer, and posts one
// notification when it finds swaps. Returns the proposed swaps and the
// notification id (empty when the lineup is already optimal).
func (s *AdvisorService) RunLineupCheck(ctx context.Context) ([]advisor.Swap, string, error) {
	settings, err := s.getSettings()
	if err != nil {
		return nil, "", err
	}
	week, err := s.GetCurrentWeek()
	if err != nil {
		return nil, "", err
	}
	roster, err := s.api.GetTeamRoster(s.opts.TeamKey, week)
	if err != nil {
		return nil, "", fmt.Errorf("error fetching roster: %w", err)
	}

	candidates := make([]advisor.Candidate, len(roster.Entries))
	currentStarters := map[string][]string{}
	for i, entry := range roster.Entries {
		candidates[i] = toCandidate(entry)
		if entry.IsStarter() {
			currentStarters[entry.Slot] = append(currentStarters[entry.Slot], entry.PlayerID)
		}
	}

	swaps, err := advisor.OptimizeLineup(s.cfg, settings, candidates, currentStarters)
	if err != nil {
		return nil, "", err
	}
	if err := s.inbox.RecordAudit(ctx, notify.CategoryLineup, fmt.Sprintf("week %d: %d swaps proposed", week, len(swaps))); err != nil {
		slog.Error("Failed to record audit entry", "error", err)
	}
	if len(swaps) == 0 {
		return nil, "", nil
	}

	payload := map[string]any{"week": week, "swaps": swaps}
	body := make([]string, len(swaps))
	for i, swap := range swaps {
		body[i] = swap.Reason
	}
	id, err := s.inbox.Notify(ctx, notify.CategoryLineup, fmt.Sprintf("Week %d lineup swaps", week), strings.Join(body, "\n"), payload)
	if err != nil {
		return nil, "", err
	}
	return swaps, id, nil
}

// RecommendWaivers runs the waiver ranker and posts exactly one notification
// summarizing the ranked list, returning the recommendations with its id.
func (s *AdvisorService) RecommendWaivers(ctx context.Context) ([]advisor.WaiverRecommendation, string, error) {
	settings, err := s.getSettings()
	if err != nil {
		return nil, "", err
	}
	week, err := s.GetCurrentWeek()
	if err != nil {
		return nil, "", err
	}
	roster, err := s.api.GetTeamRoster(s.opts.TeamKey, week)
	if err != nil {
		return nil, "", fmt.Errorf("error fetching roster: %w", err)
	}
	agents, err := s.api.GetFreeAgents()
	if err != nil {
		return nil, "", fmt.Errorf("error fetching free agents: %w", err)
	}

	startersCount := map[advisor.Position]int{}
	for _, entry := range roster.Entries {
		if entry.IsStarter() {
			startersCount[advisor.Position(strings.ToUpper(entry.Position))]++
		}
	}
	freeAgents := make([]advisor.Candidate, len(agents))
	for i, entry := range agents {
		freeAgents[i] = toCandidate(entry)
	}

	recs, err := advisor.RankFreeAgents(s.cfg, settings, startersCount, freeAgents, s.opts.FAABBudget, s.opts.WaiverType, s.opts.TopWaivers)
	if err != nil {
		return nil, "", err
	}
	if err := s.inbox.RecordAudit(ctx, notify.CategoryWaivers, fmt.Sprintf("week %d: %d targets ranked", week, len(recs))); err != nil {
		slog.Error("Failed to record audit entry", "error", err)
	}

	if len(recs) == 0 {
		id, err := s.inbox.Notify(ctx, notify.CategoryWaivers, "No waiver targets", "No viable free agents were identified.", map[string]any{})
		if err != nil {
			return nil, "", err
		}
		return nil, id, nil
	}

	items := make([]map[string]any, len(recs))
	lines := make([]string, len(recs))
	for i, rec := range recs {
		items[i] = map[string]any{
			"player_id": rec.PlayerID,
			"position":  rec.Position,
			"score":     rec.Score,
			"bid":       rec.Bid,
		}
		line := fmt.Sprintf("%d. %s (%s), score %.1f", i+1, rec.Name, rec.Position, rec.Score)
		if s.opts.WaiverType == advisor.WaiverTypeFAAB {
			line += fmt.Sprintf(", bid $%d", rec.Bid)
		}
		lines[i] = line
	}
	id, err := s.inbox.Notify(ctx, notify.CategoryWaivers, "Waiver targets", strings.Join(lines, "\n"), map[string]any{"items": items})
	if err != nil {
		return nil, "", err
	}
	return recs, id, nil
}

// ProposeTrades runs the trade advisor against another team and posts exactly
// one notification with the surviving proposals.
func (s *AdvisorService) ProposeTrades(ctx context.Context, otherTeamKey string) ([]advisor.TradeProposal, string, error) {
	settings, err := s.getSettings()
	if err != nil {
		return nil, "", err
	}
	mine, err := s.api.GetTeamSnapshot(s.opts.TeamKey)
	if err != nil {
		return nil, "", fmt.Errorf("error fetching own team context: %w", err)
	}
	theirs, err := s.api.GetTeamSnapshot(otherTeamKey)
	if err != nil {
		return nil, "", fmt.Errorf("error fetching other team context: %w", err)
	}

	proposals, err := advisor.ProposeTrades(s.cfg, settings, toTeamState(mine), toTeamState(theirs), s.opts.TopTrades)
	if err != nil {
		return nil, "", err
	}
	if err := s.inbox.RecordAudit(ctx, notify.CategoryTrades, fmt.Sprintf("%s vs %s: %d proposals", mine.TeamKey, theirs.TeamKey, len(proposals))); err != nil {
		slog.Error("Failed to record audit entry", "error", err)
	}

	if len(proposals) == 0 {
		id, err := s.inbox.Notify(ctx, notify.CategoryTrades, "No mutually beneficial trades found", "No 1-for-1 or 2-for-2 swap improved both teams.", map[string]any{})
		if err != nil {
			return nil, "", err
		}
		return nil, id, nil
	}

	lines := make([]string, len(proposals))
	for i, p := range proposals {
		lines[i] = fmt.Sprintf("%d. send [%s] for [%s], %s", i+1, strings.Join(p.Send, ","), strings.Join(p.Receive, ","), p.Rationale)
	}
	id, err := s.inbox.Notify(ctx, notify.CategoryTrades, "Trade proposals", strings.Join(lines, "\n"), map[string]any{"proposals": proposals})
	if err != nil {
		return nil, "", err
	}
	return proposals, id, nil
}

// LineupReport runs the lineup check and formats it for the bot.
func (s *AdvisorService) LineupReport(ctx context.Context) (string, error) {
	swaps, _, err := s.RunLineupCheck(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("📋 *Lineup Check*\n\n")
	if len(swaps) == 0 {
		sb.WriteString("Your lineup is already optimal.")
		return sb.String(), nil
	}
	for _, swap := range swaps {
		marker := "▫️"
		if swap.Forced {
			marker = "🚑"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, swap.Reason))
	}
	return sb.String(), nil
}

// WaiverReport runs the waiver scan and formats it for the bot.
func (s *AdvisorService) WaiverReport(ctx context.Context) (string, error) {
	recs, _, err := s.RecommendWaivers(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("🎯 *Waiver Targets*\n\n")
	if len(recs) == 0 {
		sb.WriteString("No viable free agents this week.")
		return sb.String(), nil
	}
	for i, rec := range recs {
		sb.WriteString(fmt.Sprintf("%d. *%s* (%s)\n", i+1, rec.Name, rec.Position))
		sb.WriteString(fmt.Sprintf("   Score: %.1f\n", rec.Score))
		if s.opts.WaiverType == advisor.WaiverTypeFAAB {
			sb.WriteString(fmt.Sprintf("   Bid: $%d\n", rec.Bid))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// TradeReport runs the trade advisor against another team and formats the
// result for the bot.
func (s *AdvisorService) TradeReport(ctx context.Context, otherTeamKey string) (string, error) {
	proposals, _, err := s.ProposeTrades(ctx, otherTeamKey)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("🤝 *Trade Proposals*\n\n")
	if len(proposals) == 0 {
		sb.WriteString("No mutually beneficial trades found.")
		return sb.String(), nil
	}
	for i, p := range proposals {
		sb.WriteString(fmt.Sprintf("%d. Send *%s* for *%s*\n", i+1, strings.Join(p.Send, ", "), strings.Join(p.Receive, ", ")))
		sb.WriteString(fmt.Sprintf("   %s\n\n", p.Rationale))
	}
	return sb.String(), nil
}

// InboxReport lists pending notifications for the bot.
func (s *AdvisorService) InboxReport(ctx context.Context, kind string) (string, error) {
	notifications, err := s.inbox.List(ctx, kind)
	if err != nil {
		return "", fmt.Errorf("error listing inbox: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("📬 *Inbox*\n\n")
	if len(notifications) == 0 {
		sb.WriteString("Nothing here yet.")
		return sb.String(), nil
	}
	for _, n := range notifications {
		marker := "•"
		if !n.IsRead {
			marker = "🔵"
		}
		sb.WriteString(fmt.Sprintf("%s *%s* [%s]\n%s\n\n", marker, n.Title, n.Kind, n.Body))
	}
	return sb.String(), nil
}

// UnreadSummary reports the pending notification count.
func (s *AdvisorService) UnreadSummary(ctx context.Context) (string, error) {
	count, err := s.inbox.UnreadCount(ctx)
	if err != nil {
		return "", fmt.Errorf("error counting unread notifications: %w", err)
	}
	if count == 0 {
		return "Inbox zero. Nothing awaiting review.", nil
	}
	return fmt.Sprintf("📬 %d notification(s) awaiting review.", count), nil
}

// MarkRead flags a notification as handled by the manager.
func (s *AdvisorService) MarkRead(ctx context.Context, id string) error {
	return s.inbox.MarkRead(ctx, id)
}

// WhoHas answers a fuzzy player lookup.
func (s *AdvisorService) WhoHas(playerName string) (string, error) {
	week, err := s.GetCurrentWeek()
	if err != nil {
		return "", err
	}
	result, err := s.api.FindPlayer(playerName, week)
	if err != nil {
		return "", fmt.Errorf("error checking who has player: %w", err)
	}
	if !result.Found {
		return fmt.Sprintf("🔍 No player found matching '%s'.", playerName), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%s - %s)\n", result.PlayerName, result.Position, result.ProTeam))
	if result.IsRostered {
		sb.WriteString(fmt.Sprintf("*%s*\n", result.TeamName))
		if result.IsStarter {
			sb.WriteString("Starting\n")
		} else {
			sb.WriteString("Bench\n")
		}
	} else {
		sb.WriteString("Free Agent\n")
	}
	sb.WriteString(fmt.Sprintf("%.1f%% Rostered", result.PercentOwned))
	return sb.String(), nil
}

// SettingsReport summarizes the parsed league settings.
func (s *AdvisorService) SettingsReport() (string, error) {
	settings, err := s.getSettings()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("⚙️ *League Settings*\n\n")
	sb.WriteString("*Roster:*\n")
	for _, slot := range settings.RosterSlots {
		sb.WriteString(fmt.Sprintf("  %s x%d\n", slot.Label, slot.Count))
	}
	sb.WriteString(fmt.Sprintf("\nStarting slots: %d\n", settings.StartingSlots()))
	sb.WriteString(fmt.Sprintf("PPR: %.1f\n", settings.Scoring.PPR))
	if settings.FAABBudget > 0 {
		sb.WriteString(fmt.Sprintf("FAAB budget: $%d\n", settings.FAABBudget))
	}
	return sb.String(), nil
}

func toCandidate(entry models.RosterEntry) advisor.Candidate {
	return advisor.Candidate{
		ID:                 entry.PlayerID,
		Name:               entry.Name,
		Position:           advisor.Position(strings.ToUpper(entry.Position)),
		Projection:         entry.Projection,
		Receptions:         entry.Receptions,
		Trend:              entry.Trend,
		ScheduleDifficulty: entry.ScheduleDifficulty,
		Injury:             advisor.InjuryStatus(entry.InjuryStatus),
		OnBye:              entry.OnBye,
	}
}

func toTeamState(snapshot *models.TeamSnapshot) advisor.TeamState {
	state := advisor.TeamState{
		TeamID:             snapshot.TeamKey,
		StartersBySlot:     map[advisor.Position]int{},
		BenchRedundancy:    map[advisor.Position]int{},
		ByeExposure:        snapshot.ByeExposure,
		Injuries:           snapshot.Injuries,
		ScheduleDifficulty: snapshot.ScheduleDifficulty,
		ManagerProfile:     snapshot.ManagerProfile,
		Roster:             make([]advisor.TradePlayer, len(snapshot.Roster)),
	}
	for pos, n := range snapshot.StartersBySlot {
		state.StartersBySlot[advisor.Position(strings.ToUpper(pos))] = n
	}
	for pos, n := range snapshot.BenchRedundancy {
		state.BenchRedundancy[advisor.Position(strings.ToUpper(pos))] = n
	}
	for i, asset := range snapshot.Roster {
		state.Roster[i] = advisor.TradePlayer{
			ID:          asset.PlayerID,
			Name:        asset.Name,
			Position:    advisor.Position(strings.ToUpper(asset.Position)),
			ProjNext3:   asset.ProjNext3,
			PlayoffProj: asset.PlayoffProj,
			ByeNext3:    asset.ByeNext3,
			Injury:      advisor.InjuryStatus(asset.Injury),
			Volatility:  asset.Volatility,
		}
	}
	return state
}
