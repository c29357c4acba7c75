package scheduler

import (
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfinley/rostercoach/internal/config"
)

func testSchedule() config.Schedule {
	return config.Schedule{
		Timezone:   "America/Chicago",
		LineupCron: "0 9 * * SUN",
		WaiverCron: "0 8 * * TUE",
		TradeCron:  "0 9 * * WED",
	}
}

func noopSend(string) error { return nil }

func TestNewSchedulerRejectsInvalidCron(t *testing.T) {
	schedule := testSchedule()
	schedule.WaiverCron = "not a cron spec"

	_, err := NewScheduler(nil, noopSend, schedule, nil, clockwork.NewFakeClock())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron expression")
}

func TestNewSchedulerRejectsInvalidTimezone(t *testing.T) {
	schedule := testSchedule()
	schedule.Timezone = "Mars/Olympus_Mons"

	_, err := NewScheduler(nil, noopSend, schedule, nil, clockwork.NewFakeClock())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule timezone")
}

func TestSchedulerStartAndStop(t *testing.T) {
	sched, err := NewScheduler(nil, noopSend, testSchedule(), []string{"nfl.l.12345.t.2"}, clockwork.NewFakeClock())
	require.NoError(t, err)

	require.NoError(t, sched.Start())
	assert.NoError(t, sched.Stop())
}
