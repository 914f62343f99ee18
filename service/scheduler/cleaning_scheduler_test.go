package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxihub-service/service/cleaning"
)

func TestStartSchedulerWithoutCron(t *testing.T) {
	t.Setenv("CLEANING_CRON", "")
	t.Setenv("CLEANING_INPUT", "")

	scheduler := NewCleaningScheduler(cleaning.NewService(nil))
	require.NoError(t, scheduler.StartScheduler())

	// 未启用时重复Stop应无副作用
	scheduler.StopScheduler()
	scheduler.StopScheduler()
}

func TestStartSchedulerRequiresInput(t *testing.T) {
	t.Setenv("CLEANING_CRON", "0 3 * * *")
	t.Setenv("CLEANING_INPUT", "")

	scheduler := NewCleaningScheduler(cleaning.NewService(nil))
	assert.Error(t, scheduler.StartScheduler())
}

func TestStartSchedulerRejectsBadSpec(t *testing.T) {
	t.Setenv("CLEANING_CRON", "not a cron spec")
	t.Setenv("CLEANING_INPUT", "/data/trips.csv")

	scheduler := NewCleaningScheduler(cleaning.NewService(nil))
	assert.Error(t, scheduler.StartScheduler())
}

func TestStartSchedulerTwice(t *testing.T) {
	t.Setenv("CLEANING_CRON", "@daily")
	t.Setenv("CLEANING_INPUT", "/data/trips.csv")

	scheduler := NewCleaningScheduler(cleaning.NewService(nil))
	require.NoError(t, scheduler.StartScheduler())
	defer scheduler.StopScheduler()

	assert.Error(t, scheduler.StartScheduler())
}
