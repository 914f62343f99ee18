package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayIndexMondayIsZero(t *testing.T) {
	// 2016-03-14是周一
	monday := time.Date(2016, 3, 14, 10, 0, 0, 0, time.UTC)

	for offset := 0; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset)
		assert.Equal(t, offset, WeekdayIndex(day), "date=%s", day.Format("2006-01-02"))
	}
}

func TestExclusionLogCapsSnapshots(t *testing.T) {
	log := &ExclusionLog{Records: []map[string]string{}}

	batch := make([]*TripRecord, 0, 1200)
	for i := 0; i < 1200; i++ {
		batch = append(batch, &TripRecord{
			Raw: map[string]string{"id": fmt.Sprintf("id%d", i)},
		})
	}
	log.Append(batch)

	assert.Equal(t, 1200, log.Count)
	assert.Len(t, log.Records, ExclusionLogLimit)
	assert.Equal(t, "id0", log.Records[0]["id"])
	assert.Equal(t, "id999", log.Records[ExclusionLogLimit-1]["id"])
}

func TestPassengerCountInt(t *testing.T) {
	count := 3.0
	record := &TripRecord{PassengerCount: &count}
	assert.Equal(t, 3, record.PassengerCountInt())

	empty := &TripRecord{}
	assert.Equal(t, 0, empty.PassengerCountInt())
}
