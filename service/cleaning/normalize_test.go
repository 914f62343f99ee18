package cleaning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxihub-service/service/models"
	"taxihub-service/testutil"
)

func TestNormalizerRoundsToFourDecimals(t *testing.T) {
	record := testutil.NewTripRecord("t1", func(r *models.TripRecord) {
		r.PickupLongitude = floatPtr(-73.98215532)
		r.TripDistance = floatPtr(2.123456)
		r.TipPercentage = floatPtr(16.66666)
	})

	stats := models.CleaningStatistics{}
	kept, _, err := (&Normalizer{}).Apply([]*models.TripRecord{record}, fullSchema(), &stats)
	require.NoError(t, err)
	require.Len(t, kept, 1)

	assert.Equal(t, -73.9822, *kept[0].PickupLongitude)
	assert.Equal(t, 2.1235, *kept[0].TripDistance)
	assert.Equal(t, 16.6667, *kept[0].TipPercentage)
}

func TestNormalizerTruncatesPassengerCount(t *testing.T) {
	record := testutil.NewTripRecord("t1", func(r *models.TripRecord) {
		r.PassengerCount = floatPtr(2.9)
	})

	stats := models.CleaningStatistics{}
	kept, _, err := (&Normalizer{}).Apply([]*models.TripRecord{record}, fullSchema(), &stats)
	require.NoError(t, err)

	assert.Equal(t, 2.0, *kept[0].PassengerCount)
	assert.Equal(t, 2, kept[0].PassengerCountInt())
}

func TestNormalizerStableSortByPickupTime(t *testing.T) {
	base := time.Date(2016, 3, 14, 12, 0, 0, 0, time.UTC)

	later := testutil.NewTripRecord("later", func(r *models.TripRecord) {
		pickup := base.Add(time.Hour)
		dropoff := pickup.Add(10 * time.Minute)
		r.PickupDatetime = &pickup
		r.DropoffDatetime = &dropoff
	})
	tiedA := testutil.NewTripRecord("tied_a", func(r *models.TripRecord) {
		pickup := base
		dropoff := pickup.Add(10 * time.Minute)
		r.PickupDatetime = &pickup
		r.DropoffDatetime = &dropoff
	})
	tiedB := testutil.NewTripRecord("tied_b", func(r *models.TripRecord) {
		pickup := base
		dropoff := pickup.Add(15 * time.Minute)
		r.PickupDatetime = &pickup
		r.DropoffDatetime = &dropoff
	})

	stats := models.CleaningStatistics{}
	kept, _, err := (&Normalizer{}).Apply(
		[]*models.TripRecord{later, tiedA, tiedB}, fullSchema(), &stats)
	require.NoError(t, err)

	// 相同上车时间保持输入相对顺序
	require.Len(t, kept, 3)
	assert.Equal(t, "tied_a", kept[0].ID)
	assert.Equal(t, "tied_b", kept[1].ID)
	assert.Equal(t, "later", kept[2].ID)
	assert.Equal(t, 3, stats.FinalCount)
}
