package cleaning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxihub-service/service/models"
	"taxihub-service/testutil"
)

func deriveOne(t *testing.T, record *models.TripRecord, schema *models.DatasetSchema) *models.TripRecord {
	t.Helper()
	duration := record.DropoffDatetime.Sub(*record.PickupDatetime).Seconds()
	record.TripDurationSeconds = &duration

	kept, excluded, err := (&FeatureDeriver{}).Apply(
		[]*models.TripRecord{record}, schema, &models.CleaningStatistics{})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	require.Empty(t, excluded)
	return kept[0]
}

func TestFeatureDeriverSpeedClipping(t *testing.T) {
	// 80.5英里1小时约129.6km/h，超过物理上限
	record := testutil.NewTripRecord("fast", func(r *models.TripRecord) {
		r.TripDistance = floatPtr(80.5)
		shifted := r.PickupDatetime.Add(time.Hour)
		r.DropoffDatetime = &shifted
	})

	derived := deriveOne(t, record, fullSchema())

	require.NotNil(t, derived.TripDistanceKM)
	assert.Nil(t, derived.TripSpeedKMH)
}

func TestFeatureDeriverDistanceCategoryBoundaries(t *testing.T) {
	cases := []struct {
		miles    float64
		expected string
	}{
		{0.99, "very_short"},
		{1.0, "short"},
		{2.99, "short"},
		{3.0, "medium"},
		{9.99, "medium"},
		{10.0, "long"},
	}

	for _, tc := range cases {
		record := testutil.NewTripRecord("t1", func(r *models.TripRecord) {
			r.TripDistance = floatPtr(tc.miles)
		})

		derived := deriveOne(t, record, fullSchema())
		assert.Equal(t, tc.expected, derived.DistanceCategory, "miles=%v", tc.miles)
	}
}

func TestFeatureDeriverTimePeriods(t *testing.T) {
	cases := []struct {
		hour     int
		expected string
	}{
		{5, "night"},
		{6, "morning"},
		{11, "morning"},
		{12, "afternoon"},
		{17, "afternoon"},
		{18, "evening"},
		{21, "evening"},
		{22, "night"},
	}

	for _, tc := range cases {
		record := testutil.NewTripRecord("t1", func(r *models.TripRecord) {
			pickup := time.Date(2016, 3, 15, tc.hour, 30, 0, 0, time.UTC)
			dropoff := pickup.Add(10 * time.Minute)
			r.PickupDatetime = &pickup
			r.DropoffDatetime = &dropoff
		})

		derived := deriveOne(t, record, fullSchema())
		assert.Equal(t, tc.expected, derived.TimePeriod, "hour=%d", tc.hour)
	}
}

func TestFeatureDeriverRushHourOnlyOnWeekdays(t *testing.T) {
	// 2016-03-15是周二，2016-03-19是周六
	weekday := testutil.NewTripRecord("weekday", func(r *models.TripRecord) {
		pickup := time.Date(2016, 3, 15, 8, 0, 0, 0, time.UTC)
		dropoff := pickup.Add(10 * time.Minute)
		r.PickupDatetime = &pickup
		r.DropoffDatetime = &dropoff
	})
	weekend := testutil.NewTripRecord("weekend", func(r *models.TripRecord) {
		pickup := time.Date(2016, 3, 19, 8, 0, 0, 0, time.UTC)
		dropoff := pickup.Add(10 * time.Minute)
		r.PickupDatetime = &pickup
		r.DropoffDatetime = &dropoff
	})

	derivedWeekday := deriveOne(t, weekday, fullSchema())
	assert.True(t, derivedWeekday.IsRushHour)
	assert.False(t, derivedWeekday.IsWeekend)

	derivedWeekend := deriveOne(t, weekend, fullSchema())
	assert.False(t, derivedWeekend.IsRushHour)
	assert.True(t, derivedWeekend.IsWeekend)
}

func TestFeatureDeriverZeroFareTipPercentage(t *testing.T) {
	record := testutil.NewTripRecord("freebie", func(r *models.TripRecord) {
		r.FareAmount = floatPtr(0)
		r.TipAmount = floatPtr(3)
	})

	derived := deriveOne(t, record, fullSchema())

	require.NotNil(t, derived.TipPercentage)
	assert.Equal(t, 0.0, *derived.TipPercentage)
	// 票价为零时fare_per_km仍可计算，但除数是距离而非票价
	require.NotNil(t, derived.FarePerKM)
	assert.Equal(t, 0.0, *derived.FarePerKM)
}

func TestFeatureDeriverSkipsAbsentColumns(t *testing.T) {
	record := testutil.NewTripRecord("bare")

	schema := &models.DatasetSchema{}
	derived := deriveOne(t, record, schema)

	assert.Nil(t, derived.TripDistanceKM)
	assert.Nil(t, derived.TripSpeedKMH)
	assert.Nil(t, derived.FarePerKM)
	assert.Nil(t, derived.TipPercentage)
	assert.Empty(t, derived.DistanceCategory)
	// 时间派生字段不依赖可选列
	require.NotNil(t, derived.HourOfDay)
	require.NotNil(t, derived.DayOfWeek)
	assert.NotEmpty(t, derived.TimePeriod)
}
