package cleaning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxihub-service/service/models"
	"taxihub-service/testutil"
)

func floatPtr(v float64) *float64 {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func fullSchema() *models.DatasetSchema {
	return &models.DatasetSchema{
		HasPassengerCount: true,
		HasTripDistance:   true,
		HasFareAmount:     true,
		HasTipAmount:      true,
	}
}

func TestMissingValueHandlerImputesPassengerCount(t *testing.T) {
	record := testutil.NewTripRecord("t1", func(r *models.TripRecord) {
		r.PassengerCount = nil
	})

	stats := models.CleaningStatistics{}
	kept, excluded, err := (&MissingValueHandler{}).Apply([]*models.TripRecord{record}, fullSchema(), &stats)
	require.NoError(t, err)

	require.Len(t, kept, 1)
	assert.Empty(t, excluded)
	require.NotNil(t, kept[0].PassengerCount)
	assert.Equal(t, 1.0, *kept[0].PassengerCount)
	assert.Equal(t, 0, stats.MissingValuesRemoved)
}

func TestMissingValueHandlerSkipsImputationWithoutColumn(t *testing.T) {
	record := testutil.NewTripRecord("t1", func(r *models.TripRecord) {
		r.PassengerCount = nil
	})

	schema := fullSchema()
	schema.HasPassengerCount = false

	stats := models.CleaningStatistics{}
	kept, _, err := (&MissingValueHandler{}).Apply([]*models.TripRecord{record}, schema, &stats)
	require.NoError(t, err)

	require.Len(t, kept, 1)
	assert.Nil(t, kept[0].PassengerCount)
}

func TestMissingValueHandlerExcludesMissingCoordinates(t *testing.T) {
	record := testutil.NewTripRecord("t1", func(r *models.TripRecord) {
		r.DropoffLatitude = nil
	})

	stats := models.CleaningStatistics{}
	kept, excluded, err := (&MissingValueHandler{}).Apply([]*models.TripRecord{record}, fullSchema(), &stats)
	require.NoError(t, err)

	assert.Empty(t, kept)
	assert.Len(t, excluded, 1)
	assert.Equal(t, 1, stats.MissingValuesRemoved)
}

func TestDeduplicatorKeepsFirstOccurrence(t *testing.T) {
	first := testutil.NewTripRecord("first")
	duplicate := testutil.NewTripRecord("duplicate", func(r *models.TripRecord) {
		// 去重键之外的字段不同不影响判重
		r.TripDistance = floatPtr(9.9)
		r.VendorID = int64Ptr(1)
	})
	distinct := testutil.NewTripRecord("distinct", func(r *models.TripRecord) {
		shifted := r.PickupDatetime.Add(time.Minute)
		r.PickupDatetime = &shifted
	})

	stats := models.CleaningStatistics{}
	kept, excluded, err := (&DeduplicatorStage{}).Apply(
		[]*models.TripRecord{first, duplicate, distinct}, fullSchema(), &stats)
	require.NoError(t, err)

	require.Len(t, kept, 2)
	assert.Equal(t, "first", kept[0].ID)
	assert.Equal(t, "distinct", kept[1].ID)
	require.Len(t, excluded, 1)
	assert.Equal(t, "duplicate", excluded[0].ID)
	assert.Equal(t, 1, stats.DuplicatesRemoved)
}

func TestValidityFilterComputesDurationForAllRecords(t *testing.T) {
	valid := testutil.NewTripRecord("valid")
	inverted := testutil.NewTripRecord("inverted", func(r *models.TripRecord) {
		swapped := r.PickupDatetime.Add(-time.Hour)
		r.DropoffDatetime = &swapped
	})

	stats := models.CleaningStatistics{}
	kept, excluded, err := (&ValidityFilter{}).Apply(
		[]*models.TripRecord{valid, inverted}, fullSchema(), &stats)
	require.NoError(t, err)

	require.Len(t, kept, 1)
	require.Len(t, excluded, 1)
	// 被剔除的记录也先计算了时长
	require.NotNil(t, excluded[0].TripDurationSeconds)
	assert.Negative(t, *excluded[0].TripDurationSeconds)
	assert.Equal(t, 1, stats.OutliersRemoved)
}

func TestValidityFilterBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.TripRecord)
	}{
		{"纬度超出北界", func(r *models.TripRecord) { r.PickupLatitude = floatPtr(41.5) }},
		{"经度超出西界", func(r *models.TripRecord) { r.DropoffLongitude = floatPtr(-74.5) }},
		{"零坐标哨兵值", func(r *models.TripRecord) {
			r.PickupLatitude = floatPtr(0)
			r.PickupLongitude = floatPtr(0)
		}},
		{"时长超过一天", func(r *models.TripRecord) {
			shifted := r.PickupDatetime.Add(25 * time.Hour)
			r.DropoffDatetime = &shifted
		}},
		{"距离为零", func(r *models.TripRecord) { r.TripDistance = floatPtr(0) }},
		{"距离超过上限", func(r *models.TripRecord) { r.TripDistance = floatPtr(120) }},
		{"负票价", func(r *models.TripRecord) { r.FareAmount = floatPtr(-1) }},
		{"票价超过上限", func(r *models.TripRecord) { r.FareAmount = floatPtr(600) }},
		{"乘客数为零", func(r *models.TripRecord) { r.PassengerCount = floatPtr(0) }},
		{"乘客数超过上限", func(r *models.TripRecord) { r.PassengerCount = floatPtr(8) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := testutil.NewTripRecord("t1", tc.mutate)

			stats := models.CleaningStatistics{}
			kept, excluded, err := (&ValidityFilter{}).Apply(
				[]*models.TripRecord{record}, fullSchema(), &stats)
			require.NoError(t, err)

			assert.Empty(t, kept)
			assert.Len(t, excluded, 1)
		})
	}
}

func TestValidityFilterOptionalChecksFollowSchema(t *testing.T) {
	record := testutil.NewTripRecord("t1", func(r *models.TripRecord) {
		r.TripDistance = floatPtr(500)
	})

	schema := fullSchema()
	schema.HasTripDistance = false

	stats := models.CleaningStatistics{}
	kept, _, err := (&ValidityFilter{}).Apply([]*models.TripRecord{record}, schema, &stats)
	require.NoError(t, err)

	assert.Len(t, kept, 1)
}

func TestValidityFilterBoundaryValuesSurvive(t *testing.T) {
	record := testutil.NewTripRecord("t1", func(r *models.TripRecord) {
		r.PickupLatitude = floatPtr(40.5)
		r.DropoffLatitude = floatPtr(41.0)
		r.PickupLongitude = floatPtr(-74.3)
		r.DropoffLongitude = floatPtr(-73.7)
		r.TripDistance = floatPtr(100)
		r.FareAmount = floatPtr(500)
		r.PassengerCount = floatPtr(7)
		shifted := r.PickupDatetime.Add(24 * time.Hour)
		r.DropoffDatetime = &shifted
	})

	stats := models.CleaningStatistics{}
	kept, excluded, err := (&ValidityFilter{}).Apply(
		[]*models.TripRecord{record}, fullSchema(), &stats)
	require.NoError(t, err)

	assert.Len(t, kept, 1)
	assert.Empty(t, excluded)
}
