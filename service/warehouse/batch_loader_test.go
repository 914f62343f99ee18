package warehouse

import (
	"context"
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

func loadableRecord(id string, opts ...testutil.TripRecordOption) *models.TripRecord {
	record := testutil.NewTripRecord(id, opts...)
	duration := record.DropoffDatetime.Sub(*record.PickupDatetime).Seconds()
	record.TripDurationSeconds = &duration

	if record.TripDistance != nil {
		km := *record.TripDistance * 1.60934
		record.TripDistanceKM = &km
	}
	return record
}

func TestLoaderPopulatesDimensionsAndFacts(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	records := []*models.TripRecord{
		loadableRecord("trip1"),
		loadableRecord("trip2", func(r *models.TripRecord) {
			shifted := r.PickupDatetime.Add(30 * time.Minute)
			r.PickupDatetime = &shifted
			dropoff := shifted.Add(30 * time.Minute)
			r.DropoffDatetime = &dropoff
		}),
	}

	result, err := NewLoader(tdb.DB, 0).Load(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalSeen)
	assert.Equal(t, 2, result.Loaded)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 1, result.BatchCount)

	var tripCount, factCount, locationCount, timeCount int64
	tdb.DB.Model(&models.Trip{}).Count(&tripCount)
	tdb.DB.Model(&models.TripFact{}).Count(&factCount)
	tdb.DB.Model(&models.Location{}).Count(&locationCount)
	tdb.DB.Model(&models.TimeDimension{}).Count(&timeCount)

	assert.Equal(t, int64(2), tripCount)
	assert.Equal(t, int64(2), factCount)
	// 两条行程共享同一对上下车坐标，位置维度只建两行
	assert.Equal(t, int64(2), locationCount)
	// trip2的上车时间等于trip1的上车时间加偏移，四个时刻各不相同
	assert.Equal(t, int64(4), timeCount)
}

func TestLoaderUpsertIsIdempotent(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	loader := NewLoader(tdb.DB, 0)
	record := loadableRecord("trip1")

	_, err := loader.Load(context.Background(), []*models.TripRecord{record})
	require.NoError(t, err)

	// 同一trip_id再次装载应覆盖更新而非报错或重复
	record.PassengerCount = floatPtr(4)
	_, err = loader.Load(context.Background(), []*models.TripRecord{record})
	require.NoError(t, err)

	var tripCount int64
	tdb.DB.Model(&models.Trip{}).Count(&tripCount)
	assert.Equal(t, int64(1), tripCount)

	var trip models.Trip
	require.NoError(t, tdb.DB.First(&trip, "trip_id = ?", "trip1").Error)
	assert.Equal(t, 4, trip.PassengerCount)
}

func TestLoaderSkipsUnloadableRecords(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	records := []*models.TripRecord{
		loadableRecord(""),
		loadableRecord("no-vendor", func(r *models.TripRecord) { r.VendorID = nil }),
		loadableRecord("ok"),
	}

	result, err := NewLoader(tdb.DB, 0).Load(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalSeen)
	assert.Equal(t, 1, result.Loaded)
	assert.Equal(t, 2, result.Skipped)
}

func TestLoaderBatchSplitting(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	records := make([]*models.TripRecord, 0, 3)
	for i, id := range []string{"a", "b", "c"} {
		offset := time.Duration(i+1) * time.Hour
		records = append(records, loadableRecord(id, func(r *models.TripRecord) {
			shifted := r.PickupDatetime.Add(offset)
			r.PickupDatetime = &shifted
			dropoff := shifted.Add(30 * time.Minute)
			r.DropoffDatetime = &dropoff
		}))
	}

	result, err := NewLoader(tdb.DB, 1).Load(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 3, result.BatchCount)
	assert.Equal(t, 3, result.Loaded)
}

func TestLoaderComputesTripEfficiency(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	// 4.02335公里/11分钟 = 0.366 km/min
	record := loadableRecord("trip1")

	_, err := NewLoader(tdb.DB, 0).Load(context.Background(), []*models.TripRecord{record})
	require.NoError(t, err)

	var fact models.TripFact
	require.NoError(t, tdb.DB.First(&fact, "trip_id = ?", "trip1").Error)
	require.NotNil(t, fact.TripEfficiency)
	assert.Equal(t, 0.366, *fact.TripEfficiency)
}

func TestLoaderStoreFlagDefaults(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	record := loadableRecord("trip1", func(r *models.TripRecord) {
		r.StoreAndFwdFlag = ""
	})

	_, err := NewLoader(tdb.DB, 0).Load(context.Background(), []*models.TripRecord{record})
	require.NoError(t, err)

	var trip models.Trip
	require.NoError(t, tdb.DB.First(&trip, "trip_id = ?", "trip1").Error)
	assert.Equal(t, "N", trip.StoreAndFwdFlag)
}
