package cleaning

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxihub-service/testutil"
)

const sampleHeader = "id,vendor_id,pickup_datetime,dropoff_datetime,passenger_count," +
	"pickup_longitude,pickup_latitude,dropoff_longitude,dropoff_latitude," +
	"store_and_fwd_flag,trip_distance,fare_amount,tip_amount\n"

// 2016-03-14是周一，2016-03-12是周六
const sampleCSV = sampleHeader +
	"id1,2,2016-03-14 17:24:55,2016-03-14 17:35:55,1,-73.982155,40.767937,-73.964630,40.765602,N,2.5,10.0,2.0\n" +
	"id2,1,,2016-03-14 18:00:00,1,-73.98,40.76,-73.97,40.75,N,1.2,6.5,0.0\n" +
	"id3,1,2016-03-14 17:24:55,2016-03-14 17:35:55,2,-73.982155,40.767937,-73.990000,40.750000,N,2.6,11.0,1.0\n" +
	"id4,2,2016-03-14 09:00:00,2016-03-14 09:20:00,1,-73.98,41.50,-73.97,40.75,N,3.0,14.0,2.0\n" +
	"id5,2,2016-03-14 10:00:00,2016-03-14 09:00:00,1,-73.98,40.76,-73.97,40.75,N,2.0,9.0,0.0\n" +
	"id6,1,2016-03-12 23:05:00,2016-03-12 23:12:00,3,-73.985000,40.758000,-73.990000,40.755000,N,0.5,4.5,0.0\n"

func TestPipelineRunEndToEnd(t *testing.T) {
	path := testutil.WriteCSVFile(t, sampleCSV)

	result, err := NewPipeline(path).Run()
	require.NoError(t, err)

	assert.Equal(t, 6, result.Statistics.OriginalCount)
	assert.Equal(t, 1, result.Statistics.MissingValuesRemoved)
	assert.Equal(t, 1, result.Statistics.DuplicatesRemoved)
	assert.Equal(t, 2, result.Statistics.OutliersRemoved)
	assert.Equal(t, 2, result.Statistics.FinalCount)

	assert.Equal(t, 4, result.Exclusions.Count)
	assert.Len(t, result.Exclusions.Records, 4)

	// 规范化阶段按上车时间排序，周六的行程在前
	require.Len(t, result.Records, 2)
	assert.Equal(t, "id6", result.Records[0].ID)
	assert.Equal(t, "id1", result.Records[1].ID)

	assert.Equal(t, "33.33%", result.Report.RetentionRate)
}

func TestPipelineDerivedFields(t *testing.T) {
	path := testutil.WriteCSVFile(t, sampleCSV)

	result, err := NewPipeline(path).Run()
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	weekend := result.Records[0]
	assert.Equal(t, "very_short", weekend.DistanceCategory)
	assert.Equal(t, "night", weekend.TimePeriod)
	assert.True(t, weekend.IsWeekend)
	assert.False(t, weekend.IsRushHour)
	require.NotNil(t, weekend.DayOfWeek)
	assert.Equal(t, 5, *weekend.DayOfWeek)

	rush := result.Records[1]
	assert.Equal(t, "short", rush.DistanceCategory)
	assert.Equal(t, "afternoon", rush.TimePeriod)
	assert.False(t, rush.IsWeekend)
	assert.True(t, rush.IsRushHour)
	require.NotNil(t, rush.DayOfWeek)
	assert.Equal(t, 0, *rush.DayOfWeek)

	require.NotNil(t, rush.TripDurationSeconds)
	assert.Equal(t, 660.0, *rush.TripDurationSeconds)
	require.NotNil(t, rush.TripDistanceKM)
	assert.Equal(t, 4.0234, *rush.TripDistanceKM)
	require.NotNil(t, rush.TripSpeedKMH)
	assert.InDelta(t, 21.9455, *rush.TripSpeedKMH, 0.001)
	require.NotNil(t, rush.TipPercentage)
	assert.Equal(t, 20.0, *rush.TipPercentage)
}

func TestPipelineIdempotentOnCleanedOutput(t *testing.T) {
	path := testutil.WriteCSVFile(t, sampleCSV)

	first, err := NewPipeline(path).Run()
	require.NoError(t, err)

	cleanedPath := filepath.Join(t.TempDir(), "cleaned.csv")
	require.NoError(t, WriteCleanedCSV(cleanedPath, first))

	// 已清洗的数据集再次清洗不应再剔除任何记录
	second, err := NewPipeline(cleanedPath).Run()
	require.NoError(t, err)

	assert.Equal(t, first.Statistics.FinalCount, second.Statistics.OriginalCount)
	assert.Equal(t, 0, second.Statistics.MissingValuesRemoved)
	assert.Equal(t, 0, second.Statistics.DuplicatesRemoved)
	assert.Equal(t, 0, second.Statistics.OutliersRemoved)
	assert.Equal(t, first.Statistics.FinalCount, second.Statistics.FinalCount)
}

func TestPipelineMissingRequiredColumn(t *testing.T) {
	path := testutil.WriteCSVFile(t, "id,pickup_datetime\nid1,2016-03-14 17:24:55\n")

	_, err := NewPipeline(path).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dropoff_datetime")
}

func TestPipelineEmptyDataset(t *testing.T) {
	path := testutil.WriteCSVFile(t, sampleHeader)

	result, err := NewPipeline(path).Run()
	require.NoError(t, err)

	assert.Equal(t, 0, result.Statistics.OriginalCount)
	assert.Equal(t, 0, result.Statistics.FinalCount)
	assert.Equal(t, "0.00%", result.Report.RetentionRate)
	assert.Empty(t, result.Records)
}
