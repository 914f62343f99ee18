package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxihub-service/service/models"
	"taxihub-service/testutil"
)

func TestLoaderSchemaInference(t *testing.T) {
	csv := "id,vendor_id,pickup_datetime,dropoff_datetime,passenger_count," +
		"pickup_longitude,pickup_latitude,dropoff_longitude,dropoff_latitude,store_and_fwd_flag\n" +
		"id1,2,2016-03-14 17:24:55,2016-03-14 17:32:30,1,-73.98,40.76,-73.96,40.77,N\n" +
		"id2,1,2016-03-14 18:00:00,2016-03-14 18:10:00,,-73.99,40.75,-73.97,40.76,Y\n"
	path := testutil.WriteCSVFile(t, csv)

	stats := models.CleaningStatistics{}
	records, schema, err := NewLoader(path).Load(&stats)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.OriginalCount)
	require.Len(t, records, 2)

	assert.Equal(t, models.ColumnTypeInt, schema.DataTypes["vendor_id"])
	assert.Equal(t, models.ColumnTypeDatetime, schema.DataTypes["pickup_datetime"])
	assert.Equal(t, models.ColumnTypeFloat, schema.DataTypes["pickup_longitude"])
	assert.Equal(t, models.ColumnTypeObject, schema.DataTypes["id"])
	assert.Equal(t, models.ColumnTypeObject, schema.DataTypes["store_and_fwd_flag"])
	// 整数列存在缺失值时按浮点处理
	assert.Equal(t, models.ColumnTypeFloat, schema.DataTypes["passenger_count"])

	assert.True(t, schema.HasPassengerCount)
	assert.False(t, schema.HasTripDistance)
	assert.False(t, schema.HasFareAmount)
	assert.False(t, schema.HasTipAmount)
}

func TestLoaderUnparseableValuesBecomeNil(t *testing.T) {
	csv := "id,vendor_id,pickup_datetime,dropoff_datetime,passenger_count," +
		"pickup_longitude,pickup_latitude,dropoff_longitude,dropoff_latitude\n" +
		"id1,abc,not-a-date,2016-03-14 17:32:30,x,-73.98,40.76,-73.96,40.77\n"
	path := testutil.WriteCSVFile(t, csv)

	stats := models.CleaningStatistics{}
	records, _, err := NewLoader(path).Load(&stats)
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Nil(t, record.VendorID)
	assert.Nil(t, record.PickupDatetime)
	assert.Nil(t, record.PassengerCount)
	require.NotNil(t, record.DropoffDatetime)
	require.NotNil(t, record.PickupLongitude)

	// 原始行快照保留未解析的值
	assert.Equal(t, "abc", record.Raw["vendor_id"])
	assert.Equal(t, "not-a-date", record.Raw["pickup_datetime"])
}

func TestLoaderMissingRequiredColumnFails(t *testing.T) {
	csv := "id,pickup_datetime,dropoff_datetime,pickup_longitude,pickup_latitude\n" +
		"id1,2016-03-14 17:24:55,2016-03-14 17:32:30,-73.98,40.76\n"
	path := testutil.WriteCSVFile(t, csv)

	stats := models.CleaningStatistics{}
	_, _, err := NewLoader(path).Load(&stats)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dropoff_longitude")
}

func TestLoaderFileNotFound(t *testing.T) {
	stats := models.CleaningStatistics{}
	_, _, err := NewLoader("/nonexistent/trips.csv").Load(&stats)
	require.Error(t, err)
}
