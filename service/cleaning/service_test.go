package cleaning

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxihub-service/service/models"
	"taxihub-service/service/warehouse"
	"taxihub-service/testutil"
)

func TestServiceRunWritesArtifacts(t *testing.T) {
	csvPath := testutil.WriteCSVFile(t, sampleCSV)
	outputDir := t.TempDir()

	svc := NewService(nil)
	summary, err := svc.Run(context.Background(), RunOptions{
		InputPath: csvPath,
		OutputDir: outputDir,
	})
	require.NoError(t, err)
	require.NotNil(t, summary.Report)
	assert.NotEmpty(t, summary.RunID)
	assert.Nil(t, summary.Warehouse)
	assert.Equal(t, 4, summary.Excluded)

	// 三类制品全部落盘
	cleaned, err := os.ReadFile(filepath.Join(outputDir, CleanedDataFile))
	require.NoError(t, err)
	assert.Contains(t, string(cleaned), "trip_duration_seconds")

	var exclusions models.ExclusionLog
	excludedData, err := os.ReadFile(filepath.Join(outputDir, ExcludedRecordsFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(excludedData, &exclusions))
	assert.Equal(t, 4, exclusions.Count)

	var report models.CleaningReport
	reportData, err := os.ReadFile(filepath.Join(outputDir, CleaningReportFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(reportData, &report))
	assert.Equal(t, "33.33%", report.RetentionRate)
}

func TestServiceRunLoadsWarehouse(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()

	csvPath := testutil.WriteCSVFile(t, sampleCSV)
	svc := NewService(warehouse.NewLoader(tdb.DB, 0))

	summary, err := svc.Run(context.Background(), RunOptions{
		InputPath:     csvPath,
		LoadWarehouse: true,
	})
	require.NoError(t, err)
	require.NotNil(t, summary.Warehouse)
	assert.Equal(t, 2, summary.Warehouse.Loaded)

	var count int64
	require.NoError(t, tdb.DB.Table("trips").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestServiceRunRequiresInput(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Run(context.Background(), RunOptions{})
	assert.Error(t, err)
}

func TestLastReportTracksRuns(t *testing.T) {
	svc := NewService(nil)
	assert.Nil(t, svc.LastReport())

	csvPath := testutil.WriteCSVFile(t, sampleCSV)
	_, err := svc.Run(context.Background(), RunOptions{InputPath: csvPath})
	require.NoError(t, err)

	report := svc.LastReport()
	require.NotNil(t, report)
	assert.Equal(t, "33.33%", report.RetentionRate)
}
