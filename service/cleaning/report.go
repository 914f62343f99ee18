/*
 * @module service/cleaning/report
 * @description 报告生成器，产出清洗后数据集、排除日志和统计报告三类制品
 * @architecture 分层架构 - 数据清洗层
 * @documentReference dev_docs/cleaning_pipeline.md
 * @stateFlow 构建报告 -> 写出清洗后CSV -> 写出排除日志JSON -> 写出统计报告JSON
 * @rules 输出列为源列加派生列；留存率按final_count/original_count保留两位小数；
 *        排除日志最多落盘前1000条快照，计数单独上报
 * @dependencies encoding/csv, encoding/json
 * @refs service/cleaning/pipeline.go
 */

package cleaning

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"taxihub-service/service/models"
)

// 派生列及其类型，按派生顺序排列
type derivedColumn struct {
	name     string
	dataType string
}

// BuildReport 构建清洗统计报告
func BuildReport(schema *models.DatasetSchema, stats models.CleaningStatistics) *models.CleaningReport {
	retention := 0.0
	if stats.OriginalCount > 0 {
		retention = float64(stats.FinalCount) / float64(stats.OriginalCount) * 100
	}

	columns := OutputColumns(schema)
	dataTypes := make(map[string]string, len(columns))
	for column, dataType := range schema.DataTypes {
		dataTypes[column] = dataType
	}
	for _, derived := range derivedColumns(schema) {
		dataTypes[derived.name] = derived.dataType
	}

	return &models.CleaningReport{
		Timestamp:     time.Now(),
		Statistics:    stats,
		RetentionRate: fmt.Sprintf("%.2f%%", retention),
		Columns:       columns,
		DataTypes:     dataTypes,
	}
}

// OutputColumns 输出列清单：源列顺序在前，派生列按派生顺序在后
func OutputColumns(schema *models.DatasetSchema) []string {
	columns := append([]string{}, schema.Columns...)
	for _, derived := range derivedColumns(schema) {
		columns = append(columns, derived.name)
	}
	return columns
}

func derivedColumns(schema *models.DatasetSchema) []derivedColumn {
	columns := []derivedColumn{
		{"trip_duration_seconds", models.ColumnTypeFloat},
	}
	if schema.HasTripDistance {
		columns = append(columns,
			derivedColumn{"trip_distance_km", models.ColumnTypeFloat},
			derivedColumn{"trip_speed_kmh", models.ColumnTypeFloat},
		)
	}
	if schema.HasFareAmount && schema.HasTripDistance {
		columns = append(columns, derivedColumn{"fare_per_km", models.ColumnTypeFloat})
	}
	columns = append(columns,
		derivedColumn{"hour_of_day", models.ColumnTypeInt},
		derivedColumn{"day_of_week", models.ColumnTypeInt},
		derivedColumn{"time_period", models.ColumnTypeObject},
	)
	if schema.HasTripDistance {
		columns = append(columns, derivedColumn{"distance_category", models.ColumnTypeObject})
	}
	if schema.HasTipAmount && schema.HasFareAmount {
		columns = append(columns, derivedColumn{"tip_percentage", models.ColumnTypeFloat})
	}
	return columns
}

// WriteCleanedCSV 写出规范化后的数据集
func WriteCleanedCSV(path string, result *models.CleaningResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建输出文件 %s 失败: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	columns := OutputColumns(result.Schema)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}

	row := make([]string, len(columns))
	for _, record := range result.Records {
		for i, column := range columns {
			row[i] = formatField(record, column)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("写入数据行失败: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatField 按列名输出字段值，空值输出空字符串，未知列原样透传
func formatField(record *models.TripRecord, column string) string {
	switch column {
	case "pickup_datetime":
		return record.PickupDatetime.Format(TimeLayout)
	case "dropoff_datetime":
		return record.DropoffDatetime.Format(TimeLayout)
	case "pickup_longitude":
		return formatFloat(record.PickupLongitude)
	case "pickup_latitude":
		return formatFloat(record.PickupLatitude)
	case "dropoff_longitude":
		return formatFloat(record.DropoffLongitude)
	case "dropoff_latitude":
		return formatFloat(record.DropoffLatitude)
	case "passenger_count":
		if record.PassengerCount == nil {
			return ""
		}
		return strconv.Itoa(record.PassengerCountInt())
	case "trip_distance":
		return formatFloat(record.TripDistance)
	case "fare_amount":
		return formatFloat(record.FareAmount)
	case "tip_amount":
		return formatFloat(record.TipAmount)
	case "trip_duration_seconds":
		return formatFloat(record.TripDurationSeconds)
	case "trip_distance_km":
		return formatFloat(record.TripDistanceKM)
	case "trip_speed_kmh":
		return formatFloat(record.TripSpeedKMH)
	case "fare_per_km":
		return formatFloat(record.FarePerKM)
	case "tip_percentage":
		return formatFloat(record.TipPercentage)
	case "hour_of_day":
		return formatInt(record.HourOfDay)
	case "day_of_week":
		return formatInt(record.DayOfWeek)
	case "time_period":
		return record.TimePeriod
	case "distance_category":
		return record.DistanceCategory
	default:
		return record.Raw[column]
	}
}

func formatFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func formatInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

// WriteExclusionLog 写出排除日志
func WriteExclusionLog(path string, log *models.ExclusionLog) error {
	return writeJSON(path, log)
}

// WriteReport 写出统计报告
func WriteReport(path string, report *models.CleaningReport) error {
	return writeJSON(path, report)
}

func writeJSON(path string, payload interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化JSON失败: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	return nil
}
