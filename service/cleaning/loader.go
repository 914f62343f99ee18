/*
 * @module service/cleaning/loader
 * @description CSV装载器，负责读取原始行程数据、推断列类型并构建内存记录集
 * @architecture 分层架构 - 数据清洗层
 * @documentReference dev_docs/cleaning_pipeline.md
 * @stateFlow 打开文件 -> 校验必需列 -> 推断数据集模式 -> 逐行构建TripRecord
 * @rules 装载阶段不做内容校验，解析失败的字段置空并交由后续阶段剔除；
 *        输入不可读或必需列整体缺失属于结构性致命错误
 * @dependencies encoding/csv, github.com/spf13/cast
 * @refs service/cleaning/pipeline.go, service/models/cleaning_models.go
 */

package cleaning

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"taxihub-service/service/models"

	"github.com/spf13/cast"
)

// TimeLayout 源数据时间戳格式
const TimeLayout = "2006-01-02 15:04:05"

// 必需列，任一列整体缺失即为致命错误
var requiredColumns = []string{
	"pickup_datetime",
	"dropoff_datetime",
	"pickup_longitude",
	"pickup_latitude",
	"dropoff_longitude",
	"dropoff_latitude",
}

// 可选列，存在与否决定后续阶段的校验与派生行为
const (
	columnPassengerCount = "passenger_count"
	columnTripDistance   = "trip_distance"
	columnFareAmount     = "fare_amount"
	columnTipAmount      = "tip_amount"
)

// Loader CSV数据装载器
type Loader struct {
	path string
}

// NewLoader 创建装载器实例
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load 读取CSV并构建记录集，同时写入original_count
func (l *Loader) Load(stats *models.CleaningStatistics) ([]*models.TripRecord, *models.DatasetSchema, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("无法打开输入文件 %s: %w", l.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("读取CSV失败: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("输入文件 %s 为空，缺少表头", l.path)
	}

	header := rows[0]
	dataRows := rows[1:]

	columnIndex := make(map[string]int, len(header))
	for i, name := range header {
		columnIndex[name] = i
	}

	for _, required := range requiredColumns {
		if _, ok := columnIndex[required]; !ok {
			return nil, nil, fmt.Errorf("必需列 %s 在数据源中缺失", required)
		}
	}

	schema := l.buildSchema(header, dataRows, columnIndex)

	records := make([]*models.TripRecord, 0, len(dataRows))
	for _, row := range dataRows {
		records = append(records, l.buildRecord(header, row, columnIndex))
	}

	stats.OriginalCount = len(records)
	return records, schema, nil
}

// buildSchema 解析一次数据集模式：列顺序、推断类型、可选列存在标志
func (l *Loader) buildSchema(header []string, rows [][]string, columnIndex map[string]int) *models.DatasetSchema {
	schema := &models.DatasetSchema{
		Columns:   append([]string{}, header...),
		DataTypes: make(map[string]string, len(header)),
	}

	for i, column := range header {
		values := make([]string, 0, len(rows))
		for _, row := range rows {
			if i < len(row) {
				values = append(values, row[i])
			}
		}
		schema.DataTypes[column] = inferColumnType(values)
	}

	_, schema.HasPassengerCount = columnIndex[columnPassengerCount]
	_, schema.HasTripDistance = columnIndex[columnTripDistance]
	_, schema.HasFareAmount = columnIndex[columnFareAmount]
	_, schema.HasTipAmount = columnIndex[columnTipAmount]

	return schema
}

// buildRecord 构建单条记录，解析失败一律置空，不在装载阶段报错
func (l *Loader) buildRecord(header []string, row []string, columnIndex map[string]int) *models.TripRecord {
	raw := make(map[string]string, len(header))
	for i, column := range header {
		if i < len(row) {
			raw[column] = row[i]
		} else {
			raw[column] = ""
		}
	}

	record := &models.TripRecord{
		ID:              raw["id"],
		StoreAndFwdFlag: raw["store_and_fwd_flag"],
		Raw:             raw,
	}

	if value, err := cast.ToInt64E(raw["vendor_id"]); err == nil && raw["vendor_id"] != "" {
		record.VendorID = &value
	}

	record.PickupDatetime = parseTimestamp(raw["pickup_datetime"])
	record.DropoffDatetime = parseTimestamp(raw["dropoff_datetime"])

	record.PickupLongitude = parseFloat(raw["pickup_longitude"])
	record.PickupLatitude = parseFloat(raw["pickup_latitude"])
	record.DropoffLongitude = parseFloat(raw["dropoff_longitude"])
	record.DropoffLatitude = parseFloat(raw["dropoff_latitude"])

	if _, ok := columnIndex[columnPassengerCount]; ok {
		record.PassengerCount = parseFloat(raw[columnPassengerCount])
	}
	if _, ok := columnIndex[columnTripDistance]; ok {
		record.TripDistance = parseFloat(raw[columnTripDistance])
	}
	if _, ok := columnIndex[columnFareAmount]; ok {
		record.FareAmount = parseFloat(raw[columnFareAmount])
	}
	if _, ok := columnIndex[columnTipAmount]; ok {
		record.TipAmount = parseFloat(raw[columnTipAmount])
	}

	return record
}

func parseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(TimeLayout, value)
	if err != nil {
		return nil
	}
	return &parsed
}

func parseFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	parsed, err := cast.ToFloat64E(value)
	if err != nil {
		return nil
	}
	return &parsed
}

// inferColumnType 按整列取值推断类型，与源数据的宽松类型规则保持一致：
// 整数列存在缺失值时按浮点处理
func inferColumnType(values []string) string {
	isInt, isFloat, isTime := true, true, true
	hasValue, hasEmpty := false, false

	for _, value := range values {
		if value == "" {
			hasEmpty = true
			continue
		}
		hasValue = true

		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			isFloat = false
		}
		if _, err := time.Parse(TimeLayout, value); err != nil {
			isTime = false
		}
	}

	switch {
	case !hasValue:
		return models.ColumnTypeObject
	case isTime:
		return models.ColumnTypeDatetime
	case isInt && !hasEmpty:
		return models.ColumnTypeInt
	case isFloat:
		return models.ColumnTypeFloat
	default:
		return models.ColumnTypeObject
	}
}
