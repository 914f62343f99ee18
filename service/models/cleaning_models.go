/*
 * @module service/models/cleaning_models
 * @description 数据清洗管道相关模型定义，包括行程记录、数据集模式、清洗统计和报告
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/cleaning_pipeline.md
 * @stateFlow 原始CSV行 -> TripRecord -> 各阶段裁剪/派生 -> 清洗报告
 * @rules 记录被剔除后仅保留在排除日志中，统计计数单调累加
 * @dependencies time
 * @refs service/cleaning/, service/warehouse/
 */

package models

import (
	"time"
)

// 数据集列的推断类型
const (
	ColumnTypeFloat    = "float64"
	ColumnTypeInt      = "int64"
	ColumnTypeDatetime = "datetime"
	ColumnTypeObject   = "object"
)

// TripRecord 单条行程观测记录，可空字段用指针表示
type TripRecord struct {
	ID              string
	VendorID        *int64
	PickupDatetime  *time.Time
	DropoffDatetime *time.Time

	PickupLongitude  *float64
	PickupLatitude   *float64
	DropoffLongitude *float64
	DropoffLatitude  *float64

	PassengerCount *float64
	TripDistance   *float64 // 英里
	FareAmount     *float64
	TipAmount      *float64

	StoreAndFwdFlag string

	// 派生字段，由管道后续阶段填充
	TripDurationSeconds *float64
	TripDistanceKM      *float64
	TripSpeedKMH        *float64
	FarePerKM           *float64
	TipPercentage       *float64
	HourOfDay           *int
	DayOfWeek           *int // 周一=0 ... 周日=6
	TimePeriod          string
	DistanceCategory    string
	IsRushHour          bool
	IsWeekend           bool

	// 原始行快照，剔除时原样写入排除日志
	Raw map[string]string
}

// WeekdayIndex 周内索引约定：周一=0 ... 周日=6
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// PassengerCountInt 乘客数的整数视图，规范化后使用
func (r *TripRecord) PassengerCountInt() int {
	if r.PassengerCount == nil {
		return 0
	}
	return int(*r.PassengerCount)
}

// DatasetSchema 数据集模式描述符，装载时解析一次，后续阶段按需读取
type DatasetSchema struct {
	Columns   []string          `json:"columns"`    // 源文件列顺序
	DataTypes map[string]string `json:"data_types"` // 列名 -> 推断类型

	HasPassengerCount bool `json:"has_passenger_count"`
	HasTripDistance   bool `json:"has_trip_distance"`
	HasFareAmount     bool `json:"has_fare_amount"`
	HasTipAmount      bool `json:"has_tip_amount"`
}

// CleaningStatistics 清洗统计计数器，每个阶段运行时写入各自的增量
type CleaningStatistics struct {
	OriginalCount        int `json:"original_count"`
	MissingValuesRemoved int `json:"missing_values_removed"`
	DuplicatesRemoved    int `json:"duplicates_removed"`
	OutliersRemoved      int `json:"outliers_removed"`
	FinalCount           int `json:"final_count"`
}

// ExclusionLogLimit 排除日志最多持久化的记录快照数
const ExclusionLogLimit = 1000

// ExclusionLog 排除日志，count为全量计数，records仅保留前1000条快照
type ExclusionLog struct {
	Count   int                 `json:"count"`
	Records []map[string]string `json:"records"`
}

// Append 追加一批被剔除的记录，超出上限的只计数不留快照
func (l *ExclusionLog) Append(records []*TripRecord) {
	for _, record := range records {
		l.Count++
		if len(l.Records) < ExclusionLogLimit {
			l.Records = append(l.Records, record.Raw)
		}
	}
}

// CleaningReport 清洗过程摘要报告
type CleaningReport struct {
	Timestamp     time.Time          `json:"timestamp"`
	Statistics    CleaningStatistics `json:"statistics"`
	RetentionRate string             `json:"retention_rate"`
	Columns       []string           `json:"columns"`
	DataTypes     map[string]string  `json:"data_types"`
}

// CleaningResult 管道一次完整运行的产物
type CleaningResult struct {
	Records    []*TripRecord
	Schema     *DatasetSchema
	Statistics CleaningStatistics
	Exclusions *ExclusionLog
	Report     *CleaningReport
}

// WarehouseLoadResult 数据仓库批量装载结果
type WarehouseLoadResult struct {
	TotalSeen  int   `json:"total_seen"`
	Loaded     int   `json:"loaded"`
	Skipped    int   `json:"skipped"`
	BatchCount int   `json:"batch_count"`
	DurationMS int64 `json:"duration_ms"`
}
