/*
 * @module service/cleaning/normalize
 * @description 规范化阶段，数值字段按存储精度取整并建立规范顺序
 * @architecture 分层架构 - 数据清洗层
 * @documentReference dev_docs/cleaning_pipeline.md
 * @stateFlow 数值字段保留4位小数 -> 乘客数转整数 -> 按上车时间稳定排序 -> 写入final_count
 * @rules 乘客数是唯一不取整到4位小数的数值字段；排序必须稳定，
 *        相同上车时间的记录保持输入相对顺序
 * @dependencies sort
 * @refs service/cleaning/pipeline.go
 */

package cleaning

import (
	"math"
	"sort"

	"taxihub-service/service/models"
)

// Normalizer 规范化阶段
type Normalizer struct{}

// Name 阶段名称
func (s *Normalizer) Name() string {
	return "normalizer"
}

// Apply 取整、整型化乘客数、稳定排序并写入final_count
func (s *Normalizer) Apply(records []*models.TripRecord, schema *models.DatasetSchema, stats *models.CleaningStatistics) ([]*models.TripRecord, []*models.TripRecord, error) {
	for _, record := range records {
		normalizeRecord(record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PickupDatetime.Before(*records[j].PickupDatetime)
	})

	stats.FinalCount = len(records)
	return records, nil, nil
}

func normalizeRecord(record *models.TripRecord) {
	round4(record.PickupLongitude)
	round4(record.PickupLatitude)
	round4(record.DropoffLongitude)
	round4(record.DropoffLatitude)
	round4(record.TripDistance)
	round4(record.FareAmount)
	round4(record.TipAmount)
	round4(record.TripDurationSeconds)
	round4(record.TripDistanceKM)
	round4(record.TripSpeedKMH)
	round4(record.FarePerKM)
	round4(record.TipPercentage)

	if record.PassengerCount != nil {
		truncated := math.Trunc(*record.PassengerCount)
		record.PassengerCount = &truncated
	}
}

func round4(value *float64) {
	if value == nil {
		return
	}
	*value = roundTo(*value, 4)
}
