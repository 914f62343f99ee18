/*
 * @module service/cleaning/validity
 * @description 有效性过滤阶段，计算行程时长并剔除地理、时间、数值上不合理的记录
 * @architecture 分层架构 - 数据清洗层
 * @documentReference dev_docs/cleaning_pipeline.md
 * @stateFlow 计算trip_duration_seconds -> 逐条做边界检查 -> 任一条件违反即剔除
 * @rules 边界：时长(0,86400]，纬度[40.5,41.0]，经度[-74.3,-73.7]，坐标精确为0视为无效；
 *        距离(0,100]、票价[0,500]、乘客数[1,7]仅在源模式包含对应列时生效
 * @dependencies service/models
 * @refs service/cleaning/pipeline.go
 */

package cleaning

import (
	"taxihub-service/service/models"
)

// 纽约市边界框与数值合法范围
const (
	MinLatitude  = 40.5
	MaxLatitude  = 41.0
	MinLongitude = -74.3
	MaxLongitude = -73.7

	MaxDurationSeconds = 86400.0
	MaxDistanceMiles   = 100.0
	MaxFareAmount      = 500.0
	MaxPassengerCount  = 7.0
)

// ValidityFilter 有效性过滤阶段
type ValidityFilter struct{}

// Name 阶段名称
func (s *ValidityFilter) Name() string {
	return "validity_filter"
}

// Apply 先为所有记录计算行程时长，再按边界条件剔除无效记录
func (s *ValidityFilter) Apply(records []*models.TripRecord, schema *models.DatasetSchema, stats *models.CleaningStatistics) ([]*models.TripRecord, []*models.TripRecord, error) {
	kept := make([]*models.TripRecord, 0, len(records))
	var excluded []*models.TripRecord

	for _, record := range records {
		duration := record.DropoffDatetime.Sub(*record.PickupDatetime).Seconds()
		record.TripDurationSeconds = &duration

		if s.isInvalid(record, schema) {
			excluded = append(excluded, record)
			continue
		}
		kept = append(kept, record)
	}

	stats.OutliersRemoved = len(records) - len(kept)
	return kept, excluded, nil
}

// isInvalid 各条件按逻辑或组合，任一违反即无效
func (s *ValidityFilter) isInvalid(record *models.TripRecord, schema *models.DatasetSchema) bool {
	duration := *record.TripDurationSeconds
	if duration <= 0 || duration > MaxDurationSeconds {
		return true
	}

	if outOfBounds(*record.PickupLatitude, MinLatitude, MaxLatitude) ||
		outOfBounds(*record.DropoffLatitude, MinLatitude, MaxLatitude) ||
		outOfBounds(*record.PickupLongitude, MinLongitude, MaxLongitude) ||
		outOfBounds(*record.DropoffLongitude, MinLongitude, MaxLongitude) {
		return true
	}

	// 坐标精确为0是GPS缺失的哨兵值
	if *record.PickupLatitude == 0 || *record.PickupLongitude == 0 ||
		*record.DropoffLatitude == 0 || *record.DropoffLongitude == 0 {
		return true
	}

	if schema.HasTripDistance && record.TripDistance != nil {
		if *record.TripDistance <= 0 || *record.TripDistance > MaxDistanceMiles {
			return true
		}
	}

	if schema.HasFareAmount && record.FareAmount != nil {
		if *record.FareAmount < 0 || *record.FareAmount > MaxFareAmount {
			return true
		}
	}

	if schema.HasPassengerCount && record.PassengerCount != nil {
		if *record.PassengerCount <= 0 || *record.PassengerCount > MaxPassengerCount {
			return true
		}
	}

	return false
}

func outOfBounds(value, min, max float64) bool {
	return value < min || value > max
}
