/*
 * @module service/cleaning/features
 * @description 特征派生阶段，为幸存记录确定性地计算分析用派生字段
 * @architecture 分层架构 - 数据清洗层
 * @documentReference dev_docs/cleaning_pipeline.md
 * @stateFlow 按源模式的列存在性逐条派生 -> 只增改字段不剔除记录
 * @rules 物理上不合理的速度(>120km/h或<0)置空该字段而非剔除记录；
 *        除零一律通过置空或强制0处理；day_of_week采用周一=0约定；
 *        高峰时段为工作日7/8/17/18点，周末为day_of_week 5和6
 * @dependencies math, time
 * @refs service/cleaning/pipeline.go, service/warehouse/
 */

package cleaning

import (
	"math"

	"taxihub-service/service/models"
)

// 派生常量
const (
	MilesToKM   = 1.60934
	MaxSpeedKMH = 120.0
)

// 时段划分
const (
	TimePeriodMorning   = "morning"   // [6,12)
	TimePeriodAfternoon = "afternoon" // [12,18)
	TimePeriodEvening   = "evening"   // [18,22)
	TimePeriodNight     = "night"
)

// 距离分类，阈值严格递增，首个命中生效
const (
	DistanceVeryShort = "very_short" // <1英里
	DistanceShort     = "short"      // <3英里
	DistanceMedium    = "medium"     // <10英里
	DistanceLong      = "long"
)

// 高峰小时，工作日生效
var rushHours = map[int]bool{7: true, 8: true, 17: true, 18: true}

// FeatureDeriver 特征派生阶段
type FeatureDeriver struct{}

// Name 阶段名称
func (s *FeatureDeriver) Name() string {
	return "feature_deriver"
}

// Apply 为每条记录计算派生字段，本阶段不剔除任何记录
func (s *FeatureDeriver) Apply(records []*models.TripRecord, schema *models.DatasetSchema, stats *models.CleaningStatistics) ([]*models.TripRecord, []*models.TripRecord, error) {
	for _, record := range records {
		s.derive(record, schema)
	}
	return records, nil, nil
}

func (s *FeatureDeriver) derive(record *models.TripRecord, schema *models.DatasetSchema) {
	if schema.HasTripDistance && record.TripDistance != nil {
		distanceKM := *record.TripDistance * MilesToKM
		record.TripDistanceKM = &distanceKM

		if record.TripDurationSeconds != nil && *record.TripDurationSeconds > 0 {
			speed := distanceKM / (*record.TripDurationSeconds / 3600.0)
			if speed >= 0 && speed <= MaxSpeedKMH {
				record.TripSpeedKMH = &speed
			}
		}

		record.DistanceCategory = categorizeDistance(*record.TripDistance)
	}

	if schema.HasFareAmount && record.FareAmount != nil && record.TripDistanceKM != nil {
		if *record.TripDistanceKM != 0 {
			farePerKM := *record.FareAmount / *record.TripDistanceKM
			record.FarePerKM = &farePerKM
		}
	}

	pickup := *record.PickupDatetime
	hour := pickup.Hour()
	dayOfWeek := models.WeekdayIndex(pickup)
	record.HourOfDay = &hour
	record.DayOfWeek = &dayOfWeek
	record.TimePeriod = timePeriod(hour)
	record.IsWeekend = dayOfWeek >= 5
	record.IsRushHour = !record.IsWeekend && rushHours[hour]

	if schema.HasTipAmount && schema.HasFareAmount &&
		record.TipAmount != nil && record.FareAmount != nil {
		tipPercentage := 0.0
		if *record.FareAmount != 0 {
			tipPercentage = roundTo(*record.TipAmount / *record.FareAmount * 100, 2)
		}
		record.TipPercentage = &tipPercentage
	}
}

func timePeriod(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return TimePeriodMorning
	case hour >= 12 && hour < 18:
		return TimePeriodAfternoon
	case hour >= 18 && hour < 22:
		return TimePeriodEvening
	default:
		return TimePeriodNight
	}
}

func categorizeDistance(miles float64) string {
	switch {
	case miles < 1:
		return DistanceVeryShort
	case miles < 3:
		return DistanceShort
	case miles < 10:
		return DistanceMedium
	default:
		return DistanceLong
	}
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
