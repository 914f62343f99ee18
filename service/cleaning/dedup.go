/*
 * @module service/cleaning/dedup
 * @description 去重阶段，按行为等价键剔除重复行程记录
 * @architecture 分层架构 - 数据清洗层
 * @documentReference dev_docs/cleaning_pipeline.md
 * @stateFlow 逐条计算去重键 -> 首次出现保留 -> 后续重复剔除
 * @rules 去重键为(pickup_datetime, dropoff_datetime, pickup_longitude, pickup_latitude)，
 *        严格按输入顺序先见者保留
 * @dependencies strconv
 * @refs service/cleaning/pipeline.go
 */

package cleaning

import (
	"strconv"
	"strings"

	"taxihub-service/service/models"
)

// DeduplicatorStage 去重阶段
type DeduplicatorStage struct{}

// Name 阶段名称
func (s *DeduplicatorStage) Name() string {
	return "deduplicator"
}

// Apply 剔除去重键重复的记录，首次出现的记录保留
func (s *DeduplicatorStage) Apply(records []*models.TripRecord, schema *models.DatasetSchema, stats *models.CleaningStatistics) ([]*models.TripRecord, []*models.TripRecord, error) {
	seen := make(map[string]struct{}, len(records))
	kept := make([]*models.TripRecord, 0, len(records))
	var excluded []*models.TripRecord

	for _, record := range records {
		key := dedupKey(record)
		if _, exists := seen[key]; exists {
			excluded = append(excluded, record)
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, record)
	}

	stats.DuplicatesRemoved = len(records) - len(kept)
	return kept, excluded, nil
}

// dedupKey 精确值拼接，浮点使用最短无损表示避免精度误判
func dedupKey(record *models.TripRecord) string {
	parts := []string{
		record.PickupDatetime.Format(TimeLayout),
		record.DropoffDatetime.Format(TimeLayout),
		strconv.FormatFloat(*record.PickupLongitude, 'g', -1, 64),
		strconv.FormatFloat(*record.PickupLatitude, 'g', -1, 64),
	}
	return strings.Join(parts, "|")
}
