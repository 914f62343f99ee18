/*
 * @module service/cleaning/missing
 * @description 缺失值处理阶段，剔除必需字段缺失的记录并对乘客数做默认填充
 * @architecture 分层架构 - 数据清洗层
 * @documentReference dev_docs/cleaning_pipeline.md
 * @stateFlow 逐条检查必需字段 -> 剔除缺失记录 -> 对幸存记录填充passenger_count
 * @rules 六个必需字段任一为空即剔除；passenger_count仅在源模式包含该列时填充为1
 * @dependencies service/models
 * @refs service/cleaning/pipeline.go
 */

package cleaning

import (
	"taxihub-service/service/models"
)

// MissingValueHandler 缺失值处理阶段
type MissingValueHandler struct{}

// Name 阶段名称
func (s *MissingValueHandler) Name() string {
	return "missing_value_handler"
}

// Apply 剔除必需字段缺失的记录，幸存记录的空乘客数填充为1
func (s *MissingValueHandler) Apply(records []*models.TripRecord, schema *models.DatasetSchema, stats *models.CleaningStatistics) ([]*models.TripRecord, []*models.TripRecord, error) {
	kept := make([]*models.TripRecord, 0, len(records))
	var excluded []*models.TripRecord

	for _, record := range records {
		if hasMissingRequiredField(record) {
			excluded = append(excluded, record)
			continue
		}

		if schema.HasPassengerCount && record.PassengerCount == nil {
			imputed := 1.0
			record.PassengerCount = &imputed
		}

		kept = append(kept, record)
	}

	stats.MissingValuesRemoved = len(records) - len(kept)
	return kept, excluded, nil
}

func hasMissingRequiredField(record *models.TripRecord) bool {
	return record.PickupDatetime == nil ||
		record.DropoffDatetime == nil ||
		record.PickupLongitude == nil ||
		record.PickupLatitude == nil ||
		record.DropoffLongitude == nil ||
		record.DropoffLatitude == nil
}
