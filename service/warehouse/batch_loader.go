/*
 * @module service/warehouse/batch_loader
 * @description 数据仓库批量装载器，将清洗后的行程记录按批次落入维度表和事实表
 * @architecture 分层架构 - 数据装载层
 * @documentReference dev_docs/warehouse_schema.md
 * @stateFlow 解析维度(供应商/位置/时间) -> 组装行程与事实行 -> 按批次事务化upsert
 * @rules 每个批次在独立事务内提交，出错整批回滚；trip_id冲突时覆盖更新；
 *        维度行按自然键去重复用并在单次装载内缓存
 * @dependencies gorm.io/gorm, gorm.io/gorm/clause
 * @refs service/cleaning/, service/models/warehouse.go
 */

package warehouse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"taxihub-service/service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultBatchSize 默认批量大小
const DefaultBatchSize = 2000

// Loader 数据仓库批量装载器
type Loader struct {
	db        *gorm.DB
	batchSize int
}

// NewLoader 创建批量装载器实例
func NewLoader(db *gorm.DB, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{db: db, batchSize: batchSize}
}

// loadState 单次装载内的维度缓存
type loadState struct {
	vendors   map[int64]struct{}
	locations map[[2]float64]uint
	times     map[int64]uint
}

// Load 将记录集按批次装载入仓库
func (l *Loader) Load(ctx context.Context, records []*models.TripRecord) (*models.WarehouseLoadResult, error) {
	start := time.Now()
	result := &models.WarehouseLoadResult{}
	state := &loadState{
		vendors:   make(map[int64]struct{}),
		locations: make(map[[2]float64]uint),
		times:     make(map[int64]uint),
	}

	for offset := 0; offset < len(records); offset += l.batchSize {
		end := offset + l.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[offset:end]

		err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, record := range batch {
				result.TotalSeen++
				loaded, err := l.loadRecord(tx, state, record)
				if err != nil {
					return err
				}
				if loaded {
					result.Loaded++
				} else {
					result.Skipped++
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("第%d批装载失败，事务已回滚: %w", result.BatchCount+1, err)
		}

		result.BatchCount++
		slog.Info("仓库批次提交完成", "batch", result.BatchCount, "loaded", result.Loaded, "skipped", result.Skipped)
	}

	result.DurationMS = time.Since(start).Milliseconds()
	return result, nil
}

// loadRecord 装载单条记录，维度行缺失时即时创建
func (l *Loader) loadRecord(tx *gorm.DB, state *loadState, record *models.TripRecord) (bool, error) {
	// 缺少行程标识或供应商的记录无法建立事实行，跳过不算失败
	if record.ID == "" || record.VendorID == nil ||
		record.PickupDatetime == nil || record.DropoffDatetime == nil ||
		record.TripDurationSeconds == nil {
		return false, nil
	}

	if err := l.ensureVendor(tx, state, *record.VendorID); err != nil {
		return false, err
	}

	pickupLocationID, err := l.getOrCreateLocation(tx, state, *record.PickupLongitude, *record.PickupLatitude)
	if err != nil {
		return false, err
	}
	dropoffLocationID, err := l.getOrCreateLocation(tx, state, *record.DropoffLongitude, *record.DropoffLatitude)
	if err != nil {
		return false, err
	}

	pickupTimeID, err := l.getOrCreateTime(tx, state, *record.PickupDatetime)
	if err != nil {
		return false, err
	}
	dropoffTimeID, err := l.getOrCreateTime(tx, state, *record.DropoffDatetime)
	if err != nil {
		return false, err
	}

	trip := models.Trip{
		TripID:            record.ID,
		VendorID:          *record.VendorID,
		PickupTimeID:      pickupTimeID,
		DropoffTimeID:     dropoffTimeID,
		PickupLocationID:  pickupLocationID,
		DropoffLocationID: dropoffLocationID,
		PassengerCount:    record.PassengerCountInt(),
		StoreAndFwdFlag:   storeFlag(record.StoreAndFwdFlag),
		TripDuration:      int(*record.TripDurationSeconds),
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "trip_id"}},
		UpdateAll: true,
	}).Create(&trip).Error; err != nil {
		return false, fmt.Errorf("写入行程 %s 失败: %w", record.ID, err)
	}

	fact := buildFact(record)
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "trip_id"}},
		UpdateAll: true,
	}).Create(fact).Error; err != nil {
		return false, fmt.Errorf("写入行程事实 %s 失败: %w", record.ID, err)
	}

	return true, nil
}

func (l *Loader) ensureVendor(tx *gorm.DB, state *loadState, vendorID int64) error {
	if _, ok := state.vendors[vendorID]; ok {
		return nil
	}

	vendor := models.Vendor{
		VendorID:   vendorID,
		VendorName: fmt.Sprintf("Vendor %d", vendorID),
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&vendor).Error; err != nil {
		return fmt.Errorf("写入供应商 %d 失败: %w", vendorID, err)
	}

	state.vendors[vendorID] = struct{}{}
	return nil
}

func (l *Loader) getOrCreateLocation(tx *gorm.DB, state *loadState, longitude, latitude float64) (uint, error) {
	key := [2]float64{longitude, latitude}
	if id, ok := state.locations[key]; ok {
		return id, nil
	}

	var location models.Location
	err := tx.Where("longitude = ? AND latitude = ?", longitude, latitude).First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		location = models.Location{Longitude: longitude, Latitude: latitude}
		err = tx.Create(&location).Error
	}
	if err != nil {
		return 0, fmt.Errorf("解析位置维度(%f, %f)失败: %w", longitude, latitude, err)
	}

	state.locations[key] = location.LocationID
	return location.LocationID, nil
}

func (l *Loader) getOrCreateTime(tx *gorm.DB, state *loadState, moment time.Time) (uint, error) {
	key := moment.Unix()
	if id, ok := state.times[key]; ok {
		return id, nil
	}

	var dimension models.TimeDimension
	err := tx.Where("datetime = ?", moment).First(&dimension).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		dayOfWeek := models.WeekdayIndex(moment)
		dimension = models.TimeDimension{
			Datetime:  moment,
			Hour:      moment.Hour(),
			DayOfWeek: dayOfWeek,
			IsWeekend: dayOfWeek >= 5,
		}
		err = tx.Create(&dimension).Error
	}
	if err != nil {
		return 0, fmt.Errorf("解析时间维度 %s 失败: %w", moment, err)
	}

	state.times[key] = dimension.TimeID
	return dimension.TimeID, nil
}

func buildFact(record *models.TripRecord) *models.TripFact {
	fact := &models.TripFact{
		TripID:           record.ID,
		TripDistance:     record.TripDistance,
		TripDistanceKM:   record.TripDistanceKM,
		TripSpeed:        record.TripSpeedKMH,
		FareAmount:       record.FareAmount,
		FarePerKM:        record.FarePerKM,
		TipAmount:        record.TipAmount,
		TipPercentage:    record.TipPercentage,
		TimePeriod:       record.TimePeriod,
		DistanceCategory: record.DistanceCategory,
		IsRushHour:       record.IsRushHour,
		IsWeekend:        record.IsWeekend,
	}

	if record.TripDistanceKM != nil && record.TripDurationSeconds != nil && *record.TripDurationSeconds > 0 {
		efficiency := *record.TripDistanceKM / (*record.TripDurationSeconds / 60.0)
		efficiency = math.Round(efficiency*1000) / 1000
		fact.TripEfficiency = &efficiency
	}

	return fact
}

func storeFlag(flag string) string {
	if flag == "" {
		return "N"
	}
	return flag[:1]
}
