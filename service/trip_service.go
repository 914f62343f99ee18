/*
 * @module service/trip_service
 * @description 行程查询服务，提供基于trip_details视图的条件过滤、分页列表与单条查询
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/api_reference.md
 * @stateFlow 控制器解析过滤参数 -> 服务层拼装查询 -> 视图返回行程明细
 * @rules 全部查询走trip_details视图，分页limit上限1000，默认100；
 *        空结果返回空列表而非错误，未命中的单条查询返回gorm.ErrRecordNotFound
 * @dependencies gorm.io/gorm
 * @refs service/models/warehouse.go, api/controllers/trip_controller.go
 */

package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taxihub-service/service/models"
)

const (
	// DefaultTripListLimit 行程列表默认分页大小
	DefaultTripListLimit = 100
	// MaxTripListLimit 行程列表单页上限
	MaxTripListLimit = 1000
)

// TripFilters 行程列表过滤条件，nil字段表示不启用
type TripFilters struct {
	VendorID    *int64
	MinDistance *float64
	MaxDistance *float64
	MinDuration *int64
	MaxDuration *int64
	StartDate   *time.Time
	EndDate     *time.Time
	IsRushHour  *bool
	IsWeekend   *bool
	Page        int
	Limit       int
}

// Pagination 分页元信息
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// TripPage 行程分页结果
type TripPage struct {
	Trips          []models.TripDetail    `json:"trips"`
	Pagination     Pagination             `json:"pagination"`
	FiltersApplied map[string]interface{} `json:"filters_applied"`
}

// TripService 行程查询服务
type TripService struct {
	db *gorm.DB
}

// NewTripService 创建行程查询服务
func NewTripService(db *gorm.DB) *TripService {
	return &TripService{db: db}
}

// ListTrips 按过滤条件分页查询行程明细，按上车时间倒序
func (s *TripService) ListTrips(ctx context.Context, filters TripFilters) (*TripPage, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultTripListLimit
	}
	if limit > MaxTripListLimit {
		limit = MaxTripListLimit
	}
	offset := (page - 1) * limit

	query := s.db.WithContext(ctx).Model(&models.TripDetail{})
	applied := make(map[string]interface{})

	if filters.VendorID != nil {
		query = query.Where("vendor_id = ?", *filters.VendorID)
		applied["vendor_id"] = *filters.VendorID
	}
	if filters.MinDistance != nil {
		query = query.Where("trip_distance >= ?", *filters.MinDistance)
		applied["min_distance"] = *filters.MinDistance
	}
	if filters.MaxDistance != nil {
		query = query.Where("trip_distance <= ?", *filters.MaxDistance)
		applied["max_distance"] = *filters.MaxDistance
	}
	if filters.MinDuration != nil {
		query = query.Where("trip_duration >= ?", *filters.MinDuration)
		applied["min_duration"] = *filters.MinDuration
	}
	if filters.MaxDuration != nil {
		query = query.Where("trip_duration <= ?", *filters.MaxDuration)
		applied["max_duration"] = *filters.MaxDuration
	}
	if filters.StartDate != nil {
		query = query.Where("pickup_datetime >= ?", *filters.StartDate)
		applied["start_date"] = filters.StartDate.Format("2006-01-02")
	}
	if filters.EndDate != nil {
		query = query.Where("pickup_datetime <= ?", *filters.EndDate)
		applied["end_date"] = filters.EndDate.Format("2006-01-02")
	}
	if filters.IsRushHour != nil {
		query = query.Where("is_rush_hour = ?", *filters.IsRushHour)
		applied["is_rush_hour"] = *filters.IsRushHour
	}
	if filters.IsWeekend != nil {
		query = query.Where("is_weekend = ?", *filters.IsWeekend)
		applied["is_weekend"] = *filters.IsWeekend
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	trips := make([]models.TripDetail, 0, limit)
	err := query.Order("pickup_datetime DESC").Limit(limit).Offset(offset).Find(&trips).Error
	if err != nil {
		return nil, err
	}

	return &TripPage{
		Trips: trips,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: (total + int64(limit) - 1) / int64(limit),
		},
		FiltersApplied: applied,
	}, nil
}

// GetTrip 按行程ID查询单条明细，未命中返回gorm.ErrRecordNotFound
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*models.TripDetail, error) {
	var trip models.TripDetail
	err := s.db.WithContext(ctx).Where("trip_id = ?", tripID).First(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}
