/*
 * @module service/analytics_service
 * @description 行程统计分析服务，提供总览、时段、星期、高峰、周末、地点与运营商维度的聚合统计
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/api_reference.md
 * @stateFlow 控制器请求 -> 读缓存 -> 未命中执行聚合SQL -> 回填缓存并返回
 * @rules 平均值列在无事实数据时返回null而非0；聚合SQL同时兼容PostgreSQL与SQLite；
 *        缓存键统一带stats:前缀，仓库重新装载后整体失效
 * @dependencies gorm.io/gorm
 * @refs service/cache/cache_service.go, api/controllers/statistics_controller.go
 */

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taxihub-service/service/cache"
	"taxihub-service/service/models"
)

const (
	// DefaultLocationLimit 热门地点默认返回条数
	DefaultLocationLimit = 20
	// MaxLocationLimit 热门地点返回条数上限
	MaxLocationLimit = 100
	// MaxRouteLimit 热门线路返回条数上限
	MaxRouteLimit = 50
)

// OverviewStatistics 全量行程总览统计
type OverviewStatistics struct {
	TotalTrips      int64      `json:"total_trips"`
	AvgDistance     *float64   `json:"avg_distance"`
	AvgDuration     *float64   `json:"avg_duration"`
	AvgSpeed        *float64   `json:"avg_speed"`
	TotalPassengers *float64   `json:"total_passengers"`
	EarliestTrip    *time.Time `json:"earliest_trip"`
	LatestTrip      *time.Time `json:"latest_trip"`
	AvgEfficiency   *float64   `json:"avg_efficiency"`
}

// HourlyStatistics 按小时分组的行程统计
type HourlyStatistics struct {
	Hour          int      `json:"hour"`
	TripCount     int64    `json:"trip_count"`
	AvgDistance   *float64 `json:"avg_distance"`
	AvgDuration   *float64 `json:"avg_duration"`
	AvgSpeed      *float64 `json:"avg_speed"`
	AvgPassengers *float64 `json:"avg_passengers"`
}

// DailyStatistics 按星期分组的行程统计，周一为0
type DailyStatistics struct {
	DayOfWeek   int      `json:"day_of_week"`
	DayName     string   `json:"day_name"`
	TripCount   int64    `json:"trip_count"`
	AvgDistance *float64 `json:"avg_distance"`
	AvgDuration *float64 `json:"avg_duration"`
	AvgSpeed    *float64 `json:"avg_speed"`
}

// RushHourStatistics 高峰与平峰对比统计
type RushHourStatistics struct {
	IsRushHour    bool     `json:"is_rush_hour"`
	TripCount     int64    `json:"trip_count"`
	AvgDistance   *float64 `json:"avg_distance"`
	AvgDuration   *float64 `json:"avg_duration"`
	AvgSpeed      *float64 `json:"avg_speed"`
	AvgEfficiency *float64 `json:"avg_efficiency"`
}

// WeekendStatistics 周末与工作日对比统计
type WeekendStatistics struct {
	IsWeekend   bool     `json:"is_weekend"`
	Period      string   `json:"period"`
	TripCount   int64    `json:"trip_count"`
	AvgDistance *float64 `json:"avg_distance"`
	AvgDuration *float64 `json:"avg_duration"`
	AvgSpeed    *float64 `json:"avg_speed"`
}

// PopularPickup 热门上车地点统计
type PopularPickup struct {
	PickupLongitude float64  `json:"pickup_longitude"`
	PickupLatitude  float64  `json:"pickup_latitude"`
	PickupCount     int64    `json:"pickup_count"`
	AvgDistance     *float64 `json:"avg_distance"`
	AvgDuration     *float64 `json:"avg_duration"`
}

// PopularDropoff 热门下车地点统计
type PopularDropoff struct {
	DropoffLongitude float64  `json:"dropoff_longitude"`
	DropoffLatitude  float64  `json:"dropoff_latitude"`
	DropoffCount     int64    `json:"dropoff_count"`
	AvgDistance      *float64 `json:"avg_distance"`
	AvgDuration      *float64 `json:"avg_duration"`
}

// PopularRoute 热门上下车线路统计
type PopularRoute struct {
	PickupLongitude  float64  `json:"pickup_longitude"`
	PickupLatitude   float64  `json:"pickup_latitude"`
	DropoffLongitude float64  `json:"dropoff_longitude"`
	DropoffLatitude  float64  `json:"dropoff_latitude"`
	RouteCount       int64    `json:"route_count"`
	AvgDistance      *float64 `json:"avg_distance"`
	AvgDuration      *float64 `json:"avg_duration"`
	AvgSpeed         *float64 `json:"avg_speed"`
}

// VendorComparison 运营商维度对比统计
type VendorComparison struct {
	VendorID      int64    `json:"vendor_id"`
	VendorName    string   `json:"vendor_name"`
	TripCount     int64    `json:"trip_count"`
	AvgDistance   *float64 `json:"avg_distance"`
	AvgDuration   *float64 `json:"avg_duration"`
	AvgSpeed      *float64 `json:"avg_speed"`
	AvgPassengers *float64 `json:"avg_passengers"`
}

// AnalyticsService 行程统计分析服务
type AnalyticsService struct {
	db    *gorm.DB
	cache *cache.Service
}

// NewAnalyticsService 创建统计分析服务
func NewAnalyticsService(db *gorm.DB, cacheService *cache.Service) *AnalyticsService {
	return &AnalyticsService{db: db, cache: cacheService}
}

// Overview 全量行程总览统计，含最早与最晚上车时间
func (s *AnalyticsService) Overview(ctx context.Context) (*OverviewStatistics, error) {
	var stats OverviewStatistics
	if s.cache.Get(ctx, "stats:overview", &stats) {
		return &stats, nil
	}

	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_trips,
			ROUND(AVG(tf.trip_distance), 2) AS avg_distance,
			ROUND(AVG(t.trip_duration), 0) AS avg_duration,
			ROUND(AVG(tf.trip_speed), 2) AS avg_speed,
			SUM(t.passenger_count) AS total_passengers,
			ROUND(AVG(tf.trip_efficiency), 3) AS avg_efficiency
		FROM trips t
		LEFT JOIN trip_facts tf ON t.trip_id = tf.trip_id
	`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	// MIN/MAX聚合在SQLite下丢失时间列类型信息，改走模型查询保证扫描为time.Time
	earliest, err := s.boundaryPickupTime(ctx, "ASC")
	if err != nil {
		return nil, err
	}
	latest, err := s.boundaryPickupTime(ctx, "DESC")
	if err != nil {
		return nil, err
	}
	stats.EarliestTrip = earliest
	stats.LatestTrip = latest

	s.cache.Set(ctx, "stats:overview", &stats)
	return &stats, nil
}

func (s *AnalyticsService) boundaryPickupTime(ctx context.Context, order string) (*time.Time, error) {
	var dimension models.TimeDimension
	err := s.db.WithContext(ctx).
		Joins("JOIN trips ON trips.pickup_time_id = time_dimensions.time_id").
		Order(fmt.Sprintf("time_dimensions.datetime %s", order)).
		First(&dimension).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dimension.Datetime, nil
}

// ByHour 按0-23小时分组统计行程
func (s *AnalyticsService) ByHour(ctx context.Context) ([]HourlyStatistics, error) {
	stats := make([]HourlyStatistics, 0, 24)
	if s.cache.Get(ctx, "stats:by-hour", &stats) {
		return stats, nil
	}

	err := s.db.WithContext(ctx).Raw(`
		SELECT
			pt.hour AS hour,
			COUNT(*) AS trip_count,
			ROUND(AVG(tf.trip_distance), 2) AS avg_distance,
			ROUND(AVG(t.trip_duration), 0) AS avg_duration,
			ROUND(AVG(tf.trip_speed), 2) AS avg_speed,
			ROUND(AVG(t.passenger_count), 1) AS avg_passengers
		FROM trips t
		JOIN time_dimensions pt ON t.pickup_time_id = pt.time_id
		LEFT JOIN trip_facts tf ON t.trip_id = tf.trip_id
		GROUP BY pt.hour
		ORDER BY pt.hour
	`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, "stats:by-hour", stats)
	return stats, nil
}

// ByDayOfWeek 按星期分组统计行程，周一为0周日为6
func (s *AnalyticsService) ByDayOfWeek(ctx context.Context) ([]DailyStatistics, error) {
	stats := make([]DailyStatistics, 0, 7)
	if s.cache.Get(ctx, "stats:by-day-of-week", &stats) {
		return stats, nil
	}

	err := s.db.WithContext(ctx).Raw(`
		SELECT
			pt.day_of_week AS day_of_week,
			CASE pt.day_of_week
				WHEN 0 THEN 'Monday'
				WHEN 1 THEN 'Tuesday'
				WHEN 2 THEN 'Wednesday'
				WHEN 3 THEN 'Thursday'
				WHEN 4 THEN 'Friday'
				WHEN 5 THEN 'Saturday'
				WHEN 6 THEN 'Sunday'
			END AS day_name,
			COUNT(*) AS trip_count,
			ROUND(AVG(tf.trip_distance), 2) AS avg_distance,
			ROUND(AVG(t.trip_duration), 0) AS avg_duration,
			ROUND(AVG(tf.trip_speed), 2) AS avg_speed
		FROM trips t
		JOIN time_dimensions pt ON t.pickup_time_id = pt.time_id
		LEFT JOIN trip_facts tf ON t.trip_id = tf.trip_id
		GROUP BY pt.day_of_week
		ORDER BY pt.day_of_week
	`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, "stats:by-day-of-week", stats)
	return stats, nil
}

// RushHourAnalysis 高峰时段与平峰时段对比
func (s *AnalyticsService) RushHourAnalysis(ctx context.Context) ([]RushHourStatistics, error) {
	stats := make([]RushHourStatistics, 0, 2)
	if s.cache.Get(ctx, "stats:rush-hour", &stats) {
		return stats, nil
	}

	err := s.db.WithContext(ctx).Raw(`
		SELECT
			tf.is_rush_hour AS is_rush_hour,
			COUNT(*) AS trip_count,
			ROUND(AVG(tf.trip_distance), 2) AS avg_distance,
			ROUND(AVG(t.trip_duration), 0) AS avg_duration,
			ROUND(AVG(tf.trip_speed), 2) AS avg_speed,
			ROUND(AVG(tf.trip_efficiency), 3) AS avg_efficiency
		FROM trips t
		LEFT JOIN trip_facts tf ON t.trip_id = tf.trip_id
		WHERE tf.is_rush_hour IS NOT NULL
		GROUP BY tf.is_rush_hour
		ORDER BY tf.is_rush_hour
	`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, "stats:rush-hour", stats)
	return stats, nil
}

// WeekendAnalysis 周末与工作日对比
func (s *AnalyticsService) WeekendAnalysis(ctx context.Context) ([]WeekendStatistics, error) {
	stats := make([]WeekendStatistics, 0, 2)
	if s.cache.Get(ctx, "stats:weekend", &stats) {
		return stats, nil
	}

	err := s.db.WithContext(ctx).Raw(`
		SELECT
			tf.is_weekend AS is_weekend,
			CASE WHEN tf.is_weekend THEN 'Weekend' ELSE 'Weekday' END AS period,
			COUNT(*) AS trip_count,
			ROUND(AVG(tf.trip_distance), 2) AS avg_distance,
			ROUND(AVG(t.trip_duration), 0) AS avg_duration,
			ROUND(AVG(tf.trip_speed), 2) AS avg_speed
		FROM trips t
		LEFT JOIN trip_facts tf ON t.trip_id = tf.trip_id
		WHERE tf.is_weekend IS NOT NULL
		GROUP BY tf.is_weekend
		ORDER BY tf.is_weekend
	`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, "stats:weekend", stats)
	return stats, nil
}

// PopularPickups 出行量最高的上车地点
func (s *AnalyticsService) PopularPickups(ctx context.Context, limit int) ([]PopularPickup, error) {
	limit = clampLimit(limit, DefaultLocationLimit, MaxLocationLimit)

	key := fmt.Sprintf("stats:popular-pickups:%d", limit)
	locations := make([]PopularPickup, 0, limit)
	if s.cache.Get(ctx, key, &locations) {
		return locations, nil
	}

	err := s.db.WithContext(ctx).Raw(`
		SELECT
			pl.longitude AS pickup_longitude,
			pl.latitude AS pickup_latitude,
			COUNT(*) AS pickup_count,
			ROUND(AVG(tf.trip_distance), 2) AS avg_distance,
			ROUND(AVG(t.trip_duration), 0) AS avg_duration
		FROM trips t
		JOIN locations pl ON t.pickup_location_id = pl.location_id
		LEFT JOIN trip_facts tf ON t.trip_id = tf.trip_id
		GROUP BY pl.longitude, pl.latitude
		ORDER BY pickup_count DESC
		LIMIT ?
	`, limit).Scan(&locations).Error
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, locations)
	return locations, nil
}

// PopularDropoffs 出行量最高的下车地点
func (s *AnalyticsService) PopularDropoffs(ctx context.Context, limit int) ([]PopularDropoff, error) {
	limit = clampLimit(limit, DefaultLocationLimit, MaxLocationLimit)

	key := fmt.Sprintf("stats:popular-dropoffs:%d", limit)
	locations := make([]PopularDropoff, 0, limit)
	if s.cache.Get(ctx, key, &locations) {
		return locations, nil
	}

	err := s.db.WithContext(ctx).Raw(`
		SELECT
			dl.longitude AS dropoff_longitude,
			dl.latitude AS dropoff_latitude,
			COUNT(*) AS dropoff_count,
			ROUND(AVG(tf.trip_distance), 2) AS avg_distance,
			ROUND(AVG(t.trip_duration), 0) AS avg_duration
		FROM trips t
		JOIN locations dl ON t.dropoff_location_id = dl.location_id
		LEFT JOIN trip_facts tf ON t.trip_id = tf.trip_id
		GROUP BY dl.longitude, dl.latitude
		ORDER BY dropoff_count DESC
		LIMIT ?
	`, limit).Scan(&locations).Error
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, locations)
	return locations, nil
}

// PopularRoutes 出行量最高的上下车线路
func (s *AnalyticsService) PopularRoutes(ctx context.Context, limit int) ([]PopularRoute, error) {
	limit = clampLimit(limit, DefaultLocationLimit, MaxRouteLimit)

	key := fmt.Sprintf("stats:popular-routes:%d", limit)
	routes := make([]PopularRoute, 0, limit)
	if s.cache.Get(ctx, key, &routes) {
		return routes, nil
	}

	err := s.db.WithContext(ctx).Raw(`
		SELECT
			pl.longitude AS pickup_longitude,
			pl.latitude AS pickup_latitude,
			dl.longitude AS dropoff_longitude,
			dl.latitude AS dropoff_latitude,
			COUNT(*) AS route_count,
			ROUND(AVG(tf.trip_distance), 2) AS avg_distance,
			ROUND(AVG(t.trip_duration), 0) AS avg_duration,
			ROUND(AVG(tf.trip_speed), 2) AS avg_speed
		FROM trips t
		JOIN locations pl ON t.pickup_location_id = pl.location_id
		JOIN locations dl ON t.dropoff_location_id = dl.location_id
		LEFT JOIN trip_facts tf ON t.trip_id = tf.trip_id
		GROUP BY pl.longitude, pl.latitude, dl.longitude, dl.latitude
		ORDER BY route_count DESC
		LIMIT ?
	`, limit).Scan(&routes).Error
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, routes)
	return routes, nil
}

// VendorsComparison 各运营商运营指标对比
func (s *AnalyticsService) VendorsComparison(ctx context.Context) ([]VendorComparison, error) {
	vendors := make([]VendorComparison, 0, 2)
	if s.cache.Get(ctx, "stats:vendors", &vendors) {
		return vendors, nil
	}

	err := s.db.WithContext(ctx).Raw(`
		SELECT
			v.vendor_id AS vendor_id,
			v.vendor_name AS vendor_name,
			COUNT(*) AS trip_count,
			ROUND(AVG(tf.trip_distance), 2) AS avg_distance,
			ROUND(AVG(t.trip_duration), 0) AS avg_duration,
			ROUND(AVG(tf.trip_speed), 2) AS avg_speed,
			ROUND(AVG(t.passenger_count), 2) AS avg_passengers
		FROM trips t
		JOIN vendors v ON t.vendor_id = v.vendor_id
		LEFT JOIN trip_facts tf ON t.trip_id = tf.trip_id
		GROUP BY v.vendor_id, v.vendor_name
		ORDER BY trip_count DESC
	`).Scan(&vendors).Error
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, "stats:vendors", vendors)
	return vendors, nil
}

// InvalidateCache 仓库重新装载后清空统计缓存
func (s *AnalyticsService) InvalidateCache(ctx context.Context) {
	s.cache.Clear(ctx)
}

func clampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
