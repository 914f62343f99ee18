/*
 * @module service/models/warehouse
 * @description 出租车行程数据仓库模型定义，包括供应商、位置、时间维度、行程事实表
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/warehouse_schema.md
 * @stateFlow 清洗管道输出 -> 批量装载 -> 维度/事实表 -> trip_details视图
 * @rules 维度表通过外键被事实表引用，坐标和时间维度去重复用
 * @dependencies gorm.io/gorm
 * @refs service/warehouse/, service/database/
 */

package models

import (
	"time"
)

// Vendor 出租车供应商维度表
type Vendor struct {
	VendorID   int64  `gorm:"primaryKey;column:vendor_id" json:"vendor_id"`
	VendorName string `gorm:"column:vendor_name;size:100" json:"vendor_name"`
}

// TableName 指定表名
func (Vendor) TableName() string {
	return "vendors"
}

// Location 位置维度表，经纬度组合唯一
type Location struct {
	LocationID uint    `gorm:"primaryKey;autoIncrement;column:location_id" json:"location_id"`
	Longitude  float64 `gorm:"column:longitude;uniqueIndex:idx_locations_lon_lat" json:"longitude"`
	Latitude   float64 `gorm:"column:latitude;uniqueIndex:idx_locations_lon_lat" json:"latitude"`
}

// TableName 指定表名
func (Location) TableName() string {
	return "locations"
}

// TimeDimension 时间维度表，按精确时间去重
type TimeDimension struct {
	TimeID    uint      `gorm:"primaryKey;autoIncrement;column:time_id" json:"time_id"`
	Datetime  time.Time `gorm:"column:datetime;uniqueIndex:idx_time_dimensions_datetime" json:"datetime"`
	Hour      int       `gorm:"column:hour" json:"hour"`
	DayOfWeek int       `gorm:"column:day_of_week" json:"day_of_week"` // 周一=0 ... 周日=6
	IsWeekend bool      `gorm:"column:is_weekend" json:"is_weekend"`
}

// TableName 指定表名
func (TimeDimension) TableName() string {
	return "time_dimensions"
}

// Trip 行程主表
type Trip struct {
	TripID            string `gorm:"primaryKey;column:trip_id;size:32" json:"trip_id"`
	VendorID          int64  `gorm:"column:vendor_id;index" json:"vendor_id"`
	PickupTimeID      uint   `gorm:"column:pickup_time_id" json:"pickup_time_id"`
	DropoffTimeID     uint   `gorm:"column:dropoff_time_id" json:"dropoff_time_id"`
	PickupLocationID  uint   `gorm:"column:pickup_location_id" json:"pickup_location_id"`
	DropoffLocationID uint   `gorm:"column:dropoff_location_id" json:"dropoff_location_id"`
	PassengerCount    int    `gorm:"column:passenger_count" json:"passenger_count"`
	StoreAndFwdFlag   string `gorm:"column:store_and_fwd_flag;size:1;default:'N'" json:"store_and_fwd_flag"`
	TripDuration      int    `gorm:"column:trip_duration" json:"trip_duration"` // 秒
}

// TableName 指定表名
func (Trip) TableName() string {
	return "trips"
}

// TripFact 行程派生指标事实表，可空列对应管道中被置空的派生字段
type TripFact struct {
	TripID           string   `gorm:"primaryKey;column:trip_id;size:32" json:"trip_id"`
	TripDistance     *float64 `gorm:"column:trip_distance" json:"trip_distance"` // 英里
	TripDistanceKM   *float64 `gorm:"column:trip_distance_km" json:"trip_distance_km"`
	TripSpeed        *float64 `gorm:"column:trip_speed" json:"trip_speed"` // km/h
	FareAmount       *float64 `gorm:"column:fare_amount" json:"fare_amount"`
	FarePerKM        *float64 `gorm:"column:fare_per_km" json:"fare_per_km"`
	TipAmount        *float64 `gorm:"column:tip_amount" json:"tip_amount"`
	TipPercentage    *float64 `gorm:"column:tip_percentage" json:"tip_percentage"`
	TripEfficiency   *float64 `gorm:"column:trip_efficiency" json:"trip_efficiency"` // km/分钟
	TimePeriod       string   `gorm:"column:time_period;size:16" json:"time_period"`
	DistanceCategory string   `gorm:"column:distance_category;size:16" json:"distance_category"`
	IsRushHour       bool     `gorm:"column:is_rush_hour" json:"is_rush_hour"`
	IsWeekend        bool     `gorm:"column:is_weekend" json:"is_weekend"`
}

// TableName 指定表名
func (TripFact) TableName() string {
	return "trip_facts"
}

// TripDetail trip_details视图模型，行程列表和单条查询统一走该视图
type TripDetail struct {
	TripID           string    `gorm:"column:trip_id" json:"trip_id"`
	VendorID         int64     `gorm:"column:vendor_id" json:"vendor_id"`
	VendorName       string    `gorm:"column:vendor_name" json:"vendor_name"`
	PickupDatetime   time.Time `gorm:"column:pickup_datetime" json:"pickup_datetime"`
	DropoffDatetime  time.Time `gorm:"column:dropoff_datetime" json:"dropoff_datetime"`
	PickupLongitude  float64   `gorm:"column:pickup_longitude" json:"pickup_longitude"`
	PickupLatitude   float64   `gorm:"column:pickup_latitude" json:"pickup_latitude"`
	DropoffLongitude float64   `gorm:"column:dropoff_longitude" json:"dropoff_longitude"`
	DropoffLatitude  float64   `gorm:"column:dropoff_latitude" json:"dropoff_latitude"`
	PassengerCount   int       `gorm:"column:passenger_count" json:"passenger_count"`
	StoreAndFwdFlag  string    `gorm:"column:store_and_fwd_flag" json:"store_and_fwd_flag"`
	TripDuration     int       `gorm:"column:trip_duration" json:"trip_duration"`
	Hour             int       `gorm:"column:hour" json:"hour"`
	DayOfWeek        int       `gorm:"column:day_of_week" json:"day_of_week"`
	TripDistance     *float64  `gorm:"column:trip_distance" json:"trip_distance"`
	TripDistanceKM   *float64  `gorm:"column:trip_distance_km" json:"trip_distance_km"`
	TripSpeed        *float64  `gorm:"column:trip_speed" json:"trip_speed"`
	FareAmount       *float64  `gorm:"column:fare_amount" json:"fare_amount"`
	FarePerKM        *float64  `gorm:"column:fare_per_km" json:"fare_per_km"`
	TipAmount        *float64  `gorm:"column:tip_amount" json:"tip_amount"`
	TipPercentage    *float64  `gorm:"column:tip_percentage" json:"tip_percentage"`
	TripEfficiency   *float64  `gorm:"column:trip_efficiency" json:"trip_efficiency"`
	TimePeriod       *string   `gorm:"column:time_period" json:"time_period"`
	DistanceCategory *string   `gorm:"column:distance_category" json:"distance_category"`
	IsRushHour       *bool     `gorm:"column:is_rush_hour" json:"is_rush_hour"`
	IsWeekend        *bool     `gorm:"column:is_weekend" json:"is_weekend"`
}

// TableName 指定视图名
func (TripDetail) TableName() string {
	return "trip_details"
}
