/*
 * @module service/database/auto_migrate_view
 * @description 视图迁移模块，维护trip_details聚合视图
 * @architecture 数据访问层 - 迁移管理
 * @documentReference dev_docs/warehouse_schema.md
 * @stateFlow 应用启动时先删除再重建视图，保证定义与代码一致
 * @rules 视图SQL保持与PostgreSQL和SQLite兼容，测试环境同样可用
 * @dependencies gorm.io/gorm
 * @refs service/models/warehouse.go
 */

package database

import (
	"log"

	"gorm.io/gorm"
)

// trip_details 聚合视图：行程主表与全部维度、事实列的拍平连接
const tripDetailsViewSQL = `
CREATE VIEW trip_details AS
SELECT
    t.trip_id,
    v.vendor_id,
    v.vendor_name,
    pt.datetime AS pickup_datetime,
    dt.datetime AS dropoff_datetime,
    pt.hour AS hour,
    pt.day_of_week AS day_of_week,
    pl.longitude AS pickup_longitude,
    pl.latitude AS pickup_latitude,
    dl.longitude AS dropoff_longitude,
    dl.latitude AS dropoff_latitude,
    t.passenger_count,
    t.store_and_fwd_flag,
    t.trip_duration,
    tf.trip_distance,
    tf.trip_distance_km,
    tf.trip_speed,
    tf.fare_amount,
    tf.fare_per_km,
    tf.tip_amount,
    tf.tip_percentage,
    tf.trip_efficiency,
    tf.time_period,
    tf.distance_category,
    tf.is_rush_hour,
    tf.is_weekend
FROM trips t
JOIN vendors v ON t.vendor_id = v.vendor_id
JOIN time_dimensions pt ON t.pickup_time_id = pt.time_id
JOIN time_dimensions dt ON t.dropoff_time_id = dt.time_id
JOIN locations pl ON t.pickup_location_id = pl.location_id
JOIN locations dl ON t.dropoff_location_id = dl.location_id
LEFT JOIN trip_facts tf ON t.trip_id = tf.trip_id
`

// AutoMigrateView 重建聚合视图
func AutoMigrateView(db *gorm.DB) error {
	log.Println("开始视图迁移...")

	if err := db.Exec("DROP VIEW IF EXISTS trip_details").Error; err != nil {
		return err
	}
	if err := db.Exec(tripDetailsViewSQL).Error; err != nil {
		return err
	}

	log.Println("视图迁移完成")
	return nil
}
