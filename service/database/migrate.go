/*
 * @module service/database/migrate
 * @description 数据库迁移模块，负责创建仓库表结构、视图和基础数据
 * @architecture 数据访问层 - 迁移管理
 * @documentReference dev_docs/warehouse_schema.md
 * @stateFlow 应用启动时执行数据库迁移
 * @rules 确保数据库结构与模型定义保持一致
 * @dependencies taxihub-service/service/models, gorm.io/gorm
 * @refs service/models/warehouse.go
 */

package database

import (
	"errors"
	"log"

	"taxihub-service/service/models"

	"gorm.io/gorm"
)

// AutoMigrate 自动迁移数据仓库表结构
func AutoMigrate(db *gorm.DB) error {
	log.Println("开始数据库迁移...")

	// 维度表
	err := db.AutoMigrate(
		&models.Vendor{},
		&models.Location{},
		&models.TimeDimension{},
	)
	if err != nil {
		return err
	}

	// 行程主表与事实表
	err = db.AutoMigrate(
		&models.Trip{},
		&models.TripFact{},
	)
	if err != nil {
		return err
	}

	log.Println("数据库迁移完成")
	return nil
}

// InitializeData 初始化基础数据
func InitializeData(db *gorm.DB) error {
	log.Println("开始初始化基础数据...")

	// 已知的NYC出租车供应商，装载时遇到新供应商会即时补齐
	vendors := []models.Vendor{
		{VendorID: 1, VendorName: "Creative Mobile Technologies"},
		{VendorID: 2, VendorName: "VeriFone Inc."},
	}

	for _, vendor := range vendors {
		var existing models.Vendor
		if err := db.First(&existing, "vendor_id = ?", vendor.VendorID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&vendor).Error; err != nil {
				return err
			}
		}
	}

	log.Println("基础数据初始化完成")
	return nil
}
