/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, testify, time
 * @refs service/models
 */

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taxihub-service/service/database"
	"taxihub-service/service/models"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库，含仓库表结构、运营商基础数据与行程明细视图
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	if err := database.AutoMigrate(db); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	if err := database.InitializeData(db); err != nil {
		panic(fmt.Sprintf("failed to seed test database: %v", err))
	}
	if err := database.AutoMigrateView(db); err != nil {
		panic(fmt.Sprintf("failed to create test view: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	// 先清事实表再清维度表，保持外键方向
	tables := []string{
		"trip_facts",
		"trips",
		"time_dimensions",
		"locations",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// TripRecordOption 清洗记录选项函数类型
type TripRecordOption func(*models.TripRecord)

// NewTripRecord 创建一条字段齐全、能通过全部清洗阶段的行程记录
func NewTripRecord(id string, opts ...TripRecordOption) *models.TripRecord {
	pickup := time.Date(2016, 3, 14, 17, 24, 55, 0, time.UTC)
	dropoff := pickup.Add(11 * time.Minute)

	record := &models.TripRecord{
		ID:               id,
		VendorID:         int64Ptr(2),
		PickupDatetime:   &pickup,
		DropoffDatetime:  &dropoff,
		PassengerCount:   floatPtr(1),
		PickupLongitude:  floatPtr(-73.982155),
		PickupLatitude:   floatPtr(40.767937),
		DropoffLongitude: floatPtr(-73.964630),
		DropoffLatitude:  floatPtr(40.765602),
		TripDistance:     floatPtr(2.5),
		FareAmount:       floatPtr(12.5),
		TipAmount:        floatPtr(2.0),
		StoreAndFwdFlag:  "N",
		Raw:              map[string]string{},
	}

	for _, opt := range opts {
		opt(record)
	}
	return record
}

// WriteCSVFile 将CSV内容写入临时目录并返回文件路径
func WriteCSVFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trips.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func int64Ptr(v int64) *int64 {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

// HTTPTestHelper HTTP测试辅助工具
type HTTPTestHelper struct{}

// NewHTTPTestHelper 创建HTTP测试辅助工具
func NewHTTPTestHelper() *HTTPTestHelper {
	return &HTTPTestHelper{}
}

// CreateJSONRequest 创建JSON请求
func (h *HTTPTestHelper) CreateJSONRequest(method, url string, body interface{}) (*http.Request, error) {
	var reqBody io.Reader

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// AssertJSONResponse 断言JSON响应
func (h *HTTPTestHelper) AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedBody interface{}) {
	assert.Equal(t, expectedStatus, w.Code)

	if expectedBody != nil {
		var actualBody interface{}
		err := json.Unmarshal(w.Body.Bytes(), &actualBody)
		assert.NoError(t, err)

		expectedJSON, _ := json.Marshal(expectedBody)
		actualJSON, _ := json.Marshal(actualBody)

		assert.JSONEq(t, string(expectedJSON), string(actualJSON))
	}
}
