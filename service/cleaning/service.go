/*
 * @module service/cleaning/service
 * @description 清洗服务门面，负责运行管道、落盘制品并按需触发仓库装载
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/cleaning_pipeline.md
 * @stateFlow 接收运行参数 -> 执行管道 -> 写出三类制品 -> 可选装载仓库 -> 缓存最近报告
 * @rules 管道本身确定且幂等，同一输入重复运行产出一致；
 *        同一时刻只允许一次运行，互斥保护最近报告状态
 * @dependencies service/cleaning, service/warehouse
 * @refs api/controllers/pipeline_controller.go, service/scheduler/
 */

package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"taxihub-service/service/models"
	"taxihub-service/service/warehouse"
)

// 制品文件名
const (
	CleanedDataFile     = "cleaned_data.csv"
	ExcludedRecordsFile = "excluded_records.json"
	CleaningReportFile  = "cleaning_report.json"
)

// RunOptions 单次管道运行的参数
type RunOptions struct {
	InputPath     string `json:"input_path"`
	OutputDir     string `json:"output_dir"`
	LoadWarehouse bool   `json:"load_warehouse"`
}

// RunSummary 单次管道运行的结果摘要
type RunSummary struct {
	RunID     string                      `json:"run_id"`
	Report    *models.CleaningReport      `json:"report"`
	Excluded  int                         `json:"excluded"`
	Warehouse *models.WarehouseLoadResult `json:"warehouse,omitempty"`
}

// Service 清洗服务
type Service struct {
	mu        sync.Mutex
	warehouse *warehouse.Loader

	lastReport *models.CleaningReport
	lastRunAt  time.Time
}

// NewService 创建清洗服务实例，warehouseLoader可为nil表示不装载仓库
func NewService(warehouseLoader *warehouse.Loader) *Service {
	return &Service{warehouse: warehouseLoader}
}

// Run 执行一次完整的清洗流程
func (s *Service) Run(ctx context.Context, opts RunOptions) (*RunSummary, error) {
	if opts.InputPath == "" {
		return nil, fmt.Errorf("未指定输入文件")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()
	start := time.Now()
	slog.Info("开始执行清洗管道", "run_id", runID,
		"input", opts.InputPath, "output_dir", opts.OutputDir, "load_warehouse", opts.LoadWarehouse)

	result, err := NewPipeline(opts.InputPath).Run()
	if err != nil {
		return nil, err
	}

	if opts.OutputDir != "" {
		if err := WriteCleanedCSV(filepath.Join(opts.OutputDir, CleanedDataFile), result); err != nil {
			return nil, err
		}
		if err := WriteExclusionLog(filepath.Join(opts.OutputDir, ExcludedRecordsFile), result.Exclusions); err != nil {
			return nil, err
		}
		if err := WriteReport(filepath.Join(opts.OutputDir, CleaningReportFile), result.Report); err != nil {
			return nil, err
		}
	}

	summary := &RunSummary{
		RunID:    runID,
		Report:   result.Report,
		Excluded: result.Exclusions.Count,
	}

	if opts.LoadWarehouse && s.warehouse != nil {
		loadResult, err := s.warehouse.Load(ctx, result.Records)
		if err != nil {
			return nil, fmt.Errorf("仓库装载失败: %w", err)
		}
		summary.Warehouse = loadResult
	}

	s.lastReport = result.Report
	s.lastRunAt = time.Now()

	slog.Info("清洗管道执行完成",
		"run_id", runID,
		"original", result.Statistics.OriginalCount,
		"final", result.Statistics.FinalCount,
		"retention", result.Report.RetentionRate,
		"duration", time.Since(start).String())

	return summary, nil
}

// LastReport 最近一次运行的统计报告，从未运行时返回nil
func (s *Service) LastReport() *models.CleaningReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport
}
