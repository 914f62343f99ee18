/*
 * @module service/scheduler/cleaning_scheduler
 * @description 清洗任务调度器，按cron表达式定时执行行程数据清洗与仓库装载
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/cleaning_pipeline.md
 * @stateFlow 启动调度器 -> 注册cron任务 -> 到点触发清洗 -> 产出工件并装载仓库
 * @rules 未配置CLEANING_CRON时不启动任何定时任务；同一时刻只允许一次清洗执行，
 *        正在执行时触发的任务直接跳过并记日志
 * @dependencies github.com/robfig/cron/v3
 * @refs service/cleaning/service.go
 */

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"taxihub-service/service/cleaning"
)

// CleaningScheduler 清洗任务调度器
type CleaningScheduler struct {
	service   *cleaning.Service
	cron      *cron.Cron
	ctx       context.Context
	cancel    context.CancelFunc
	started   bool
	running   atomic.Bool
	spec      string
	inputPath string
	outputDir string
	afterRun  func(ctx context.Context)
}

// NewCleaningScheduler 创建清洗任务调度器，调度参数取自环境变量
func NewCleaningScheduler(service *cleaning.Service) *CleaningScheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &CleaningScheduler{
		service:   service,
		cron:      cron.New(),
		ctx:       ctx,
		cancel:    cancel,
		spec:      os.Getenv("CLEANING_CRON"),
		inputPath: os.Getenv("CLEANING_INPUT"),
		outputDir: os.Getenv("CLEANING_OUTPUT_DIR"),
	}
}

// SetAfterRun 设置每次清洗成功后的回调，用于统计缓存失效
func (cs *CleaningScheduler) SetAfterRun(fn func(ctx context.Context)) {
	cs.afterRun = fn
}

// StartScheduler 启动调度器
func (cs *CleaningScheduler) StartScheduler() error {
	if cs.started {
		return fmt.Errorf("调度器已经启动")
	}

	if cs.spec == "" {
		slog.Info("未配置CLEANING_CRON，清洗定时任务未启用")
		return nil
	}
	if cs.inputPath == "" {
		return fmt.Errorf("已配置CLEANING_CRON但缺少CLEANING_INPUT")
	}

	if _, err := cs.cron.AddFunc(cs.spec, cs.runOnce); err != nil {
		return fmt.Errorf("注册清洗定时任务失败: %w", err)
	}

	cs.cron.Start()
	cs.started = true
	slog.Info("清洗任务调度器启动完成", "cron", cs.spec, "input", cs.inputPath)
	return nil
}

// StopScheduler 停止调度器
func (cs *CleaningScheduler) StopScheduler() {
	if !cs.started {
		return
	}

	cs.cancel()
	cs.cron.Stop()
	cs.started = false
	slog.Info("清洗任务调度器已停止")
}

// runOnce 执行一次定时清洗
func (cs *CleaningScheduler) runOnce() {
	if !cs.running.CompareAndSwap(false, true) {
		slog.Warn("上一次清洗尚未结束，本次定时触发已跳过")
		return
	}
	defer cs.running.Store(false)

	slog.Info("定时清洗任务开始", "input", cs.inputPath)

	summary, err := cs.service.Run(cs.ctx, cleaning.RunOptions{
		InputPath:     cs.inputPath,
		OutputDir:     cs.outputDir,
		LoadWarehouse: true,
	})
	if err != nil {
		slog.Error("定时清洗任务失败", "error", err)
		return
	}

	slog.Info("定时清洗任务完成",
		"original", summary.Report.Statistics.OriginalCount,
		"final", summary.Report.Statistics.FinalCount,
		"retention", summary.Report.RetentionRate)

	if cs.afterRun != nil {
		cs.afterRun(cs.ctx)
	}
}
