/*
 * @module api/controllers/pipeline_controller
 * @description 清洗管道控制器，提供按需触发清洗装载与查询最近一次清洗报告
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/cleaning_pipeline.md
 * @stateFlow 请求接收 -> 参数校验 -> 执行清洗管道 -> 失效统计缓存 -> 响应返回
 * @rules input_path为必填项；清洗执行为互斥操作，装载成功后统计缓存整体失效
 * @dependencies net/http
 * @refs service/cleaning/service.go
 */

package controllers

import (
	"net/http"
	"os"

	"github.com/go-chi/render"

	"taxihub-service/service"
	"taxihub-service/service/cleaning"
)

// PipelineController 清洗管道控制器
type PipelineController struct {
	cleaningService  *cleaning.Service
	analyticsService *service.AnalyticsService
}

// NewPipelineController 创建清洗管道控制器实例
func NewPipelineController(cleaningService *cleaning.Service, analyticsService *service.AnalyticsService) *PipelineController {
	return &PipelineController{
		cleaningService:  cleaningService,
		analyticsService: analyticsService,
	}
}

// PipelineRunResponse 清洗运行响应结构
type PipelineRunResponse struct {
	Success bool                 `json:"success" example:"true"`
	Summary *cleaning.RunSummary `json:"summary"`
}

// PipelineReportResponse 清洗报告响应结构
type PipelineReportResponse struct {
	Success bool        `json:"success" example:"true"`
	Report  interface{} `json:"report"`
}

// Run 触发清洗管道
// @Summary 触发清洗管道
// @Description 对指定CSV输入执行完整清洗流程，可选落盘工件并装载数据仓库
// @Tags 清洗管道
// @Accept json
// @Produce json
// @Param options body cleaning.RunOptions true "清洗运行参数"
// @Success 200 {object} PipelineRunResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/pipeline/run [post]
func (c *PipelineController) Run(w http.ResponseWriter, r *http.Request) {
	var opts cleaning.RunOptions
	if err := render.DecodeJSON(r.Body, &opts); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	// 未显式指定输入时退回定时任务配置的输入文件
	if opts.InputPath == "" {
		opts.InputPath = os.Getenv("CLEANING_INPUT")
	}
	if opts.OutputDir == "" {
		opts.OutputDir = os.Getenv("CLEANING_OUTPUT_DIR")
	}
	if opts.InputPath == "" {
		renderError(w, r, http.StatusBadRequest, "Invalid request body", "input_path is required")
		return
	}

	summary, err := c.cleaningService.Run(r.Context(), opts)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Pipeline run failed", err.Error())
		return
	}

	if opts.LoadWarehouse {
		c.analyticsService.InvalidateCache(r.Context())
	}

	render.JSON(w, r, PipelineRunResponse{
		Success: true,
		Summary: summary,
	})
}

// Report 最近一次清洗报告
// @Summary 最近一次清洗报告
// @Description 查询最近一次清洗运行产出的统计报告
// @Tags 清洗管道
// @Produce json
// @Success 200 {object} PipelineReportResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/pipeline/report [get]
func (c *PipelineController) Report(w http.ResponseWriter, r *http.Request) {
	report := c.cleaningService.LastReport()
	if report == nil {
		renderError(w, r, http.StatusNotFound, "No cleaning report available", "run the pipeline first")
		return
	}

	render.JSON(w, r, PipelineReportResponse{
		Success: true,
		Report:  report,
	})
}
