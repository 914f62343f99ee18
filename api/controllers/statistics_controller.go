/*
 * @module api/controllers/statistics_controller
 * @description 统计分析控制器，提供总览、时段、星期、高峰与周末维度的聚合统计接口
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/api_reference.md
 * @stateFlow 请求接收 -> 业务逻辑处理 -> 响应返回
 * @rules 查询失败统一返回500错误响应，空仓库返回空统计而非错误
 * @dependencies net/http
 * @refs service/analytics_service.go
 */

package controllers

import (
	"net/http"

	"github.com/go-chi/render"

	"taxihub-service/service"
)

// StatisticsController 统计分析控制器
type StatisticsController struct {
	analyticsService *service.AnalyticsService
}

// NewStatisticsController 创建统计分析控制器实例
func NewStatisticsController(analyticsService *service.AnalyticsService) *StatisticsController {
	return &StatisticsController{analyticsService: analyticsService}
}

// StatisticsResponse 统计响应结构
type StatisticsResponse struct {
	Success    bool        `json:"success" example:"true"`
	Statistics interface{} `json:"statistics"`
}

// Overview 总览统计
// @Summary 总览统计
// @Description 全量行程的总量、均值与时间范围统计
// @Tags 统计分析
// @Produce json
// @Success 200 {object} StatisticsResponse{statistics=service.OverviewStatistics}
// @Failure 500 {object} ErrorResponse
// @Router /api/statistics/overview [get]
func (c *StatisticsController) Overview(w http.ResponseWriter, r *http.Request) {
	stats, err := c.analyticsService.Overview(r.Context())
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Failed to retrieve statistics", err.Error())
		return
	}

	render.JSON(w, r, StatisticsResponse{Success: true, Statistics: stats})
}

// ByHour 按小时统计
// @Summary 按小时统计
// @Description 按0-23小时分组的行程量与均值统计
// @Tags 统计分析
// @Produce json
// @Success 200 {object} StatisticsResponse{statistics=[]service.HourlyStatistics}
// @Failure 500 {object} ErrorResponse
// @Router /api/statistics/by-hour [get]
func (c *StatisticsController) ByHour(w http.ResponseWriter, r *http.Request) {
	stats, err := c.analyticsService.ByHour(r.Context())
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Failed to retrieve hourly statistics", err.Error())
		return
	}

	render.JSON(w, r, StatisticsResponse{Success: true, Statistics: stats})
}

// ByDayOfWeek 按星期统计
// @Summary 按星期统计
// @Description 按星期分组的行程量与均值统计，周一为0
// @Tags 统计分析
// @Produce json
// @Success 200 {object} StatisticsResponse{statistics=[]service.DailyStatistics}
// @Failure 500 {object} ErrorResponse
// @Router /api/statistics/by-day-of-week [get]
func (c *StatisticsController) ByDayOfWeek(w http.ResponseWriter, r *http.Request) {
	stats, err := c.analyticsService.ByDayOfWeek(r.Context())
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Failed to retrieve daily statistics", err.Error())
		return
	}

	render.JSON(w, r, StatisticsResponse{Success: true, Statistics: stats})
}

// RushHourAnalysis 高峰时段对比
// @Summary 高峰时段对比
// @Description 高峰与平峰时段的行程特征对比
// @Tags 统计分析
// @Produce json
// @Success 200 {object} StatisticsResponse{statistics=[]service.RushHourStatistics}
// @Failure 500 {object} ErrorResponse
// @Router /api/statistics/rush-hour-analysis [get]
func (c *StatisticsController) RushHourAnalysis(w http.ResponseWriter, r *http.Request) {
	stats, err := c.analyticsService.RushHourAnalysis(r.Context())
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Failed to retrieve rush hour analysis", err.Error())
		return
	}

	render.JSON(w, r, StatisticsResponse{Success: true, Statistics: stats})
}

// WeekendAnalysis 周末对比
// @Summary 周末对比
// @Description 周末与工作日的行程特征对比
// @Tags 统计分析
// @Produce json
// @Success 200 {object} StatisticsResponse{statistics=[]service.WeekendStatistics}
// @Failure 500 {object} ErrorResponse
// @Router /api/statistics/weekend-analysis [get]
func (c *StatisticsController) WeekendAnalysis(w http.ResponseWriter, r *http.Request) {
	stats, err := c.analyticsService.WeekendAnalysis(r.Context())
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Failed to retrieve weekend analysis", err.Error())
		return
	}

	render.JSON(w, r, StatisticsResponse{Success: true, Statistics: stats})
}
