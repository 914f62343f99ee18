/*
 * @module api/controllers/trip_controller
 * @description 行程查询控制器，提供过滤分页的行程列表与单条行程明细
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/api_reference.md
 * @stateFlow 请求接收 -> 参数解析校验 -> 业务逻辑处理 -> 响应返回
 * @rules 非法过滤参数返回400，未命中的行程返回404，均为统一错误响应
 * @dependencies net/http
 * @refs service/trip_service.go
 */

package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"gorm.io/gorm"

	"taxihub-service/service"
	"taxihub-service/service/models"
)

// TripController 行程查询控制器
type TripController struct {
	tripService *service.TripService
}

// NewTripController 创建行程查询控制器实例
func NewTripController(tripService *service.TripService) *TripController {
	return &TripController{tripService: tripService}
}

// TripListResponse 行程列表响应结构
type TripListResponse struct {
	Success        bool                   `json:"success" example:"true"`
	Trips          []models.TripDetail    `json:"trips"`
	Pagination     service.Pagination     `json:"pagination"`
	FiltersApplied map[string]interface{} `json:"filters_applied"`
}

// TripResponse 单条行程响应结构
type TripResponse struct {
	Success bool               `json:"success" example:"true"`
	Trip    *models.TripDetail `json:"trip"`
}

// ListTrips 行程列表查询
// @Summary 行程列表查询
// @Description 按运营商、距离、时长、日期、高峰与周末条件过滤并分页查询行程明细
// @Tags 行程
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页条数，上限1000" default(100)
// @Param vendor_id query int false "运营商ID"
// @Param min_distance query number false "最小行程距离（英里）"
// @Param max_distance query number false "最大行程距离（英里）"
// @Param min_duration query int false "最小行程时长（秒）"
// @Param max_duration query int false "最大行程时长（秒）"
// @Param start_date query string false "上车时间下界，支持日期或日期时间"
// @Param end_date query string false "上车时间上界，支持日期或日期时间"
// @Param is_rush_hour query bool false "仅高峰时段行程"
// @Param is_weekend query bool false "仅周末行程"
// @Success 200 {object} TripListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/trips [get]
func (c *TripController) ListTrips(w http.ResponseWriter, r *http.Request) {
	filters, err := parseTripFilters(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid parameter value", err.Error())
		return
	}

	page, err := c.tripService.ListTrips(r.Context(), *filters)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Failed to retrieve trips", err.Error())
		return
	}

	render.JSON(w, r, TripListResponse{
		Success:        true,
		Trips:          page.Trips,
		Pagination:     page.Pagination,
		FiltersApplied: page.FiltersApplied,
	})
}

// GetTrip 单条行程查询
// @Summary 单条行程查询
// @Description 按行程ID查询完整行程明细
// @Tags 行程
// @Produce json
// @Param trip_id path string true "行程ID"
// @Success 200 {object} TripResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/trips/{trip_id} [get]
func (c *TripController) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "trip_id")

	trip, err := c.tripService.GetTrip(r.Context(), tripID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		renderError(w, r, http.StatusNotFound, "Trip not found", tripID)
		return
	}
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Failed to retrieve trip", err.Error())
		return
	}

	render.JSON(w, r, TripResponse{
		Success: true,
		Trip:    trip,
	})
}

func parseTripFilters(r *http.Request) (*service.TripFilters, error) {
	filters := service.TripFilters{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", service.DefaultTripListLimit),
	}

	var err error
	if filters.VendorID, err = queryInt64Ptr(r, "vendor_id"); err != nil {
		return nil, err
	}
	if filters.MinDistance, err = queryFloatPtr(r, "min_distance"); err != nil {
		return nil, err
	}
	if filters.MaxDistance, err = queryFloatPtr(r, "max_distance"); err != nil {
		return nil, err
	}
	if filters.MinDuration, err = queryInt64Ptr(r, "min_duration"); err != nil {
		return nil, err
	}
	if filters.MaxDuration, err = queryInt64Ptr(r, "max_duration"); err != nil {
		return nil, err
	}
	if filters.StartDate, err = queryTimePtr(r, "start_date"); err != nil {
		return nil, err
	}
	if filters.EndDate, err = queryTimePtr(r, "end_date"); err != nil {
		return nil, err
	}
	filters.IsRushHour = queryBoolPtr(r, "is_rush_hour")
	filters.IsWeekend = queryBoolPtr(r, "is_weekend")

	return &filters, nil
}
