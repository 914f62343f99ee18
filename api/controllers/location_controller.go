/*
 * @module api/controllers/location_controller
 * @description 地点分析控制器，提供热门上车点、下车点与上下车线路排行
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/api_reference.md
 * @stateFlow 请求接收 -> 参数解析 -> 业务逻辑处理 -> 响应返回
 * @rules limit参数超界时压回上限，地点排行上限100条，线路排行上限50条
 * @dependencies net/http
 * @refs service/analytics_service.go
 */

package controllers

import (
	"net/http"

	"github.com/go-chi/render"

	"taxihub-service/service"
)

// LocationController 地点分析控制器
type LocationController struct {
	analyticsService *service.AnalyticsService
}

// NewLocationController 创建地点分析控制器实例
func NewLocationController(analyticsService *service.AnalyticsService) *LocationController {
	return &LocationController{analyticsService: analyticsService}
}

// LocationListResponse 地点排行响应结构
type LocationListResponse struct {
	Success   bool        `json:"success" example:"true"`
	Locations interface{} `json:"locations"`
	Count     int         `json:"count"`
}

// RouteListResponse 线路排行响应结构
type RouteListResponse struct {
	Success bool                   `json:"success" example:"true"`
	Routes  []service.PopularRoute `json:"routes"`
	Count   int                    `json:"count"`
}

// PopularPickups 热门上车地点
// @Summary 热门上车地点
// @Description 按出行量排序的上车地点，附带均值统计
// @Tags 地点分析
// @Produce json
// @Param limit query int false "返回条数，上限100" default(20)
// @Success 200 {object} LocationListResponse{locations=[]service.PopularPickup}
// @Failure 500 {object} ErrorResponse
// @Router /api/locations/popular-pickups [get]
func (c *LocationController) PopularPickups(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", service.DefaultLocationLimit)

	locations, err := c.analyticsService.PopularPickups(r.Context(), limit)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Failed to retrieve popular pickups", err.Error())
		return
	}

	render.JSON(w, r, LocationListResponse{
		Success:   true,
		Locations: locations,
		Count:     len(locations),
	})
}

// PopularDropoffs 热门下车地点
// @Summary 热门下车地点
// @Description 按出行量排序的下车地点，附带均值统计
// @Tags 地点分析
// @Produce json
// @Param limit query int false "返回条数，上限100" default(20)
// @Success 200 {object} LocationListResponse{locations=[]service.PopularDropoff}
// @Failure 500 {object} ErrorResponse
// @Router /api/locations/popular-dropoffs [get]
func (c *LocationController) PopularDropoffs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", service.DefaultLocationLimit)

	locations, err := c.analyticsService.PopularDropoffs(r.Context(), limit)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Failed to retrieve popular dropoffs", err.Error())
		return
	}

	render.JSON(w, r, LocationListResponse{
		Success:   true,
		Locations: locations,
		Count:     len(locations),
	})
}

// PopularRoutes 热门线路
// @Summary 热门线路
// @Description 按出行量排序的上下车坐标对
// @Tags 地点分析
// @Produce json
// @Param limit query int false "返回条数，上限50" default(20)
// @Success 200 {object} RouteListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/locations/routes [get]
func (c *LocationController) PopularRoutes(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", service.DefaultLocationLimit)

	routes, err := c.analyticsService.PopularRoutes(r.Context(), limit)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Failed to retrieve popular routes", err.Error())
		return
	}

	render.JSON(w, r, RouteListResponse{
		Success: true,
		Routes:  routes,
		Count:   len(routes),
	})
}
