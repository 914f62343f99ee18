/*
 * @module api/controllers/vendor_controller
 * @description 运营商分析控制器，提供各运营商运营指标对比
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/api_reference.md
 * @stateFlow 请求接收 -> 业务逻辑处理 -> 响应返回
 * @rules 查询失败统一返回500错误响应
 * @dependencies net/http
 * @refs service/analytics_service.go
 */

package controllers

import (
	"net/http"

	"github.com/go-chi/render"

	"taxihub-service/service"
)

// VendorController 运营商分析控制器
type VendorController struct {
	analyticsService *service.AnalyticsService
}

// NewVendorController 创建运营商分析控制器实例
func NewVendorController(analyticsService *service.AnalyticsService) *VendorController {
	return &VendorController{analyticsService: analyticsService}
}

// VendorListResponse 运营商对比响应结构
type VendorListResponse struct {
	Success bool                       `json:"success" example:"true"`
	Vendors []service.VendorComparison `json:"vendors"`
}

// Comparison 运营商对比
// @Summary 运营商对比
// @Description 各运营商的行程量与均值指标对比，按行程量降序
// @Tags 运营商
// @Produce json
// @Success 200 {object} VendorListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/vendors/comparison [get]
func (c *VendorController) Comparison(w http.ResponseWriter, r *http.Request) {
	vendors, err := c.analyticsService.VendorsComparison(r.Context())
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Failed to retrieve vendor comparison", err.Error())
		return
	}

	render.JSON(w, r, VendorListResponse{
		Success: true,
		Vendors: vendors,
	})
}
