/*
 * @module api/controllers/sampledata_controller
 * @description 示例数据控制器，提供前端联调用的模拟统计数据集
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/api_reference.md
 * @stateFlow 请求接收 -> 按名称生成数据集 -> 响应返回
 * @rules 未注册的数据集名称返回404
 * @dependencies net/http
 * @refs service/sampledata/sampledata_service.go
 */

package controllers

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"taxihub-service/service/sampledata"
)

// SampleDataController 示例数据控制器
type SampleDataController struct {
	sampleDataService *sampledata.Service
}

// NewSampleDataController 创建示例数据控制器实例
func NewSampleDataController(sampleDataService *sampledata.Service) *SampleDataController {
	return &SampleDataController{sampleDataService: sampleDataService}
}

// SampleDataListResponse 示例数据集列表响应结构
type SampleDataListResponse struct {
	Success  bool     `json:"success" example:"true"`
	Datasets []string `json:"datasets"`
}

// ListDatasets 示例数据集列表
// @Summary 示例数据集列表
// @Description 列出全部可用的示例数据集名称
// @Tags 示例数据
// @Produce json
// @Success 200 {object} SampleDataListResponse
// @Router /api/sample-data [get]
func (c *SampleDataController) ListDatasets(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SampleDataListResponse{
		Success:  true,
		Datasets: sampledata.DatasetNames,
	})
}

// SampleDataGenerateRequest 示例数据生成请求结构
type SampleDataGenerateRequest struct {
	OutputDir string `json:"output_dir"`
}

// SampleDataGenerateResponse 示例数据生成响应结构
type SampleDataGenerateResponse struct {
	Success   bool     `json:"success" example:"true"`
	OutputDir string   `json:"output_dir"`
	Datasets  []string `json:"datasets"`
}

// GenerateDatasets 生成全部示例数据集文件
// @Summary 生成全部示例数据集文件
// @Description 将全部示例数据集以JSON文件形式写入目标目录
// @Tags 示例数据
// @Accept json
// @Produce json
// @Param request body SampleDataGenerateRequest true "生成参数"
// @Success 200 {object} SampleDataGenerateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/sample-data/generate [post]
func (c *SampleDataController) GenerateDatasets(w http.ResponseWriter, r *http.Request) {
	var req SampleDataGenerateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.OutputDir == "" {
		req.OutputDir = os.Getenv("SAMPLE_DATA_DIR")
	}
	if req.OutputDir == "" {
		renderError(w, r, http.StatusBadRequest, "Invalid request body", "output_dir is required")
		return
	}

	if err := c.sampleDataService.WriteAll(req.OutputDir); err != nil {
		renderError(w, r, http.StatusInternalServerError, "Sample data generation failed", err.Error())
		return
	}

	render.JSON(w, r, SampleDataGenerateResponse{
		Success:   true,
		OutputDir: req.OutputDir,
		Datasets:  sampledata.DatasetNames,
	})
}

// GetDataset 按名称获取示例数据集
// @Summary 按名称获取示例数据集
// @Description 返回指定名称的模拟统计数据集
// @Tags 示例数据
// @Produce json
// @Param name path string true "数据集名称"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /api/sample-data/{name} [get]
func (c *SampleDataController) GetDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	dataset, err := c.sampleDataService.Dataset(name)
	if err != nil {
		renderError(w, r, http.StatusNotFound, "Unknown sample dataset", name)
		return
	}

	render.JSON(w, r, dataset)
}
