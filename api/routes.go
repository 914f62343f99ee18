/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package api

import (
	"taxihub-service/api/controllers"
	"taxihub-service/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController(service.DB)
	r.Get("/ready", healthController.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthController.Health)

		// 行程查询
		tripController := controllers.NewTripController(service.GlobalTripService)
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", tripController.ListTrips)
			r.Get("/{trip_id}", tripController.GetTrip)
		})

		// 统计分析
		statisticsController := controllers.NewStatisticsController(service.GlobalAnalyticsService)
		r.Route("/statistics", func(r chi.Router) {
			r.Get("/overview", statisticsController.Overview)
			r.Get("/by-hour", statisticsController.ByHour)
			r.Get("/by-day-of-week", statisticsController.ByDayOfWeek)
			r.Get("/rush-hour-analysis", statisticsController.RushHourAnalysis)
			r.Get("/weekend-analysis", statisticsController.WeekendAnalysis)
		})

		// 地点分析
		locationController := controllers.NewLocationController(service.GlobalAnalyticsService)
		r.Route("/locations", func(r chi.Router) {
			r.Get("/popular-pickups", locationController.PopularPickups)
			r.Get("/popular-dropoffs", locationController.PopularDropoffs)
			r.Get("/routes", locationController.PopularRoutes)
		})

		// 运营商分析
		vendorController := controllers.NewVendorController(service.GlobalAnalyticsService)
		r.Route("/vendors", func(r chi.Router) {
			r.Get("/comparison", vendorController.Comparison)
		})

		// 清洗管道
		pipelineController := controllers.NewPipelineController(service.GlobalCleaningService, service.GlobalAnalyticsService)
		r.Route("/pipeline", func(r chi.Router) {
			r.Post("/run", pipelineController.Run)
			r.Get("/report", pipelineController.Report)
		})

		// 示例数据
		sampleDataController := controllers.NewSampleDataController(service.GlobalSampleDataService)
		r.Route("/sample-data", func(r chi.Router) {
			r.Get("/", sampleDataController.ListDatasets)
			r.Post("/generate", sampleDataController.GenerateDatasets)
			r.Get("/{name}", sampleDataController.GetDataset)
		})
	})
}
