/*
 * @module service/cleaning/pipeline
 * @description 清洗管道驱动器，按固定顺序串联各清洗阶段并维护统计与排除日志
 * @architecture 分层架构 - 数据清洗层
 * @documentReference dev_docs/cleaning_pipeline.md
 * @stateFlow 装载 -> 缺失值处理 -> 去重 -> 有效性过滤 -> 特征派生 -> 规范化 -> 报告
 * @rules 阶段严格顺序执行，每个阶段只消费上一阶段的幸存记录；
 *        排除日志与统计计数由驱动器统一归并，阶段之间无共享可变状态
 * @dependencies log/slog
 * @refs service/cleaning/loader.go, service/cleaning/report.go
 */

package cleaning

import (
	"fmt"
	"log/slog"

	"taxihub-service/service/models"
)

// Stage 清洗阶段接口，输入幸存记录集，返回保留与剔除两部分
type Stage interface {
	Name() string
	Apply(records []*models.TripRecord, schema *models.DatasetSchema, stats *models.CleaningStatistics) (kept []*models.TripRecord, excluded []*models.TripRecord, err error)
}

// Pipeline 单趟批处理清洗管道
type Pipeline struct {
	loader *Loader
	stages []Stage
}

// NewPipeline 创建清洗管道，阶段顺序固定
func NewPipeline(inputPath string) *Pipeline {
	return &Pipeline{
		loader: NewLoader(inputPath),
		stages: []Stage{
			&MissingValueHandler{},
			&DeduplicatorStage{},
			&ValidityFilter{},
			&FeatureDeriver{},
			&Normalizer{},
		},
	}
}

// Run 执行完整管道，返回清洗结果；结构性失败直接中止，不产生任何输出
func (p *Pipeline) Run() (*models.CleaningResult, error) {
	stats := models.CleaningStatistics{}

	records, schema, err := p.loader.Load(&stats)
	if err != nil {
		return nil, fmt.Errorf("数据装载失败: %w", err)
	}
	slog.Info("数据装载完成", "records", stats.OriginalCount, "columns", len(schema.Columns))

	exclusions := &models.ExclusionLog{Records: []map[string]string{}}

	for _, stage := range p.stages {
		kept, excluded, err := stage.Apply(records, schema, &stats)
		if err != nil {
			return nil, fmt.Errorf("清洗阶段 %s 执行失败: %w", stage.Name(), err)
		}

		exclusions.Append(excluded)
		records = kept

		slog.Info("清洗阶段完成", "stage", stage.Name(), "kept", len(kept), "excluded", len(excluded))
	}

	report := BuildReport(schema, stats)

	return &models.CleaningResult{
		Records:    records,
		Schema:     schema,
		Statistics: stats,
		Exclusions: exclusions,
		Report:     report,
	}, nil
}
