/*
 * @module service/cache/cache_service
 * @description 聚合查询结果缓存，基于Redis为统计类接口提供短TTL缓存
 * @architecture 分层架构 - 缓存层
 * @documentReference dev_docs/api_reference.md
 * @stateFlow 查询前读缓存 -> 未命中回源 -> 回填缓存；管道装载后按前缀失效
 * @rules 未配置REDIS_URL时所有操作退化为无操作，业务逻辑不感知缓存存在；
 *        缓存故障只记日志，绝不影响请求结果
 * @dependencies github.com/go-redis/redis/v8
 * @refs service/analytics_service.go, api/controllers/pipeline_controller.go
 */

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cast"
)

// KeyPrefix 本服务全部缓存键的前缀
const KeyPrefix = "taxihub:"

// Service 聚合结果缓存服务
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

// NewService 根据REDIS_URL创建缓存服务，未配置时返回无操作实例
func NewService() *Service {
	service := &Service{ttl: 60 * time.Second}

	if seconds := cast.ToInt(os.Getenv("CACHE_TTL_SECONDS")); seconds > 0 {
		service.ttl = time.Duration(seconds) * time.Second
	}

	url := os.Getenv("REDIS_URL")
	if url == "" {
		return service
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		slog.Warn("REDIS_URL解析失败，缓存退化为无操作", "error", err)
		return service
	}

	service.client = redis.NewClient(opts)
	slog.Info("聚合结果缓存已启用", "ttl", service.ttl.String())
	return service
}

// Enabled 缓存是否可用
func (s *Service) Enabled() bool {
	return s != nil && s.client != nil
}

// Get 读取缓存并反序列化到dest，命中返回true
func (s *Service) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}

	data, err := s.client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// Set 序列化并写入缓存，失败只记日志
func (s *Service) Set(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("缓存序列化失败", "key", key, "error", err)
		return
	}
	if err := s.client.Set(ctx, KeyPrefix+key, data, s.ttl).Err(); err != nil {
		slog.Warn("缓存写入失败", "key", key, "error", err)
	}
}

// Clear 按前缀清空全部缓存键，仓库重新装载后调用
func (s *Service) Clear(ctx context.Context) {
	if !s.Enabled() {
		return
	}

	iter := s.client.Scan(ctx, 0, KeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("缓存删除失败", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("缓存扫描失败", "error", err)
	}
}
