package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
)

// ErrorResponse 统一错误响应结构
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Failed to retrieve trips"`
	Message string `json:"message,omitempty"`
}

// renderError 按HTTP状态码返回统一错误响应
func renderError(w http.ResponseWriter, r *http.Request, status int, errText, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{
		Success: false,
		Error:   errText,
		Message: message,
	})
}

// queryInt 解析整型查询参数，缺省或非法时返回fallback
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// queryInt64Ptr 解析可选的int64查询参数，缺省返回nil
func queryInt64Ptr(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// queryFloatPtr 解析可选的float64查询参数，缺省返回nil
func queryFloatPtr(r *http.Request, key string) (*float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// queryBoolPtr 解析可选的布尔查询参数，true/1/yes视为真，缺省返回nil
func queryBoolPtr(r *http.Request, key string) *bool {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	value := raw == "true" || raw == "1" || raw == "yes"
	return &value
}

// queryTimePtr 解析可选的日期查询参数，支持日期与日期时间两种格式
func queryTimePtr(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"} {
		if value, err := time.Parse(layout, raw); err == nil {
			return &value, nil
		}
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
