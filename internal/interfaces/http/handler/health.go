// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fiction-catalog-api/internal/domain/repository"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	storageName string
	storage     repository.HealthChecker
	redis       repository.HealthChecker
	version     string
}

// NewHealthHandler 创建健康检查处理器，redisChecker 为 nil 表示未启用 Redis
func NewHealthHandler(storageName string, storage, redisChecker repository.HealthChecker, version string) *HealthHandler {
	return &HealthHandler{
		storageName: storageName,
		storage:     storage,
		redis:       redisChecker,
		version:     version,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready 就绪检查接口
// @Summary 就绪检查
// @Description 检查服务是否可以接收流量
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"redis": {Status: "disabled"},
	}

	ready := true

	// 目录存储（必需）
	name := h.storageName
	if name == "" {
		name = "storage"
	}
	checks[name] = &readinessCheck{Status: "unknown"}
	if h.storage == nil {
		checks[name].Status = "missing"
		checks[name].Error = "storage not configured"
		ready = false
	} else {
		start := time.Now()
		err := h.storage.HealthCheck(ctx)
		checks[name].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks[name].Status = "error"
			checks[name].Error = err.Error()
			ready = false
		} else {
			checks[name].Status = "ok"
		}
	}

	// Redis（启用时必需）
	if h.redis != nil {
		start := time.Now()
		err := h.redis.HealthCheck(ctx)
		checks["redis"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["redis"].Status = "error"
			checks["redis"].Error = err.Error()
			ready = false
		} else {
			checks["redis"].Status = "ok"
		}
	}

	resp := readinessResponse{
		Status: "ok",
		Checks: checks,
	}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Description 检查服务是否存活
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}
