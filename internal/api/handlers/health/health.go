package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"chef-app/internal/core/ai/queue"
	"chef-app/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger 就緒檢查需要的依賴
type Pinger interface {
	Ping(ctx context.Context) error
}

// QueueReporter 提供 AI 隊列狀態
type QueueReporter interface {
	Status() queue.Status
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	Model     string         `json:"model"`
	Queue     *queue.Status  `json:"queue,omitempty"`
	Runtime   map[string]any `json:"runtime"`
}

// Handler 健康檢查處理程序
type Handler struct {
	version string
	model   string
	db      Pinger
	queue   QueueReporter
}

// NewHandler 創建處理程序，q 可為 nil
func NewHandler(version, model string, db Pinger, q QueueReporter) *Handler {
	return &Handler{version: version, model: model, db: db, queue: q}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Model:     h.model,
		Runtime: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}
	if h.queue != nil {
		st := h.queue.Status()
		resp.Queue = &st
	}

	c.JSON(http.StatusOK, resp)
}

// ReadinessCheck 就緒檢查處理器，資料庫無法連線時回 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := common.HealthStatus{Status: "ready", Version: h.version, Checks: map[string]string{"database": "ok"}}
	if err := h.db.Ping(ctx); err != nil {
		common.LogWarn("資料庫就緒檢查失敗", zap.Error(err))
		status.Status = "not_ready"
		status.Checks["database"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
