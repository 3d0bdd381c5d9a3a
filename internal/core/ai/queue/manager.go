package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"chef-app/internal/core/ai/service"
	"chef-app/internal/pkg/common"
	"chef-app/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Processor 實際處理 prompt 的服務
type Processor interface {
	ProcessRequest(ctx context.Context, prompt string) (*service.Response, error)
}

// Config 隊列設定
type Config struct {
	Workers int
	MaxSize int
}

// Request 隊列請求
type Request struct {
	Context context.Context
	Prompt  string
	Result  chan Result
}

// Result 處理結果
type Result struct {
	Response *service.Response
	Error    error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Manager 隊列管理器，限制同時進行的 AI 呼叫數
type Manager struct {
	processor Processor
	cfg       Config
	queue     chan *Request
	done      chan struct{}
	processed int64
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewManager 創建隊列管理器並啟動 worker
func NewManager(p Processor, cfg Config) *Manager {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = cfg.Workers
	}

	m := &Manager{
		processor: p,
		cfg:       cfg,
		queue:     make(chan *Request, cfg.MaxSize),
		done:      make(chan struct{}),
	}
	for i := 0; i < cfg.Workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}
	return m
}

func (m *Manager) worker(id int) {
	defer m.wg.Done()
	for {
		select {
		case <-m.done:
			return
		case req := <-m.queue:
			metrics.AIQueueLength.Set(float64(len(m.queue)))
			// 呼叫端已放棄就不再打模型
			if err := req.Context.Err(); err != nil {
				req.Result <- Result{Error: err}
				continue
			}
			resp, err := m.processor.ProcessRequest(req.Context, req.Prompt)
			atomic.AddInt64(&m.processed, 1)
			req.Result <- Result{Response: resp, Error: err}
			common.LogDebug("隊列請求完成", zap.Int("worker", id), zap.Error(err))
		}
	}
}

// Enqueue 將請求加入隊列，隊列已滿時立即回傳錯誤
func (m *Manager) Enqueue(ctx context.Context, prompt string) (<-chan Result, error) {
	req := &Request{
		Context: ctx,
		Prompt:  prompt,
		Result:  make(chan Result, 1),
	}

	select {
	case <-m.done:
		return nil, common.ErrServiceUnavailable.WithMessage("AI 隊列已關閉")
	default:
	}

	select {
	case m.queue <- req:
		metrics.AIQueueLength.Set(float64(len(m.queue)))
		common.LogDebug("Request enqueued",
			zap.Int("queue_length", len(m.queue)),
			zap.Int("max_queue_size", m.cfg.MaxSize),
		)
		return req.Result, nil
	default:
		common.LogWarn("AI 隊列已滿", zap.Int("max_queue_size", m.cfg.MaxSize))
		return nil, common.ErrTooManyRequests.WithMessage("AI 隊列已滿，請稍後再試")
	}
}

// ProcessRequest 排入隊列並等待結果
func (m *Manager) ProcessRequest(ctx context.Context, prompt string) (*service.Response, error) {
	result, err := m.Enqueue(ctx, prompt)
	if err != nil {
		return nil, err
	}

	select {
	case res := <-result:
		return res.Response, res.Error
	case <-ctx.Done():
		return nil, common.ErrGatewayTimeout.Wrap(ctx.Err())
	case <-m.done:
		return nil, common.ErrServiceUnavailable.WithMessage("AI 隊列已關閉")
	}
}

// Status 目前隊列狀態
func (m *Manager) Status() Status {
	return Status{
		QueueLength:    len(m.queue),
		ProcessedCount: int(atomic.LoadInt64(&m.processed)),
		MaxQueueSize:   m.cfg.MaxSize,
		Workers:        m.cfg.Workers,
	}
}

// Close 停止 worker，等待中的請求收到關閉錯誤
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		m.wg.Wait()
	})
}
