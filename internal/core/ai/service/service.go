package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chef-app/internal/core/ai/cache"
	"chef-app/internal/core/ai/provider"
	"chef-app/internal/pkg/common"
	"chef-app/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Response AI 回應
type Response struct {
	Content  string
	Model    string
	CacheHit bool
}

// Options 服務設定
type Options struct {
	// Timeout 單次呼叫上限，0 表示不限制
	Timeout   time.Duration
	CacheTTL  time.Duration
	MaxTokens int
	// JSON 要求模型只輸出 JSON
	JSON bool
}

// Service AI 服務：快取查詢、呼叫提供者、寫回快取
type Service struct {
	provider provider.Provider
	cache    cache.Cache
	opts     Options
}

// NewService 創建 AI 服務，c 可為 nil 表示不使用快取
func NewService(p provider.Provider, c cache.Cache, opts Options) *Service {
	return &Service{provider: p, cache: c, opts: opts}
}

// Model 目前使用的模型
func (s *Service) Model() string {
	return s.provider.Model()
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, prompt string) (*Response, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, common.ErrInvalidRequest.WithMessage("prompt 不可為空")
	}

	model := s.provider.Model()
	// 統一空白，確保快取 key 一致
	key := cache.Key(model, common.NormalizeSpace(prompt))

	// 檢查緩存
	if s.cache != nil {
		val, err := s.cache.Get(ctx, key)
		switch {
		case err == nil && val != "":
			common.LogCacheHit("ai")
			metrics.AIRequests.WithLabelValues(model, "cache_hit").Inc()
			return &Response{Content: val, Model: model, CacheHit: true}, nil
		case err != nil && !errors.Is(err, cache.ErrMiss):
			common.LogWarn("讀取 AI 快取失敗", zap.Error(err))
		default:
			common.LogCacheMiss("ai")
		}
	}

	callCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	req := provider.UserPrompt(prompt)
	req.MaxTokens = s.opts.MaxTokens
	req.JSON = s.opts.JSON

	start := time.Now()
	resp, err := s.provider.Generate(callCtx, req)
	duration := time.Since(start)
	metrics.AIRequestDuration.WithLabelValues(model).Observe(duration.Seconds())
	common.LogAICall(model, duration, err)

	if err != nil {
		metrics.AIRequests.WithLabelValues(model, "error").Inc()
		if errors.Is(err, common.ErrAIDisabled) {
			return nil, err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, common.ErrGatewayTimeout.Wrap(err)
		}
		return nil, common.ErrAIServiceError.Wrap(err)
	}
	metrics.AIRequests.WithLabelValues(model, "success").Inc()

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp.Content, s.opts.CacheTTL); err != nil {
			common.LogWarn("寫入 AI 快取失敗", zap.Error(err))
		}
	}

	return &Response{Content: resp.Content, Model: model}, nil
}

// Close 關閉提供者與快取
func (s *Service) Close() error {
	var errs []error
	if err := s.provider.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close provider: %w", err))
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	return errors.Join(errs...)
}
