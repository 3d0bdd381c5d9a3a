package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrMiss 快取未命中
var ErrMiss = errors.New("cache miss")

// Cache AI 回應快取
type Cache interface {
	// Get 未命中時回傳 ErrMiss
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}

// Key 以模型與提示詞產生快取鍵
func Key(model, prompt string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + prompt))
	return "ai:response:" + hex.EncodeToString(hash[:])
}
