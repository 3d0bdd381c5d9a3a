package provider

import (
	"context"

	"chef-app/internal/pkg/common"
)

// Message 表示與 AI 模型的對話消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request 表示發送到 AI 提供者的請求
type Request struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	// JSON 要求模型只輸出 JSON
	JSON bool `json:"-"`
}

// Usage token 使用量
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response 表示從 AI 提供者收到的響應
type Response struct {
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}

// Provider 定義 AI 提供者介面
type Provider interface {
	// Generate 生成 AI 響應
	Generate(ctx context.Context, req *Request) (*Response, error)

	// Model 當前使用的模型名稱
	Model() string

	// Close 關閉提供者連接
	Close() error
}

// UserPrompt 建立只有一則 user 訊息的請求
func UserPrompt(prompt string) *Request {
	return &Request{Messages: []Message{{Role: "user", Content: prompt}}}
}

// Disabled 未設定 AI 時使用，所有呼叫回傳 ErrAIDisabled
type Disabled struct{}

// Generate 永遠失敗
func (Disabled) Generate(context.Context, *Request) (*Response, error) {
	return nil, common.ErrAIDisabled
}

// Model 回傳 none
func (Disabled) Model() string { return "none" }

// Close 無需釋放資源
func (Disabled) Close() error { return nil }
