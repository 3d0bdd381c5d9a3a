package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"chef-app/internal/core/ai/provider"

	"github.com/ollama/ollama/api"
)

// Config 本地 Ollama 設定
type Config struct {
	URL         string
	Model       string
	Temperature float64
}

// Client 透過 Ollama generate API 產生回應
type Client struct {
	client *api.Client
	cfg    Config
}

// NewClient 建立客戶端
func NewClient(cfg Config) (*Client, error) {
	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid ollama URL %q", cfg.URL)
	}

	return &Client{
		client: api.NewClient(parsedURL, &http.Client{}),
		cfg:    cfg,
	}, nil
}

// Generate system 訊息放入 System，其餘訊息依序串接成 prompt
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	var system, prompt []string
	for _, m := range req.Messages {
		if m.Role == "system" {
			system = append(system, m.Content)
			continue
		}
		prompt = append(prompt, m.Content)
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.cfg.Temperature
	}

	genReq := &api.GenerateRequest{
		Model:  c.cfg.Model,
		System: strings.Join(system, "\n\n"),
		Prompt: strings.Join(prompt, "\n\n"),
		Stream: new(bool), // false
		Options: map[string]interface{}{
			"temperature": temperature,
		},
	}
	if req.JSON {
		genReq.Format = json.RawMessage(`"json"`)
	}
	if req.MaxTokens > 0 {
		genReq.Options["num_predict"] = req.MaxTokens
	}

	var full strings.Builder
	var usage provider.Usage
	err := c.client.Generate(ctx, genReq, func(resp api.GenerateResponse) error {
		full.WriteString(resp.Response)
		if resp.Done {
			usage.PromptTokens = resp.PromptEvalCount
			usage.CompletionTokens = resp.EvalCount
			usage.TotalTokens = resp.PromptEvalCount + resp.EvalCount
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama generate failed: %w", err)
	}

	content := strings.TrimSpace(full.String())
	if content == "" {
		return nil, fmt.Errorf("empty response from ollama")
	}

	return &provider.Response{Content: content, Usage: usage}, nil
}

// Model 回傳模型名稱
func (c *Client) Model() string {
	return c.cfg.Model
}

// Close 無需釋放資源
func (c *Client) Close() error {
	return nil
}
