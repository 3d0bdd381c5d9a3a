package video

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// 字幕取得失敗的原因
var (
	ErrInvalidURL            = errors.New("invalid video url")
	ErrNoTranscript          = errors.New("no transcript available for video")
	ErrTranscriptUnavailable = errors.New("transcript service unavailable")
)

// Transcript 影片字幕
type Transcript struct {
	VideoID  string `json:"video_id"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

// TranscriptConfig 字幕服務設定
type TranscriptConfig struct {
	BaseURL   string
	Languages []string
	Timeout   time.Duration
}

// TranscriptClient 呼叫外部字幕服務
// 服務介面：GET /transcript?video_id=<id>&languages=de,en
type TranscriptClient struct {
	client    *resty.Client
	languages []string
}

type transcriptResponse struct {
	Language string `json:"language"`
	Segments []struct {
		Text string `json:"text"`
	} `json:"segments"`
	Text string `json:"text"`
}

// NewTranscriptClient 建立客戶端
func NewTranscriptClient(cfg TranscriptConfig) *TranscriptClient {
	languages := cfg.Languages
	if len(languages) == 0 {
		languages = []string{"de", "en"}
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &TranscriptClient{client: client, languages: languages}
}

// Fetch 取得影片字幕並以空白串接成單一文字
func (c *TranscriptClient) Fetch(ctx context.Context, url string) (Transcript, error) {
	id, ok := VideoID(url)
	if !ok {
		return Transcript{}, ErrInvalidURL
	}

	var result transcriptResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("video_id", id).
		SetQueryParam("languages", strings.Join(c.languages, ",")).
		SetResult(&result).
		Get("/transcript")
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: %v", ErrTranscriptUnavailable, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return Transcript{}, ErrNoTranscript
	case resp.StatusCode() != http.StatusOK:
		return Transcript{}, fmt.Errorf("%w: status %d", ErrTranscriptUnavailable, resp.StatusCode())
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		parts := make([]string, 0, len(result.Segments))
		for _, seg := range result.Segments {
			if s := strings.TrimSpace(seg.Text); s != "" {
				parts = append(parts, s)
			}
		}
		text = strings.Join(parts, " ")
	}
	if text == "" {
		return Transcript{}, ErrNoTranscript
	}

	return Transcript{VideoID: id, Language: result.Language, Text: text}, nil
}
