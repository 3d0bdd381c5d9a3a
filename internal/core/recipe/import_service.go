package recipe

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"chef-app/internal/core/ai/extract"
	"chef-app/internal/core/ai/service"
	"chef-app/internal/core/pantry"
	"chef-app/internal/core/video"
	"chef-app/internal/pkg/common"
	"chef-app/internal/pkg/metrics"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// 匯入來源
const (
	SourceText   = "text"
	SourceVideo  = "video"
	SourceRecord = "record"
	SourceSheet  = "sheet"
)

// maxInputRunes 送進模型的文字上限
const maxInputRunes = 20000

// Extractor 以提示詞呼叫 AI
type Extractor interface {
	ProcessRequest(ctx context.Context, prompt string) (*service.Response, error)
}

// TranscriptFetcher 取得影片字幕
type TranscriptFetcher interface {
	Fetch(ctx context.Context, url string) (video.Transcript, error)
}

// ImportResult 匯入結果
type ImportResult struct {
	ID          string    `json:"id"`
	Recipe      string    `json:"recipe"`
	Source      string    `json:"source"`
	Ingredients int       `json:"ingredients"`
	Steps       int       `json:"steps"`
	Appended    bool      `json:"appended"`
	Model       string    `json:"model,omitempty"`
	CacheHit    bool      `json:"cache_hit,omitempty"`
	ImportedAt  time.Time `json:"imported_at"`
}

// ImportService 文字、影片與紀錄匯入流程
type ImportService struct {
	store       Store
	catalog     *CatalogService
	extractor   Extractor
	transcripts TranscriptFetcher
	policy      *bluemonday.Policy
}

// NewImportService 創建匯入服務，extractor 或 transcripts 為 nil 時對應的匯入方式會回傳錯誤
func NewImportService(s Store, catalog *CatalogService, extractor Extractor, transcripts TranscriptFetcher) *ImportService {
	return &ImportService{
		store:       s,
		catalog:     catalog,
		extractor:   extractor,
		transcripts: transcripts,
		policy:      bluemonday.StrictPolicy(),
	}
}

// Sanitize 去除 HTML 標籤並還原實體，合併多餘空白
func (s *ImportService) Sanitize(text string) string {
	clean := html.UnescapeString(s.policy.Sanitize(text))
	lines := strings.Split(clean, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = common.NormalizeSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// ImportText 從貼上的食譜文字匯入
func (s *ImportService) ImportText(ctx context.Context, text string) (*ImportResult, error) {
	clean := s.Sanitize(text)
	if clean == "" {
		metrics.ImportFailures.WithLabelValues(SourceText, "empty_input").Inc()
		return nil, common.ErrInvalidRequest.WithMessage("食譜文字不可為空")
	}
	return s.extractAndSave(ctx, clean, SourceText)
}

// ImportVideo 取得影片字幕後匯入
func (s *ImportService) ImportVideo(ctx context.Context, url string) (*ImportResult, error) {
	if s.transcripts == nil {
		metrics.ImportFailures.WithLabelValues(SourceVideo, "disabled").Inc()
		return nil, common.ErrServiceUnavailable.WithMessage("字幕服務未設定")
	}

	tr, err := s.transcripts.Fetch(ctx, strings.TrimSpace(url))
	if err != nil {
		switch {
		case errors.Is(err, video.ErrInvalidURL):
			metrics.ImportFailures.WithLabelValues(SourceVideo, "invalid_url").Inc()
			return nil, common.ErrInvalidVideoURL.Wrap(err)
		case errors.Is(err, video.ErrNoTranscript):
			metrics.ImportFailures.WithLabelValues(SourceVideo, "no_transcript").Inc()
			return nil, common.ErrTranscriptUnavailable.WithMessage("影片沒有可用的字幕").Wrap(err)
		default:
			metrics.ImportFailures.WithLabelValues(SourceVideo, "transcript").Inc()
			return nil, common.ErrTranscriptUnavailable.Wrap(err)
		}
	}

	common.LogInfo("已取得影片字幕",
		zap.String("video_id", tr.VideoID),
		zap.String("language", tr.Language),
		zap.Int("length", len(tr.Text)),
	)
	return s.extractAndSave(ctx, tr.Text, SourceVideo)
}

// ImportRecord 直接匯入已結構化的紀錄
func (s *ImportService) ImportRecord(ctx context.Context, record pantry.Record, source string) (*ImportResult, error) {
	if source == "" {
		source = SourceRecord
	}
	return s.save(ctx, record, source, nil)
}

func (s *ImportService) extractAndSave(ctx context.Context, text, source string) (*ImportResult, error) {
	if s.extractor == nil {
		metrics.ImportFailures.WithLabelValues(source, "ai_disabled").Inc()
		return nil, common.ErrAIDisabled
	}

	resp, err := s.extractor.ProcessRequest(ctx, extract.BuildPrompt(common.Truncate(text, maxInputRunes)))
	if err != nil {
		metrics.ImportFailures.WithLabelValues(source, "ai").Inc()
		return nil, err
	}

	record, err := extract.ParseRecord(resp.Content)
	if err != nil {
		metrics.ImportFailures.WithLabelValues(source, "parse").Inc()
		common.LogWarn("AI 回應無法解析",
			zap.String("model", resp.Model),
			zap.Error(err),
		)
		return nil, common.ErrAIServiceError.WithMessage("AI 回應格式錯誤").Wrap(err)
	}

	return s.save(ctx, record, source, resp)
}

func (s *ImportService) save(ctx context.Context, record pantry.Record, source string, resp *service.Response) (*ImportResult, error) {
	saved, err := s.store.SaveRecipe(ctx, record, source)
	if err != nil {
		reason := "store"
		if errors.Is(err, common.ErrEmptyImport) {
			reason = "empty"
		}
		metrics.ImportFailures.WithLabelValues(source, reason).Inc()
		return nil, err
	}

	if err := s.catalog.Refresh(ctx); err != nil {
		// 資料已寫入，下次同步會補上
		common.LogWarn("匯入後重新載入目錄失敗", zap.Error(err))
	}

	metrics.RecipesImported.WithLabelValues(source).Inc()

	result := &ImportResult{
		ID:          common.GenerateUUID(),
		Recipe:      saved.Recipe,
		Source:      source,
		Ingredients: saved.Ingredients,
		Steps:       saved.Steps,
		Appended:    saved.Appended,
		ImportedAt:  time.Now(),
	}
	if resp != nil {
		result.Model = resp.Model
		result.CacheHit = resp.CacheHit
	}

	common.LogInfo("食譜已匯入",
		zap.String("import_id", result.ID),
		zap.String("recipe", result.Recipe),
		zap.String("source", source),
		zap.Int("ingredients", result.Ingredients),
		zap.Int("steps", result.Steps),
		zap.Bool("appended", result.Appended),
	)
	return result, nil
}

// String 用於 CLI 輸出
func (r *ImportResult) String() string {
	verb := "neu angelegt"
	if r.Appended {
		verb = "ergänzt"
	}
	return fmt.Sprintf("%s %s: %d Zutaten, %d Schritte", r.Recipe, verb, r.Ingredients, r.Steps)
}
