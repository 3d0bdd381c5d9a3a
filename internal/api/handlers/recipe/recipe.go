package recipe

import (
	"net/http"
	"strings"

	"chef-app/internal/core/pantry"
	recipeService "chef-app/internal/core/recipe"
	"chef-app/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImportTextRequest 貼上食譜文字
type ImportTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// ImportVideoRequest 影片連結
type ImportVideoRequest struct {
	URL string `json:"url" binding:"required"`
}

// CookViewRequest 烹飪頁面操作
// Action 為 select、next、prev、toggle 或空字串（僅重新顯示）
type CookViewRequest struct {
	State  recipeService.ViewState  `json:"state"`
	Action recipeService.ViewAction `json:"action"`
	Recipe string                   `json:"recipe,omitempty"`
}

// Handler 食譜處理程序
type Handler struct {
	catalog *recipeService.CatalogService
	imports *recipeService.ImportService
}

// NewHandler 創建新的食譜處理程序
func NewHandler(catalog *recipeService.CatalogService, imports *recipeService.ImportService) *Handler {
	return &Handler{catalog: catalog, imports: imports}
}

// List 依名稱排序的食譜列表
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, common.NewListResponse(h.catalog.Recipes()))
}

// Home 收藏與推薦
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Home())
}

// Get 單一食譜，沒有步驟時 instructions 會是一行提示
func (h *Handler) Get(c *gin.Context) {
	r, err := h.catalog.Recipe(c.Param("name"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipe":       r,
		"instructions": r.Instructions(),
	})
}

// ToggleFavorite 切換收藏
func (h *Handler) ToggleFavorite(c *gin.Context) {
	change, err := h.catalog.ToggleFavorite(c.Request.Context(), c.Param("name"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, change)
}

// ImportRecord 匯入結構化紀錄，接受英文或德文鍵名
func (h *Handler) ImportRecord(c *gin.Context) {
	var record pantry.Record
	if err := c.ShouldBindJSON(&record); err != nil {
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	h.respondImport(c, "record", func() (*recipeService.ImportResult, error) {
		return h.imports.ImportRecord(c.Request.Context(), record, recipeService.SourceRecord)
	})
}

// ImportText 以 AI 解析貼上的文字
func (h *Handler) ImportText(c *gin.Context) {
	var req ImportTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	h.respondImport(c, "text", func() (*recipeService.ImportResult, error) {
		return h.imports.ImportText(c.Request.Context(), req.Text)
	})
}

// ImportVideo 以影片字幕匯入
func (h *Handler) ImportVideo(c *gin.Context) {
	var req ImportVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	h.respondImport(c, "video", func() (*recipeService.ImportResult, error) {
		return h.imports.ImportVideo(c.Request.Context(), req.URL)
	})
}

func (h *Handler) respondImport(c *gin.Context, kind string, run func() (*recipeService.ImportResult, error)) {
	requestID := requestid.Get(c)
	common.LogInfo("開始處理匯入請求",
		zap.String("request_id", requestID),
		zap.String("kind", kind),
		zap.String("client_ip", c.ClientIP()),
	)

	result, err := run()
	if err != nil {
		common.LogWarn("匯入失敗",
			zap.String("request_id", requestID),
			zap.String("kind", kind),
			zap.Error(err),
		)
		common.RespondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Appended {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// CookView 烹飪頁面的逐步瀏覽，狀態由呼叫端保存並每次帶回
func (h *Handler) CookView(c *gin.Context) {
	var req CookViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	name := req.State.Recipe
	if req.Action == recipeService.ActionSelect {
		name = req.Recipe
	}
	if strings.TrimSpace(name) == "" {
		common.RespondError(c, common.ErrInvalidRequest.WithMessage("未選擇食譜"))
		return
	}

	r, err := h.catalog.Recipe(name)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	state, err := req.State.Apply(req.Action, r.Name, len(r.Instructions()))
	if err != nil {
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, recipeService.BuildCookView(r, state))
}

// Sync 重新從資料庫載入目錄
func (h *Handler) Sync(c *gin.Context) {
	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipes":   len(h.catalog.Recipes()),
		"loaded_at": h.catalog.LoadedAt(),
	})
}
