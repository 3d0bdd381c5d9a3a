package pantry

import (
	"net/http"

	"chef-app/internal/core/recipe"
	"chef-app/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ShoppingListRequest 所選食譜
type ShoppingListRequest struct {
	Recipes []string `json:"recipes"`
}

// CookableRequest 現有食材
// IncludeBasics 未指定時視為 true
type CookableRequest struct {
	Available     []string `json:"available"`
	IncludeBasics *bool    `json:"include_basics,omitempty"`
}

// BasicRequest 常備食材名稱
type BasicRequest struct {
	Name string `json:"name" binding:"required"`
}

// Handler 冰箱與購物清單處理程序
type Handler struct {
	catalog *recipe.CatalogService
}

// NewHandler 創建處理程序
func NewHandler(catalog *recipe.CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// ShoppingList 彙整所選食譜的食材
func (h *Handler) ShoppingList(c *gin.Context) {
	var req ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, common.NewListResponse(h.catalog.ShoppingList(req.Recipes)))
}

// Cookable 以現有食材搜尋可煮的食譜
func (h *Handler) Cookable(c *gin.Context) {
	var req CookableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	includeBasics := req.IncludeBasics == nil || *req.IncludeBasics
	c.JSON(http.StatusOK, common.NewListResponse(h.catalog.Cookable(req.Available, includeBasics)))
}

// View 冰箱頁面的食材分組
func (h *Handler) View(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Pantry())
}

// ListBasics 常備食材
func (h *Handler) ListBasics(c *gin.Context) {
	c.JSON(http.StatusOK, common.NewListResponse(h.catalog.Basics().Names()))
}

// AddBasic 加入常備食材
func (h *Handler) AddBasic(c *gin.Context) {
	var req BasicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	basics, err := h.catalog.AddBasic(c.Request.Context(), req.Name)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewListResponse(basics.Names()))
}

// RemoveBasic 移除常備食材，不存在時照樣回傳 200
func (h *Handler) RemoveBasic(c *gin.Context) {
	basics, err := h.catalog.RemoveBasic(c.Request.Context(), c.Param("name"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewListResponse(basics.Names()))
}
