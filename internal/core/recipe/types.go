package recipe

import (
	"context"
	"time"

	"chef-app/internal/core/pantry"
	"chef-app/internal/store"
)

// NoInstructions 沒有步驟時顯示的文字
const NoInstructions = "Keine Anleitung."

// Store 食譜服務需要的儲存操作
type Store interface {
	LoadCatalog(ctx context.Context) (*store.Catalog, error)
	SaveRecipe(ctx context.Context, record pantry.Record, source string) (*store.SaveResult, error)
	UpdateFavorite(ctx context.Context, name string, next func(current bool) bool) (bool, error)
	AddBasic(ctx context.Context, name string) error
	RemoveBasic(ctx context.Context, name string) error
}

// Summary 食譜列表項目
type Summary struct {
	Name            string `json:"name"`
	Favorite        bool   `json:"favorite"`
	IngredientCount int    `json:"ingredient_count"`
	StepCount       int    `json:"step_count"`
}

// Recipe 完整食譜
type Recipe struct {
	Name        string               `json:"name"`
	Favorite    bool                 `json:"favorite"`
	Source      string               `json:"source"`
	CreatedAt   time.Time            `json:"created_at"`
	Ingredients []pantry.Requirement `json:"ingredients"`
	Steps       []pantry.Step        `json:"steps"`
}

// Instructions 依序的步驟文字，沒有步驟時回傳一行提示
func (r *Recipe) Instructions() []string {
	if len(r.Steps) == 0 {
		return []string{NoInstructions}
	}
	out := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Instruction
	}
	return out
}

// Record 轉回匯入紀錄格式，供匯出使用
func (r *Recipe) Record() pantry.Record {
	rec := pantry.Record{Name: r.Name}
	for _, ing := range r.Ingredients {
		rec.Ingredients = append(rec.Ingredients, pantry.RecordIngredient{
			Name:     ing.Ingredient,
			Quantity: pantry.Quantity(ing.Quantity),
			Unit:     ing.Unit,
		})
	}
	for _, s := range r.Steps {
		rec.Steps = append(rec.Steps, s.Instruction)
	}
	return rec
}

// Home 首頁：收藏與隨機推薦
type Home struct {
	Favorites   []Summary `json:"favorites"`
	Suggestions []Summary `json:"suggestions"`
}
