package recipe

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"chef-app/internal/core/ingredient"
	"chef-app/internal/core/pantry"
	"chef-app/internal/pkg/common"
	"chef-app/internal/pkg/metrics"
	"chef-app/internal/store"

	"go.uber.org/zap"
)

// suggestionCount 首頁推薦數量
const suggestionCount = 2

// CatalogService 持有目錄快照，讀取不碰資料庫，寫入後重新載入
type CatalogService struct {
	store Store

	mu   sync.RWMutex
	snap *snapshot
}

type snapshot struct {
	order    []string
	recipes  map[string]*Recipe
	rows     []pantry.Requirement
	basics   pantry.Basics
	loadedAt time.Time
}

// NewCatalogService 建立服務，需呼叫 Refresh 載入資料
func NewCatalogService(s Store) *CatalogService {
	return &CatalogService{
		store: s,
		snap:  buildSnapshot(&store.Catalog{Basics: pantry.DefaultBasics()}),
	}
}

// Refresh 從資料庫重新載入目錄
func (s *CatalogService) Refresh(ctx context.Context) error {
	cat, err := s.store.LoadCatalog(ctx)
	if err != nil {
		metrics.CatalogRefreshes.WithLabelValues("error").Inc()
		return fmt.Errorf("load catalog: %w", err)
	}

	snap := buildSnapshot(cat)

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	metrics.CatalogRefreshes.WithLabelValues("success").Inc()
	metrics.CatalogRecipes.Set(float64(len(snap.order)))
	common.LogDebug("目錄已重新載入",
		zap.Int("recipes", len(snap.order)),
		zap.Int("rows", len(snap.rows)),
	)
	return nil
}

func buildSnapshot(cat *store.Catalog) *snapshot {
	snap := &snapshot{
		recipes:  make(map[string]*Recipe, len(cat.Recipes)),
		rows:     cat.Requirements,
		basics:   cat.Basics,
		loadedAt: time.Now(),
	}

	get := func(name string) *Recipe {
		r, ok := snap.recipes[name]
		if !ok {
			r = &Recipe{Name: name}
			snap.recipes[name] = r
			snap.order = append(snap.order, name)
		}
		return r
	}

	for _, info := range cat.Recipes {
		r := get(info.Name)
		r.Favorite = info.Favorite
		r.Source = info.Source
		r.CreatedAt = info.CreatedAt
	}
	for _, row := range cat.Requirements {
		r := get(row.Recipe)
		r.Ingredients = append(r.Ingredients, row)
	}
	for _, st := range cat.Steps {
		r := get(st.Recipe)
		r.Steps = append(r.Steps, st)
	}
	for _, r := range snap.recipes {
		sort.SliceStable(r.Steps, func(i, j int) bool { return r.Steps[i].Number < r.Steps[j].Number })
	}

	return snap
}

func (s *CatalogService) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func summarize(r *Recipe) Summary {
	return Summary{
		Name:            r.Name,
		Favorite:        r.Favorite,
		IngredientCount: len(r.Ingredients),
		StepCount:       len(r.Steps),
	}
}

// Recipes 依名稱排序的食譜列表
func (s *CatalogService) Recipes() []Summary {
	snap := s.current()
	out := make([]Summary, 0, len(snap.order))
	for _, name := range snap.order {
		out = append(out, summarize(snap.recipes[name]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Recipe 取得單一食譜的副本，修改不影響目錄
func (s *CatalogService) Recipe(name string) (*Recipe, error) {
	r, ok := s.current().recipes[strings.TrimSpace(name)]
	if !ok {
		return nil, common.ErrRecipeNotFound.Wrap(fmt.Errorf("recipe %q", name))
	}
	cp := *r
	cp.Ingredients = append([]pantry.Requirement(nil), r.Ingredients...)
	cp.Steps = append([]pantry.Step(nil), r.Steps...)
	return &cp, nil
}

// Home 收藏依目錄順序列出
// 推薦從非收藏食譜中抽取，非收藏少於三道時改從全部食譜抽取，不重複
func (s *CatalogService) Home() Home {
	snap := s.current()
	home := Home{Favorites: []Summary{}, Suggestions: []Summary{}}

	var others []string
	for _, name := range snap.order {
		r := snap.recipes[name]
		if r.Favorite {
			home.Favorites = append(home.Favorites, summarize(r))
		} else {
			others = append(others, name)
		}
	}

	pool := others
	if len(others) < 3 {
		pool = snap.order
	}
	for _, name := range sample(pool, suggestionCount) {
		home.Suggestions = append(home.Suggestions, summarize(snap.recipes[name]))
	}

	return home
}

// sample 不重複地隨機取 n 個
func sample(pool []string, n int) []string {
	cp := make([]string, len(pool))
	copy(cp, pool)
	rand.Shuffle(len(cp), func(i, j int) { cp[i], cp[j] = cp[j], cp[i] })
	if n > len(cp) {
		n = len(cp)
	}
	return cp[:n]
}

// ShoppingList 所選食譜的購物清單
func (s *CatalogService) ShoppingList(selected []string) []pantry.ShoppingItem {
	return pantry.Aggregate(s.current().rows, selected)
}

// Cookable 以現有食材比對全部食譜
// 輸入名稱會先標準化，includeBasics 時併入常備食材
func (s *CatalogService) Cookable(available []string, includeBasics bool) []pantry.CookableRecipe {
	snap := s.current()

	names := make([]string, 0, len(available))
	for _, a := range available {
		if c := ingredient.Canonicalize(a); c != "" {
			names = append(names, c)
		}
	}
	if includeBasics {
		names = pantry.WithBasics(names, snap.basics)
	}

	return pantry.FindCookable(snap.rows, names)
}

// Pantry 冰箱頁面的食材分組
func (s *CatalogService) Pantry() pantry.View {
	snap := s.current()
	return pantry.BuildView(snap.rows, snap.basics)
}

// Basics 目前的常備食材
func (s *CatalogService) Basics() pantry.Basics {
	return s.current().basics
}

// ToggleFavorite 依資料庫中的目前值翻轉收藏狀態
// 不使用快照中的值，其他程序的修改不會被覆蓋
func (s *CatalogService) ToggleFavorite(ctx context.Context, name string) (pantry.FavoriteChange, error) {
	name = strings.TrimSpace(name)
	var change pantry.FavoriteChange
	_, err := s.store.UpdateFavorite(ctx, name, func(current bool) bool {
		change = pantry.ToggleFavorite(name, current)
		return change.Favorite
	})
	if err != nil {
		return pantry.FavoriteChange{}, err
	}
	if err := s.Refresh(ctx); err != nil {
		return pantry.FavoriteChange{}, err
	}

	common.LogInfo("收藏狀態已變更",
		zap.String("recipe", change.Recipe),
		zap.Bool("favorite", change.Favorite),
	)
	return change, nil
}

// AddBasic 名稱標準化後加入常備食材
func (s *CatalogService) AddBasic(ctx context.Context, name string) (pantry.Basics, error) {
	canonical := ingredient.Canonicalize(name)
	if canonical == "" {
		return pantry.Basics{}, common.ErrInvalidRequest.WithMessage("食材名稱不可為空")
	}
	if err := s.store.AddBasic(ctx, canonical); err != nil {
		return pantry.Basics{}, err
	}
	if err := s.Refresh(ctx); err != nil {
		return pantry.Basics{}, err
	}
	return s.Basics(), nil
}

// RemoveBasic 移除常備食材，不存在時不做任何事
func (s *CatalogService) RemoveBasic(ctx context.Context, name string) (pantry.Basics, error) {
	canonical := ingredient.Canonicalize(name)
	if !s.Basics().Contains(canonical) {
		return s.Basics(), nil
	}
	if err := s.store.RemoveBasic(ctx, canonical); err != nil {
		return pantry.Basics{}, err
	}
	if err := s.Refresh(ctx); err != nil {
		return pantry.Basics{}, err
	}
	return s.Basics(), nil
}

// Export 依目錄順序匯出全部食譜
func (s *CatalogService) Export() []pantry.Record {
	snap := s.current()
	out := make([]pantry.Record, 0, len(snap.order))
	for _, name := range snap.order {
		out = append(out, snap.recipes[name].Record())
	}
	return out
}

// LoadedAt 快照載入時間
func (s *CatalogService) LoadedAt() time.Time {
	return s.current().loadedAt
}
