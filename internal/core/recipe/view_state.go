package recipe

import (
	"fmt"
	"strings"

	"chef-app/internal/core/pantry"
)

// ViewState 烹飪頁面的瀏覽狀態，每次操作回傳新值
type ViewState struct {
	Recipe    string `json:"recipe"`
	StepIndex int    `json:"step_index"`
	FullView  bool   `json:"full_view"`
}

// Select 選擇食譜，回到第一步並切回逐步模式
func (v ViewState) Select(name string) ViewState {
	return ViewState{Recipe: strings.TrimSpace(name)}
}

// Next 下一步，停在最後一步
func (v ViewState) Next(total int) ViewState {
	v.StepIndex++
	return v.Clamp(total)
}

// Prev 上一步，停在第一步
func (v ViewState) Prev() ViewState {
	if v.StepIndex > 0 {
		v.StepIndex--
	}
	return v
}

// ToggleMode 在逐步與完整清單之間切換
func (v ViewState) ToggleMode() ViewState {
	v.FullView = !v.FullView
	return v
}

// Clamp 將步驟索引限制在 [0, total-1]
func (v ViewState) Clamp(total int) ViewState {
	if v.StepIndex >= total {
		v.StepIndex = total - 1
	}
	if v.StepIndex < 0 {
		v.StepIndex = 0
	}
	return v
}

// ViewAction 烹飪頁面的操作
type ViewAction string

const (
	ActionSelect ViewAction = "select"
	ActionNext   ViewAction = "next"
	ActionPrev   ViewAction = "prev"
	ActionToggle ViewAction = "toggle"
	ActionShow   ViewAction = ""
)

// CookView 烹飪頁面內容
type CookView struct {
	State       ViewState `json:"state"`
	Favorite    bool      `json:"favorite"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	// Current 逐步模式下目前的步驟
	Current  string  `json:"current,omitempty"`
	Label    string  `json:"label,omitempty"`
	Progress float64 `json:"progress"`
	IsFirst  bool    `json:"is_first"`
	IsLast   bool    `json:"is_last"`
}

// Apply 套用操作並回傳新狀態
func (v ViewState) Apply(action ViewAction, recipe string, total int) (ViewState, error) {
	switch action {
	case ActionSelect:
		return v.Select(recipe), nil
	case ActionNext:
		return v.Next(total), nil
	case ActionPrev:
		return v.Prev().Clamp(total), nil
	case ActionToggle:
		return v.ToggleMode().Clamp(total), nil
	case ActionShow:
		return v.Clamp(total), nil
	default:
		return v, fmt.Errorf("unknown view action %q", action)
	}
}

// BuildCookView 依狀態組出頁面內容
func BuildCookView(r *Recipe, state ViewState) CookView {
	steps := r.Instructions()
	state.Recipe = r.Name
	state = state.Clamp(len(steps))

	view := CookView{
		State:       state,
		Favorite:    r.Favorite,
		Ingredients: make([]string, 0, len(r.Ingredients)),
		Steps:       steps,
		IsFirst:     state.StepIndex == 0,
		IsLast:      state.StepIndex == len(steps)-1,
	}
	for _, ing := range r.Ingredients {
		view.Ingredients = append(view.Ingredients, formatIngredient(ing))
	}
	if !state.FullView {
		view.Current = steps[state.StepIndex]
		view.Label = fmt.Sprintf("Schritt %d/%d", state.StepIndex+1, len(steps))
		view.Progress = float64(state.StepIndex+1) / float64(len(steps))
	}
	return view
}

func formatIngredient(r pantry.Requirement) string {
	parts := make([]string, 0, 3)
	if r.Quantity > 0 {
		parts = append(parts, pantry.FormatQuantity(r.Quantity))
	}
	if r.Unit != "" {
		parts = append(parts, r.Unit)
	}
	parts = append(parts, r.Ingredient)
	return strings.Join(parts, " ")
}
