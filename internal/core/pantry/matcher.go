package pantry

import (
	"sort"

	"chef-app/internal/core/ingredient"
)

type groupKey struct {
	ingredient string
	unit       string
}

// Aggregate 計算所選食譜的購物清單
// 依 (食材, 單位) 分組加總，輸出依食材再依單位排序
func Aggregate(rows []Requirement, selected []string) []ShoppingItem {
	want := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		want[name] = struct{}{}
	}

	totals := make(map[groupKey]float64)
	for _, row := range rows {
		if _, ok := want[row.Recipe]; !ok {
			continue
		}
		key := groupKey{ingredient: row.Ingredient, unit: row.Unit}
		totals[key] += sanitize(row.Quantity)
	}

	items := make([]ShoppingItem, 0, len(totals))
	for key, total := range totals {
		items = append(items, ShoppingItem{
			Ingredient: key.ingredient,
			Unit:       key.unit,
			Total:      total,
			Category:   ingredient.Category(key.ingredient),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Ingredient != items[j].Ingredient {
			return items[i].Ingredient < items[j].Ingredient
		}
		return items[i].Unit < items[j].Unit
	})

	return items
}

// FindCookable 找出與現有食材至少有一項重疊的食譜
// 依符合數量由多到少排序，數量相同時保留目錄中的順序
func FindCookable(rows []Requirement, available []string) []CookableRecipe {
	have := make(map[string]struct{}, len(available))
	for _, name := range available {
		have[name] = struct{}{}
	}

	var order []string
	required := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	for _, row := range rows {
		set, ok := seen[row.Recipe]
		if !ok {
			set = make(map[string]struct{})
			seen[row.Recipe] = set
			order = append(order, row.Recipe)
		}
		if _, dup := set[row.Ingredient]; dup {
			continue
		}
		set[row.Ingredient] = struct{}{}
		required[row.Recipe] = append(required[row.Recipe], row.Ingredient)
	}

	results := make([]CookableRecipe, 0, len(order))
	for _, name := range order {
		match := 0
		missing := []string{}
		for _, ing := range required[name] {
			if _, ok := have[ing]; ok {
				match++
			} else {
				missing = append(missing, ing)
			}
		}
		if match == 0 {
			continue
		}
		sort.Strings(missing)
		results = append(results, CookableRecipe{
			Recipe:        name,
			MatchCount:    match,
			RequiredCount: len(required[name]),
			Missing:       missing,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchCount > results[j].MatchCount
	})

	return results
}

// Ingredients 目錄中所有不重複的食材名稱，已排序
func Ingredients(rows []Requirement) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		if row.Ingredient == "" {
			continue
		}
		if _, ok := seen[row.Ingredient]; ok {
			continue
		}
		seen[row.Ingredient] = struct{}{}
		out = append(out, row.Ingredient)
	}
	sort.Strings(out)
	return out
}

// BuildView 將目錄食材分成常備與新鮮兩組
// Candidates 為尚未列入常備、可以加入的食材
func BuildView(rows []Requirement, basics Basics) View {
	view := View{Basics: []string{}, Fresh: []string{}, Candidates: []string{}}
	for _, ing := range Ingredients(rows) {
		if basics.Contains(ing) {
			view.Basics = append(view.Basics, ing)
		} else {
			view.Fresh = append(view.Fresh, ing)
			view.Candidates = append(view.Candidates, ing)
		}
	}
	return view
}

// WithBasics 將常備食材併入現有食材
func WithBasics(available []string, basics Basics) []string {
	out := make([]string, 0, len(available)+basics.Len())
	out = append(out, available...)
	return append(out, basics.Names()...)
}
