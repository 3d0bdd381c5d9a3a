package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"chef-app/internal/core/ingredient"
	"chef-app/internal/core/pantry"
)

// LegacyIngredientRow 舊版試算表「Zutaten」的一列
// 收藏欄位存在每一列上
type LegacyIngredientRow struct {
	Recipe     string
	Ingredient string
	Quantity   string
	Unit       string
	Favorite   string
}

// LegacyStepRow 舊版試算表「Anleitungen」的一列
type LegacyStepRow struct {
	Recipe      string
	Number      string
	Instruction string
}

// LegacySummary 匯入統計
type LegacySummary struct {
	Recipes     int `json:"recipes"`
	Ingredients int `json:"ingredients"`
	Steps       int `json:"steps"`
}

// ImportLegacyRows 匯入舊版試算表資料
// 食譜的收藏狀態取自該食譜的第一列，數量原樣保存，讀取時再轉換
func (s *RecipeStore) ImportLegacyRows(ctx context.Context, ingredients []LegacyIngredientRow, steps []LegacyStepRow) (*LegacySummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var summary LegacySummary
	seen := make(map[string]bool)

	ensureRecipe := func(name string, favorite bool) error {
		if seen[name] {
			return nil
		}
		seen[name] = true
		fav := 0
		if favorite {
			fav = 1
		}
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO recipes (name, favorite, source) VALUES (?, ?, 'sheet')`, name, fav)
		if err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			summary.Recipes++
		}
		return nil
	}

	for _, row := range ingredients {
		name := strings.TrimSpace(row.Recipe)
		canonical := ingredient.Canonicalize(row.Ingredient)
		if name == "" || canonical == "" {
			continue
		}
		if err := ensureRecipe(name, pantry.ParseTruthy(row.Favorite)); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_name, ingredient, quantity, unit) VALUES (?, ?, ?, ?)`,
			name, canonical, strings.TrimSpace(row.Quantity), strings.TrimSpace(row.Unit),
		); err != nil {
			return nil, fmt.Errorf("insert ingredient: %w", err)
		}
		summary.Ingredients++
	}

	// 已存在的食譜接在現有步驟之後，試算表中的編號加上原本的最大值
	offset := make(map[string]int)
	next := make(map[string]int)
	for _, row := range steps {
		name := strings.TrimSpace(row.Recipe)
		text := strings.TrimSpace(row.Instruction)
		if name == "" || text == "" {
			continue
		}
		if err := ensureRecipe(name, false); err != nil {
			return nil, err
		}
		if _, ok := offset[name]; !ok {
			var existing int
			if err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(MAX(step_number), 0) FROM recipe_steps WHERE recipe_name = ?`, name,
			).Scan(&existing); err != nil {
				return nil, fmt.Errorf("max step: %w", err)
			}
			offset[name] = existing
			next[name] = existing
		}
		num, err := strconv.Atoi(strings.TrimSpace(row.Number))
		if err != nil || num <= 0 {
			num = next[name] + 1
		} else {
			num += offset[name]
		}
		if num > next[name] {
			next[name] = num
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_steps (recipe_name, step_number, instruction) VALUES (?, ?, ?)`,
			name, num, text,
		); err != nil {
			return nil, fmt.Errorf("insert step: %w", err)
		}
		summary.Steps++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &summary, nil
}
