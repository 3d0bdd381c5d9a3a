package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"chef-app/internal/core/ingredient"
	"chef-app/internal/core/pantry"
	"chef-app/internal/pkg/common"
)

// RecipeInfo 食譜本身的欄位
type RecipeInfo struct {
	Name      string    `json:"name"`
	Favorite  bool      `json:"favorite"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Catalog 從資料庫載入的完整目錄
type Catalog struct {
	Recipes      []RecipeInfo
	Requirements []pantry.Requirement
	Steps        []pantry.Step
	Basics       pantry.Basics
}

// SaveResult 儲存結果
type SaveResult struct {
	Recipe      string `json:"recipe"`
	Ingredients int    `json:"ingredients"`
	Steps       int    `json:"steps"`
	// Appended 食譜已存在，新資料附加在後面
	Appended bool `json:"appended"`
}

// RecipeStore SQLite 食譜儲存
type RecipeStore struct {
	db *sql.DB
}

func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// Ping 檢查資料庫連線
func (s *RecipeStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func scanRecipe(scanner interface{ Scan(...any) error }) (*RecipeInfo, error) {
	var r RecipeInfo
	var fav int
	if err := scanner.Scan(&r.Name, &fav, &r.Source, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.Favorite = fav != 0
	return &r, nil
}

const recipeCols = `name, favorite, source, created_at`

// LoadCatalog 載入全部資料
// 食材名稱重新標準化，數量寬鬆轉換，收藏狀態取自食譜本身
func (s *RecipeStore) LoadCatalog(ctx context.Context) (*Catalog, error) {
	var cat Catalog

	rows, err := s.db.QueryContext(ctx, `SELECT `+recipeCols+` FROM recipes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	favorites := make(map[string]bool)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		favorites[r.Name] = r.Favorite
		cat.Recipes = append(cat.Recipes, *r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT recipe_name, ingredient, quantity, unit FROM recipe_ingredients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	for rows.Next() {
		var recipe, name, qty, unit string
		if err := rows.Scan(&recipe, &name, &qty, &unit); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		cat.Requirements = append(cat.Requirements, pantry.Requirement{
			Recipe:     recipe,
			Ingredient: ingredient.Canonicalize(name),
			Quantity:   pantry.ParseQuantity(qty),
			Unit:       unit,
			Favorite:   favorites[recipe],
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT recipe_name, step_number, instruction FROM recipe_steps ORDER BY recipe_name, step_number, id`)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	for rows.Next() {
		var st pantry.Step
		if err := rows.Scan(&st.Recipe, &st.Number, &st.Instruction); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan step: %w", err)
		}
		cat.Steps = append(cat.Steps, st)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}

	basics, err := s.ListBasics(ctx)
	if err != nil {
		return nil, err
	}
	cat.Basics = basics

	return &cat, nil
}

// SaveRecipe 在同一個交易中建立食譜並寫入所有食材與步驟
// 同名食譜已存在時附加資料，步驟編號接續既有步驟
func (s *RecipeStore) SaveRecipe(ctx context.Context, record pantry.Record, source string) (*SaveResult, error) {
	if err := record.Validate(); err != nil {
		return nil, common.ErrEmptyImport.Wrap(err)
	}
	reqs, steps := record.Rows()
	name := strings.TrimSpace(record.Name)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO recipes (name, source) VALUES (?, ?)`, name, source)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	created, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}

	for _, r := range reqs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_name, ingredient, quantity, unit) VALUES (?, ?, ?, ?)`,
			name, r.Ingredient, pantry.FormatQuantity(r.Quantity), r.Unit,
		); err != nil {
			return nil, fmt.Errorf("insert ingredient: %w", err)
		}
	}

	var offset int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(step_number), 0) FROM recipe_steps WHERE recipe_name = ?`, name,
	).Scan(&offset); err != nil {
		return nil, fmt.Errorf("max step: %w", err)
	}
	for _, st := range steps {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_steps (recipe_name, step_number, instruction) VALUES (?, ?, ?)`,
			name, offset+st.Number, st.Instruction,
		); err != nil {
			return nil, fmt.Errorf("insert step: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &SaveResult{
		Recipe:      name,
		Ingredients: len(reqs),
		Steps:       len(steps),
		Appended:    created == 0,
	}, nil
}

// GetRecipe 讀取單一食譜
func (s *RecipeStore) GetRecipe(ctx context.Context, name string) (*RecipeInfo, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recipeCols+` FROM recipes WHERE name = ?`, name)
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrRecipeNotFound.Wrap(fmt.Errorf("recipe %q", name))
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

// maxFavoriteAttempts 其他連線同時修改時的重試次數
const maxFavoriteAttempts = 5

// UpdateFavorite 以 compare-and-set 更新收藏狀態，回傳寫入後的值
// next 由目前資料庫中的值計算新值；期間若被其他程序改動則重新讀取
func (s *RecipeStore) UpdateFavorite(ctx context.Context, name string, next func(current bool) bool) (bool, error) {
	for attempt := 0; attempt < maxFavoriteAttempts; attempt++ {
		var current int
		err := s.db.QueryRowContext(ctx, `SELECT favorite FROM recipes WHERE name = ?`, name).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return false, common.ErrRecipeNotFound.Wrap(fmt.Errorf("recipe %q", name))
		}
		if err != nil {
			return false, fmt.Errorf("read favorite: %w", err)
		}

		want := next(current != 0)
		fav := 0
		if want {
			fav = 1
		}
		res, err := s.db.ExecContext(ctx,
			`UPDATE recipes SET favorite = ? WHERE name = ? AND favorite = ?`, fav, name, current)
		if err != nil {
			return false, fmt.Errorf("update favorite: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, fmt.Errorf("update favorite: %w", err)
		}
		if n == 1 {
			return want, nil
		}
	}
	return false, common.ErrConflict.WithMessage("收藏狀態同時被修改，請重試")
}
