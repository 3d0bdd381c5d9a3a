package store

import (
	"context"
	"fmt"
	"strings"

	"chef-app/internal/core/pantry"
)

// ListBasics 依加入順序列出常備食材
func (s *RecipeStore) ListBasics(ctx context.Context) (pantry.Basics, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM basics ORDER BY created_at, rowid`)
	if err != nil {
		return pantry.Basics{}, fmt.Errorf("list basics: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return pantry.Basics{}, fmt.Errorf("scan basic: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return pantry.Basics{}, fmt.Errorf("list basics: %w", err)
	}
	return pantry.NewBasics(names...), nil
}

// AddBasic 重複加入不會產生重複資料
func (s *RecipeStore) AddBasic(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO basics (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("add basic: %w", err)
	}
	return nil
}

// RemoveBasic 移除不存在的名稱不算錯誤
func (s *RecipeStore) RemoveBasic(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM basics WHERE name = ?`, strings.TrimSpace(name)); err != nil {
		return fmt.Errorf("remove basic: %w", err)
	}
	return nil
}
