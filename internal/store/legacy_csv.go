package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// 舊版試算表的欄位名稱
const (
	colRecipe      = "rezept"
	colIngredient  = "zutat"
	colQuantity    = "menge"
	colUnit        = "einheit"
	colFavorite    = "favorit"
	colStepNumber  = "schritt_nr"
	colInstruction = "anweisung"
)

// csvTable 依標題列取欄位，欄位名稱不分大小寫
type csvTable struct {
	index map[string]int
	rows  [][]string
}

func readCSV(r io.Reader, required ...string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty csv")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	t := &csvTable{index: make(map[string]int, len(header))}
	for i, h := range header {
		// Excel 匯出常帶 BOM
		h = strings.TrimPrefix(h, "\ufeff")
		t.index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	t.rows, err = reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return t, nil
}

// get 欄位不存在或該列較短時回傳空字串
func (t *csvTable) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// ReadLegacyIngredients 讀取「Zutaten」工作表的 CSV 匯出
// 欄位：Rezept, Zutat, Menge, Einheit, Favorit（Favorit 可省略）
func ReadLegacyIngredients(r io.Reader) ([]LegacyIngredientRow, error) {
	t, err := readCSV(r, colRecipe, colIngredient)
	if err != nil {
		return nil, err
	}
	out := make([]LegacyIngredientRow, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, LegacyIngredientRow{
			Recipe:     t.get(row, colRecipe),
			Ingredient: t.get(row, colIngredient),
			Quantity:   t.get(row, colQuantity),
			Unit:       t.get(row, colUnit),
			Favorite:   t.get(row, colFavorite),
		})
	}
	return out, nil
}

// ReadLegacySteps 讀取「Anleitungen」工作表的 CSV 匯出
// 欄位：Rezept, Schritt_Nr, Anweisung
func ReadLegacySteps(r io.Reader) ([]LegacyStepRow, error) {
	t, err := readCSV(r, colRecipe, colInstruction)
	if err != nil {
		return nil, err
	}
	out := make([]LegacyStepRow, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, LegacyStepRow{
			Recipe:      t.get(row, colRecipe),
			Number:      t.get(row, colStepNumber),
			Instruction: t.get(row, colInstruction),
		})
	}
	return out, nil
}
