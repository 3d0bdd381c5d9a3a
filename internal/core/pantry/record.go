package pantry

import (
	"encoding/json"
	"fmt"
	"strings"

	"chef-app/internal/core/ingredient"
)

// Record 匯入用的食譜紀錄（AI 抽取結果或 API 輸入）
// 同時接受英文鍵 recipe_name/ingredients/steps 與德文鍵 Rezept/Zutaten/Schritte
type Record struct {
	Name        string             `json:"recipe_name" yaml:"recipe_name"`
	Ingredients []RecordIngredient `json:"ingredients" yaml:"ingredients"`
	Steps       []string           `json:"steps" yaml:"steps"`
}

// RecordIngredient 匯入紀錄中的一項食材
type RecordIngredient struct {
	Name     string   `json:"name" yaml:"name"`
	Quantity Quantity `json:"quantity" yaml:"quantity"`
	Unit     string   `json:"unit" yaml:"unit"`

	// value JSON 解碼出的原始名稱，非字串時不經過標準化規則
	value any
}

// nameValue 解碼來源優先，否則使用 Name
func (ri RecordIngredient) nameValue() any {
	if ri.value != nil {
		return ri.value
	}
	return ri.Name
}

// UnmarshalJSON 接受兩種鍵名，步驟可為字串或任意值
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        json.RawMessage    `json:"recipe_name"`
		Rezept      json.RawMessage    `json:"Rezept"`
		Ingredients []RecordIngredient `json:"ingredients"`
		Zutaten     []RecordIngredient `json:"Zutaten"`
		Steps       []json.RawMessage  `json:"steps"`
		Schritte    []json.RawMessage  `json:"Schritte"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Name = strings.TrimSpace(looseString(first(raw.Name, raw.Rezept)))
	r.Ingredients = raw.Ingredients
	if len(r.Ingredients) == 0 {
		r.Ingredients = raw.Zutaten
	}

	steps := raw.Steps
	if len(steps) == 0 {
		steps = raw.Schritte
	}
	r.Steps = make([]string, 0, len(steps))
	for _, s := range steps {
		if text := strings.TrimSpace(looseString(s)); text != "" {
			r.Steps = append(r.Steps, text)
		}
	}
	return nil
}

// UnmarshalJSON 接受 name/quantity/unit 與 Zutat/Menge/Einheit
func (ri *RecordIngredient) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     json.RawMessage `json:"name"`
		Zutat    json.RawMessage `json:"Zutat"`
		Quantity *Quantity       `json:"quantity"`
		Menge    *Quantity       `json:"Menge"`
		Unit     json.RawMessage `json:"unit"`
		Einheit  json.RawMessage `json:"Einheit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ri.value = looseValue(first(raw.Name, raw.Zutat))
	ri.Name = jsonText(ri.value)
	ri.Unit = strings.TrimSpace(looseString(first(raw.Unit, raw.Einheit)))
	switch {
	case raw.Quantity != nil:
		ri.Quantity = *raw.Quantity
	case raw.Menge != nil:
		ri.Quantity = *raw.Menge
	default:
		ri.Quantity = 0
	}
	return nil
}

// Validate 食譜名稱必填，且至少要有一項食材或一個步驟
func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("recipe name is required")
	}
	if len(r.Ingredients) == 0 && len(r.Steps) == 0 {
		return fmt.Errorf("recipe %q has neither ingredients nor steps", r.Name)
	}
	return nil
}

// Rows 轉為資料列，食材名稱經過標準化，空名稱略過
// 步驟編號從 1 開始
func (r Record) Rows() ([]Requirement, []Step) {
	name := strings.TrimSpace(r.Name)

	reqs := make([]Requirement, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		canonical := ingredient.CanonicalizeValue(ing.nameValue())
		if canonical == "" {
			continue
		}
		reqs = append(reqs, Requirement{
			Recipe:     name,
			Ingredient: canonical,
			Quantity:   ing.Quantity.Float64(),
			Unit:       strings.TrimSpace(ing.Unit),
		})
	}

	steps := make([]Step, 0, len(r.Steps))
	for _, text := range r.Steps {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		steps = append(steps, Step{Recipe: name, Number: len(steps) + 1, Instruction: text})
	}

	return reqs, steps
}

func first(values ...json.RawMessage) json.RawMessage {
	for _, v := range values {
		if len(v) > 0 && string(v) != "null" {
			return v
		}
	}
	return nil
}

// looseString 字串原樣回傳，其他 JSON 值轉為文字，null 為空字串
func looseString(raw json.RawMessage) string {
	return jsonText(looseValue(raw))
}

// looseValue 解碼任意 JSON 值，數字保留為 json.Number
func looseValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func jsonText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		b, _ := json.Marshal(val)
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
