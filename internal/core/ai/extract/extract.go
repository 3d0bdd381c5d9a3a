package extract

import (
	"fmt"
	"strings"

	"chef-app/internal/core/pantry"
	"chef-app/internal/pkg/common"
)

// 原樣保留德文指示，輸出鍵名與 pantry.Record 相容
const promptTemplate = `Du bist ein Koch-Übersetzer. Analysiere das Rezept.
Ergebnis MUSS auf DEUTSCH sein.

1. Extrahiere Zutaten (Singular, standardisierte Einheiten).
2. Extrahiere die Anleitung als LISTE von einzelnen Schritten.

Antworte NUR mit reinem JSON in diesem Format:
{
  "recipe_name": "Name des Gerichts",
  "ingredients": [
    {"name": "Name", "quantity": zahl, "unit": "g/ml/Stk"}
  ],
  "steps": [
    "Schritt 1 Text...",
    "Schritt 2 Text..."
  ]
}

Input:
%s`

// BuildPrompt 產生抽取提示詞
func BuildPrompt(content string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(content))
}

// ParseRecord 從模型輸出取出食譜紀錄
// 允許 ``` 區塊與 JSON 前後的說明文字
func ParseRecord(content string) (pantry.Record, error) {
	raw, ok := common.ExtractJSONObject(content)
	if !ok {
		return pantry.Record{}, fmt.Errorf("no JSON object in model output: %q", common.Truncate(content, 80))
	}

	var record pantry.Record
	if err := common.ParseJSON(raw, &record); err != nil {
		// 模型偶爾輸出未加引號的鍵
		if err2 := common.ParseJSON(common.QuoteJSONKeys(raw), &record); err2 != nil {
			return pantry.Record{}, fmt.Errorf("failed to decode recipe JSON: %w", err)
		}
	}

	return record, nil
}
