package extract

import (
	"strings"
	"testing"
)

func TestParseRecord(t *testing.T) {
	content := "Gerne! Hier ist das Rezept:\n```json\n" + `{
  "recipe_name": "Kartoffelsuppe",
  "ingredients": [
    {"name": "Kartoffeln", "quantity": "1,5", "unit": "kg"},
    {"name": "Zwiebel", "quantity": 2, "unit": "Stk"},
    {"name": "Salz", "quantity": "etwas", "unit": ""}
  ],
  "steps": ["Schälen", "Kochen"]
}` + "\n```\nGuten Appetit!"

	record, err := ParseRecord(content)
	if err != nil {
		t.Fatalf("ParseRecord() error = %v", err)
	}
	if record.Name != "Kartoffelsuppe" {
		t.Errorf("Name = %q", record.Name)
	}
	if len(record.Ingredients) != 3 {
		t.Fatalf("Ingredients = %+v", record.Ingredients)
	}
	if record.Ingredients[0].Quantity != 1.5 || record.Ingredients[2].Quantity != 0 {
		t.Errorf("quantities = %v, %v", record.Ingredients[0].Quantity, record.Ingredients[2].Quantity)
	}
	if len(record.Steps) != 2 {
		t.Errorf("Steps = %v", record.Steps)
	}
}

func TestParseRecordGermanKeys(t *testing.T) {
	content := `{"Rezept": "Salat", "Zutaten": [{"Zutat": "Gurken", "Menge": 1, "Einheit": "Stk"}], "Schritte": ["Schneiden"]}`
	record, err := ParseRecord(content)
	if err != nil {
		t.Fatalf("ParseRecord() error = %v", err)
	}
	if record.Name != "Salat" || len(record.Ingredients) != 1 || record.Ingredients[0].Name != "Gurken" {
		t.Errorf("record = %+v", record)
	}
}

func TestParseRecordUnquotedKeys(t *testing.T) {
	record, err := ParseRecord(`{recipe_name: "Brot", steps: ["Backen"]}`)
	if err != nil {
		t.Fatalf("ParseRecord() error = %v", err)
	}
	if record.Name != "Brot" {
		t.Errorf("Name = %q", record.Name)
	}
}

func TestParseRecordErrors(t *testing.T) {
	for _, content := range []string{"", "Ich kann das nicht.", "{kaputt"} {
		if _, err := ParseRecord(content); err == nil {
			t.Errorf("ParseRecord(%q) expected error", content)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("  2 Eier, 100g Mehl  ")
	if !strings.HasSuffix(p, "Input:\n2 Eier, 100g Mehl") {
		t.Errorf("BuildPrompt() suffix = %q", p[len(p)-40:])
	}
	if !strings.Contains(p, `"recipe_name"`) {
		t.Error("prompt should describe the output keys")
	}
}
