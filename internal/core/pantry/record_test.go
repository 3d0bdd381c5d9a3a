package pantry

import (
	"encoding/json"
	"testing"
)

func TestRecordUnmarshalEnglishKeys(t *testing.T) {
	data := `{
		"recipe_name": " Tomatensuppe ",
		"ingredients": [
			{"name": "Tomaten", "quantity": "500", "unit": "g"},
			{"name": "onion", "quantity": 1, "unit": "Stk"},
			{"name": "salt", "quantity": null, "unit": ""}
		],
		"steps": ["Schneiden", " ", "Kochen"]
	}`
	var r Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.Name != "Tomatensuppe" {
		t.Errorf("Name = %q", r.Name)
	}
	if len(r.Ingredients) != 3 || r.Ingredients[0].Quantity != 500 {
		t.Errorf("Ingredients = %+v", r.Ingredients)
	}
	if len(r.Steps) != 2 {
		t.Errorf("Steps = %v, want blank step dropped", r.Steps)
	}
}

func TestRecordUnmarshalGermanKeys(t *testing.T) {
	data := `{
		"Rezept": "Pfannkuchen",
		"Zutaten": [{"Zutat": "Eier", "Menge": "2", "Einheit": "Stk"}, {"Zutat": "Mehl", "Menge": "1,5", "Einheit": "Tassen"}],
		"Schritte": ["Verrühren", 2]
	}`
	var r Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.Name != "Pfannkuchen" {
		t.Errorf("Name = %q", r.Name)
	}
	if len(r.Ingredients) != 2 || r.Ingredients[1].Quantity != 1.5 {
		t.Errorf("Ingredients = %+v", r.Ingredients)
	}
	if len(r.Steps) != 2 || r.Steps[1] != "2" {
		t.Errorf("Steps = %v", r.Steps)
	}
}

func TestRecordNonStringIngredientName(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"recipe_name":"X","ingredients":[{"name":42},{"name":null}]}`), &r); err != nil {
		t.Fatal(err)
	}
	reqs, _ := r.Rows()
	if len(reqs) != 1 || reqs[0].Ingredient != "42" {
		t.Errorf("Rows() = %+v, want single 42 row", reqs)
	}
}

func TestRecordStructuredIngredientNameKeptVerbatim(t *testing.T) {
	data := `{"recipe_name":"X","ingredients":[
		{"name":["egg"]},
		{"Zutat":{"k":"salt"}},
		{"name":"Eier"}
	]}`
	var r Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatal(err)
	}
	reqs, _ := r.Rows()
	want := []string{`["egg"]`, `{"k":"salt"}`, "Ei"}
	if len(reqs) != len(want) {
		t.Fatalf("Rows() = %+v", reqs)
	}
	for i, w := range want {
		if reqs[i].Ingredient != w {
			t.Errorf("ingredient %d = %q, want %q", i, reqs[i].Ingredient, w)
		}
	}
}

func TestRecordRows(t *testing.T) {
	r := Record{
		Name: "Suppe",
		Ingredients: []RecordIngredient{
			{Name: "Zwiebeln", Quantity: 2, Unit: "Stk"},
			{Name: "", Quantity: 1},
			{Name: "Kartoffeln", Quantity: Quantity(-1), Unit: "kg"},
		},
		Steps: []string{"Schälen", "", "Kochen"},
	}
	reqs, steps := r.Rows()

	if len(reqs) != 2 {
		t.Fatalf("len(reqs) = %d, want 2", len(reqs))
	}
	if reqs[0].Ingredient != "Zwiebel" || reqs[1].Ingredient != "Kartoffel" {
		t.Errorf("ingredients = %q, %q", reqs[0].Ingredient, reqs[1].Ingredient)
	}
	if reqs[1].Quantity != 0 {
		t.Errorf("negative quantity should coerce to 0, got %v", reqs[1].Quantity)
	}
	if len(steps) != 2 || steps[0].Number != 1 || steps[1].Number != 2 || steps[1].Instruction != "Kochen" {
		t.Errorf("steps = %+v", steps)
	}
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr bool
	}{
		{"ok ingredients", Record{Name: "A", Ingredients: []RecordIngredient{{Name: "Salz"}}}, false},
		{"ok steps", Record{Name: "A", Steps: []string{"Kochen"}}, false},
		{"missing name", Record{Name: "  ", Steps: []string{"Kochen"}}, true},
		{"empty", Record{Name: "A"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
