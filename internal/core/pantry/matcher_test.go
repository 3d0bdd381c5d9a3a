package pantry

import (
	"math"
	"reflect"
	"testing"

	"chef-app/internal/core/ingredient"
)

func catalog() []Requirement {
	return []Requirement{
		{Recipe: "A", Ingredient: "Zwiebel", Quantity: 1, Unit: "Stück"},
		{Recipe: "A", Ingredient: "Salz", Quantity: 1, Unit: "Prise"},
		{Recipe: "A", Ingredient: "Tomate", Quantity: 200, Unit: "g"},
		{Recipe: "B", Ingredient: "Zwiebel", Quantity: 2, Unit: "Stück"},
		{Recipe: "B", Ingredient: "Tomate", Quantity: 0.5, Unit: "kg"},
		{Recipe: "C", Ingredient: "Reis", Quantity: 250, Unit: "g"},
	}
}

func findItem(items []ShoppingItem, ing, unit string) (ShoppingItem, bool) {
	for _, it := range items {
		if it.Ingredient == ing && it.Unit == unit {
			return it, true
		}
	}
	return ShoppingItem{}, false
}

func TestAggregateSumsPerIngredientAndUnit(t *testing.T) {
	items := Aggregate(catalog(), []string{"A", "B"})

	if len(items) != 4 {
		t.Fatalf("len(items) = %d, want 4: %+v", len(items), items)
	}

	onion, ok := findItem(items, "Zwiebel", "Stück")
	if !ok || onion.Total != 3 {
		t.Errorf("Zwiebel/Stück = %+v, want total 3", onion)
	}
	if onion.Category != ingredient.CategoryProduce {
		t.Errorf("Zwiebel category = %q", onion.Category)
	}

	// 不同單位不合併
	if _, ok := findItem(items, "Tomate", "g"); !ok {
		t.Error("missing Tomate/g")
	}
	if _, ok := findItem(items, "Tomate", "kg"); !ok {
		t.Error("missing Tomate/kg")
	}
	if _, ok := findItem(items, "Reis", "g"); ok {
		t.Error("Reis belongs to an unselected recipe")
	}
}

func TestAggregateCoercesBadQuantities(t *testing.T) {
	rows := []Requirement{
		{Recipe: "A", Ingredient: "Mehl", Quantity: 100, Unit: "g"},
		{Recipe: "A", Ingredient: "Mehl", Quantity: math.NaN(), Unit: "g"},
		{Recipe: "A", Ingredient: "Mehl", Quantity: math.Inf(1), Unit: "g"},
		{Recipe: "A", Ingredient: "Mehl", Quantity: -5, Unit: "g"},
	}
	items := Aggregate(rows, []string{"A"})
	if len(items) != 1 || items[0].Total != 100 {
		t.Errorf("Aggregate() = %+v, want single Mehl/g 100", items)
	}
}

func TestAggregateOrdering(t *testing.T) {
	items := Aggregate(catalog(), []string{"A", "B", "C"})
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		if prev.Ingredient > cur.Ingredient || (prev.Ingredient == cur.Ingredient && prev.Unit > cur.Unit) {
			t.Errorf("items not ordered at %d: %+v before %+v", i, prev, cur)
		}
	}
}

func TestAggregateEmptySelection(t *testing.T) {
	if items := Aggregate(catalog(), nil); len(items) != 0 {
		t.Errorf("Aggregate(nil) = %+v, want empty", items)
	}
}

func TestFindCookable(t *testing.T) {
	rows := []Requirement{
		{Recipe: "Suppe", Ingredient: "Zwiebel"},
		{Recipe: "Suppe", Ingredient: "Salz"},
		{Recipe: "Suppe", Ingredient: "Pfeffer"},
		{Recipe: "Kuchen", Ingredient: "Mehl"},
		{Recipe: "Kuchen", Ingredient: "Zucker"},
	}

	got := FindCookable(rows, []string{"Zwiebel"})
	want := []CookableRecipe{
		{Recipe: "Suppe", MatchCount: 1, RequiredCount: 3, Missing: []string{"Pfeffer", "Salz"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindCookable() = %+v, want %+v", got, want)
	}
}

func TestFindCookableCountsDistinctIngredients(t *testing.T) {
	rows := []Requirement{
		{Recipe: "Pasta", Ingredient: "Tomate", Unit: "g"},
		{Recipe: "Pasta", Ingredient: "Tomate", Unit: "Stück"},
		{Recipe: "Pasta", Ingredient: "Nudeln"},
	}
	got := FindCookable(rows, []string{"Tomate", "Tomate"})
	if len(got) != 1 || got[0].MatchCount != 1 || got[0].RequiredCount != 2 {
		t.Errorf("FindCookable() = %+v, want match 1 of 2", got)
	}
}

func TestFindCookableSortsByMatchCount(t *testing.T) {
	rows := []Requirement{
		{Recipe: "Eins", Ingredient: "Salz"},
		{Recipe: "Zwei", Ingredient: "Salz"},
		{Recipe: "Zwei", Ingredient: "Pfeffer"},
		{Recipe: "Drei", Ingredient: "Pfeffer"},
	}
	got := FindCookable(rows, []string{"Salz", "Pfeffer"})
	var names []string
	for _, r := range got {
		names = append(names, r.Recipe)
	}
	want := []string{"Zwei", "Eins", "Drei"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("order = %v, want %v", names, want)
	}
}

func TestFindCookableNoOverlap(t *testing.T) {
	if got := FindCookable(catalog(), []string{"Schokolade"}); len(got) != 0 {
		t.Errorf("FindCookable() = %+v, want empty", got)
	}
	if got := FindCookable(nil, []string{"Salz"}); len(got) != 0 {
		t.Errorf("FindCookable(nil) = %+v, want empty", got)
	}
}

func TestBuildView(t *testing.T) {
	view := BuildView(catalog(), NewBasics("Salz", "Pfeffer"))
	if !reflect.DeepEqual(view.Basics, []string{"Salz"}) {
		t.Errorf("Basics = %v", view.Basics)
	}
	if !reflect.DeepEqual(view.Fresh, []string{"Reis", "Tomate", "Zwiebel"}) {
		t.Errorf("Fresh = %v", view.Fresh)
	}
	if !reflect.DeepEqual(view.Candidates, view.Fresh) {
		t.Errorf("Candidates = %v", view.Candidates)
	}
}

func TestWithBasics(t *testing.T) {
	got := WithBasics([]string{"Tomate"}, NewBasics("Salz"))
	if !reflect.DeepEqual(got, []string{"Tomate", "Salz"}) {
		t.Errorf("WithBasics() = %v", got)
	}
}
