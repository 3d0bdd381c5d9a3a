package pantry

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2", 2},
		{" 2.5 ", 2.5},
		{"2,5", 2.5},
		{"1/2", 0.5},
		{"1 1/2", 1.5},
		{"", 0},
		{"etwas", 0},
		{"n/a", 0},
		{"1/0", 0},
		{"-3", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tt := range tests {
		got := ParseQuantity(tt.input)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseQuantity(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestQuantityUnmarshalJSON(t *testing.T) {
	var payload struct {
		Items []Quantity `json:"items"`
	}
	data := `{"items": [3, "4", "0,5", null, "eine Prise", true, {"x": 1}]}`
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := []float64{3, 4, 0.5, 0, 0, 0, 0}
	if len(payload.Items) != len(want) {
		t.Fatalf("len = %d, want %d", len(payload.Items), len(want))
	}
	for i, q := range payload.Items {
		if q.Float64() != want[i] {
			t.Errorf("item %d = %v, want %v", i, q.Float64(), want[i])
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	if got := FormatQuantity(2); got != "2" {
		t.Errorf("FormatQuantity(2) = %q, want 2", got)
	}
	if got := FormatQuantity(0.25); got != "0.25" {
		t.Errorf("FormatQuantity(0.25) = %q, want 0.25", got)
	}
	if got := Quantity(math.NaN()).String(); got != "0" {
		t.Errorf("Quantity(NaN).String() = %q, want 0", got)
	}
}
