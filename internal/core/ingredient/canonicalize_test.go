package ingredient

import (
	"encoding/json"
	"testing"
)

func TestCanonicalizeRules(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Garlic Cloves", "Knoblauch"},
		{"onion", "Zwiebel"},
		{"rote Zwiebeln", "Zwiebel"},
		{"Schalotten", "Zwiebel"},
		{"Meersalz", "Salz"},
		{"schwarzer Pfeffer", "Pfeffer"},
		{"Olive Oil", "Öl"},
		{"Olivenöl", "Öl"},
		{"frischer Ingwer", "Ingwer"},
		{"brown sugar", "Zucker"},
		{"Weizenmehl", "Mehl"},
		{"BUTTER", "Butter"},
		{"Parmesan", "Käse"},
		{"Eggs", "Ei"},
		{"Eier", "Ei"},
		{"Zitronensaft", "Zitrone"},
		{"Vollmilch", "Milch"},
		{"warm water", "Wasser"},
	}
	for _, tt := range tests {
		got := Canonicalize(tt.input)
		if got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCanonicalizeSubstringIsKept(t *testing.T) {
	// Zwiebelpulver 刻意對應到 Zwiebel
	if got := Canonicalize("Zwiebelpulver"); got != "Zwiebel" {
		t.Errorf("Canonicalize(Zwiebelpulver) = %q, want Zwiebel", got)
	}
	// butternut 內含 butter
	if got := Canonicalize("Butternut"); got != "Butter" {
		t.Errorf("Canonicalize(Butternut) = %q, want Butter", got)
	}
}

func TestCanonicalizeRuleOrder(t *testing.T) {
	// garlic salt：Knoblauch 規則排在 Salz 前面
	if got := Canonicalize("garlic salt"); got != "Knoblauch" {
		t.Errorf("Canonicalize(garlic salt) = %q, want Knoblauch", got)
	}
}

func TestCanonicalizeFallback(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Randomword", "Randomword"},
		{"randomword", "Randomword"},
		{"  tomaten  ", "Tomate"},
		{"Tomaten", "Tomate"},
		{"KARTOFFELN", "Kartoffel"},
		{"Karotten", "Karotte"},
		{"Möhren", "Karotte"},
		{"äpfel", "Apfel"},
		{"Paprikas", "Paprika"},
		{"Gurken", "Gurke"},
		{"Dosen", "Dose"},
		{"Packungen", "Packung"},
		{"Rote Bete", "Rote bete"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		got := Canonicalize(tt.input)
		if got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Garlic Cloves", "onion", "Eier", "Randomword", "Tomaten", "Olivenöl",
		"Möhren", "Käse", "Zitrone", "Wasser", "Ei", "Rote Bete", "Kartoffeln",
		"Paprikas", "Zwiebelpulver", "  milk ",
	}
	for _, in := range inputs {
		once := Canonicalize(in)
		twice := Canonicalize(once)
		if once != twice {
			t.Errorf("Canonicalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCanonicalizeValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "Zwiebeln", "Zwiebel"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"bool", true, "true"},
		{"json number", json.Number("7"), "7"},
		{"array", []any{"egg"}, `["egg"]`},
		{"object", map[string]any{"k": "salt"}, `{"k":"salt"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalizeValue(tt.input); got != tt.want {
				t.Errorf("CanonicalizeValue(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
