package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig 產生只用暫存資料庫、不連 AI 的設定檔
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := "database:\n  path: " + filepath.Join(dir, "chef.db") + "\n" +
		"ai:\n  provider: none\n" +
		"cache:\n  enabled: false\n" +
		"catalog:\n  refresh_schedule: \"\"\n"
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, cfg string, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := execute(append([]string{"--config", cfg}, args...), strings.NewReader(stdin), &out)
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const (
	zutatenCSV = "Rezept,Zutat,Menge,Einheit,Favorit\n" +
		"Tomatensuppe,Tomaten,500,g,ja\n" +
		"Tomatensuppe,Zwiebeln,1,Stk,ja\n" +
		"Tomatensuppe,Salz,,,ja\n" +
		"Bratkartoffeln,Kartoffeln,800,g,\n" +
		"Bratkartoffeln,Zwiebel,2,Stk,\n"
	anleitungenCSV = "Rezept,Schritt_Nr,Anweisung\n" +
		"Tomatensuppe,1,Tomaten schneiden\n" +
		"Tomatensuppe,2,Kochen\n" +
		"Bratkartoffeln,1,Braten\n"
)

func importSheet(t *testing.T, cfg string) {
	t.Helper()
	out, err := run(t, cfg, "", "import", "sheet",
		writeFile(t, "zutaten.csv", zutatenCSV),
		writeFile(t, "anleitungen.csv", anleitungenCSV))
	if err != nil {
		t.Fatalf("import sheet: %v", err)
	}
	if !strings.Contains(out, "2 Rezepte, 5 Zutaten, 3 Schritte") {
		t.Errorf("import sheet output = %q", out)
	}
}

func TestSheetImportAndQueries(t *testing.T) {
	cfg := writeConfig(t)
	importSheet(t, cfg)

	out, err := run(t, cfg, "", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "* Tomatensuppe") || !strings.Contains(out, "  Bratkartoffeln") {
		t.Errorf("list = %q", out)
	}

	out, err = run(t, cfg, "", "shopping", "Tomatensuppe", "Bratkartoffeln")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "3 Stk Zwiebel") {
		t.Errorf("shopping = %q", out)
	}

	out, err = run(t, cfg, "", "cookable", "kartoffeln", "zwiebel")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Bratkartoffeln: 2/2\n") {
		t.Errorf("cookable = %q", out)
	}

	out, err = run(t, cfg, "", "show", "Tomatensuppe")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "500 g Tomate") || !strings.Contains(out, "2. Kochen") {
		t.Errorf("show = %q", out)
	}
}

func TestFavoriteAndBasics(t *testing.T) {
	cfg := writeConfig(t)
	importSheet(t, cfg)

	out, err := run(t, cfg, "", "--format", "json", "favorite", "Bratkartoffeln")
	if err != nil {
		t.Fatal(err)
	}
	var change struct {
		Recipe   string `json:"recipe"`
		Favorite bool   `json:"favorite"`
	}
	if err := json.Unmarshal([]byte(out), &change); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if change.Recipe != "Bratkartoffeln" || !change.Favorite {
		t.Errorf("favorite = %+v", change)
	}

	out, err = run(t, cfg, "", "basics", "add", "Kartoffeln")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "- Kartoffel") {
		t.Errorf("basics add = %q", out)
	}
	out, err = run(t, cfg, "", "basics", "remove", "Kartoffel")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "Kartoffel") {
		t.Errorf("basics remove = %q", out)
	}
}

func TestExport(t *testing.T) {
	cfg := writeConfig(t)
	importSheet(t, cfg)

	path := filepath.Join(t.TempDir(), "rezepte.yaml")
	if _, err := run(t, cfg, "", "export", "--output", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"recipe_name: Tomatensuppe", "name: Tomate", "- Braten"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("export missing %q:\n%s", want, data)
		}
	}
}

func TestCommandErrors(t *testing.T) {
	cfg := writeConfig(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"--format", "xml", "list"}},
		{"unknown recipe", []string{"show", "Lasagne"}},
		{"ai disabled", []string{"import", "text", "-"}},
		{"missing csv", []string{"import", "sheet", "nope.csv", "nope.csv"}},
		{"missing args", []string{"favorite"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, cfg, "Suppe", tt.args...); err == nil {
				t.Errorf("%v should fail", tt.args)
			}
		})
	}
}
