package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"chef-app/internal/core/ai/service"
	"chef-app/internal/core/pantry"
	"chef-app/internal/core/video"
	"chef-app/internal/pkg/common"
	"chef-app/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeExtractor struct {
	content    string
	err        error
	lastPrompt string
}

func (f *fakeExtractor) ProcessRequest(_ context.Context, prompt string) (*service.Response, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return &service.Response{Content: f.content, Model: "fake"}, nil
}

type fakeTranscripts struct {
	text string
	err  error
}

func (f *fakeTranscripts) Fetch(_ context.Context, url string) (video.Transcript, error) {
	if f.err != nil {
		return video.Transcript{}, f.err
	}
	id, _ := video.VideoID(url)
	return video.Transcript{VideoID: id, Language: "de", Text: f.text}, nil
}

const soupJSON = "```json\n" + `{
  "recipe_name": "Linsensuppe",
  "ingredients": [
    {"name": "rote Linsen", "quantity": "250", "unit": "g"},
    {"name": "Zwiebeln", "quantity": 2, "unit": "Stk"},
    {"name": "Olivenöl", "quantity": "1,5", "unit": "EL"}
  ],
  "steps": ["Zwiebeln anschwitzen", "Linsen zugeben", "30 Minuten köcheln"]
}` + "\n```"

func TestImportText(t *testing.T) {
	_, catalog := setupCatalog(t)
	ex := &fakeExtractor{content: soupJSON}
	svc := NewImportService(catalog.store, catalog, ex, nil)
	imported := testutil.ToFloat64(metrics.RecipesImported.WithLabelValues(SourceText))

	res, err := svc.ImportText(context.Background(), "<p>Linsensuppe &amp; Brot</p>\n\n<b>250g</b> Linsen")
	if err != nil {
		t.Fatalf("ImportText() error = %v", err)
	}
	if res.Recipe != "Linsensuppe" || res.Ingredients != 3 || res.Steps != 3 || res.Source != SourceText {
		t.Errorf("result = %+v", res)
	}
	if res.ID == "" || res.Model != "fake" {
		t.Errorf("result = %+v", res)
	}
	if got := testutil.ToFloat64(metrics.RecipesImported.WithLabelValues(SourceText)); got != imported+1 {
		t.Errorf("imported counter = %v, want %v", got, imported+1)
	}
	if !strings.Contains(ex.lastPrompt, "Linsensuppe & Brot\n250g Linsen") {
		t.Errorf("prompt does not contain sanitized text:\n%s", ex.lastPrompt)
	}

	r, err := catalog.Recipe("Linsensuppe")
	if err != nil {
		t.Fatalf("catalog not refreshed: %v", err)
	}
	got := []string{r.Ingredients[0].Ingredient, r.Ingredients[1].Ingredient, r.Ingredients[2].Ingredient}
	want := []string{"Rote linsen", "Zwiebel", "Öl"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ingredient %d = %q, want %q", i, got[i], want[i])
		}
	}
	if r.Ingredients[2].Quantity != 1.5 {
		t.Errorf("Öl quantity = %v, want 1.5", r.Ingredients[2].Quantity)
	}
}

func TestImportTextErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		ex      Extractor
		wantErr error
	}{
		{"empty input", "  <br/> ", &fakeExtractor{content: soupJSON}, common.ErrInvalidRequest},
		{"ai disabled", "Suppe", nil, common.ErrAIDisabled},
		{"ai failure", "Suppe", &fakeExtractor{err: common.ErrAIServiceError.Wrap(errors.New("boom"))}, common.ErrAIServiceError},
		{"garbage output", "Suppe", &fakeExtractor{content: "Ich kann das nicht."}, common.ErrAIServiceError},
		{"no content", "Suppe", &fakeExtractor{content: `{"recipe_name": "Leer", "ingredients": [], "steps": []}`}, common.ErrEmptyImport},
		{"no name", "Suppe", &fakeExtractor{content: `{"ingredients": [{"name": "Salz"}]}`}, common.ErrEmptyImport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, catalog := setupCatalog(t)
			svc := NewImportService(catalog.store, catalog, tt.ex, nil)

			_, err := svc.ImportText(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ImportText() error = %v, want %v", err, tt.wantErr)
			}
			if len(catalog.Recipes()) != 0 {
				t.Error("failed import must not store anything")
			}
		})
	}
}

func TestImportVideo(t *testing.T) {
	_, catalog := setupCatalog(t)
	ex := &fakeExtractor{content: soupJSON}
	svc := NewImportService(catalog.store, catalog, ex, &fakeTranscripts{text: "Heute kochen wir Linsensuppe"})

	res, err := svc.ImportVideo(context.Background(), "https://youtu.be/abc123?t=4")
	if err != nil {
		t.Fatalf("ImportVideo() error = %v", err)
	}
	if res.Source != SourceVideo || res.Recipe != "Linsensuppe" {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(ex.lastPrompt, "Heute kochen wir Linsensuppe") {
		t.Error("transcript not passed to the extractor")
	}
}

func TestImportVideoErrors(t *testing.T) {
	tests := []struct {
		name    string
		fetch   TranscriptFetcher
		wantErr error
	}{
		{"not configured", nil, common.ErrServiceUnavailable},
		{"invalid url", &fakeTranscripts{err: video.ErrInvalidURL}, common.ErrInvalidVideoURL},
		{"no transcript", &fakeTranscripts{err: video.ErrNoTranscript}, common.ErrTranscriptUnavailable},
		{"service down", &fakeTranscripts{err: fmt.Errorf("%w: status 500", video.ErrTranscriptUnavailable)}, common.ErrTranscriptUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, catalog := setupCatalog(t)
			svc := NewImportService(catalog.store, catalog, &fakeExtractor{content: soupJSON}, tt.fetch)

			_, err := svc.ImportVideo(context.Background(), "https://www.youtube.com/watch?v=abc")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ImportVideo() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestImportRecordAppends(t *testing.T) {
	_, catalog := setupCatalog(t, sampleRecords()...)
	svc := NewImportService(catalog.store, catalog, nil, nil)

	res, err := svc.ImportRecord(context.Background(), pantry.Record{
		Name:  "Pfannkuchen",
		Steps: []string{"Teig ruhen lassen", "Ausbacken"},
	}, "")
	if err != nil {
		t.Fatalf("ImportRecord() error = %v", err)
	}
	if !res.Appended || res.Source != SourceRecord {
		t.Errorf("result = %+v", res)
	}

	r, _ := catalog.Recipe("Pfannkuchen")
	if len(r.Steps) != 2 || r.Steps[0].Number != 1 {
		t.Errorf("steps = %+v", r.Steps)
	}
	if !strings.Contains(res.String(), "ergänzt") {
		t.Errorf("String() = %q", res.String())
	}
}

func TestSanitize(t *testing.T) {
	svc := NewImportService(nil, nil, nil, nil)
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"<script>alert(1)</script>Suppe", "Suppe"},
		{"Salz &amp; Pfeffer", "Salz & Pfeffer"},
		{"  a \n\n\n  b  ", "a\nb"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := svc.Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
