package snippets_test

import (
	"strings"
	"testing"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/banner"
	"github.com/dxforce-site/abTestHeroBanner/internal/content"
	"github.com/dxforce-site/abTestHeroBanner/internal/snippets"
)

func snippetConfig() snippets.Config {
	return snippets.Config{
		ServerURL: "http://localhost:8080",
		Banner: banner.Config{
			TestID:      "promo1",
			ImageHeight: 520,
			VariantA: content.VariantContent{
				Image:       map[string]any{"contentKey": "hero-a.jpg"},
				Title:       "Ship faster",
				Description: "The platform for modern delivery.",
				ButtonLabel: "Get started",
				ButtonURL:   "signup",
			},
			VariantB: content.VariantContent{
				Title: "Build better",
			},
		},
	}
}

func TestGenerate_Iframe(t *testing.T) {
	files, err := snippets.Generate(snippets.FrameworkIframe, snippetConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}

	got := files[0].Content

	if !strings.Contains(got, "http://localhost:8080/banner") {
		t.Error("expected the iframe to point at the banner page")
	}
	if !strings.Contains(got, "promo1") {
		t.Error("expected the snippet to name the test")
	}
	if !strings.Contains(got, "height:520px") {
		t.Error("expected the iframe to carry the configured height")
	}
}

func TestGenerate_Script(t *testing.T) {
	files, err := snippets.Generate(snippets.FrameworkScript, snippetConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}

	got := files[0].Content

	if !strings.Contains(got, "data-dxab-banner") {
		t.Error("expected the mount element attribute")
	}
	if !strings.Contains(got, "http://localhost:8080/embed.js") {
		t.Error("expected the script tag to load embed.js")
	}
}

func TestGenerate_React(t *testing.T) {
	files, err := snippets.Generate(snippets.FrameworkReact, snippetConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}

	var names []string
	var all strings.Builder
	for _, f := range files {
		names = append(names, f.Filename)
		all.WriteString(f.Content)
	}

	for _, want := range []string{"useBanner.ts", "HeroBanner.tsx", "usage.tsx"} {
		if !strings.Contains(strings.Join(names, " "), want) {
			t.Errorf("expected a %s file, got %v", want, names)
		}
	}

	if !strings.Contains(all.String(), "/api/banner") {
		t.Error("expected the hook to call the banner API")
	}
	if !strings.Contains(all.String(), "http://localhost:8080") {
		t.Error("expected the server URL to be baked in")
	}
}

func TestGenerate_StaticWinner(t *testing.T) {
	config := snippetConfig()
	winner := abtest.VariantA
	config.Winner = &winner

	// Framework is irrelevant once a winner is declared
	files, err := snippets.Generate(snippets.FrameworkReact, config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Filename != "static-winner.html" {
		t.Errorf("got filename %s, want static-winner.html", files[0].Filename)
	}

	got := files[0].Content

	if !strings.Contains(got, "Ship faster") {
		t.Error("expected the winning title")
	}
	if !strings.Contains(got, "http://localhost:8080/assets/hero-a.jpg") {
		t.Error("expected the image to stay on the banner server")
	}
	if !strings.Contains(got, `href="/signup"`) {
		t.Error("expected the button to resolve against the host site")
	}
	if strings.Contains(got, "embed.js") || strings.Contains(got, "/api/banner") {
		t.Error("static winner must not reference the experiment")
	}
}
