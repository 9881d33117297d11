// Package snippets generates copy-paste embed code for the hero banner:
// an iframe, the drop-in script tag, or a React hook, plus a static
// rendition of the winning variant once one is declared.
package snippets

import (
	"bytes"
	"text/template"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/banner"
	"github.com/dxforce-site/abTestHeroBanner/internal/content"
)

type Framework string

const (
	FrameworkIframe Framework = "iframe"
	FrameworkScript Framework = "script"
	FrameworkReact  Framework = "react"
)

type Config struct {
	ServerURL string
	Banner    banner.Config
	Winner    *abtest.Variant // nil while the test is still running
}

type SnippetFile struct {
	Filename string
	Content  string
}

type templateData struct {
	TestID    string
	ServerURL string
	Height    int
}

func Generate(framework Framework, config Config) ([]SnippetFile, error) {
	height := config.Banner.ImageHeight
	if height <= 0 {
		height = content.DefaultHeight
	}

	data := templateData{
		TestID:    config.Banner.TestID,
		ServerURL: config.ServerURL,
		Height:    height,
	}

	// A declared winner replaces the experiment with static content
	if config.Winner != nil {
		return generateStaticWinner(config)
	}

	switch framework {
	case FrameworkIframe:
		return generateIframe(data)
	case FrameworkReact:
		return generateReact(data)
	default:
		return generateScript(data)
	}
}

func renderTemplate(name, text string, data templateData) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func generateIframe(data templateData) ([]SnippetFile, error) {
	snippet := `<!-- DXFORCE hero banner: {{.TestID}} -->
<iframe src="{{.ServerURL}}/banner"
        title="Hero banner"
        loading="eager"
        style="display:block;width:100%;height:{{.Height}}px;border:0"></iframe>
`

	rendered, err := renderTemplate("iframe", snippet, data)
	if err != nil {
		return nil, err
	}

	return []SnippetFile{
		{Filename: "hero-banner.html", Content: rendered},
	}, nil
}

func generateScript(data templateData) ([]SnippetFile, error) {
	snippet := `<!-- DXFORCE hero banner: {{.TestID}} -->
<div data-dxab-banner></div>
<script src="{{.ServerURL}}/embed.js" defer></script>
`

	rendered, err := renderTemplate("script", snippet, data)
	if err != nil {
		return nil, err
	}

	return []SnippetFile{
		{Filename: "hero-banner.html", Content: rendered},
	}, nil
}

func generateReact(data templateData) ([]SnippetFile, error) {
	files := []SnippetFile{}

	// useBanner.ts
	useBanner := `import { useEffect, useState } from 'react';

const SERVER_URL = '{{.ServerURL}}';

export interface BannerContent {
  imageUrl: string;
  imageAlt: string;
  title: string;
  description: string;
  buttonLabel: string;
  buttonUrl: string;
  style: string;
}

export interface Banner {
  testId: string;
  variant: string;
  clickUrl: string;
  content: BannerContent;
}

export function useBanner(): Banner | null {
  const [banner, setBanner] = useState<Banner | null>(null);

  useEffect(() => {
    fetch(SERVER_URL + '/api/banner', { credentials: 'include' })
      .then((r) => r.json())
      .then(setBanner)
      .catch(() => {});
  }, []);

  return banner;
}
`
	rendered, err := renderTemplate("useBanner", useBanner, data)
	if err != nil {
		return nil, err
	}
	files = append(files, SnippetFile{Filename: "useBanner.ts", Content: rendered})

	// HeroBanner.tsx
	heroBanner := `'use client';

import { useBanner } from './useBanner';

const SERVER_URL = '{{.ServerURL}}';

export function HeroBanner() {
  const banner = useBanner();
  if (!banner) return null;

  const c = banner.content;
  return (
    <section data-variant={banner.variant} style={{ position: 'relative', overflow: 'hidden' }}>
      {c.imageUrl && (
        <img
          src={c.imageUrl.includes('://') ? c.imageUrl : SERVER_URL + c.imageUrl}
          alt={c.imageAlt}
          style={{ display: 'block', width: '100%', objectFit: 'cover' }}
          ref={(el) => {
            if (el) el.style.cssText += c.style;
          }}
        />
      )}
      <div>
        {c.title && <h1>{c.title}</h1>}
        {c.description && <p>{c.description}</p>}
        {c.buttonLabel && <a href={SERVER_URL + banner.clickUrl}>{c.buttonLabel}</a>}
      </div>
    </section>
  );
}
`
	rendered, err = renderTemplate("HeroBanner", heroBanner, data)
	if err != nil {
		return nil, err
	}
	files = append(files, SnippetFile{Filename: "HeroBanner.tsx", Content: rendered})

	// usage.tsx
	usage := `// Example usage in your page:
import { HeroBanner } from './HeroBanner';

export default function LandingPage() {
  return (
    <main>
      <HeroBanner />
    </main>
  );
}
`
	files = append(files, SnippetFile{Filename: "usage.tsx", Content: usage})

	return files, nil
}

// generateStaticWinner renders the winning variant as plain HTML with no
// experiment left in it. Images stay on the banner server; the button
// link resolves against the host site.
func generateStaticWinner(config Config) ([]SnippetFile, error) {
	vc := config.Banner.Variant(*config.Winner)

	data := content.Resolve("", vc, config.Banner.ImageHeight)
	data.ImageURL = content.AssetURL(config.ServerURL, content.ParseRef(vc.Image))

	var buf bytes.Buffer
	buf.WriteString("<!-- Winning variant " + string(*config.Winner) + " of " + config.Banner.TestID + " -->\n")
	buf.WriteString("<section class=\"hero-banner\" style=\"position:relative;overflow:hidden\">\n")
	if data.ImageURL != "" {
		buf.WriteString("  <img src=\"" + data.ImageURL + "\" alt=\"" + data.ImageAlt +
			"\" style=\"display:block;width:100%;object-fit:cover;" + data.Style + "\">\n")
	}
	buf.WriteString("  <div class=\"hero-copy\">\n")
	if data.Title != "" {
		buf.WriteString("    <h1>" + data.Title + "</h1>\n")
	}
	if data.Description != "" {
		buf.WriteString("    <p>" + data.Description + "</p>\n")
	}
	if data.ButtonLabel != "" {
		buf.WriteString("    <a href=\"" + data.ButtonURL + "\">" + data.ButtonLabel + "</a>\n")
	}
	buf.WriteString("  </div>\n</section>\n")

	return []SnippetFile{
		{Filename: "static-winner.html", Content: buf.String()},
	}, nil
}
