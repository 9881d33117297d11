package server_test

import (
	"strings"
	"testing"

	"github.com/dxforce-site/abTestHeroBanner/internal/server"
)

func TestGenerateEmbedScript_BakesInServerURL(t *testing.T) {
	script := server.GenerateEmbedScript("https://ab.example.com")

	if !strings.Contains(script, "'https://ab.example.com'") {
		t.Error("expected the server URL to be baked into the script")
	}
}

func TestGenerateEmbedScript_FetchesBannerAPI(t *testing.T) {
	script := server.GenerateEmbedScript("http://localhost:8080")

	if !strings.Contains(script, "/api/banner") {
		t.Error("expected the script to fetch the banner API")
	}
	if !strings.Contains(script, "credentials:'include'") {
		t.Error("expected the fetch to send cookies, they carry the assignment")
	}
}

func TestGenerateEmbedScript_SelectsMountElements(t *testing.T) {
	script := server.GenerateEmbedScript("http://localhost:8080")

	if !strings.Contains(script, "[data-dxab-banner]") {
		t.Error("expected the script to select the mount elements")
	}
}

func TestGenerateEmbedScript_RoutesClicksThroughRedirect(t *testing.T) {
	script := server.GenerateEmbedScript("http://localhost:8080")

	if !strings.Contains(script, "b.clickUrl") {
		t.Error("expected button links to use the click redirect from the API")
	}
}
