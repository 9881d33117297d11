package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/content"
)

const bannerPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Data.Title}}</title>
<style>
.hero-banner{position:relative;overflow:hidden;font-family:system-ui,sans-serif}
.hero-banner img{display:block;width:100%;object-fit:cover}
.hero-copy{position:absolute;inset:0;display:flex;flex-direction:column;justify-content:center;align-items:center;text-align:center;color:#fff;text-shadow:0 1px 4px rgba(0,0,0,.5);padding:1rem}
.hero-copy h1{margin:0 0 .5rem;font-size:2.25rem}
.hero-copy p{margin:0 0 1.25rem;font-size:1.125rem}
.hero-button{background:#fff;color:#111;padding:.75rem 1.5rem;border-radius:4px;text-decoration:none;font-weight:600}
</style>
</head>
<body>
<section class="hero-banner" data-variant="{{.Variant}}">
{{if .Data.ImageURL}}<img src="{{.Data.ImageURL}}" alt="{{.Data.ImageAlt}}" style="{{.Style}}">{{end}}
<div class="hero-copy">
{{if .Data.Title}}<h1>{{.Data.Title}}</h1>{{end}}
{{if .Data.Description}}<p>{{.Data.Description}}</p>{{end}}
{{if .Data.ButtonLabel}}<a class="hero-button" href="{{.ClickURL}}">{{.Data.ButtonLabel}}</a>{{end}}
</div>
</section>
</body>
</html>`

var bannerTmpl = template.Must(template.New("banner").Parse(bannerPage))

type bannerPageData struct {
	Data     content.Data
	Style    template.CSS
	Variant  abtest.Variant
	ClickURL string
}

// clickURL routes button clicks through the redirect endpoint so the click
// is reported with the same cookies that carry the assignment.
func clickURL(testID string) string {
	return "/go?test=" + url.QueryEscape(testID)
}

func (s *Server) handleBanner(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	comp := s.newComponent(w, r)
	defer comp.Flush()
	comp.Activate()
	data := comp.Data()

	page := bannerPageData{
		Data:     data,
		Style:    template.CSS(data.Style),
		Variant:  comp.Variant(),
		ClickURL: clickURL(s.holder.Config().TestID),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := bannerTmpl.Execute(w, page); err != nil {
		s.log.Error("failed to render banner page", zap.Error(err))
	}
}

// BannerResponse is the JSON shape SPA embeds consume.
type BannerResponse struct {
	TestID   string         `json:"testId"`
	Variant  abtest.Variant `json:"variant"`
	Content  content.Data   `json:"content"`
	ClickURL string         `json:"clickUrl"`
}

func (s *Server) handleBannerAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	comp := s.newComponent(w, r)
	defer comp.Flush()
	comp.Activate()
	data := comp.Data()

	response := BannerResponse{
		TestID:   s.holder.Config().TestID,
		Variant:  comp.Variant(),
		Content:  data,
		ClickURL: clickURL(s.holder.Config().TestID),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleGo reports the click for the requesting visitor and redirects to
// the resolved button target. A stale page can still point at an earlier
// test; the test query parameter keeps that click attributed to it.
func (s *Server) handleGo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	comp := s.newComponent(w, r)
	defer comp.Flush()
	comp.Activate()

	if testID := r.URL.Query().Get("test"); testID != "" && testID != s.holder.Config().TestID {
		comp.SetTestID(testID)
	}

	target := comp.Click()
	if target == "#" {
		target = "/banner"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// BeaconRequest is an incoming collector event.
type BeaconRequest struct {
	Test      string `json:"t"`
	Variant   string `json:"v"`
	Event     string `json:"e"`
	VisitorID string `json:"vid"`
}

func (s *Server) handleBeacon(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers for all responses
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	// Handle preflight
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BeaconRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Test == "" || req.VisitorID == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	variant, ok := abtest.ParseVariant(req.Variant)
	if !ok {
		http.Error(w, "Invalid variant", http.StatusBadRequest)
		return
	}

	action, ok := abtest.ParseAction(req.Event)
	if !ok {
		http.Error(w, "Invalid event type", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if _, err := s.store.GetOrCreateTest(ctx, req.Test); err != nil {
		http.Error(w, "Failed to get or create test", http.StatusInternalServerError)
		return
	}

	// Duplicates are dropped by the store, not rejected
	if _, err := s.store.RecordEvent(ctx, req.Test, variant, action, req.VisitorID); err != nil {
		http.Error(w, "Failed to record event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type HealthResponse struct {
	Status        string `json:"status"`
	TestsCount    int    `json:"tests_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tests, err := s.store.ListTests(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := HealthResponse{
		Status:        "ok",
		TestsCount:    len(tests),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
