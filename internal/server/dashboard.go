package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/stats"
)

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>DXFORCE A/B Dashboard</title>
<style>
body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:880px;padding:0 1rem;color:#1a1a2e}
h1{font-size:1.5rem}
h2{font-size:1.125rem;margin-top:2rem}
table{border-collapse:collapse;width:100%;margin:.75rem 0}
th,td{text-align:left;padding:.5rem .75rem;border-bottom:1px solid #e0e0e8}
th{font-size:.8125rem;text-transform:uppercase;letter-spacing:.05em;color:#6a6a7a}
.leader{font-weight:600}
.badge{display:inline-block;padding:.125rem .5rem;border-radius:999px;font-size:.75rem;background:#eef;color:#336}
.badge.confident{background:#e6f6ea;color:#1a7a38}
.badge.winner{background:#fff3d6;color:#8a6200}
.muted{color:#9a9aa8}
.preview form{display:inline}
.preview button{margin-right:.5rem;padding:.375rem .875rem;border:1px solid #c8c8d4;border-radius:4px;background:#fff;cursor:pointer}
.preview button.active{background:#1a1a2e;color:#fff;border-color:#1a1a2e}
.logout{float:right;font-size:.875rem}
</style>
</head>
<body>
<a class="logout" href="/dashboard?logout=1">Log out</a>
<h1>DXFORCE A/B Dashboard</h1>

<div class="preview">
<p>Banner test <strong>{{if .TestID}}{{.TestID}}{{else}}(none configured){{end}}</strong>, preview mode:
{{range .Modes}}<form method="POST" action="/api/preview"><button name="mode" value="{{.}}"{{if eq . $.PreviewMode}} class="active"{{end}}>{{.}}</button></form>{{end}}
</p>
</div>

{{if not .Tests}}<p class="muted">No tests recorded yet.</p>{{end}}
{{range .Tests}}
<h2>{{.Name}}
<span class="badge">{{.State}}</span>
{{if .Winner}}<span class="badge winner">winner: {{.Winner}}</span>{{end}}
{{if .Confident}}<span class="badge confident">{{printf "%.1f%%" .ConfidencePercent}} confident in {{.Leader}}</span>{{end}}
</h2>
<table>
<tr><th>Variant</th><th>Views</th><th>Clicks</th><th>CTR</th><th>95% CI</th></tr>
{{range .Rows}}
<tr{{if .Leading}} class="leader"{{end}}>
<td>{{.Variant}}</td>
<td>{{.Views}}</td>
<td>{{.Clicks}}</td>
<td>{{printf "%.1f%%" .RatePercent}}</td>
<td>{{printf "%.1f%%" .CILowerPercent}} &ndash; {{printf "%.1f%%" .CIUpperPercent}}</td>
</tr>
{{end}}
</table>
<p class="muted">created {{.CreatedAt}}</p>
{{end}}
</body>
</html>`

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardPage))

type dashboardData struct {
	TestID      string
	PreviewMode string
	Modes       []string
	Tests       []dashboardTest
}

type dashboardTest struct {
	Name              string
	State             string
	Winner            string
	CreatedAt         string
	Rows              []dashboardVariant
	Leader            string
	Confident         bool
	ConfidencePercent float64
}

type dashboardVariant struct {
	Variant        string
	Views          int
	Clicks         int
	RatePercent    float64
	CILowerPercent float64
	CIUpperPercent float64
	Leading        bool
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	// Handle logout
	if r.URL.Query().Get("logout") == "1" {
		http.SetCookie(w, &http.Cookie{
			Name:   tokenCookieName,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	ctx := r.Context()

	tests, err := s.store.ListTests(ctx)
	if err != nil {
		http.Error(w, "Failed to load tests", http.StatusInternalServerError)
		return
	}

	items := make([]dashboardTest, len(tests))
	for i, t := range tests {
		variantStats, err := s.store.GetVariantStats(ctx, t.Name)
		if err != nil {
			http.Error(w, "Failed to load stats", http.StatusInternalServerError)
			return
		}
		result := stats.Analyze(variantStats)

		rows := make([]dashboardVariant, 0, 2)
		for _, vr := range []stats.VariantResult{result.A, result.B} {
			rows = append(rows, dashboardVariant{
				Variant:        string(vr.Variant),
				Views:          vr.Views,
				Clicks:         vr.Clicks,
				RatePercent:    vr.Rate * 100,
				CILowerPercent: vr.CILower * 100,
				CIUpperPercent: vr.CIUpper * 100,
				Leading:        result.Confident && vr.Variant == result.Leader,
			})
		}

		winner := ""
		if t.Winner != nil {
			winner = string(*t.Winner)
		}

		items[i] = dashboardTest{
			Name:              t.Name,
			State:             string(t.State),
			Winner:            winner,
			CreatedAt:         t.CreatedAt.Format("Jan 2, 2006"),
			Rows:              rows,
			Leader:            string(result.Leader),
			Confident:         result.Confident,
			ConfidencePercent: result.ConfidenceLevel * 100,
		}
	}

	cfg := s.holder.Config()
	data := dashboardData{
		TestID:      cfg.TestID,
		PreviewMode: string(cfg.Mode()),
		Modes:       []string{string(abtest.ModeAuto), string(abtest.ModeForceA), string(abtest.ModeForceB)},
		Tests:       items,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		s.log.Error("failed to render dashboard", zap.Error(err))
	}
}

// PreviewRequest switches the live banner's preview mode.
type PreviewRequest struct {
	Mode string `json:"mode"`
}

// handlePreview flips the preview mode at runtime. The override lasts
// until the next config reload. Accepts JSON or the dashboard's form post.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var raw string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req PreviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		raw = req.Mode
	} else {
		raw = r.FormValue("mode")
	}

	mode, ok := abtest.ParseMode(raw)
	if !ok {
		http.Error(w, "Invalid preview mode", http.StatusBadRequest)
		return
	}

	s.holder.SetPreviewMode(mode)
	s.log.Info("preview mode switched", zap.String("mode", raw))

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}
