package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/snippets"
	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
	}

	for _, c := range cases {
		if got := formatNumber(c.in); got != c.want {
			t.Errorf("formatNumber(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(0); got != "0%" {
		t.Errorf("formatPercent(0) = %q, want 0%%", got)
	}
	if got := formatPercent(0.1234); got != "12.34%" {
		t.Errorf("formatPercent(0.1234) = %q, want 12.34%%", got)
	}
}

func sampleEvents() []*store.Event {
	return []*store.Event{
		{
			TestName:  "promo1",
			Variant:   abtest.VariantA,
			Action:    abtest.ActionView,
			VisitorID: "visitor-1",
			CreatedAt: time.Unix(1700000000, 0),
		},
		{
			TestName:  "promo1",
			Variant:   abtest.VariantB,
			Action:    abtest.ActionClick,
			VisitorID: "visitor-2",
			CreatedAt: time.Unix(1700000100, 0),
		},
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := exportCSV(&buf, sampleEvents()); err != nil {
		t.Fatalf("exportCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "timestamp,variant,action,visitor_id" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "1700000000,A,View,visitor-1" {
		t.Errorf("unexpected first row: %q", lines[1])
	}
	if lines[2] != "1700000100,B,Click,visitor-2" {
		t.Errorf("unexpected second row: %q", lines[2])
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := exportJSON(&buf, sampleEvents()); err != nil {
		t.Fatalf("exportJSON failed: %v", err)
	}

	var export jsonExport
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(export.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(export.Events))
	}
	first := export.Events[0]
	if first.Timestamp != 1700000000 || first.Variant != "A" || first.Action != "View" || first.VisitorID != "visitor-1" {
		t.Errorf("unexpected first event: %+v", first)
	}
}

func TestPrintSnippets(t *testing.T) {
	files := []snippets.SnippetFile{
		{Filename: "index.html", Content: "<div>one</div>"},
		{Filename: "useBanner.ts", Content: "export {}"},
	}

	output := captureOutput(func() {
		printSnippets(files)
	})

	for _, expected := range []string{"index.html", "<div>one</div>", "useBanner.ts", "export {}"} {
		if !strings.Contains(output, expected) {
			t.Errorf("output missing %q\n\nGot:\n%s", expected, output)
		}
	}
}
