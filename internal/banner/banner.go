// Package banner ties the experiment engine, the reporter, and the content
// helpers into the hero banner component a host embeds: one instance per
// visitor, resolving identity and assignment on activation and reporting
// View and Click at most once each.
package banner

import (
	"go.uber.org/zap"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/content"
	"github.com/dxforce-site/abTestHeroBanner/internal/kv"
)

// Component is a per-visitor banner instance. It is not safe for
// concurrent use; the server builds one per request.
type Component struct {
	cfg        Config
	sitePrefix string
	engine     *abtest.Engine
	reporter   *abtest.Reporter
	mode       abtest.Mode

	visitorID string
	variant   abtest.Variant
	activated bool
}

// New builds a component over one visitor's store. Events go through
// sender; opts tune the underlying engine.
func New(cfg Config, sitePrefix string, store kv.Store, sender abtest.Sender, log *zap.Logger, opts ...abtest.Option) *Component {
	return &Component{
		cfg:        cfg,
		sitePrefix: sitePrefix,
		engine:     abtest.NewEngine(store, log, opts...),
		reporter:   abtest.NewReporter(store, sender, log),
		mode:       cfg.Mode(),
	}
}

// Activate resolves the visitor identity first, then the assignment.
func (c *Component) Activate() {
	c.visitorID = c.engine.VisitorID()
	c.resolve()
	c.activated = true
}

func (c *Component) resolve() {
	c.variant = c.engine.Resolve(c.cfg.TestID, c.mode)
}

// SetPreviewMode switches the preview mode and re-resolves immediately, so
// authors can flip between variants without a reload.
func (c *Component) SetPreviewMode(mode abtest.Mode) {
	c.mode = mode
	c.resolve()
}

// SetTestID points the component at a different test and re-resolves.
func (c *Component) SetTestID(testID string) {
	c.cfg.TestID = testID
	c.resolve()
}

// Update swaps in a new configuration and re-resolves.
func (c *Component) Update(cfg Config) {
	c.cfg = cfg
	c.mode = cfg.Mode()
	c.resolve()
}

// Variant returns the resolved assignment.
func (c *Component) Variant() abtest.Variant { return c.variant }

// VisitorID returns the resolved visitor identifier.
func (c *Component) VisitorID() string { return c.visitorID }

// Mode returns the current preview mode.
func (c *Component) Mode() abtest.Mode { return c.mode }

// Data returns the display bundle for the resolved variant and attempts
// the once-per-visitor View report. Callers invoke it on every render
// pass; the logged marker, not a render-once gate, keeps the report
// single.
func (c *Component) Data() content.Data {
	c.report(abtest.ActionView)
	return content.Resolve(c.sitePrefix, c.cfg.Variant(c.variant), c.cfg.ImageHeight)
}

// Click attempts the once-per-visitor Click report and returns the link
// target for the resolved variant.
func (c *Component) Click() string {
	c.report(abtest.ActionClick)
	return content.ResolveLinkURL(c.sitePrefix, c.cfg.Variant(c.variant).ButtonURL)
}

// Reporting only runs once activated, with a test configured, in normal
// Auto operation. Forced previews never produce events.
func (c *Component) report(action abtest.Action) {
	if !c.activated || c.cfg.TestID == "" || c.mode != abtest.ModeAuto {
		return
	}
	c.reporter.Log(abtest.Event{
		TestID:    c.cfg.TestID,
		Variant:   c.variant,
		Action:    action,
		VisitorID: c.visitorID,
	})
}

// Flush waits for in-flight reports to finish.
func (c *Component) Flush() {
	c.reporter.Flush()
}
