// Package abtest implements the hero banner experiment core: a stable
// visitor identity, a sticky A/B assignment per test, and at-most-once
// View/Click reporting per visitor and test.
package abtest

import (
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dxforce-site/abTestHeroBanner/internal/kv"
)

// Variant is one of the two banner configurations a visitor can see.
type Variant string

const (
	VariantA Variant = "A"
	VariantB Variant = "B"
)

// Mode controls how Resolve picks a variant. Auto assigns and persists;
// the forced modes exist for content authoring and never touch storage.
type Mode string

const (
	ModeAuto   Mode = "Auto"
	ModeForceA Mode = "Force A"
	ModeForceB Mode = "Force B"
)

// Action is a reportable visitor interaction.
type Action string

const (
	ActionView  Action = "View"
	ActionClick Action = "Click"
)

// VisitorIDKey is the storage key holding the visitor identifier.
const VisitorIDKey = "DXFORCE_VISITOR_ID"

// AssignmentKey returns the storage key holding the persisted variant for
// a test.
func AssignmentKey(testID string) string {
	return "AB_TEST_ASSIGNMENT_" + testID
}

// LoggedKey returns the storage key marking an action as already reported
// for a test.
func LoggedKey(testID string, action Action) string {
	return "AB_LOGGED_" + testID + "_" + string(action)
}

// ParseVariant reports whether s is a valid variant value.
func ParseVariant(s string) (Variant, bool) {
	switch v := Variant(s); v {
	case VariantA, VariantB:
		return v, true
	}
	return "", false
}

// ParseMode reports whether s is a valid preview mode.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeAuto, ModeForceA, ModeForceB:
		return m, true
	}
	return "", false
}

// ParseAction reports whether s is a valid action type.
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionView, ActionClick:
		return a, true
	}
	return "", false
}

// Engine resolves visitor identity and variant assignments against a
// visitor-scoped store. Storage failures degrade to "absent": the engine
// never returns an error, it draws fresh values and logs the write that
// could not stick.
type Engine struct {
	store kv.Store
	log   *zap.Logger
	coin  func() Variant
}

// Option configures an Engine.
type Option func(*Engine)

// WithCoin replaces the fair-coin draw used for fresh assignments.
func WithCoin(coin func() Variant) Option {
	return func(e *Engine) { e.coin = coin }
}

func NewEngine(store kv.Store, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{store: store, log: log, coin: fairCoin}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func fairCoin() Variant {
	if rand.Intn(2) == 0 {
		return VariantA
	}
	return VariantB
}

// VisitorID returns the stored visitor identifier, creating and persisting
// a fresh UUID when none is readable.
func (e *Engine) VisitorID() string {
	if id, err := e.store.Get(VisitorIDKey); err == nil && id != "" {
		return id
	}

	id := uuid.NewString()
	if err := e.store.Set(VisitorIDKey, id); err != nil {
		e.log.Warn("could not persist visitor id", zap.Error(err))
	}
	return id
}

// Resolve picks the variant for testID under mode, in strict priority
// order: Force A, Force B, empty testID (always A), then Auto. Only Auto
// reads or writes storage; it returns the persisted assignment when one
// exists, otherwise it draws, persists the draw, and returns it.
func (e *Engine) Resolve(testID string, mode Mode) Variant {
	switch {
	case mode == ModeForceA:
		return VariantA
	case mode == ModeForceB:
		return VariantB
	case testID == "":
		return VariantA
	}

	key := AssignmentKey(testID)
	if stored, err := e.store.Get(key); err == nil {
		if v, ok := ParseVariant(stored); ok {
			return v
		}
		e.log.Warn("ignoring invalid stored assignment",
			zap.String("test", testID),
			zap.String("value", stored))
	}

	v := e.coin()
	if err := e.store.Set(key, string(v)); err != nil {
		e.log.Warn("could not persist assignment",
			zap.String("test", testID),
			zap.Error(err))
	}
	return v
}
