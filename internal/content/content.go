// Package content resolves authored banner content into display-ready
// values: reference parsing, asset and link URL construction, and the
// per-variant projection with its defaults.
package content

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// RefKind discriminates the shapes a content reference can take.
type RefKind int

const (
	RefAbsent RefKind = iota
	RefStructured
	RefRaw
)

// Ref is a parsed content reference. Structured refs carry the key from a
// contentKey or id field; raw refs keep the original string as the key.
type Ref struct {
	Kind RefKind
	Key  string
}

// ParseRef normalizes the shapes authors supply for a reference: a
// structured object, a JSON-encoded string of one, or a bare key string.
// The key comes from contentKey, else id, else the string itself. A string
// that fails to parse as a JSON object is kept whole as a raw key; empty,
// nil, and non-string non-object values are absent. ParseRef never fails.
func ParseRef(v any) Ref {
	switch ref := v.(type) {
	case nil:
		return Ref{Kind: RefAbsent}
	case map[string]any:
		return refFromFields(ref)
	case string:
		if ref == "" {
			return Ref{Kind: RefAbsent}
		}
		var fields map[string]any
		if err := json.Unmarshal([]byte(ref), &fields); err == nil {
			return refFromFields(fields)
		}
		return Ref{Kind: RefRaw, Key: ref}
	default:
		return Ref{Kind: RefAbsent}
	}
}

func refFromFields(fields map[string]any) Ref {
	if key, ok := fields["contentKey"].(string); ok && key != "" {
		return Ref{Kind: RefStructured, Key: key}
	}
	if id, ok := fields["id"].(string); ok && id != "" {
		return Ref{Kind: RefStructured, Key: id}
	}
	return Ref{Kind: RefAbsent}
}

// assetRoute is the fixed delivery route asset keys resolve under.
const assetRoute = "/assets/"

// AssetURL builds the delivery URL for a parsed reference. Absent refs
// yield an empty URL.
func AssetURL(sitePrefix string, ref Ref) string {
	if ref.Kind == RefAbsent || ref.Key == "" {
		return ""
	}
	return strings.TrimRight(sitePrefix, "/") + assetRoute + ref.Key
}

var absoluteURL = regexp.MustCompile(`(?i)^(https?|mailto|tel):`)

// ResolveLinkURL turns an authored button URL into a navigable one: empty
// URLs become the "#" placeholder, absolute http/https/mailto/tel URLs
// pass through unchanged, anything else is joined to the site prefix with
// exactly one leading slash.
func ResolveLinkURL(sitePrefix, url string) string {
	if url == "" {
		return "#"
	}
	if absoluteURL.MatchString(url) {
		return url
	}
	return strings.TrimRight(sitePrefix, "/") + "/" + strings.TrimLeft(url, "/")
}

// VariantContent is the authored bundle for one variant. Image accepts the
// reference shapes ParseRef understands.
type VariantContent struct {
	Image       any    `json:"image,omitempty"`
	Position    string `json:"position,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ButtonLabel string `json:"buttonLabel,omitempty"`
	ButtonURL   string `json:"buttonUrl,omitempty"`
}

// Display defaults applied when the authored bundle leaves them unset.
const (
	DefaultPosition = "center"
	DefaultHeight   = 400
)

// Data is the display-ready projection of one variant.
type Data struct {
	ImageURL    string `json:"imageUrl"`
	ImageAlt    string `json:"imageAlt"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ButtonLabel string `json:"buttonLabel"`
	ButtonURL   string `json:"buttonUrl"`
	Style       string `json:"style"`
}

// Resolve projects an authored bundle into display values, applying the
// position and height defaults and resolving both URLs against the site
// prefix. The image alt text is the variant title.
func Resolve(sitePrefix string, vc VariantContent, height int) Data {
	position := vc.Position
	if position == "" {
		position = DefaultPosition
	}
	if height <= 0 {
		height = DefaultHeight
	}

	return Data{
		ImageURL:    AssetURL(sitePrefix, ParseRef(vc.Image)),
		ImageAlt:    vc.Title,
		Title:       vc.Title,
		Description: vc.Description,
		ButtonLabel: vc.ButtonLabel,
		ButtonURL:   ResolveLinkURL(sitePrefix, vc.ButtonURL),
		Style:       fmt.Sprintf("height:%dpx;object-position:%s;", height, position),
	}
}
