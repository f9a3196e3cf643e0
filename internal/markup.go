package internal

import (
	"regexp"
)

// The host renderer injects per-node reconciliation attributes into markup.
// They are derived from tree position, not props, so a cached copy would
// replay stale values. They are stripped before a payload is stored.
var (
	reactIDAttr       = regexp.MustCompile(` data-reactid="[^"]*"`)
	reactChecksumAttr = regexp.MustCompile(` data-react-checksum="[^"]*"`)
)

// ScrubMarkup removes renderer bookkeeping attributes from markup before it
// is stored as a cache payload.
func ScrubMarkup(markup string) string {
	markup = reactIDAttr.ReplaceAllString(markup, "")
	markup = reactChecksumAttr.ReplaceAllString(markup, "")
	return markup
}
