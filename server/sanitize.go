package server

import "github.com/microcosm-cc/bluemonday"

// newSanitizer returns a body filter that keeps user-generated markup plus
// the classes and data attributes the message renderer emits.
func newSanitizer() func([]byte) []byte {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("data-key", "data-language").OnElements("div", "pre")
	p.AllowElements("button")
	p.AllowAttrs("type", "data-action").OnElements("button")
	return p.SanitizeBytes
}
