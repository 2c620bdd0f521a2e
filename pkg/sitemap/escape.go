package sitemap

import (
	"encoding/xml"
	"strings"
)

// Escape returns s as XML character data. The five special characters become
// references in a single pass, and characters XML cannot carry (control
// codes, invalid UTF-8) become U+FFFD.
func Escape(s string) string {
	var b strings.Builder
	// strings.Builder never fails a write
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
