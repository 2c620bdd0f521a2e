package sitemap_test

import (
	"html"
	"unicode/utf8"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gerobakjogja/site-functions/pkg/sitemap"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a & b", "a &amp; b"},
		{"<tag>", "&lt;tag&gt;"},
		{`"quoted"`, "&#34;quoted&#34;"},
		{"it's", "it&#39;s"},
		{"&amp;", "&amp;amp;"},
		{`<>&'"`, "&lt;&gt;&amp;&#39;&#34;"},
		{"Gerobak\x0bKayu", "Gerobak\uFFFDKayu"},
		{"Gerobak \xff Kayu", "Gerobak \uFFFD Kayu"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sitemap.Escape(tt.in))
			assert.True(t, utf8.ValidString(sitemap.Escape(tt.in)))
		})
	}
}

func TestEscapeOfUnescapeIsStable(t *testing.T) {
	for _, s := range []string{"a &amp; b", "&lt;x&gt;", "&quot;&apos;", "Gerobak & Co"} {
		escaped := sitemap.Escape(s)
		assert.Equal(t, escaped, sitemap.Escape(html.UnescapeString(escaped)))
	}
}
