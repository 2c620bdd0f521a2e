package sitemap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gerobakjogja/site-functions/models"
)

const (
	sitemapNS  = "http://www.sitemaps.org/schemas/sitemap/0.9"
	imageNS    = "http://www.google.com/schemas/sitemap-image/1.1"
	dateLayout = "2006-01-02"
)

// ErrBaseURLRequired is returned by Render when the renderer has no base URL.
var ErrBaseURLRequired = errors.New("base URL is required")

// Renderer turns site content into a sitemap document. Now is injectable so
// the "today" stamp on static pages can be frozen in tests.
type Renderer struct {
	BaseURL string
	Now     func() time.Time
}

// NewRenderer returns a renderer for baseURL using the wall clock.
func NewRenderer(baseURL string) *Renderer {
	return &Renderer{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Now:     time.Now,
	}
}

type urlEntry struct {
	XMLName    xml.Name    `xml:"url"`
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod"`
	ChangeFreq string      `xml:"changefreq"`
	Priority   string      `xml:"priority"`
	Image      *imageEntry `xml:"image:image,omitempty"`
}

type imageEntry struct {
	Loc   string `xml:"image:loc"`
	Title string `xml:"image:title"`
}

// Render produces the sitemap XML: static routes in declaration order, then
// products and blog posts in the order given. Text is escaped by
// encoding/xml, which also replaces characters XML cannot carry.
func (r *Renderer) Render(routes []StaticRoute, products []models.Product, posts []models.BlogPost) ([]byte, error) {
	base := strings.TrimRight(r.BaseURL, "/")
	if base == "" {
		return nil, ErrBaseURLRequired
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}

	today := r.today()
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, `<urlset xmlns="%s" xmlns:image="%s">`+"\n", sitemapNS, imageNS)

	for _, rt := range routes {
		if err := writeEntry(&buf, "", urlEntry{
			Loc:        base + rt.Path,
			LastMod:    today,
			ChangeFreq: rt.ChangeFreq,
			Priority:   formatPriority(rt.Priority),
		}); err != nil {
			return nil, err
		}
	}

	for _, p := range products {
		segment := p.PathSegment()
		if segment == "" {
			log.Printf("Skipping product %q without slug or id", p.Name)
			continue
		}
		if err := writeEntry(&buf, "Product", urlEntry{
			Loc:        base + "/produk/" + url.PathEscape(segment),
			LastMod:    lastModified(p.UpdatedAt, p.CreatedAt, today),
			ChangeFreq: productChangeFreq,
			Priority:   formatPriority(productPriority),
			Image:      image(p.PrimaryImage(), p.Name),
		}); err != nil {
			return nil, err
		}
	}

	for _, b := range posts {
		segment := b.PathSegment()
		if segment == "" {
			log.Printf("Skipping blog post %q without slug or id", b.Title)
			continue
		}
		var loc string
		if b.Image != nil {
			loc = *b.Image
		}
		if err := writeEntry(&buf, "Blog", urlEntry{
			Loc:        base + "/blog/" + url.PathEscape(segment),
			LastMod:    lastModified(b.UpdatedAt, b.CreatedAt, today),
			ChangeFreq: blogPostChangeFreq,
			Priority:   formatPriority(blogPostPriority),
			Image:      image(loc, b.Title),
		}); err != nil {
			return nil, err
		}
	}

	buf.WriteString("</urlset>\n")
	return buf.Bytes(), nil
}

func (r *Renderer) today() string {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return now().UTC().Format(dateLayout)
}

// writeEntry appends one <url> element, preceded by a section comment when
// comment is set.
func writeEntry(buf *bytes.Buffer, comment string, e urlEntry) error {
	if comment != "" {
		fmt.Fprintf(buf, "  <!-- %s -->\n", comment)
	}
	out, err := xml.MarshalIndent(e, "  ", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sitemap entry %s: %w", e.Loc, err)
	}
	buf.Write(out)
	buf.WriteByte('\n')
	return nil
}

func image(loc, title string) *imageEntry {
	if loc == "" {
		return nil
	}
	return &imageEntry{Loc: loc, Title: title}
}

func formatPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}

// lastModified picks the update time, then the creation time, then today.
func lastModified(updatedAt, createdAt *time.Time, today string) string {
	switch {
	case updatedAt != nil && !updatedAt.IsZero():
		return updatedAt.UTC().Format(dateLayout)
	case createdAt != nil && !createdAt.IsZero():
		return createdAt.UTC().Format(dateLayout)
	default:
		return today
	}
}
