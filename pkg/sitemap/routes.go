package sitemap

import "github.com/gerobakjogja/site-functions/models"

// StaticRoute is a fixed site page listed in every sitemap.
type StaticRoute struct {
	Path       string
	ChangeFreq string
	Priority   float64
}

// StaticRoutes are emitted first, in this order.
var StaticRoutes = []StaticRoute{
	{Path: "/", ChangeFreq: "daily", Priority: 1.0},
	{Path: "/produk", ChangeFreq: "daily", Priority: 0.9},
	{Path: "/blog", ChangeFreq: "weekly", Priority: 0.8},
	{Path: "/tentang-kami", ChangeFreq: "monthly", Priority: 0.7},
	{Path: "/galeri", ChangeFreq: "monthly", Priority: 0.6},
	{Path: "/kontak", ChangeFreq: "monthly", Priority: 0.6},
}

const (
	productChangeFreq  = "weekly"
	productPriority    = 0.8
	blogPostChangeFreq = "monthly"
	blogPostPriority   = 0.7
)

// URLCount is the number of <url> entries Render emits for the given
// content. Records without a path segment are skipped, as Render does.
func URLCount(routes []StaticRoute, products []models.Product, posts []models.BlogPost) int {
	n := len(routes)
	for _, p := range products {
		if p.PathSegment() != "" {
			n++
		}
	}
	for _, b := range posts {
		if b.PathSegment() != "" {
			n++
		}
	}
	return n
}
