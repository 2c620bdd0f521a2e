package api

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 1 << 20

// Gin adapts a Handler to a gin route.
func Gin(h Handler) gin.HandlerFunc {
	h = WithCORS(h)
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to read request body"})
			return
		}

		query := make(map[string]string)
		for k, v := range c.Request.URL.Query() {
			if len(v) > 0 {
				query[k] = v[0]
			}
		}

		resp := h(c.Request.Context(), Request{
			Method:  c.Request.Method,
			Path:    c.Request.URL.Path,
			Query:   query,
			Headers: c.Request.Header,
			Body:    body,
		})

		for k, v := range resp.Headers {
			c.Header(k, v)
		}
		contentType := resp.Headers["Content-Type"]
		if len(resp.Body) == 0 {
			c.Status(resp.StatusCode)
			return
		}
		c.Data(resp.StatusCode, contentType, resp.Body)
	}
}

// Routes wires the API endpoints into a gin router group.
type Routes struct {
	Sitemaps     *Sitemaps
	ImageDeleter *ImageDeleter
}

// Register mounts the /api routes on router.
func (r Routes) Register(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:             []string{"X-Generated-At", "X-Cache-Buster"},
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}))

	// Each handler checks the method itself so wrong methods get a 405
	api := router.Group("/api")
	{
		api.Any("/sitemap", Gin(r.Sitemaps.Get))
		api.Any("/regenerate-sitemap", Gin(r.Sitemaps.Regenerate))
		api.Any("/cloudinary-delete", Gin(r.ImageDeleter.Delete))
	}
}

// NoRoute answers unknown /api/* paths with the JSON 404 and hands every
// other path to fallback.
func NoRoute(fallback gin.HandlerFunc) gin.HandlerFunc {
	notFound := Gin(NotFound)
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			notFound(c)
			return
		}
		fallback(c)
	}
}
