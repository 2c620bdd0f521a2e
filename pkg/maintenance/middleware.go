package maintenance

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultMessage = "Kami sedang melakukan pemeliharaan situs. Silakan kembali beberapa saat lagi."

var pageTemplate = template.Must(template.New("maintenance").Parse(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="robots" content="noindex">
<title>Sedang Dalam Pemeliharaan - Gerobak Jogja</title>
</head>
<body>
<main>
<h1>Sedang Dalam Pemeliharaan</h1>
<p>{{.}}</p>
</main>
</body>
</html>
`))

// Intercept writes the maintenance notice and returns true when the gate is
// active and path is not exempt. Requests arriving while the gate is loading
// wait for it to resolve.
func Intercept(g *Gate, c *gin.Context) bool {
	if Exempt(c.Request.URL.Path) {
		return false
	}

	state, message := g.Wait(c.Request.Context())
	if state != StateActive {
		return false
	}

	if message == "" {
		message = defaultMessage
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, message); err != nil {
		log.Printf("Error rendering maintenance page: %v", err)
	}
	c.Header("Retry-After", "3600")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusServiceUnavailable, "text/html; charset=utf-8", buf.Bytes())
	return true
}

// Middleware gates every route of the group it is attached to.
func Middleware(g *Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Intercept(g, c) {
			c.Abort()
			return
		}
		c.Next()
	}
}
