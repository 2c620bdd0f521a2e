package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gerobakjogja/site-functions/pkg/api"
	"github.com/gerobakjogja/site-functions/pkg/maintenance"
)

// Server is the long-running HTTP deployment of the site functions.
type Server struct {
	router *gin.Engine
	port   int
	server *http.Server
}

// NewServer serves the API, metrics and the single-page application in
// staticDir. Site pages go through the maintenance gate; /api does not.
func NewServer(port int, staticDir string, routes api.Routes, gate *maintenance.Gate) *Server {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.Register(router)

	site := spaHandler(staticDir)
	router.NoRoute(api.NoRoute(func(c *gin.Context) {
		if maintenance.Intercept(gate, c) {
			return
		}
		site(c)
	}))

	return &Server{
		router: router,
		port:   port,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port and blocks until the server stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully stops a started server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// spaHandler serves files from dir and falls back to index.html so client
// side routes resolve.
func spaHandler(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+strings.TrimPrefix(c.Request.URL.Path, "/"))))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		if _, err := os.Stat(index); err != nil {
			c.String(http.StatusNotFound, "not found")
			return
		}
		c.File(index)
	}
}
