// Package web provides the Tehillim 119 web UI server.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/FocuswithJustin/Tehillim119/core/psalm"
	"github.com/FocuswithJustin/Tehillim119/internal/logging"
	"github.com/FocuswithJustin/Tehillim119/internal/sefaria"
	"github.com/FocuswithJustin/Tehillim119/internal/server"
	"github.com/FocuswithJustin/Tehillim119/internal/versecache"

	// Register the document renderers.
	_ "github.com/FocuswithJustin/Tehillim119/internal/render/all"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Templates is the parsed template set.
var Templates *template.Template

// Config holds server configuration.
type Config struct {
	Port     int
	FontPath string // Unicode TTF for PDF rendering, empty = scan defaults
	CacheDir string // verse cache directory, empty = user cache dir
	Workers  int    // batch render parallelism, 0 = one per CPU
}

// ServerConfig is the active server configuration.
var ServerConfig Config

// sharedPsalm is the psalm text every request renders from. It is loaded
// once at startup; a server that cannot load it does not start.
var sharedPsalm *psalm.Psalm

// Start loads the psalm text and starts the web server with the given
// configuration.
func Start(ctx context.Context, cfg Config) error {
	ServerConfig = cfg

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = versecache.DefaultCacheDir()
	}

	loader := versecache.NewLoader(sefaria.NewClient(), cacheDir)
	p, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load psalm text: %w", err)
	}
	sharedPsalm = p

	Templates, err = template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	mux := setupRoutes()

	logging.ServerStartup("http", ServerConfig.Port,
		"cache_dir", server.AbsPath(cacheDir))

	handler := logging.CombinedMiddleware(server.TimingMiddleware(server.SecurityHeadersMiddleware(mux)))

	addr := fmt.Sprintf(":%d", ServerConfig.Port)
	return http.ListenAndServe(addr, handler)
}

// setupRoutes configures all HTTP routes.
func setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/generate", handleGenerate)
	mux.HandleFunc("/batch", handleBatch)
	mux.HandleFunc("/healthz", handleHealthz)
	mux.HandleFunc("/static/", handleStatic)

	return mux
}
