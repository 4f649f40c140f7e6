package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"degviz/internal/config"
)

//go:embed templates/* static/* help.md
var embeddedFiles embed.FS

// App is the UI application: chi serves the page and static assets, the
// gin API is mounted under /api.
type App struct {
	router    *chi.Mux
	api       *API
	templates *template.Template
	helpHTML  template.HTML
}

// NewApp creates the UI application
func NewApp(cfg *config.Config) (*App, error) {
	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	helpMD, err := embeddedFiles.ReadFile("help.md")
	if err != nil {
		return nil, fmt.Errorf("failed to read help text: %w", err)
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	helpHTML := template.HTML(markdown.ToHTML(helpMD, p, nil))

	app := &App{
		router:    chi.NewRouter(),
		api:       NewAPI(cfg),
		templates: templates,
		helpHTML:  helpHTML,
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Mount("/api", a.api.Engine())
}

// Router returns the root handler for the HTTP server.
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	id, genes, loaded := a.api.Dataset()
	data := map[string]interface{}{
		"Help":      a.helpHTML,
		"Loaded":    loaded,
		"DatasetID": id,
		"Genes":     genes,
	}
	if err := a.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
