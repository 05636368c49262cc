// Package web serves the local browser UI: login and signup, the deck
// dashboard, deck editing, and the study session. It is a presentation
// layer only; every piece of flashcard state lives behind the remote
// API, and the pages are rendered server-side with HTMX fragment swaps.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"sync"

	"github.com/hiten-shah0106/flashify/internal/api"
	"github.com/hiten-shah0106/flashify/internal/auth"
	"github.com/hiten-shah0106/flashify/internal/study"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Server holds the dependencies for the local UI server.
type Server struct {
	auth      *auth.Manager
	api       *api.Client
	router    *http.ServeMux
	templates *template.Template

	// One study session at a time. Handlers run concurrently, so the
	// live session is only touched under mu.
	mu          sync.Mutex
	session     *study.Session
	sessionDeck string
	deckName    string
}

// NewServer creates and configures a new server.
func NewServer(authMgr *auth.Manager, client *api.Client) *Server {
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	s := &Server{
		auth:      authMgr,
		api:       client,
		router:    http.NewServeMux(),
		templates: tpl,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create sub-filesystem for static assets: %v", err)
	}
	s.router.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.HandleFunc("/", s.handleIndex())
	s.router.HandleFunc("/login", s.handleLogin())
	s.router.HandleFunc("/signup", s.handleSignup())
	s.router.HandleFunc("/logout", s.handleLogout())

	s.router.HandleFunc("/dashboard", s.protected(s.handleDashboard))
	s.router.HandleFunc("/decks", s.protected(s.handleCreateDeck))
	s.router.HandleFunc("/decks/", s.protected(s.handleDeck))
	s.router.HandleFunc("/cards", s.protected(s.handleCreateCard))
	s.router.HandleFunc("/cards/", s.protected(s.handleCard))

	// Exact study actions take precedence over the /study/ subtree.
	s.router.HandleFunc("/study/", s.protected(s.handleStartStudy))
	s.router.HandleFunc("/study/flip", s.protected(s.studyAction(func(sess *study.Session) { sess.Flip() })))
	s.router.HandleFunc("/study/next", s.protected(s.studyAction(func(sess *study.Session) { sess.Advance() })))
	s.router.HandleFunc("/study/prev", s.protected(s.studyAction(func(sess *study.Session) { sess.Retreat() })))
	s.router.HandleFunc("/study/end", s.protected(s.studyAction(func(sess *study.Session) { sess.End() })))
	s.router.HandleFunc("/study/grade", s.protected(s.handleGrade))
}

// protected redirects to the login page unless the auth manager holds a
// credential. Auth is initialized before the server starts, so status is
// never still unknown here.
func (s *Server) protected(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.auth.Authenticated() {
			s.redirect(w, r, "/login")
			return
		}
		next(w, r)
	}
}

// redirect sends the browser elsewhere, through the HX-Redirect header
// for HTMX-initiated requests so the full page navigates.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if s.auth.Authenticated() {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// render executes a template and logs instead of crashing when a write
// fails mid-response.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}
