// Package demoorigin is a local origin server for exercising the snag client
// by hand: it serves a stylesheet, redirect chains of any length, a
// compressed variant and an endpoint that never answers.
package demoorigin

import (
	"compress/gzip"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/antonvyukov/snag/internal/logging"
)

const stylesheet = `/* demo stylesheet served by snag demoorigin */
body {
  margin: 0;
  font-family: sans-serif;
  color: #24292e;
}
a { color: #0366d6; text-decoration: none; }
`

// Server is the demo origin.
type Server struct {
	cfg    Config
	router chi.Router
	logger logging.Logger
}

// NewServer creates a demo origin instance.
func NewServer(cfg Config, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewStderrLogger("demoorigin", logging.LevelInfo)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Get("/", s.indexHandler)
	r.Get("/styles/site.css", s.stylesheetHandler)
	r.Get("/chain/{hops}", s.chainHandler)
	r.Get("/gzip", s.gzipHandler)
	r.Get("/hang", s.hangHandler)
	s.router = r

	return s
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the origin until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("demo origin listening", logging.Field{Key: "addr", Value: addr})
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "snag demo origin")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  /styles/site.css   stylesheet")
	fmt.Fprintln(w, "  /chain/{n}         n-hop redirect chain ending at the stylesheet")
	fmt.Fprintln(w, "  /gzip              gzip-encoded stylesheet")
	fmt.Fprintln(w, "  /hang              never answers (demonstrates the no-timeout default)")
}

func (s *Server) stylesheetHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	fmt.Fprint(w, stylesheet)
}

// chainHandler serves /chain/{hops}: a request takes exactly hops redirects
// before the stylesheet is served, so /chain/10 sits right at the default
// redirect bound and /chain/11 exceeds it.
func (s *Server) chainHandler(w http.ResponseWriter, r *http.Request) {
	hops, err := strconv.Atoi(chi.URLParam(r, "hops"))
	if err != nil || hops < 0 {
		http.Error(w, "hops must be a non-negative integer", http.StatusBadRequest)
		return
	}

	if hops == 0 {
		s.stylesheetHandler(w, r)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/chain/%d", hops-1), http.StatusFound)
}

func (s *Server) gzipHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Content-Encoding", "gzip")
	gz := gzip.NewWriter(w)
	defer gz.Close()
	fmt.Fprint(gz, stylesheet)
}

// hangHandler holds the response open until the client gives up. With the
// default no-timeout transport that is forever.
func (s *Server) hangHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("client parked on /hang", logging.Field{Key: "remote", Value: r.RemoteAddr})
	<-r.Context().Done()
}
