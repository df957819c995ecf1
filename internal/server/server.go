// Package server provides a small preview server over a pipeline output
// directory: an index of generated artifacts, raw file views, and a
// WebSocket channel that tells open pages to reload when outputs change.
package server

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/conneroisu/scaff/internal/config"
	"github.com/conneroisu/scaff/internal/errors"
	"github.com/conneroisu/scaff/internal/logging"
	"github.com/conneroisu/scaff/internal/watcher"
)

// Server serves a pipeline output directory with live reload.
type Server struct {
	cfg     config.ServerConfig
	dir     string
	hub     *Hub
	watcher *watcher.Watcher
	httpSrv *http.Server
	log     logging.Logger
}

// New creates a preview server over dir. The watcher is optional; without
// one the server still works but never pushes reloads.
func New(cfg config.ServerConfig, dir string, w *watcher.Watcher, log logging.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}

	return &Server{
		cfg:     cfg,
		dir:     dir,
		hub:     NewHub(log),
		watcher: w,
		log:     log.WithComponent("server"),
	}
}

// Addr returns the host:port the server binds to.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
}

// URL returns the browsable root URL.
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

// Start runs the server until ctx is cancelled. When a watcher is attached
// it watches the output directory and broadcasts a reload on every change
// batch.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/view/", s.handleView)
	mux.Handle("/ws", s.hub)

	s.httpSrv = &http.Server{
		Addr:              s.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watcher != nil {
		s.watcher.AddHandler(func([]watcher.Event) {
			s.hub.Broadcast(context.Background(), []byte("reload"))
		})
		if err := s.watcher.AddPath(s.dir); err != nil {
			s.log.Warn(ctx, err, "cannot watch output directory", "dir", s.dir)
		}
		s.watcher.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "preview server listening", "url", s.URL())
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.hub.Close()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return errors.NewInternalError(errors.ErrCodeServerStart, "preview server failed", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	files := s.listOutputs()

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>scaff outputs</title></head><body>\n")
	b.WriteString("<h1>Generated outputs</h1>\n")
	if len(files) == 0 {
		b.WriteString("<p>No outputs yet. Run <code>scaff pipeline</code> first.</p>\n")
	} else {
		b.WriteString("<ul>\n")
		for _, name := range files {
			escaped := html.EscapeString(name)
			fmt.Fprintf(&b, "<li><a href=\"/view/%s\">%s</a></li>\n", escaped, escaped)
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString(reloadScript)
	b.WriteString("</body></html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/view/")
	clean := path.Clean("/" + name)
	if clean == "/" || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}

	full := filepath.Join(s.dir, filepath.FromSlash(clean))
	data, err := os.ReadFile(full)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(data)
}

// listOutputs returns the output files relative to the output directory, in
// sorted order, skipping subdirectory entries themselves.
func (s *Server) listOutputs() []string {
	var files []string
	_ = filepath.Walk(s.dir, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.dir, p)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(files)

	return files
}

const reloadScript = `<script>
(function () {
  var ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = function () { location.reload(); };
})();
</script>
`
