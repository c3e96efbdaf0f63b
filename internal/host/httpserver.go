package host

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// mimeTypes maps file extensions to the Content-Type the file server
// responds with. Unlisted extensions serve as application/octet-stream.
var mimeTypes = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".txt":  "text/plain",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
}

// FileServer serves static files from a root directory on a background
// worker. One server runs at a time; Start while running restarts it on
// the new port and root.
type FileServer struct {
	mu     sync.Mutex
	server *http.Server
	log    *logrus.Logger
}

// NewFileServer returns a stopped file server logging through log.
// A nil logger falls back to the standard logrus logger.
func NewFileServer(log *logrus.Logger) *FileServer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FileServer{log: log}
}

// Start binds the listen socket and begins accepting on a background
// goroutine. It returns once the socket is bound, so a bad port fails
// synchronously.
func (s *FileServer) Start(port int, root string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		if err := s.stopLocked(); err != nil {
			return err
		}
	}

	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	server := &http.Server{
		Addr:    addr,
		Handler: s.handler(root),
	}
	s.server = server

	s.log.WithFields(logrus.Fields{
		"port": port,
		"root": root,
	}).Info("http server running")

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("http server terminated")
		}
	}()
	return nil
}

// Stop shuts the server down and joins the worker.
func (s *FileServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked()
}

func (s *FileServer) stopLocked() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.server = nil
	s.log.Info("http server stopped")
	return err
}

// Running reports whether the server is accepting.
func (s *FileServer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.server != nil
}

// handler serves files beneath root. "/" maps to /index.html; paths
// escaping the root respond 404.
func (s *FileServer) handler(root string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(urlPath, "/")))
		rel, err := filepath.Rel(root, filePath)
		if err != nil || strings.HasPrefix(rel, "..") {
			s.notFound(w, r)
			return
		}

		content, err := os.ReadFile(filePath)
		if err != nil {
			s.notFound(w, r)
			return
		}

		mime := mimeTypes[strings.ToLower(filepath.Ext(filePath))]
		if mime == "" {
			mime = "application/octet-stream"
		}
		w.Header().Set("Content-Type", mime)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		_, _ = w.Write(content)

		s.log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": http.StatusOK,
		}).Debug("request served")
	})
}

func (s *FileServer) notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("<html><body><h1>404 Not Found</h1></body></html>"))

	s.log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": http.StatusNotFound,
	}).Debug("request served")
}
