package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/netutil"

	"alfredweb/src/internal/domain"
)

type Api struct {
	ctx   *domain.Context
	files http.Handler

	mu     sync.Mutex
	server *http.Server
	closed bool
}

func Create(ctx *domain.Context) *Api {
	// "/web/index.html" -> "/index.html" under RootDir.
	files := http.StripPrefix(strings.TrimSuffix(domain.WebPrefix, "/"),
		http.FileServer(http.Dir(ctx.Config.RootDir)))

	return &Api{
		ctx:   ctx,
		files: files,
	}
}

// Handler dispatches on method and path prefix. Nothing else is routed.
func (a *Api) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			a.handleWeb(w, r)
		case http.MethodPost:
			a.handleApi(w, r)
		default:
			http.Error(w, fmt.Sprintf("Unsupported method ('%s')", r.Method), http.StatusNotImplemented)
		}
	})
}

func (a *Api) handleWeb(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, domain.WebPrefix) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	a.files.ServeHTTP(w, r)
}

// handleApi stands in for the Swift backend. The body is never read and the
// reply does not depend on the sub-path.
func (a *Api) handleApi(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, domain.ApiPrefix) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte(domain.BackendUnavailableBody))
}

// Listen binds the configured address. Only one connection is accepted at a
// time; the next Accept waits until the current connection is closed.
func (a *Api) Listen() (net.Listener, error) {
	addr := a.ctx.Config.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	return netutil.LimitListener(ln, 1), nil
}

// Serve blocks until Close is called or the listener fails.
func (a *Api) Serve(ln net.Listener) error {
	server := &http.Server{
		Handler:     a.Handler(),
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 5 * time.Second,
	}
	// One request per connection, or a browser would hold the only slot.
	server.SetKeepAlivesEnabled(false)

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		ln.Close()
		return nil
	}
	if a.server != nil {
		a.mu.Unlock()
		return errors.New("api: already serving")
	}
	a.server = server
	a.mu.Unlock()

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops accepting and drops in-flight connections without draining.
func (a *Api) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	if a.server == nil {
		return nil
	}
	return a.server.Close()
}
