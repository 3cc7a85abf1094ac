package driver

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
)

// SPADevProxy forwards requests to a Vite development server,
// enabling hot module replacement during development.
type SPADevProxy struct {
	proxy *httputil.ReverseProxy
}

// NewSPADevProxy creates a reverse proxy to target (e.g. "http://localhost:5173").
// Unreachable upstreams are answered with 502.
func NewSPADevProxy(target string, logger *slog.Logger) (*SPADevProxy, error) {
	targetURL, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid dev server url: %w", err)
	}
	if targetURL.Scheme != "http" && targetURL.Scheme != "https" || targetURL.Host == "" {
		return nil, fmt.Errorf("invalid dev server url %q: expected http(s)://host[:port]", target)
	}

	proxy := httputil.NewSingleHostReverseProxy(targetURL)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.WarnContext(r.Context(), "dev server unavailable", "target", target, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "dev server unavailable")
	}

	return &SPADevProxy{proxy: proxy}, nil
}

// ServeHTTP forwards the request to the Vite development server.
func (h *SPADevProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.proxy.ServeHTTP(w, r)
}
