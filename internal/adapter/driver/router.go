package driver

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// RouterOptions collects the handlers and settings served by NewRouter.
type RouterOptions struct {
	Playlist *PlaylistHTTPHandler
	Health   *HealthHTTPHandler
	OpenAPI  *OpenAPIHTTPHandler
	Spec     *openapi3.T
	Metrics  http.Handler
	SPA      http.Handler // nil disables the UI

	AllowedOrigins []string
	MaxBodyBytes   int64
	Logger         *slog.Logger
}

// NewRouter builds the root handler: API under /api/ behind request
// validation, metrics at /metrics and the SPA for everything else.
func NewRouter(opts RouterOptions) http.Handler {
	apiMux := http.NewServeMux()
	apiMux.Handle("/parse", opts.Playlist)
	apiMux.Handle("/export", opts.Playlist)
	apiMux.Handle("/health", opts.Health)
	apiMux.Handle("/openapi.json", opts.OpenAPI)

	api := Chain(http.StripPrefix("/api", apiMux),
		BodyLimit(opts.MaxBodyBytes),
		RequestValidator(opts.Spec),
	)

	rootMux := http.NewServeMux()
	rootMux.Handle("/api/", api)
	if opts.Metrics != nil {
		rootMux.Handle("/metrics", opts.Metrics)
	}
	if opts.SPA != nil {
		rootMux.Handle("/", opts.SPA)
	}

	return Chain(rootMux,
		CORS(opts.AllowedOrigins),
		RequestID(opts.Logger),
	)
}
