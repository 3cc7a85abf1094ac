package driver

import (
	"encoding/json"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPIHTTPHandler serves the API description as JSON.
type OpenAPIHTTPHandler struct {
	body []byte
}

// NewOpenAPIHTTPHandler renders doc once and serves the result on every request.
func NewOpenAPIHTTPHandler(doc *openapi3.T) (*OpenAPIHTTPHandler, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return &OpenAPIHTTPHandler{body: body}, nil
}

// ServeHTTP handles GET /openapi.json
func (h *OpenAPIHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.body)
}
