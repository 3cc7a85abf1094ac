package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSpec(t *testing.T) {
	doc, err := LoadSpec(context.Background())
	require.NoError(t, err)

	assert.Empty(t, doc.Servers, "servers would enable host validation in the request validator")

	operations := map[string]string{
		"/api/parse":        "POST",
		"/api/export":       "POST",
		"/api/health":       "GET",
		"/api/openapi.json": "GET",
	}
	for path, method := range operations {
		item := doc.Paths.Find(path)
		require.NotNil(t, item, "missing path %s", path)
		assert.NotNil(t, item.GetOperation(method), "missing %s %s", method, path)
	}

	parse := doc.Paths.Find("/api/parse").Post
	for _, ct := range []string{"multipart/form-data", "text/plain", "audio/x-mpegurl", "application/x-mpegurl"} {
		assert.NotNil(t, parse.RequestBody.Value.Content.Get(ct), "parse should accept %s", ct)
	}

	exportReq := doc.Components.Schemas["ExportRequest"]
	require.NotNil(t, exportReq)
	assert.ElementsMatch(t, []string{"indices", "original_content"}, exportReq.Value.Required)
}
