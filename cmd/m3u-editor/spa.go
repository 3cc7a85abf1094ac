package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/alorle/m3u-editor/internal/adapter/driver"
)

// newSPAHandler returns the UI handler: a proxy to the Vite dev server when
// devURL is set, the built frontend in dir otherwise, or nil when neither is
// configured.
func newSPAHandler(dir, devURL string, logger *slog.Logger) (http.Handler, error) {
	if devURL != "" {
		proxy, err := driver.NewSPADevProxy(devURL, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("proxying ui to dev server", "target", devURL)
		return proxy, nil
	}

	if dir == "" {
		logger.Info("ui disabled, serving api only")
		return nil, nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("ui directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("ui directory: %s is not a directory", dir)
	}

	logger.Info("serving ui", "dir", dir)
	return driver.NewSPAHandler(os.DirFS(dir)), nil
}
