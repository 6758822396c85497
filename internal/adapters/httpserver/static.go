package httpserver

import (
	"bytes"
	"errors"
	"net/http"

	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
)

type staticHandler struct {
	assets AssetSource
	log    ports.Logger
}

// ServeHTTP serves a bundle file with a content digest ETag.
// Conditional and range requests are answered by http.ServeContent.
func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assets.Get(r.URL.Path)
	if errors.Is(err, domain.ErrAssetNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		if h.log != nil {
			h.log.Error(err)
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", asset.ETag)
	w.Header().Set("Content-Type", asset.ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, asset.Name, asset.ModTime, bytes.NewReader(asset.Data))
}
