package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/court-leaderboard/internal/assets"
)

// AssetHandler streams a stored blob. Keys are immutable, so responses may
// be cached forever.
func AssetHandler(store assets.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		obj, err := store.Get(r.Context(), key)
		if err != nil {
			writeError(w, err)
			return
		}
		defer obj.Body.Close()

		h := w.Header()
		if obj.ContentType != "" {
			h.Set("Content-Type", obj.ContentType)
		} else {
			h.Set("Content-Type", "application/octet-stream")
		}
		if obj.ContentLength >= 0 {
			h.Set("Content-Length", strconv.FormatInt(obj.ContentLength, 10))
		}
		if obj.ETag != "" {
			h.Set("ETag", obj.ETag)
		}
		h.Set("Cache-Control", "public, max-age=31536000, immutable")
		h.Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, obj.Body); err != nil {
			log.Error("Failed to stream asset", "key", key, "error", err)
		}
	}
}
