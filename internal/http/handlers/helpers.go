package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/court-leaderboard/internal/assets"
	"github.com/mauv0809/court-leaderboard/internal/club"
	"github.com/mauv0809/court-leaderboard/internal/ranking"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// maxBodyBytes bounds JSON request bodies; avatars arrive inline as data URLs.
const maxBodyBytes = 10 << 20

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		log.Warn("Bad request", "message", msg, "error", err)
	} else {
		log.Warn("Bad request", "message", msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		log.Warn("Not found", "message", msg, "error", err)
	} else {
		log.Warn("Not found", "message", msg)
	}
	http.Error(w, msg, http.StatusNotFound)
}

// InternalServerError replies with the error text.
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error("Internal server error", "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// writeError maps service errors to HTTP responses.
func writeError(w http.ResponseWriter, err error) {
	var verr *ranking.ValidationError
	switch {
	case errors.As(err, &verr):
		BadRequest(w, verr.Message, nil)
	case errors.Is(err, club.ErrNotFound):
		NotFound(w, "Player not found", err)
	case errors.Is(err, assets.ErrNotFound), errors.Is(err, assets.ErrInvalidKey):
		NotFound(w, "Not Found", err)
	default:
		InternalServerError(w, err)
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		log.FromContext(r.Context()).Debug("Failed to decode request body", "error", err)
		return &ranking.ValidationError{Message: "Invalid JSON body"}
	}
	return nil
}

// Optional distinguishes a field that is absent from one that is null.
// Set is true whenever the key was present in the JSON object.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// parsePage reads the optional page and limit query parameters. Page
// defaults to 1. A missing limit puts every row on page 1.
func parsePage(r *http.Request) (club.Page, error) {
	page := club.Page{Number: 1}
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, &ranking.ValidationError{Message: "Invalid page"}
		}
		page.Number = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, &ranking.ValidationError{Message: "Invalid limit"}
		}
		page.Size = n
	}
	return page, nil
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &ranking.ValidationError{Message: fmt.Sprintf("Invalid player id %q", raw)}
	}
	return id, nil
}
