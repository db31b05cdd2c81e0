package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/crossplatform/resourcesvc/pkg/types"
)

// Service is the dispatcher surface the gateway depends on.
type Service interface {
	Get(id int32) (types.Resource, error)
	Save(r *types.Resource) error
	GetList() iter.Seq[types.Resource]
	Ping() bool
}

// DefaultMaxBodyBytes caps PUT bodies when New is given no limit.
const DefaultMaxBodyBytes = 4 << 20

// MaxBodyBytes returns the PUT body cap for a payload limit. JSON escaping
// can grow each payload byte to six ("\u00XX"), plus room for the envelope.
// With no payload limit the cap is fallback, normally the gRPC message cap.
func MaxBodyBytes(maxPayloadBytes, fallback int) int64 {
	if maxPayloadBytes <= 0 {
		return int64(fallback)
	}
	return int64(maxPayloadBytes)*6 + 1024
}

// Handler serves the /api/v1/* endpoints on top of a Service.
type Handler struct {
	svc     Service
	maxBody int64
	router  chi.Router
}

// New creates a Handler wired to svc and registers all routes. PUT bodies
// longer than maxBody bytes are rejected with 413.
func New(svc Service, maxBody int64) http.Handler {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	h := &Handler{svc: svc, maxBody: maxBody, router: chi.NewRouter()}

	h.router.Use(chimw.RequestID)
	h.router.Use(logRequests)
	h.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonErr(w, http.StatusNotFound, "not found", "")
	})
	h.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed", "")
	})

	h.router.Get("/api/v1/health", h.health)
	h.router.Get("/api/v1/resources", h.listResources)
	h.router.Get("/api/v1/resources/{id}", h.getResource)
	h.router.Put("/api/v1/resources/{id}", h.saveResource)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, HealthResponse{OK: h.svc.Ping()})
}

func (h *Handler) listResources(w http.ResponseWriter, r *http.Request) {
	out := slices.Collect(h.svc.GetList())
	if out == nil {
		out = []types.Resource{}
	}
	jsonResp(w, http.StatusOK, out)
}

func (h *Handler) getResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, types.NewInvalidOperation(types.OpGet, err))
		return
	}
	res, err := h.svc.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResp(w, http.StatusOK, res)
}

func (h *Handler) saveResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, types.NewInvalidOperation(types.OpSave, err))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		writeError(w, types.NewInvalidOperation(types.OpSave,
			fmt.Errorf("%w: read body: %w", types.ErrInvalidArgument, err)))
		return
	}
	// encoding/json would replace invalid bytes with U+FFFD.
	if !utf8.Valid(body) {
		writeError(w, types.NewInvalidOperation(types.OpSave,
			fmt.Errorf("%w: body is not valid UTF-8", types.ErrInvalidArgument)))
		return
	}

	var req SaveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, types.NewInvalidOperation(types.OpSave,
			fmt.Errorf("%w: decode body: %v", types.ErrInvalidArgument, err)))
		return
	}
	if req.ID != nil && *req.ID != id {
		writeError(w, types.NewInvalidOperation(types.OpSave,
			fmt.Errorf("%w: body id %d does not match path id %d", types.ErrInvalidArgument, *req.ID, id)))
		return
	}

	if err := h.svc.Save(&types.Resource{ID: id, Payload: req.Payload}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- helpers ----------------------------------------------------------------

// BuildSnapshot collects resources into the payload pushed by the stream.
func BuildSnapshot(resources iter.Seq[types.Resource], revision uint64) SnapshotResponse {
	list := slices.Collect(resources)
	if list == nil {
		list = []types.Resource{}
	}
	return SnapshotResponse{
		Resources:   list,
		Revision:    revision,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func pathID(r *http.Request) (int32, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q is not a 32-bit integer", types.ErrInvalidArgument, raw)
	}
	return int32(id), nil
}

func writeError(w http.ResponseWriter, err error) {
	var inv *types.InvalidOperation
	if !errors.As(err, &inv) {
		jsonErr(w, http.StatusInternalServerError, err.Error(), "")
		return
	}
	var tooLarge *http.MaxBytesError
	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &tooLarge):
		code = http.StatusRequestEntityTooLarge
	case errors.Is(err, types.ErrInvalidArgument):
		code = http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		code = http.StatusNotFound
	}
	jsonErr(w, code, inv.Error(), inv.Kind())
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg, kind string) {
	jsonResp(w, code, errorResponse{Error: msg, Kind: kind})
}

// logRequests logs one debug line per request with the chi request id.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("api: request served",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
