// Package api serves the record store over HTTP for a shop tablet on the
// local network.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/powerman/structlog"

	"github.com/mesh-intelligence/darzi/internal/backup"
	"github.com/mesh-intelligence/darzi/internal/session"
	"github.com/mesh-intelligence/darzi/pkg/types"
)

var log = structlog.New(structlog.KeyUnit, "api")

// maxBodyBytes bounds request bodies, including uploaded backups.
const maxBodyBytes = 32 << 20

// Server routes HTTP requests to a Store.
type Server struct {
	store   types.Store
	flags   *session.Flags
	version string
}

// NewServer returns a Server over store. flags may be nil, in which case
// login does not record a session.
func NewServer(store types.Store, flags *session.Flags, version string) *Server {
	return &Server{store: store, flags: flags, version: version}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, maxBodyBytes)
	})

	r.Route("/records/{kind}", func(r chi.Router) {
		r.Get("/", s.listRecords)
		r.Post("/", s.createRecord)
		r.Get("/count", s.countRecords)
		r.Get("/{id}", s.getRecord)
		r.Put("/{id}", s.updateRecord)
		r.Delete("/{id}", s.deleteRecord)
	})
	r.Post("/login", s.login)
	r.Post("/password", s.changePassword)
	r.Get("/backup", s.downloadBackup)
	r.Post("/restore", s.restore)
	return r
}

// statusFor maps store errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidKind),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrMalformedBackup),
		errors.Is(err, types.ErrEmptyCredential):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrCredentialMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case types.IsTransient(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Warn("request failed", "method", r.Method, "path", r.URL.Path,
			"requestID", middleware.GetReqID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("write response", "err", err)
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(types.ErrInvalidData, err)
	}
	return nil
}

// exporter is shared by the backup handler; the store is its Source.
func (s *Server) exporter() *backup.Exporter {
	return backup.NewExporter(s.store, s.version)
}
