package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

func kindParam(r *http.Request) (types.Kind, error) {
	return types.ParseKind(chi.URLParam(r, "kind"))
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, types.ErrInvalidID
	}
	return id, nil
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	recs, err := s.store.Fetch(kind, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) countRecords(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	n, err := s.store.Count(kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := s.store.Get(kind, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) createRecord(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec := kind.New()
	if err := decodeBody(r, rec); err != nil {
		writeError(w, r, err)
		return
	}
	id, err := s.store.Insert(rec)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.store.Get(kind, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/records/"+kind.String()+"/"+strconv.FormatInt(id, 10))
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateRecord(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec := kind.New()
	if err := decodeBody(r, rec); err != nil {
		writeError(w, r, err)
		return
	}
	n, err := s.store.Update(id, rec)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if n == 0 {
		writeError(w, r, types.ErrNotFound)
		return
	}
	updated, err := s.store.Get(kind, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	removed, err := s.store.Delete(kind, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !removed {
		writeError(w, r, types.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
