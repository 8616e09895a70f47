package api

import (
	"io"
	"net/http"
	"time"

	"github.com/mesh-intelligence/darzi/internal/backup"
	"github.com/mesh-intelligence/darzi/internal/session"
	"github.com/mesh-intelligence/darzi/pkg/types"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	SessionID string `json:"sessionId,omitempty"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ok, err := s.store.VerifyCredential(req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, types.ErrCredentialMismatch)
		return
	}

	var resp loginResponse
	if s.flags != nil {
		if resp.SessionID, err = session.Login(s.flags); err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type passwordRequest struct {
	Current string `json:"current"`
	New     string `json:"new"`
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.ChangeCredential(req.Current, req.New); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) downloadBackup(w http.ResponseWriter, r *http.Request) {
	doc, err := s.exporter().ExportAll()
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := backup.Marshal(doc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	taken, err := time.Parse(backup.TimeLayout, doc.BackupDate)
	if err != nil {
		taken = time.Now()
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.FileName(taken)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) restore(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := backup.NewImporter(s.store).RestoreBytes(data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
