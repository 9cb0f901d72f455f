package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/conure-db/conure-btree/btree"
	"github.com/conure-db/conure-btree/db"
)

// Server exposes a DB over HTTP
type Server struct {
	db  *db.DB
	log *zap.Logger
}

func New(database *db.DB, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{db: database, log: logger}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/kv", s.handleKV)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/tree", s.handleTree)
	mux.HandleFunc("/check", s.handleCheck)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats, err := s.db.Stats()
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := map[string]int{
		"len":        stats.Len,
		"height":     stats.Height,
		"nodes":      stats.Nodes,
		"free_slots": stats.FreeSlots,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	// render into a buffer so a closed database still gets a status code
	var buf bytes.Buffer
	if err := s.db.Render(&buf, false); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := s.db.Check(); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleKV(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("missing key"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		val, err := s.db.Get(key)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(val)

	case http.MethodPut, http.MethodPost:
		value, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(err.Error()))
			return
		}
		// PUT replaces, POST only creates
		if r.Method == http.MethodPut {
			err = s.db.Put(key, value)
		} else {
			err = s.db.Insert(key, value)
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))

	case http.MethodDelete:
		deleted, err := s.db.Delete(key)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if !deleted {
			s.writeError(w, db.ErrKeyNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, db.ErrKeyNotFound):
		status = http.StatusNotFound
	case errors.Is(err, btree.ErrDuplicateKey):
		status = http.StatusConflict
	case errors.Is(err, db.ErrEmptyKey):
		status = http.StatusBadRequest
	case errors.Is(err, db.ErrClosed):
		status = http.StatusServiceUnavailable
	default:
		s.log.Error("request failed", zap.Error(err))
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(err.Error()))
}
