package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds request bodies, including imported legacy containers.
const maxBodyBytes = 1 << 20

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

// storeFor resolves the caller's store, writing a 500 on failure.
func (s *Server) storeFor(w http.ResponseWriter, r *http.Request) (Store, bool) {
	store, err := s.stores.StoreFor(r.Context(), userInfoFromContext(r))
	if err != nil {
		s.log.Error("resolving store", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return store, true
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	store, ok := s.storeFor(w, r)
	if !ok {
		return
	}
	p, err := store.User(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "onboarding not completed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	store, ok := s.storeFor(w, r)
	if !ok {
		return
	}
	settings, err := store.Settings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleBodyMetrics(w http.ResponseWriter, r *http.Request) {
	store, ok := s.storeFor(w, r)
	if !ok {
		return
	}
	metrics, err := store.BodyMetrics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	store, ok := s.storeFor(w, r)
	if !ok {
		return
	}
	badges, err := store.Badges(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

func (s *Server) handleGetLegacySlot(w http.ResponseWriter, r *http.Request) {
	if s.slots == nil {
		writeError(w, http.StatusNotFound, "legacy storage disabled")
		return
	}
	key := slotKey(userInfoFromContext(r), chi.URLParam(r, "key"))
	raw, ok, err := s.slots.Get(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "slot not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// handlePutLegacySlot imports a state container written by an older client.
// The bytes are stored untouched; the committer repairs malformed ones.
func (s *Server) handlePutLegacySlot(w http.ResponseWriter, r *http.Request) {
	if s.slots == nil {
		writeError(w, http.StatusNotFound, "legacy storage disabled")
		return
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}
	key := slotKey(userInfoFromContext(r), chi.URLParam(r, "key"))
	if err := s.slots.Put(r.Context(), key, raw); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteLegacySlot drops an imported container. Deleting a missing slot
// succeeds.
func (s *Server) handleDeleteLegacySlot(w http.ResponseWriter, r *http.Request) {
	if s.slots == nil {
		writeError(w, http.StatusNotFound, "legacy storage disabled")
		return
	}
	key := slotKey(userInfoFromContext(r), chi.URLParam(r, "key"))
	if err := s.slots.Delete(r.Context(), key); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
