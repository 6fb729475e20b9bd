package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/skillsnap/portfolio/model"
	"github.com/skillsnap/portfolio/service"
	"github.com/skillsnap/portfolio/store"
)

// entityIDMismatch rejects updates whose body id contradicts the URL.
var entityIDMismatch = &model.ValidationError{Field: "id", Reason: "does not match the URL"}

// registerEntity installs the five REST routes for one entity kind.
func registerEntity[T any](s *Server, base string, svc *service.Entity[T]) {
	s.mux.HandleFunc("GET "+base, func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, list)
	})

	s.mux.HandleFunc("GET "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			s.writeError(w, r, store.ErrNotFound)
			return
		}
		v, err := svc.Get(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, v)
	})

	s.mux.HandleFunc("POST "+base, func(w http.ResponseWriter, r *http.Request) {
		var v T
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			s.writeError(w, r, badBody(err))
			return
		}
		created, err := svc.Create(r.Context(), v)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, created)
	})

	s.mux.HandleFunc("PUT "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			s.writeError(w, r, store.ErrNotFound)
			return
		}
		var v T
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			s.writeError(w, r, badBody(err))
			return
		}
		if bodyID, ok := any(v).(interface{ EntityID() int }); ok {
			if bodyID.EntityID() != 0 && bodyID.EntityID() != id {
				s.writeError(w, r, entityIDMismatch)
				return
			}
		}
		if _, err := svc.Update(r.Context(), id, v); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	s.mux.HandleFunc("DELETE "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			s.writeError(w, r, store.ErrNotFound)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func badBody(err error) error {
	return &model.ValidationError{Field: "body", Reason: "is not valid JSON: " + err.Error()}
}
