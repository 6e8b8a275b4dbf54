package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tally/internal/api"
	"tally/internal/errkit"
	"tally/internal/logging"
	"tally/internal/version"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:  "ok",
		Version: version.String(),
	})
}

func (s *Server) handlePeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := s.service.Periods(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if periods == nil {
		periods = []string{}
	}
	s.writeJSON(w, http.StatusOK, api.PeriodsResponse{Periods: periods})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	// The filter body is optional; GET requests without one list everything.
	var req api.ListRequest
	if err := decodeOptional(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	elements, err := s.service.List(r.Context(), chi.URLParam(r, "period"), req.Filters)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.ElementsResponse{Elements: elements})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req api.AddRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	id, err := s.service.Add(r.Context(), chi.URLParam(r, "period"), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, api.IDResponse{ID: id})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	period, table, id, err := elementParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	element, err := s.service.Get(r.Context(), period, table, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.ElementResponse{Element: element})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	period, table, id, err := elementParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req api.UpdateRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.service.Update(r.Context(), period, table, id, req); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.IDResponse{ID: id})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	period, table, id, err := elementParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.service.Remove(r.Context(), period, table, id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.IDResponse{ID: id})
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	var req api.CopyRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	id, err := s.service.Copy(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, api.IDResponse{ID: id})
}

func elementParams(r *http.Request) (period, table string, id int64, err error) {
	period = chi.URLParam(r, "period")
	table = chi.URLParam(r, "table")
	raw := chi.URLParam(r, "eid")
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", "", 0, errkit.Wrap(errkit.ErrValidation, "server", "parse request", "invalid element id "+raw, nil)
	}
	return period, table, id, nil
}

func decode(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return errkit.Wrap(errkit.ErrValidation, "server", "parse request", "malformed request body", err)
	}
	return nil
}

// decodeOptional tolerates an absent body but rejects a malformed one.
func decodeOptional(r *http.Request, out any) error {
	err := json.NewDecoder(r.Body).Decode(out)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errkit.Wrap(errkit.ErrValidation, "server", "parse request", "malformed request body", err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, errkit.HTTPStatus(err), api.ErrorResponse{Error: errkit.Detail(err)})
}
