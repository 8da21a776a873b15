package logs

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type appendLogRequest struct {
	Date  string          `json:"date"`
	Tasks json.RawMessage `json:"tasks"`
}

type errResponse struct {
	Error string `json:"error"`
}

type appendLogResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

func RegisterRoutes(r chi.Router, repo Repository) {
	r.Get("/logs", listLogs(repo))
	r.Post("/logs", appendLog(repo))
}

func listLogs(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		list, err := repo.List()
		if err != nil {
			writeError(w, err)
			return
		}
		if list == nil {
			list = []Entry{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func appendLog(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req appendLogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errResponse{Error: "Invalid JSON"})
			return
		}
		// an explicit JSON null decodes into the non-nil bytes "null",
		// so a plain nil check would let it through
		if req.Date == "" || len(req.Tasks) == 0 || bytes.Equal(req.Tasks, []byte("null")) {
			writeJSON(w, http.StatusBadRequest, errResponse{Error: ErrMissingFields.Error()})
			return
		}

		id, err := repo.Append(req.Date, req.Tasks)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, appendLogResponse{Success: true, ID: id})
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrMissingFields) {
		writeJSON(w, http.StatusBadRequest, errResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
