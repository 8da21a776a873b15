package tasks

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type createTaskRequest struct {
	Text string `json:"text"`
}

type setCompletedRequest struct {
	Completed bool `json:"completed"`
}

type errResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Deleted *int64 `json:"deleted,omitempty"`
}

func RegisterRoutes(r chi.Router, repo Repository) {
	r.Get("/tasks", listTasks(repo))
	r.Post("/tasks", createTask(repo))
	r.Put("/tasks/{id}", setCompleted(repo))
	r.Delete("/tasks/{id}", deleteTask(repo))
	r.Delete("/tasks", clearTasks(repo))
}

func listTasks(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		list, err := repo.List()
		if err != nil {
			writeError(w, err)
			return
		}
		if list == nil {
			list = []Task{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func createTask(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req createTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errResponse{Error: "Invalid JSON"})
			return
		}

		t, err := repo.Create(req.Text)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func setCompleted(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, ok := taskID(w, r)
		if !ok {
			return
		}

		var req setCompletedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errResponse{Error: "Invalid JSON"})
			return
		}

		if err := repo.SetCompleted(id, req.Completed); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	}
}

func deleteTask(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, ok := taskID(w, r)
		if !ok {
			return
		}

		if err := repo.Delete(id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	}
}

func clearTasks(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		n, err := repo.Clear()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, successResponse{Success: true, Deleted: &n})
	}
}

// taskID parses the {id} route param. A non-numeric id cannot match any
// row, so it reports not-found rather than a validation failure.
func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errResponse{Error: ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTextRequired):
		writeJSON(w, http.StatusBadRequest, errResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
