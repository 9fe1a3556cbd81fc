package tasks_application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	models "github.com/ERRORIK404/task_calculator/pkg/db_models"
	locerr "github.com/ERRORIK404/task_calculator/pkg/local_errors"
	structs "github.com/ERRORIK404/task_calculator/pkg/structs"
)

// TaskStore is what the handlers need from the persistence layer.
// *database.DB implements it.
type TaskStore interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, title string) (*models.Task, error)
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type Server struct {
	store TaskStore
	log   *slog.Logger
}

func NewServer(store TaskStore, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{store: store, log: log}
}

// Routes builds the HTTP handler with the task endpoints and middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(s.log))
	r.Use(middleware.Recoverer)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.listTasks)
		r.Post("/", s.createTask)
		r.Get("/{id}", s.getTask)
		r.Put("/{id}", s.updateTask)
		r.Delete("/{id}", s.deleteTask)
	})
	return r
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasks(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req structs.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, structs.ErrorResponse{Error: "invalid JSON body"})
		return
	}

	task, err := s.store.CreateTask(r.Context(), req.Title)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.InfoContext(r.Context(), "task created", "id", task.ID, "request_id", RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusCreated, structs.MessageResponse{Message: structs.MsgTaskCreated})
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req structs.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, structs.ErrorResponse{Error: "invalid JSON body"})
		return
	}

	if _, err := s.store.UpdateTask(r.Context(), id, req.Patch()); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, structs.MessageResponse{Message: structs.MsgTaskUpdated})
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.DeleteTask(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, structs.MessageResponse{Message: structs.MsgTaskDeleted})
}

// fail maps domain errors to status codes. Anything unknown is a 500 and the
// cause is only logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, locerr.ErrTaskNotFound):
		writeJSON(w, http.StatusNotFound, structs.ErrorResponse{Error: locerr.ErrTaskNotFound.Error()})
	case errors.Is(err, locerr.ErrTitleRequired):
		writeJSON(w, http.StatusBadRequest, structs.ErrorResponse{Error: locerr.ErrTitleRequired.Error()})
	case errors.Is(err, locerr.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, structs.ErrorResponse{Error: locerr.ErrInvalidID.Error()})
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "err", err)
		writeJSON(w, http.StatusInternalServerError, structs.ErrorResponse{Error: "internal error"})
	}
}

func taskID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, locerr.ErrInvalidID
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
