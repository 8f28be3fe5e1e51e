package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-auth-api/internal/middleware"
	"github.com/BuzzLyutic/task-auth-api/internal/model"
	"github.com/BuzzLyutic/task-auth-api/internal/service"
	"github.com/BuzzLyutic/task-auth-api/pkg/respond"
)

type TaskService interface {
	GetAll(ctx context.Context) ([]model.Task, error)
	GetByID(ctx context.Context, id int64) (model.Task, error)
	Create(ctx context.Context, req model.TaskRequest, idempKey string) (model.Task, error)
	Update(ctx context.Context, id int64, req model.TaskRequest) (model.Task, error)
	ToggleCompletion(ctx context.Context, id int64) (model.Task, error)
	Delete(ctx context.Context, id int64) error
}

type TaskHandler struct {
	service   TaskService
	validator *RequestValidator
	logger    *zap.Logger
}

func NewTaskHandler(srv TaskService, v *RequestValidator, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service:   srv,
		validator: v,
		logger:    logger,
	}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetAll(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

// ListByStatus returns the tasks whose status matches the path segment, ignoring case.
func (h *TaskHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")

	tasks, err := h.service.GetAll(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	filtered := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.EqualFold(t.Status, status) {
			filtered = append(filtered, t)
		}
	}
	respond.JSON(w, r, http.StatusOK, filtered)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.TaskRequest
	if err := h.validator.Decode(r, &req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	idempKey := r.Header.Get("Idempotency-Key")
	task, err := h.service.Create(r.Context(), req, idempKey)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.Created(w, r, fmt.Sprintf("/api/tasks/%d", task.ID), task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	var req model.TaskRequest
	if err := h.validator.Decode(r, &req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, err := h.service.ToggleCompletion(r.Context(), id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.NoContent(w)
}

func (h *TaskHandler) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, r, http.StatusBadRequest, "invalid task id")
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		respond.Error(w, r, http.StatusNotFound, "task not found")
	default:
		fields := []zap.Field{zap.Error(err), zap.String("path", r.URL.Path)}
		if user, ok := middleware.UserFromContext(r.Context()); ok {
			fields = append(fields, zap.String("user", user.Username))
		}
		h.logger.Error("internal error", fields...)
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
