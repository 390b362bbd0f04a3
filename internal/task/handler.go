package task

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-quest-go/internal/task/entity"
	"github.com/ovaphlow/pitchfork/service-quest-go/pkg/utilities"
)

// Handler exposes HTTP endpoints for task assignment.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type TaskView struct {
	TaskID    int64  `json:"task_id"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Pontuacao int    `json:"pontuacao"`
}

type HistoryView struct {
	TaskID    int64  `json:"task_id"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Status    string `json:"status"`
	Pontuacao int    `json:"pontuacao"`
}

type TasksResponse struct {
	Message string     `json:"message,omitempty"`
	Tasks   []TaskView `json:"tasks"`
}

type PendingResponse struct {
	Task TaskView `json:"task"`
}

type HistoryResponse struct {
	History []HistoryView `json:"history"`
}

func taskView(t entity.Task) TaskView {
	return TaskView{TaskID: t.ID, Nome: t.Name, Descricao: t.Description, Pontuacao: t.Points}
}

func taskViews(ts []entity.Task) []TaskView {
	out := make([]TaskView, 0, len(ts))
	for _, t := range ts {
		out = append(out, taskView(t))
	}
	return out
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

// pathIDs parses userId and taskId, writing 400 on failure.
func pathIDs(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, err := pathID(r, "userId")
	if err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "invalid user id")
		return 0, 0, false
	}
	taskID, err := pathID(r, "taskId")
	if err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "invalid task id")
		return 0, 0, false
	}
	return userID, taskID, true
}

// writeError maps service errors to status codes; anything unknown is a 500.
func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		utilities.WriteMessage(w, http.StatusNotFound, "user not found")
	case errors.Is(err, ErrTaskNotFound):
		utilities.WriteMessage(w, http.StatusNotFound, "task not found")
	case errors.Is(err, ErrAssignmentNotFound):
		utilities.WriteMessage(w, http.StatusNotFound, "pending task not found or already completed")
	case errors.Is(err, ErrNoPendingTask):
		utilities.WriteMessage(w, http.StatusNotFound, "no pending task found for this user")
	case errors.Is(err, ErrInsufficientTasks):
		h.logger.Warnw(op+" failed", "err", err)
		utilities.WriteMessage(w, http.StatusServiceUnavailable, "not enough tasks in catalog")
	default:
		h.logger.Warnw(op+" failed", "err", err)
		utilities.WriteMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) RandomTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.RandomTasks(r.Context())
	if err != nil {
		h.writeError(w, "random tasks", err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, TasksResponse{Tasks: taskViews(tasks)})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}
	entries, err := h.svc.History(r.Context(), userID)
	if err != nil {
		h.writeError(w, "task history", err)
		return
	}
	out := make([]HistoryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryView{
			TaskID:    e.TaskID,
			Nome:      e.Name,
			Descricao: e.Description,
			Status:    string(e.Status),
			Pontuacao: e.Points,
		})
	}
	utilities.WriteJSON(w, http.StatusOK, HistoryResponse{History: out})
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := pathIDs(w, r)
	if !ok {
		return
	}
	tasks, err := h.svc.CompleteTask(r.Context(), userID, taskID)
	if err != nil {
		h.writeError(w, "complete task", err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, TasksResponse{
		Message: "task completed successfully",
		Tasks:   taskViews(tasks),
	})
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := pathIDs(w, r)
	if !ok {
		return
	}
	a, err := h.svc.AssignTask(r.Context(), userID, taskID)
	if err != nil {
		h.writeError(w, "assign task", err)
		return
	}
	utilities.WriteMessage(w, http.StatusCreated, fmt.Sprintf("Task %q assigned to user %q", a.TaskName, a.UserName))
}

func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}
	t, err := h.svc.PendingTask(r.Context(), userID)
	if err != nil {
		h.writeError(w, "pending task", err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, PendingResponse{Task: taskView(*t)})
}
