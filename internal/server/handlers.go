package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskslip/taskslip/models"
	"github.com/taskslip/taskslip/store"
)

func (s *Server) healthz(c echo.Context) error {
	if _, err := s.store.Stats(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
	}
	return c.NoContent(http.StatusOK)
}

func (s *Server) index(c echo.Context) error {
	return c.HTML(http.StatusOK, dashboardHTML)
}

func (s *Server) listTasks(c echo.Context) error {
	limit := 100
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid limit"})
		}
		limit = n
	}
	tasks, err := s.store.Recent(c.Request().Context(), limit)
	if err != nil {
		s.log.WithError(err).Error("list tasks")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list tasks"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"tasks": toTaskListJSON(tasks),
		"count": len(tasks),
	})
}

func (s *Server) createTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "task name is required"})
	}

	priority := models.TaskPriority(req.Priority)
	if req.Priority == "" && req.PriorityLevel != 0 {
		priority = models.PriorityFromLevel(req.PriorityLevel)
	}
	task := models.NewTask(req.Name, priority, req.DueDate)
	task.Source = req.Source
	if err := task.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	created, err := s.store.Add(c.Request().Context(), task)
	if err != nil {
		s.log.WithError(err).Error("create task")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create task"})
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"task":    toTaskJSON(created),
	})
}

func (s *Server) searchTasks(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "search query is required"})
	}
	tasks, err := s.store.FindSimilar(c.Request().Context(), query, 10)
	if err != nil {
		s.log.WithError(err).Error("search tasks")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "search failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"tasks": toTaskListJSON(tasks),
		"query": query,
	})
}

func (s *Server) updateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid task id"})
	}
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	status, err := models.StatusFromLabel(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if err := s.store.SetStatus(c.Request().Context(), id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
		}
		s.log.WithError(err).Error("update status")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to update status"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (s *Server) deleteTask(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid task id"})
	}
	if err := s.store.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
		}
		s.log.WithError(err).Error("delete task")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to delete task"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (s *Server) stats(c echo.Context) error {
	stats, err := s.store.Stats(c.Request().Context())
	if err != nil {
		s.log.WithError(err).Error("stats")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to compute stats"})
	}
	return c.JSON(http.StatusOK, stats)
}
