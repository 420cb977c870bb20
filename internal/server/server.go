// Package server is the local web dashboard: a JSON API over the task
// store plus an embedded single-page UI.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/taskslip/taskslip/store"
)

// Server hosts the dashboard API.
type Server struct {
	store store.TaskStore
	log   *logrus.Logger
	echo  *echo.Echo
	addr  string
}

func New(st store.TaskStore, log *logrus.Logger, host string, port int) *Server {
	if log == nil {
		log = logrus.New()
	}
	s := &Server{
		store: st,
		log:   log,
		addr:  fmt.Sprintf("%s:%d", host, port),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	s.register(e)
	s.echo = e
	return s
}

func (s *Server) register(e *echo.Echo) {
	e.GET("/", s.index)
	e.GET("/healthz", s.healthz)
	e.GET("/api/tasks", s.listTasks)
	e.POST("/api/tasks", s.createTask)
	e.GET("/api/tasks/search", s.searchTasks)
	e.PATCH("/api/tasks/:id/status", s.updateStatus)
	e.DELETE("/api/tasks/:id", s.deleteTask)
	e.GET("/api/stats", s.stats)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.log.WithField("addr", s.addr).Info("dashboard listening")
	if err := s.echo.Start(s.addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
