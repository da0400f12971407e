// Package api exposes the journal over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type requestValidator struct {
	v *validator.Validate
}

// newRequestValidator reports field errors under the json names clients send.
func newRequestValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &requestValidator{v: v}
}

func (r *requestValidator) Validate(i any) error {
	return r.v.Struct(i)
}

// Server is the journal HTTP server.
type Server struct {
	e    *echo.Echo
	addr string
	log  *zap.Logger
}

// ServerConfig holds the listener settings.
type ServerConfig struct {
	Addr      string
	BodyLimit string // echo size notation, e.g. "30M"; empty disables the limit
}

// NewServer builds the echo instance and registers every route.
func NewServer(cfg ServerConfig, routes *JournalRoutes, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(ZapLogger(log.Named("http")))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	a := e.Group("/api")
	a.GET("/entries", routes.ListDates)

	j := a.Group("/journal")
	j.GET("", routes.GetJournal)
	j.PUT("/date", routes.SelectDate)
	j.POST("/date/shift", routes.ShiftDate)
	j.PUT("/content", routes.SetContent)

	j.POST("/todos", routes.AddTodo)
	j.POST("/todos/:id/toggle", routes.ToggleTodo)
	j.DELETE("/todos/:id", routes.DeleteTodo)

	j.POST("/prompts", routes.GeneratePrompts)
	j.POST("/prompts/apply", routes.ApplyPrompt)

	j.POST("/stickers", routes.GenerateSticker)
	j.DELETE("/stickers/:id", routes.RemoveSticker)

	j.POST("/drag/down", routes.DragDown)
	j.POST("/drag/move", routes.DragMove)
	j.POST("/drag/up", routes.DragUp)
	j.POST("/drag/leave", routes.DragLeave)

	return &Server{e: e, addr: cfg.Addr, log: log}
}

// Handler returns the underlying http.Handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start blocks until the server stops. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.log.Info("Listening", zap.String("addr", s.addr))
	if err := s.e.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
