// Package server exposes the concierge over HTTP.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"concierge/internal/service"
)

const version = "1.0.0"

type askRequest struct {
	Query         string `json:"query"`
	BookingNumber string `json:"booking_number"`
}

type askResponse struct {
	Status   string `json:"status"`
	Response string `json:"response"`
	Query    string `json:"query"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Server wires the concierge service into an Echo instance.
type Server struct {
	echo      *echo.Echo
	concierge *service.Concierge
}

func New(concierge *service.Concierge) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{echo: e, concierge: concierge}
	e.POST("/ask", s.handleAsk)
	e.GET("/health", s.handleHealth)
	e.GET("/hello", s.handleHello)
	return s
}

// Start blocks serving HTTP on the given address.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Echo exposes the underlying Echo instance. Used by tests.
func (s *Server) Echo() *echo.Echo { return s.echo }

// handleAsk answers one guest question. Validation and booking-lookup
// failures map to 400 with a human-readable message; anything unexpected is
// logged server-side and surfaced only as a generic 500.
func (s *Server) handleAsk(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Status:  "error",
			Message: "Request body must be valid JSON",
		})
	}

	answer, finalQuery, err := s.concierge.Ask(c.Request().Context(), req.Query, req.BookingNumber)
	if err != nil {
		var bookingErr *service.BookingError
		switch {
		case errors.Is(err, service.ErrEmptyQuery):
			return c.JSON(http.StatusBadRequest, errorResponse{
				Status:  "error",
				Message: "Query cannot be empty",
			})
		case errors.As(err, &bookingErr):
			slog.Warn("booking lookup failed", "booking", req.BookingNumber)
			return c.JSON(http.StatusBadRequest, errorResponse{
				Status:  "error",
				Message: bookingErr.Message,
			})
		default:
			slog.Error("failed to process query", "error", err)
			return c.JSON(http.StatusInternalServerError, errorResponse{
				Status:  "error",
				Message: "An internal error occurred",
			})
		}
	}

	return c.JSON(http.StatusOK, askResponse{
		Status:   "success",
		Response: answer,
		Query:    finalQuery,
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "API is running",
	})
}

func (s *Server) handleHello(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Hello from the Guest Guide API!",
		"version": version,
		"endpoints": map[string]string{
			"health": "/health [GET]",
			"hello":  "/hello [GET]",
			"ask":    "/ask [POST]",
		},
	})
}

// Addr formats a listen address from host and port.
func Addr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
