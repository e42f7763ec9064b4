// Package logger wraps log/slog: JSON output in production, text elsewhere.
package logger

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
)

var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

// Init replaces the package logger and the slog default.
func Init(production bool) {
	if production {
		L = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	} else {
		L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	slog.SetDefault(L)
}

// FromCtx returns L tagged with the request id set by fiber's requestid middleware.
func FromCtx(c *fiber.Ctx) *slog.Logger {
	if id, ok := c.Locals("requestid").(string); ok && id != "" {
		return L.With("request_id", id)
	}
	return L
}

func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
