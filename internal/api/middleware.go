package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context keys handlers use to annotate the request log line.
const (
	ctxJournalDate = "journal_date"
	ctxGeneration  = "generation"
)

func setJournalDate(c echo.Context, date string) {
	if date != "" {
		c.Set(ctxJournalDate, date)
	}
}

// setGeneration records what a generation request asked for: "prompts",
// "sticker" or "washi".
func setGeneration(c echo.Context, kind string) {
	c.Set(ctxGeneration, kind)
}

// ZapLogger logs every request with its status and latency, plus the journal
// date and generation kind when a handler recorded them. Generation requests
// are logged at info level; the editing traffic of a typing user at debug.
func ZapLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
			}
			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}
			if id != "" {
				fields = append(fields, zap.String("request_id", id))
			}

			err := next(c)

			fields = append(fields,
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
			)
			if date, ok := c.Get(ctxJournalDate).(string); ok {
				fields = append(fields, zap.String(ctxJournalDate, date))
			}
			generation, generating := c.Get(ctxGeneration).(string)
			if generating {
				fields = append(fields, zap.String(ctxGeneration, generation))
			}

			if err != nil {
				log.Error("Handler error", append(fields, zap.Error(err))...)
				return err
			}

			switch n := res.Status; {
			case n >= http.StatusInternalServerError:
				log.Error("Server error", fields...)
			case n >= http.StatusBadRequest:
				log.Warn("Client error", fields...)
			case generating:
				log.Info("Generation", fields...)
			default:
				log.Debug("Request", fields...)
			}
			return nil
		}
	}
}
