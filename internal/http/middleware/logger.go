package middleware

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"exampleapi/internal/logging"
)

// ErrorLocalKey holds an internal error message that handlers chose not to
// expose to the client. Logger adds it to the request log line.
const ErrorLocalKey = "error"

// Logger is a middleware that logs each HTTP request in JSON format to stdout.
func Logger(loc *time.Location) fiber.Handler {
	return LoggerWithWriter(os.Stdout, loc)
}

// LoggerWithWriter writes one JSON object per request to w with the fields:
// - ts (RFC3339Nano in loc)
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
// - trace_id (when the request is traced)
// - error (when a handler recorded one under ErrorLocalKey)
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	log := logging.New(w, loc)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// An error returned past this point is answered by the app's ErrorHandler,
		// so take the status from it rather than from the untouched response.
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		entry := map[string]any{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
			entry["trace_id"] = sc.TraceID().String()
		}
		if msg, ok := c.Locals(ErrorLocalKey).(string); ok && msg != "" {
			entry["error"] = msg
		} else if err != nil && status >= fiber.StatusInternalServerError {
			entry["error"] = err.Error()
		}
		if status >= fiber.StatusInternalServerError {
			entry["level"] = "error"
		}
		log.Log(entry)

		return err
	}
}
