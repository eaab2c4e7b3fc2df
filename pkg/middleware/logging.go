package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/workspace-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
)

const slowRequest = 500 * time.Millisecond

// LoggingMiddleware registra início e fim de cada requisição HTTP
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, _ := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)

			lrw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			requestLog := log.ForContext(ctx).WithFields(log.Fields{
				"method":       r.Method,
				"path":         r.URL.Path,
				"query":        r.URL.RawQuery,
				"remote_addr":  r.RemoteAddr,
				"user_agent":   r.UserAgent(),
				"workspace_id": r.Header.Get(WorkspaceHeader),
			})
			requestLog.Info("→ Requisição iniciada")

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(start)
			done := requestLog.WithFields(log.Fields{
				"status_code": lrw.statusCode,
				"duration_ms": elapsed.Milliseconds(),
			})
			msg := fmt.Sprintf("%s Completada em %s", statusSymbol(lrw.statusCode), humanDuration(elapsed))

			switch {
			case lrw.statusCode >= http.StatusInternalServerError:
				done.Error(msg)
			case lrw.statusCode >= http.StatusBadRequest:
				done.Warn(msg)
			default:
				done.Info(msg)
			}

			if elapsed > slowRequest {
				done.Warnf("⚠ Requisição lenta: %s %s", r.Method, r.URL.Path)
			}
		})
	}
}

func statusSymbol(code int) string {
	if code >= http.StatusBadRequest {
		return "✗"
	}
	return "✓"
}

func humanDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// statusRecorder guarda o status escrito pelo handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.statusCode = code
	s.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware converte panics em 500 no formato de erro da API.
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]

				logger := log.ForContext(r.Context()).WithFields(log.Fields{
					"error":  rec,
					"method": r.Method,
					"path":   r.URL.Path,
				})
				logger.Error("❌ PANIC na aplicação")

				if log.IsDevelopment() {
					fmt.Fprintf(os.Stderr, "\n=== STACK TRACE ===\n%s\n", stack)
				} else {
					logger.WithField("stack_trace", string(stack)).Error("Stack trace do erro")
				}

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
