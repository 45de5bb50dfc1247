package middleware

import (
	"net/http"
	"time"

	"ntlango-api/pkg/observability"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Logger creates a logging middleware
func Logger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("HTTP Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", middleware.GetReqID(r.Context())),
				zap.String("remoteAddr", r.RemoteAddr),
				zap.String("userAgent", r.UserAgent()),
			)
		})
	}
}

// Metrics creates a middleware that records per-request CloudWatch metrics
func Metrics(metrics *observability.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			metrics.RecordRequest(r.Context(), r.URL.Path, r.Method, ww.Status(), time.Since(start))
		})
	}
}

// Tracing creates a middleware that wraps each request in a trace segment
func Tracing(tracer *observability.Tracer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, seg := tracer.StartSegment(r.Context(), r.Method+" "+r.URL.Path)
			defer seg.Close(nil)

			tracer.AddAnnotation(ctx, "method", r.Method)
			tracer.AddAnnotation(ctx, "path", r.URL.Path)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
