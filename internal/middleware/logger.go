package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/trsv-dev/simple-media-server/internal/logger"
)

// Структура для хранения данных ответа.
type responseData struct {
	status int
	size   int
}

// LoggingResponseWriter Структура, которой можно подменить оригинальный http.ResponseWriter
// для получения ответа и записи ответа в лог.
type LoggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (l *LoggingResponseWriter) Write(b []byte) (int, error) {
	// Write без WriteHeader означает 200
	if l.responseData.status == 0 {
		l.responseData.status = http.StatusOK
	}

	size, err := l.ResponseWriter.Write(b)
	l.responseData.size += size

	return size, err
}

func (l *LoggingResponseWriter) WriteHeader(statusCode int) {
	l.ResponseWriter.WriteHeader(statusCode)
	l.responseData.status = statusCode
}

// Flush Проталкивает буферизованные данные клиенту, если это поддерживает оригинальный writer.
func (l *LoggingResponseWriter) Flush() {
	if f, ok := l.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap Нужен http.ResponseController для доступа к оригинальному writer.
func (l *LoggingResponseWriter) Unwrap() http.ResponseWriter {
	return l.ResponseWriter
}

// LogMiddleware Middleware для логирования всех запросов одной строкой.
func LogMiddleware(h http.Handler) http.Handler {
	f := func(w http.ResponseWriter, r *http.Request) {
		data := responseData{
			status: 0,
			size:   0,
		}

		lw := LoggingResponseWriter{
			ResponseWriter: w,
			responseData:   &data,
		}

		start := time.Now()
		h.ServeHTTP(&lw, r)
		duration := time.Since(start)

		logger.Log.Info("Got incoming HTTP request",
			logger.String("remote_addr", r.RemoteAddr),
			logger.String("uri", r.RequestURI),
			logger.String("method", r.Method),
			logger.String("range", r.Header.Get("Range")),
			logger.String("status", strconv.Itoa(data.status)),
			logger.String("duration", duration.String()),
			logger.String("size", strconv.Itoa(data.size)),
			logger.String("request_id", RequestIDFromContext(r.Context())),
		)
	}

	return http.HandlerFunc(f)
}
