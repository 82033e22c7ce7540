package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader Заголовок с идентификатором запроса.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestIDMiddleware Присваивает каждому запросу идентификатор (или берёт пришедший от клиента)
// и кладёт его в контекст и заголовок ответа.
func RequestIDMiddleware(h http.Handler) http.Handler {
	f := func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)

		h.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(f)
}

// RequestIDFromContext Идентификатор запроса из контекста или пустая строка.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
