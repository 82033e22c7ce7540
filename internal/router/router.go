package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/trsv-dev/simple-media-server/internal/api"
	"github.com/trsv-dev/simple-media-server/internal/middleware"
)

// Router Роутер.
func Router(h *api.HandlersContainer) chi.Router {
	router := chi.NewRouter()

	// граница отказа для одного запроса: паника не роняет процесс
	router.Use(chimiddleware.Recoverer)
	// идентификатор запроса нужен логгеру, поэтому подключается раньше него
	router.Use(middleware.RequestIDMiddleware)
	// middleware логгера всех запросов
	router.Use(middleware.LogMiddleware)

	// любой путь отображается на файл в корневом каталоге
	router.Get("/*", h.MediaHandler.ServeMedia)
	router.Head("/*", h.MediaHandler.ServeMedia)

	return router
}
