package api

import (
	"github.com/trsv-dev/simple-media-server/internal/api/media_handler"
	"github.com/trsv-dev/simple-media-server/internal/config"
	"github.com/trsv-dev/simple-media-server/internal/logger"
	"github.com/trsv-dev/simple-media-server/internal/resolver"
)

// HandlersContainer Контейнер со всеми handlers приложения (и их зависимостями).
type HandlersContainer struct {
	MediaHandler *media_handler.MediaHandler
}

// NewHandlersContainer Конструктор контейнера с зависимостями.
func NewHandlersContainer(srvConfig *config.Config, log logger.Logger) *HandlersContainer {
	res := resolver.New(srvConfig.Dir)

	return &HandlersContainer{
		MediaHandler: media_handler.NewMediaHandler(res, log),
	}
}
