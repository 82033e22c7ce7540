package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/trsv-dev/simple-media-server/internal/api"
	"github.com/trsv-dev/simple-media-server/internal/config"
	"github.com/trsv-dev/simple-media-server/internal/logger"
	"github.com/trsv-dev/simple-media-server/internal/server"
)

// "Сборка" и запуск сервера статики.
func main() {
	// recover для логирования паник в main
	defer func() {
		if r := recover(); r != nil {
			log.Println("Паника в main:", fmt.Sprintf("%v", r))
		}
	}()

	// загружаем переменные окружения из .env, если он есть
	if errEnv := godotenv.Load(); errEnv != nil && !errors.Is(errEnv, fs.ErrNotExist) {
		log.Println("Не удалось загрузить .env:", errEnv)
	}

	srvConfig, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	if err = srvConfig.Validate(); err != nil {
		log.Fatalf("Directory not found: %v", err)
	}

	// инициализация логгера с уровнем логирования из конфигурации
	logger.InitLogger(srvConfig.LogLevel, srvConfig.LogOutput)
	// отложенное закрытие ресурса (актуально если используется файл для логирования)
	defer logger.Log.(*logger.SlogAdapter).Close()

	handlersContainer := api.NewHandlersContainer(srvConfig, logger.Log)

	srv, serverErrorCh := server.RunServer(srvConfig.Address(), handlersContainer)

	fmt.Printf("Serving %s at %s (Ctrl+C to stop)\n", srvConfig.Dir, srvConfig.DisplayURL())

	// канал системных сигналов
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-serverErrorCh:
		if !ok {
			logger.Log.Info("Канал ошибок сервера закрыт")
			return
		}
		logger.Log.Error("Ошибка сервера", logger.String("err", err.Error()))
		return
	case sig := <-stop:
		logger.Log.Info("Получен сигнал остановки приложения", logger.String("sig", sig.String()))
	}

	fmt.Println("\nStopping.")

	// контекст для завершения работы сервера; активные передачи обрываются по таймауту
	serverShutdownCtx, serverShutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer serverShutdownCancel()

	if err = srv.Shutdown(serverShutdownCtx); err != nil {
		logger.Log.Warn("Сервер не остановился вовремя, закрываем соединения", logger.String("err", err.Error()))
		_ = srv.Close()
	} else {
		logger.Log.Info("Сервер остановлен")
	}
}
