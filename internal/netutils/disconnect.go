package netutils

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
)

// IsClientDisconnect Сообщает, что ошибка записи вызвана закрытием соединения клиентом
// (обрыв канала, сброс соединения, отмена запроса). Такие ошибки ожидаемы и не требуют реакции.
func IsClientDisconnect(err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, syscall.EPIPE),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, context.Canceled):
		return true
	}

	return false
}
