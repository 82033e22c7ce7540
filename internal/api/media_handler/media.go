package media_handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/trsv-dev/simple-media-server/internal/byterange"
	"github.com/trsv-dev/simple-media-server/internal/errs"
	"github.com/trsv-dev/simple-media-server/internal/filepart"
	"github.com/trsv-dev/simple-media-server/internal/listing"
	"github.com/trsv-dev/simple-media-server/internal/logger"
	"github.com/trsv-dev/simple-media-server/internal/netutils"
	"github.com/trsv-dev/simple-media-server/internal/resolver"
)

// размер порции при копировании тела ответа
const defaultChunkSize = 64 * 1024

// Resolver Интерфейс разрешения URL в файл, каталог или редирект.
type Resolver interface {
	Resolve(u *url.URL) (*resolver.Target, error)
}

// MediaHandler Отдаёт статические файлы с поддержкой одного диапазона байт (Range).
type MediaHandler struct {
	resolver  Resolver
	log       logger.Logger
	chunkSize int
}

// NewMediaHandler Конструктор MediaHandler.
func NewMediaHandler(res Resolver, log logger.Logger) *MediaHandler {
	return &MediaHandler{
		resolver:  res,
		log:       log,
		chunkSize: defaultChunkSize,
	}
}

// ServeMedia Обрабатывает GET и HEAD запросы к файлам и каталогам.
func (h *MediaHandler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	target, err := h.resolver.Resolve(r.URL)
	if err != nil {
		h.notFound(w, r, err)
		return
	}

	switch target.Kind {
	case resolver.KindRedirect:
		w.Header().Set("Location", target.Location)
		w.WriteHeader(http.StatusMovedPermanently)
	case resolver.KindListing:
		h.serveListing(w, r, target)
	default:
		h.serveFile(w, r, target)
	}
}

// Отдача файла целиком (200), диапазона (206) или отказ по диапазону (416).
// Файл закрывается на любом пути выхода через body.Close.
func (h *MediaHandler) serveFile(w http.ResponseWriter, r *http.Request, target *resolver.Target) {
	size := target.Size
	body := filepart.NewReader(target.File, size)
	defer func() {
		_ = body.Close()
	}()

	br, result := byterange.ParseHeader(r.Header, size)

	if result == byterange.Unsatisfiable {
		h.log.Debug("Диапазон не может быть выполнен",
			logger.String("path", target.Path),
			logger.String("range", r.Header.Get("Range")),
			logger.Int64("size", size),
		)

		w.Header().Set("Content-Range", byterange.UnsatisfiedContentRange(size))
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		return
	}

	status := http.StatusOK
	length := size

	if result == byterange.Satisfiable {
		if _, err := target.File.Seek(br.Start, io.SeekStart); err != nil {
			h.notFound(w, r, errs.NewErrNotFound(target.Path, err))
			return
		}

		status = http.StatusPartialContent
		length = br.Length()
		body = filepart.NewReader(target.File, length)
		w.Header().Set("Content-Range", br.ContentRange(size))
	}

	header := w.Header()
	header.Set("Content-Type", target.ContentType)
	header.Set("Accept-Ranges", "bytes")
	header.Set("Content-Length", strconv.FormatInt(length, 10))
	header.Set("Last-Modified", target.ModTime.UTC().Format(http.TimeFormat))
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		return
	}

	written, readErr, writeErr := h.copyChunks(w, body)
	h.finishBody(target.Path, length, written, readErr, writeErr)
}

// Отдача HTML-листинга каталога без index-файла.
func (h *MediaHandler) serveListing(w http.ResponseWriter, r *http.Request, target *resolver.Target) {
	page, err := listing.Render(target.Path, r.URL.Path)
	if err != nil {
		h.log.Debug("Не удалось построить листинг каталога",
			logger.String("path", target.Path),
			logger.String("err", err.Error()),
		)
		http.Error(w, "No permission to list directory", http.StatusNotFound)
		return
	}

	header := w.Header()
	header.Set("Content-Type", listing.ContentType)
	header.Set("Content-Length", strconv.Itoa(len(page)))
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}

	n, err := w.Write(page)
	h.finishBody(target.Path, int64(len(page)), int64(n), nil, err)
}

// Ответ 404 на отсутствующий или нечитаемый путь.
func (h *MediaHandler) notFound(w http.ResponseWriter, r *http.Request, err error) {
	var nf *errs.ErrNotFound
	if errors.As(err, &nf) {
		h.log.Debug("Файл не найден", logger.String("path", nf.Path), logger.String("err", nf.Err.Error()))
	} else {
		h.log.Warn("Ошибка разрешения пути", logger.String("uri", r.URL.Path), logger.String("err", err.Error()))
	}

	http.Error(w, "File not found", http.StatusNotFound)
}

// Копирование тела порциями фиксированного размера.
// Ошибки чтения и записи возвращаются раздельно: первые относятся к файлу, вторые к соединению.
func (h *MediaHandler) copyChunks(w io.Writer, body io.Reader) (written int64, readErr, writeErr error) {
	buf := make([]byte, h.chunkSize)

	for {
		n, err := body.Read(buf)
		if n > 0 {
			wn, werr := w.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, nil, werr
			}
			if wn != n {
				return written, nil, io.ErrShortWrite
			}
		}

		if err == io.EOF {
			return written, nil, nil
		}
		if err != nil {
			return written, err, nil
		}
	}
}

// Разбор итогов передачи тела.
// Отключение клиента ожидаемо и только пишется в Debug. Прочие ошибки возникают после отправки
// заголовков, поэтому соединение обрывается через http.ErrAbortHandler.
func (h *MediaHandler) finishBody(path string, want, written int64, readErr, writeErr error) {
	switch {
	case writeErr != nil && netutils.IsClientDisconnect(writeErr):
		h.log.Debug("Клиент закрыл соединение во время передачи",
			logger.String("path", path),
			logger.Int64("written", written),
			logger.Int64("want", want),
		)
	case writeErr != nil:
		h.log.Error("Ошибка записи тела ответа",
			logger.String("path", path),
			logger.Int64("written", written),
			logger.String("err", writeErr.Error()),
		)
		panic(http.ErrAbortHandler)
	case readErr != nil:
		err := errs.NewErrTruncatedFile(path, want, written, readErr)
		h.log.Error("Ошибка чтения файла во время передачи", logger.String("err", err.Error()))
		panic(http.ErrAbortHandler)
	}
}
