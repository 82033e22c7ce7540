package filepart

import (
	"io"
	"sync"
)

// Reader Отдаёт не более n байт из источника и владеет им: Close закрывает источник ровно один раз.
type Reader struct {
	src       io.ReadCloser
	remaining int64

	closeOnce sync.Once
	closeErr  error
}

// NewReader Конструктор. Источник должен быть уже спозиционирован на начало диапазона.
func NewReader(src io.ReadCloser, n int64) *Reader {
	if n < 0 {
		n = 0
	}

	return &Reader{
		src:       src,
		remaining: n,
	}
}

// Read Читает не больше min(len(p), Remaining()) байт.
// После исчерпания лимита источник больше не читается и возвращается io.EOF.
// Если источник закончился раньше лимита, возвращается io.ErrUnexpectedEOF.
func (r *Reader) Read(p []byte) (int, error) {
	if r.remaining <= 0 {
		return 0, io.EOF
	}

	if int64(len(p)) > r.remaining {
		p = p[:r.remaining]
	}

	n, err := r.src.Read(p)
	r.remaining -= int64(n)

	if err == io.EOF {
		if r.remaining > 0 {
			return n, io.ErrUnexpectedEOF
		}
		// лимит выбран ровно к концу файла
		if n > 0 {
			return n, nil
		}
	}

	return n, err
}

// Remaining Сколько байт ещё может быть прочитано.
func (r *Reader) Remaining() int64 {
	return r.remaining
}

// Close Закрывает источник. Повторные вызовы возвращают результат первого.
func (r *Reader) Close() error {
	r.closeOnce.Do(func() {
		r.closeErr = r.src.Close()
	})

	return r.closeErr
}
