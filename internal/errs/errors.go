package errs

import (
	"errors"
	"fmt"
)

// ErrNotFound Кастомная ошибка, сообщающая, что путь не существует или его нельзя открыть.
type ErrNotFound struct {
	Path string
	Err  error
}

func (nf *ErrNotFound) Error() string {
	return fmt.Sprintf("путь `%s` не найден: %v", nf.Path, nf.Err)
}

func (nf *ErrNotFound) Unwrap() error {
	return nf.Err
}

func NewErrNotFound(path string, err error) *ErrNotFound {
	if err == nil {
		err = errors.New("файл не найден")
	}

	return &ErrNotFound{
		Path: path,
		Err:  err,
	}
}

// ErrTruncatedFile Кастомная ошибка, сообщающая, что файл закончился раньше объявленного Content-Length.
type ErrTruncatedFile struct {
	Path string
	Want int64
	Got  int64
	Err  error
}

func (tf *ErrTruncatedFile) Error() string {
	return fmt.Sprintf("файл `%s` укорочен: ожидалось %d байт, прочитано %d: %v", tf.Path, tf.Want, tf.Got, tf.Err)
}

func (tf *ErrTruncatedFile) Unwrap() error {
	return tf.Err
}

func NewErrTruncatedFile(path string, want, got int64, err error) *ErrTruncatedFile {
	return &ErrTruncatedFile{
		Path: path,
		Want: want,
		Got:  got,
		Err:  err,
	}
}
