package byterange

import (
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// Result Итог разбора заголовка Range.
type Result int

const (
	// NoRange Диапазон не запрошен, отдаём файл целиком.
	NoRange Result = iota
	// Satisfiable Диапазон корректен и укладывается в размер файла.
	Satisfiable
	// Unsatisfiable Заголовок есть, но выполнить его нельзя (ответ 416).
	Unsatisfiable
)

func (r Result) String() string {
	switch r {
	case NoRange:
		return "none"
	case Satisfiable:
		return "satisfiable"
	case Unsatisfiable:
		return "unsatisfiable"
	default:
		return "unknown"
	}
}

// поддерживается только один диапазон: bytes=<start>-<end>
var rangePattern = regexp.MustCompile(`^bytes=(\d*)-(\d*)\s*$`)

// ByteRange Диапазон байт, обе границы включительно: 0 <= Start <= End < size.
type ByteRange struct {
	Start int64
	End   int64
}

// Length Количество байт в диапазоне.
func (br ByteRange) Length() int64 {
	return br.End - br.Start + 1
}

// ContentRange Значение заголовка Content-Range для ответа 206.
func (br ByteRange) ContentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", br.Start, br.End, size)
}

// UnsatisfiedContentRange Значение заголовка Content-Range для ответа 416.
func UnsatisfiedContentRange(size int64) string {
	return fmt.Sprintf("bytes */%d", size)
}

// ParseHeader Разбирает заголовок Range запроса относительно размера файла.
func ParseHeader(h http.Header, size int64) (ByteRange, Result) {
	value := h.Get("Range")
	return Parse(value, value != "", size)
}

// Parse Разбирает значение заголовка Range.
// present сообщает, был ли заголовок в запросе; пустое значение считается отсутствием заголовка.
func Parse(value string, present bool, size int64) (ByteRange, Result) {
	value = strings.TrimSpace(value)
	if !present || value == "" {
		return ByteRange{}, NoRange
	}

	m := rangePattern.FindStringSubmatch(value)
	if m == nil {
		return ByteRange{}, Unsatisfiable
	}

	first, last := m[1], m[2]

	// "bytes=-" совпадает с грамматикой, но диапазона не задаёт
	if first == "" && last == "" {
		return ByteRange{}, NoRange
	}

	// суффикс: последние N байт
	if first == "" {
		n := parseNumber(last)
		// у пустого файла нет последнего байта
		if n <= 0 || size <= 0 {
			return ByteRange{}, Unsatisfiable
		}
		start := size - n
		if start < 0 {
			start = 0
		}
		return ByteRange{Start: start, End: size - 1}, Satisfiable
	}

	start := parseNumber(first)

	end := size - 1
	if last != "" {
		end = parseNumber(last)
	}

	if start > end || start >= size {
		return ByteRange{}, Unsatisfiable
	}

	if end > size-1 {
		end = size - 1
	}

	return ByteRange{Start: start, End: end}, Satisfiable
}

// Разбор последовательности цифр; значения за пределами int64 насыщаются до math.MaxInt64,
// поэтому огромный конец диапазона просто обрезается по размеру файла.
func parseNumber(digits string) int64 {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return math.MaxInt64
	}
	return n
}
