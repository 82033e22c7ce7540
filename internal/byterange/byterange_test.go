package byterange

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParse Проверяет разбор заголовка Range для файла размером 1000 байт.
func TestParse(t *testing.T) {
	const size = 1000

	tests := []struct {
		name       string
		value      string
		present    bool
		wantRange  ByteRange
		wantResult Result
	}{
		{"заголовка нет", "", false, ByteRange{}, NoRange},
		{"пустое значение", "   ", true, ByteRange{}, NoRange},
		{"явный диапазон", "bytes=0-99", true, ByteRange{0, 99}, Satisfiable},
		{"один байт", "bytes=10-10", true, ByteRange{10, 10}, Satisfiable},
		{"пробелы вокруг", "  bytes=5-9  ", true, ByteRange{5, 9}, Satisfiable},
		{"конец обрезается", "bytes=900-5000", true, ByteRange{900, 999}, Satisfiable},
		{"огромный конец обрезается", "bytes=1-99999999999999999999999", true, ByteRange{1, 999}, Satisfiable},
		{"без конца", "bytes=100-", true, ByteRange{100, 999}, Satisfiable},
		{"суффикс", "bytes=-200", true, ByteRange{800, 999}, Satisfiable},
		{"суффикс больше файла", "bytes=-5000", true, ByteRange{0, 999}, Satisfiable},
		{"огромный суффикс", "bytes=-99999999999999999999999", true, ByteRange{0, 999}, Satisfiable},
		{"пустой диапазон", "bytes=-", true, ByteRange{}, NoRange},
		{"нулевой суффикс", "bytes=-0", true, ByteRange{}, Unsatisfiable},
		{"начало больше конца", "bytes=500-10", true, ByteRange{}, Unsatisfiable},
		{"начало за концом файла", "bytes=1000-", true, ByteRange{}, Unsatisfiable},
		{"начало далеко за концом файла", "bytes=5000-6000", true, ByteRange{}, Unsatisfiable},
		{"несколько диапазонов", "bytes=0-1,5-6", true, ByteRange{}, Unsatisfiable},
		{"другая единица", "items=0-1", true, ByteRange{}, Unsatisfiable},
		{"мусор", "garbage", true, ByteRange{}, Unsatisfiable},
		{"отрицательное начало", "bytes=-5-10", true, ByteRange{}, Unsatisfiable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotRange, gotResult := Parse(tt.value, tt.present, size)

			assert.Equal(t, tt.wantResult, gotResult)
			assert.Equal(t, tt.wantRange, gotRange)
		})
	}
}

// TestParseEmptyFile Проверяет что у пустого файла нельзя запросить ни один диапазон.
func TestParseEmptyFile(t *testing.T) {
	for _, value := range []string{"bytes=0-", "bytes=0-0", "bytes=-1"} {
		_, result := Parse(value, true, 0)
		assert.Equal(t, Unsatisfiable, result, value)
	}

	_, result := Parse("bytes=-", true, 0)
	assert.Equal(t, NoRange, result)
}

// TestParseEveryValidRange Для всех корректных start <= end < size диапазон возвращается без изменений.
func TestParseEveryValidRange(t *testing.T) {
	for _, size := range []int64{1, 2, 17, 64} {
		for start := int64(0); start < size; start++ {
			for end := start; end < size; end++ {
				header := fmt.Sprintf("bytes=%d-%d", start, end)

				got, result := Parse(header, true, size)
				assert.Equal(t, Satisfiable, result, header)
				assert.Equal(t, ByteRange{start, end}, got, header)
				assert.Equal(t, end-start+1, got.Length())
			}
		}
	}
}

// TestParseHeader Проверяет чтение заголовка из http.Header.
func TestParseHeader(t *testing.T) {
	h := http.Header{}

	_, result := ParseHeader(h, 10)
	assert.Equal(t, NoRange, result)

	h.Set("range", "bytes=2-4")
	br, result := ParseHeader(h, 10)
	assert.Equal(t, Satisfiable, result)
	assert.Equal(t, ByteRange{2, 4}, br)
}

// TestContentRange Проверяет форматирование Content-Range.
func TestContentRange(t *testing.T) {
	assert.Equal(t, "bytes 0-99/1000", ByteRange{0, 99}.ContentRange(1000))
	assert.Equal(t, "bytes */1000", UnsatisfiedContentRange(1000))
	assert.Equal(t, int64(100), ByteRange{0, 99}.Length())
}

// TestResultString Проверяет строковое представление результата.
func TestResultString(t *testing.T) {
	assert.Equal(t, "none", NoRange.String())
	assert.Equal(t, "satisfiable", Satisfiable.String())
	assert.Equal(t, "unsatisfiable", Unsatisfiable.String())
	assert.Equal(t, "unknown", Result(42).String())
}
