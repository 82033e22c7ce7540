package resolver

import (
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/trsv-dev/simple-media-server/internal/errs"
)

// Kind Вид результата разрешения URL.
type Kind int

const (
	// KindFile Обычный файл, открыт и готов к отдаче.
	KindFile Kind = iota + 1
	// KindRedirect Каталог запрошен без завершающего слэша.
	KindRedirect
	// KindListing Каталог без index-файла, нужен листинг.
	KindListing
)

// DefaultContentType Тип содержимого для неизвестных расширений.
const DefaultContentType = "application/octet-stream"

// порядок важен: первый найденный файл побеждает
var indexFiles = []string{"index.html", "index.htm"}

// типы аудио/видео, которых может не быть в системной базе mime
var mediaTypes = map[string]string{
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".opus": "audio/ogg",
	".wav":  "audio/wav",
	".weba": "audio/webm",
	".mp4":  "video/mp4",
	".webm": "video/webm",
}

// Target Результат разрешения URL. Для KindFile вызывающий обязан закрыть File.
type Target struct {
	Kind        Kind
	Path        string
	Location    string
	File        io.ReadSeekCloser
	Size        int64
	ModTime     time.Time
	ContentType string
}

// Resolver Отображает URL-пути на файлы внутри корневого каталога.
type Resolver struct {
	root string
}

// New Конструктор. root должен быть абсолютным путём к существующему каталогу.
func New(root string) *Resolver {
	return &Resolver{root: root}
}

// Root Корневой каталог.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve Разрешает URL: редирект для каталога без слэша, index-файл или листинг
// для каталога со слэшем, открытый файл для всего остального.
// Отсутствующий или нечитаемый путь возвращает *errs.ErrNotFound.
func (r *Resolver) Resolve(u *url.URL) (*Target, error) {
	fsPath := r.TranslatePath(u.Path)
	trailingSlash := strings.HasSuffix(u.Path, "/")

	info, err := os.Stat(fsPath)
	if err == nil && info.IsDir() {
		if !trailingSlash {
			location := u.EscapedPath() + "/"
			if u.RawQuery != "" {
				location += "?" + u.RawQuery
			}
			return &Target{Kind: KindRedirect, Path: fsPath, Location: location}, nil
		}

		index, ok := findIndex(fsPath)
		if !ok {
			return &Target{Kind: KindListing, Path: fsPath}, nil
		}
		fsPath = index
		trailingSlash = false
	}

	// "file.mp3/" файлом не считается
	if trailingSlash {
		return nil, errs.NewErrNotFound(fsPath, fmt.Errorf("не каталог"))
	}

	return openFile(fsPath)
}

// TranslatePath Переводит URL-путь в путь файловой системы внутри корня.
// Сегменты "..", "." и сегменты с разделителями пути отбрасываются, выйти за корень нельзя.
func (r *Resolver) TranslatePath(urlPath string) string {
	cleaned := path.Clean("/" + urlPath)

	parts := []string{r.root}
	for _, segment := range strings.Split(cleaned, "/") {
		if segment == "" || segment == "." || segment == ".." {
			continue
		}
		if strings.ContainsRune(segment, filepath.Separator) || !filepath.IsLocal(segment) {
			continue
		}
		parts = append(parts, segment)
	}

	return filepath.Join(parts...)
}

// ContentType Угадывает тип содержимого по расширению файла.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return DefaultContentType
	}

	if ct, ok := mediaTypes[ext]; ok {
		return ct
	}

	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}

	return DefaultContentType
}

// Поиск первого существующего index-файла в каталоге.
func findIndex(dir string) (string, bool) {
	for _, name := range indexFiles {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	return "", false
}

// Открытие обычного файла и чтение его метаданных. Любая ошибка превращается в ErrNotFound.
func openFile(fsPath string) (*Target, error) {
	f, err := os.Open(fsPath)
	if err != nil {
		return nil, errs.NewErrNotFound(fsPath, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errs.NewErrNotFound(fsPath, err)
	}

	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, errs.NewErrNotFound(fsPath, fmt.Errorf("не обычный файл"))
	}

	return &Target{
		Kind:        KindFile,
		Path:        fsPath,
		File:        f,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: ContentType(fsPath),
	}, nil
}
