package listing

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ContentType Тип содержимого страницы листинга.
const ContentType = "text/html; charset=utf-8"

var pageTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE HTML>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Directory listing for {{.Title}}</title>
</head>
<body>
<h1>Directory listing for {{.Title}}</h1>
<hr>
<ul>
{{- range .Entries}}
<li><a href="{{.Href}}">{{.Name}}</a></li>
{{- end}}
</ul>
<hr>
</body>
</html>
`))

// Entry Строка листинга.
type Entry struct {
	Name string
	Href string
}

type page struct {
	Title   string
	Entries []Entry
}

// Entries Читает каталог и возвращает записи, отсортированные без учёта регистра.
// Каталоги получают суффикс "/", символические ссылки отображаются с суффиксом "@".
func Entries(dir string) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("чтение каталога %s: %w", dir, err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name()) < strings.ToLower(items[j].Name())
	})

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		name := item.Name()
		display, link := name, name

		// os.Stat идёт по символической ссылке
		if info, statErr := os.Stat(filepath.Join(dir, name)); statErr == nil && info.IsDir() {
			display += "/"
			link += "/"
		}
		// у ссылки суффикс "@" заменяет "/"
		if item.Type()&os.ModeSymlink != 0 {
			display = name + "@"
		}

		entries = append(entries, Entry{
			Name: display,
			Href: (&url.URL{Path: link}).EscapedPath(),
		})
	}

	return entries, nil
}

// Render Строит HTML-страницу листинга каталога dir, доступного по URL-пути urlPath.
func Render(dir, urlPath string) ([]byte, error) {
	entries, err := Entries(dir)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = pageTemplate.Execute(&buf, page{Title: urlPath, Entries: entries}); err != nil {
		return nil, fmt.Errorf("рендер листинга: %w", err)
	}

	return buf.Bytes(), nil
}
