// Package patterns хранит набор регулярных выражений одной локали, по которым из подписей
// к комментариям и постам извлекаются автор, адресат и место публикации.
//
// Выражения - это данные: они описываются в YAML и не зашиты в код извлечения.
// Встроенная польская локаль доступна через Polish.
package patterns

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"facebook-data-reader/internal/domain"

	"gopkg.in/yaml.v2"
)

// nameGroup - обязательная именованная группа в каждом выражении.
const nameGroup = "name"

//go:embed locales/pl.yml
var polishYAML []byte

var polish = mustParse(polishYAML)

// Definition - YAML-описание локали.
type Definition struct {
	Locale  string            `yaml:"locale"`
	Comment CommentDefinition `yaml:"comment"`
	Post    PostDefinition    `yaml:"post"`
}

// CommentDefinition описывает подписи к комментариям.
type CommentDefinition struct {
	Author     string   `yaml:"author"`
	Addressee  string   `yaml:"addressee"`
	OwnMarkers []string `yaml:"own_markers"`
}

// PostDefinition описывает подписи к постам.
type PostDefinition struct {
	Author          string                  `yaml:"author"`
	Destinations    []DestinationDefinition `yaml:"destinations"`
	OwnStatusMarker string                  `yaml:"own_status_marker"`
}

// DestinationDefinition - выражение для одного вида места публикации.
type DestinationDefinition struct {
	Kind    domain.PostKind `yaml:"kind"`
	Pattern string          `yaml:"pattern"`
}

// Destination - распознанное место публикации поста.
type Destination struct {
	Kind domain.PostKind
	Name string
}

type destinationPattern struct {
	kind domain.PostKind
	re   *regexp.Regexp
}

// Table - неизменяемый набор выражений одной локали. Безопасен для совместного использования.
type Table struct {
	def           Definition
	commentAuthor *regexp.Regexp
	addressee     *regexp.Regexp
	postAuthor    *regexp.Regexp
	destinations  []destinationPattern
}

// Polish возвращает встроенную польскую локаль.
func Polish() *Table {
	return polish
}

// LoadFile читает описание локали из YAML-файла.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл шаблонов %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("файл шаблонов %s: %w", path, err)
	}
	return t, nil
}

// Parse разбирает и проверяет YAML-описание локали.
func Parse(data []byte) (*Table, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("не удалось разобрать YAML шаблонов: %w", err)
	}
	return New(def)
}

// New компилирует описание локали.
func New(def Definition) (*Table, error) {
	t := &Table{def: def}
	var err error

	if t.commentAuthor, err = compile("comment.author", def.Comment.Author); err != nil {
		return nil, err
	}
	if t.addressee, err = compile("comment.addressee", def.Comment.Addressee); err != nil {
		return nil, err
	}
	if t.postAuthor, err = compile("post.author", def.Post.Author); err != nil {
		return nil, err
	}

	if len(def.Post.Destinations) == 0 {
		return nil, fmt.Errorf("post.destinations не может быть пустым")
	}
	for i, d := range def.Post.Destinations {
		switch d.Kind {
		case domain.PostInGroup, domain.PostInEvent, domain.PostInUser:
		default:
			return nil, fmt.Errorf("post.destinations[%d].kind должен быть одним из: group, event, user", i)
		}
		re, err := compile(fmt.Sprintf("post.destinations[%d].pattern", i), d.Pattern)
		if err != nil {
			return nil, err
		}
		t.destinations = append(t.destinations, destinationPattern{kind: d.Kind, re: re})
	}

	// Копии срезов, чтобы вызывающий код не мог изменить таблицу через исходное описание.
	t.def.Comment.OwnMarkers = append([]string(nil), def.Comment.OwnMarkers...)
	t.def.Post.Destinations = append([]DestinationDefinition(nil), def.Post.Destinations...)
	return t, nil
}

func compile(field, expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, fmt.Errorf("%s не может быть пустым", field)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%s: некорректное выражение: %w", field, err)
	}
	if re.SubexpIndex(nameGroup) < 0 {
		return nil, fmt.Errorf("%s: нет именованной группы %q", field, nameGroup)
	}
	return re, nil
}

func mustParse(data []byte) *Table {
	t, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Locale возвращает код локали.
func (t *Table) Locale() string {
	return t.def.Locale
}

// Definition возвращает копию исходного описания.
func (t *Table) Definition() Definition {
	def := t.def
	def.Comment.OwnMarkers = append([]string(nil), t.def.Comment.OwnMarkers...)
	def.Post.Destinations = append([]DestinationDefinition(nil), t.def.Post.Destinations...)
	return def
}

// CommentAuthor извлекает автора из подписи к комментарию.
func (t *Table) CommentAuthor(title string) (string, bool) {
	return find(t.commentAuthor, title)
}

// Addressee извлекает адресата ответа из подписи к комментарию.
func (t *Table) Addressee(title string) (string, bool) {
	return find(t.addressee, title)
}

// IsOwnComment сообщает, относится ли комментарий к собственному посту или комментарию автора.
func (t *Table) IsOwnComment(title string) bool {
	for _, marker := range t.def.Comment.OwnMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

// PostAuthor извлекает автора из подписи к посту.
func (t *Table) PostAuthor(title string) (string, bool) {
	return find(t.postAuthor, title)
}

// Destination определяет место публикации. Выражения проверяются в порядке описания,
// побеждает первое совпадение.
func (t *Table) Destination(title string) (Destination, bool) {
	for _, d := range t.destinations {
		if name, ok := find(d.re, title); ok {
			return Destination{Kind: d.kind, Name: name}, true
		}
	}
	return Destination{}, false
}

// IsOwnStatus сообщает, является ли пост собственным статусом автора.
func (t *Table) IsOwnStatus(title string) bool {
	marker := t.def.Post.OwnStatusMarker
	return marker != "" && strings.Contains(title, marker)
}

func find(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[re.SubexpIndex(nameGroup)], true
}
