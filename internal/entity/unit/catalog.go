// Package unit содержит каталог юнитов Checkbox всех типов (job, template,
// test plan, category и т.д.). Каталог служит множеством известных id при
// проверке ссылок тест-планов и источником заданий при построении сессии.
package unit

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Kargones/plancheck/internal/entity/pxu"
)

// Типы юнитов.
const (
	KindJob      = "job"
	KindTemplate = "template"
	KindTestPlan = "test plan"
	KindCategory = "category"
)

// Unit - юнит каталога с полями, нужными для построения списка запуска.
type Unit struct {
	ID   string `json:"id" yaml:"id"`
	Kind string `json:"unit" yaml:"unit"`
	// Plugin: способ выполнения задания (shell, resource, manual ...).
	Plugin     string `json:"plugin,omitempty" yaml:"plugin,omitempty"`
	CategoryID string `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	// Depends: задания, которые должны успешно завершиться раньше.
	Depends []string `json:"depends,omitempty" yaml:"depends,omitempty"`
	// After: задания, которые должны завершиться раньше (с любым результатом).
	After []string `json:"after,omitempty" yaml:"after,omitempty"`
	// Requires: выражения над ресурсами, по одному на строку.
	Requires []string `json:"requires,omitempty" yaml:"requires,omitempty"`
	Origin   string   `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// IsJob сообщает, является ли юнит заданием.
// Юнит без поля unit считается заданием, как в Checkbox.
func (u *Unit) IsJob() bool {
	return u.Kind == KindJob || u.Kind == ""
}

// resourcePattern выделяет id ресурсного задания в выражении requires
// вместе с пространством имён, если оно указано:
// "package.name == 'x'" → "package",
// "com.canonical.certification::device.category == 'x'" → "com.canonical.certification::device".
var resourcePattern = regexp.MustCompile(`((?:[A-Za-z0-9_.\-]+::)?[A-Za-z_][A-Za-z0-9_\-/]*)\.[A-Za-z_]`)

// quotedPattern: строковые литералы выражения, в них ресурсы не ищутся.
var quotedPattern = regexp.MustCompile(`'[^']*'|"[^"]*"`)

func resourceNames(expr string) []string {
	var out []string
	for _, m := range resourcePattern.FindAllStringSubmatch(quotedPattern.ReplaceAllString(expr, "''"), -1) {
		out = append(out, m[1])
	}
	return out
}

// ResourceJobs возвращает id ресурсных заданий, упомянутых в requires,
// без повторов, в порядке появления.
func (u *Unit) ResourceJobs() []string {
	var out []string
	seen := make(map[string]bool)
	for _, expr := range u.Requires {
		for _, name := range resourceNames(expr) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// RequiresFor возвращает выражения requires, ссылающиеся на ресурсное задание.
func (u *Unit) RequiresFor(resource string) []string {
	var out []string
	for _, expr := range u.Requires {
		for _, name := range resourceNames(expr) {
			if name == resource {
				out = append(out, expr)
				break
			}
		}
	}
	return out
}

// Catalog - юниты в порядке загрузки с поиском по id.
type Catalog struct {
	units []*Unit
	index map[string]*Unit
	log   *slog.Logger
}

// NewCatalog создаёт пустой каталог. log может быть nil.
func NewCatalog(log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.Default()
	}
	return &Catalog{index: make(map[string]*Unit), log: log}
}

// LoadFrom добавляет в каталог юниты источника.
// Блоки без id пропускаются, при повторе id сохраняется первое определение.
func (c *Catalog) LoadFrom(r io.Reader, origin string) error {
	records, err := pxu.Parse(r, origin)
	if err != nil {
		return fmt.Errorf("загрузка каталога юнитов: %w", err)
	}
	for i := range records {
		rec := &records[i]
		id, _ := rec.Get("id")
		if id == "" {
			c.log.Debug("Блок без id пропущен", slog.String("origin", rec.Position()))
			continue
		}
		if prev, dup := c.index[id]; dup {
			c.log.Debug("Повторяющийся id юнита, оставлено первое определение",
				slog.String("id", id),
				slog.String("origin", rec.Position()),
				slog.String("first", prev.Origin),
			)
			continue
		}
		u := fromRecord(id, rec)
		c.units = append(c.units, u)
		c.index[id] = u
	}
	return nil
}

func fromRecord(id string, rec *pxu.Record) *Unit {
	u := &Unit{ID: id, Origin: rec.Position()}
	u.Kind, _ = rec.Get("unit")
	u.Plugin, _ = rec.Get("plugin")
	u.CategoryID, _ = rec.Get("category_id")
	if v, ok := rec.Get("depends"); ok {
		u.Depends = strings.Fields(v)
	}
	if v, ok := rec.Get("after"); ok {
		u.After = strings.Fields(v)
	}
	if v, ok := rec.Get("requires"); ok {
		u.Requires = pxu.Lines(v)
	}
	return u
}

// Len возвращает количество юнитов.
func (c *Catalog) Len() int {
	return len(c.units)
}

// Get возвращает юнит по id.
func (c *Catalog) Get(id string) (*Unit, bool) {
	u, ok := c.index[id]
	return u, ok
}

// Job возвращает задание по id. Юниты других типов не возвращаются.
func (c *Catalog) Job(id string) (*Unit, bool) {
	u, ok := c.index[id]
	if !ok || !u.IsJob() {
		return nil, false
	}
	return u, true
}

// Units возвращает юниты в порядке загрузки.
func (c *Catalog) Units() []*Unit {
	return append([]*Unit(nil), c.units...)
}

// Jobs возвращает задания в порядке загрузки.
func (c *Catalog) Jobs() []*Unit {
	var out []*Unit
	for _, u := range c.units {
		if u.IsJob() {
			out = append(out, u)
		}
	}
	return out
}

// KnownIDs возвращает id всех юнитов в порядке загрузки.
func (c *Catalog) KnownIDs() []string {
	ids := make([]string, 0, len(c.units))
	for _, u := range c.units {
		ids = append(ids, u.ID)
	}
	return ids
}
