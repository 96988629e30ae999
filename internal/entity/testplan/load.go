package testplan

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Kargones/plancheck/internal/constants"
	"github.com/Kargones/plancheck/internal/entity/pxu"
)

// Load разбирает один источник в новый реестр.
func Load(r io.Reader, origin string, opts ...Option) (*Registry, error) {
	reg := NewRegistry(opts...)
	if err := reg.LoadFrom(r, origin); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadFrom разбирает источник и добавляет его тест-планы в реестр.
// Источник загружается целиком или не загружается совсем: при ошибке
// реестр остаётся без изменений.
func (r *Registry) LoadFrom(src io.Reader, origin string) error {
	records, err := pxu.Parse(src, origin)
	if err != nil {
		var synErr *pxu.SyntaxError
		if errors.As(err, &synErr) {
			return &ParseError{Origin: fmt.Sprintf("%s:%d", synErr.Origin, synErr.Line), Reason: synErr.Msg, Err: err}
		}
		return &ParseError{Origin: origin, Reason: err.Error(), Err: err}
	}

	parsed := make([]*Entry, 0, len(records))
	seen := make(map[string]string, len(records))
	for i := range records {
		entry, skip, err := r.fromRecord(&records[i])
		if err != nil {
			return err
		}
		if skip {
			continue
		}
		prevOrigin, dup := seen[entry.ID]
		if prev, exists := r.entries[entry.ID]; exists {
			prevOrigin, dup = prev.Origin, true
		}
		if dup {
			return &ParseError{
				Origin: entry.Origin,
				Reason: fmt.Sprintf("повторяющийся id %s (первое определение: %s)", entry.ID, prevOrigin),
			}
		}
		seen[entry.ID] = entry.Origin
		parsed = append(parsed, entry)
	}

	for _, e := range parsed {
		r.entries[e.ID] = e
	}
	return nil
}

// fromRecord строит Entry из записи PXU.
// skip=true означает юнит другого типа при включённом WithForeignUnitsSkipped.
func (r *Registry) fromRecord(rec *pxu.Record) (entry *Entry, skip bool, err error) {
	id, _ := rec.Get(KeyID)
	if id == "" {
		return nil, false, &ParseError{Origin: rec.Position(), Reason: "отсутствует обязательное поле id"}
	}
	unit, _ := rec.Get(KeyUnit)
	if unit == "" {
		return nil, false, &ParseError{Origin: rec.Position(), Reason: "у юнита " + id + " отсутствует обязательное поле unit"}
	}
	if unit != constants.UnitTestPlan {
		if r.skipForeign {
			return nil, true, nil
		}
		return nil, false, &ParseError{
			Origin: rec.FieldPosition(KeyUnit),
			Reason: fmt.Sprintf("юнит %s имеет unit %q, ожидался %q", id, unit, constants.UnitTestPlan),
		}
	}

	name, _ := rec.GetAny(KeyName, KeyNamePlain)
	description, _ := rec.GetAny(KeyDescription, KeyDescriptionPlain)

	e := &Entry{
		ID:                id,
		Name:              name,
		Description:       description,
		BootstrapIncludes: []string{},
		Includes:          []string{},
		Origin:            rec.Position(),
	}

	if v, ok := rec.Get(KeyBootstrapInclude); ok {
		for _, line := range pxu.Lines(v) {
			ref, _ := splitIncludeLine(line)
			e.BootstrapIncludes = append(e.BootstrapIncludes, ref)
		}
	}
	if v, ok := rec.Get(KeyInclude); ok {
		for _, line := range pxu.Lines(v) {
			ref, override := splitIncludeLine(line)
			e.Includes = append(e.Includes, ref)
			if override != "" {
				if e.IncludeOverrides == nil {
					e.IncludeOverrides = make(map[string]string)
				}
				e.IncludeOverrides[ref] = override
			}
		}
	}
	return e, false, nil
}

// splitIncludeLine отделяет id юнита от хвоста с переопределениями.
func splitIncludeLine(line string) (ref, override string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
