// Package pxu разбирает текстовые определения юнитов Checkbox (формат PXU):
// блоки пар "ключ: значение", разделённые пустыми строками.
//
// Пример блока:
//
//	id: dbus-warm-boot
//	unit: test plan
//	_name: Warm boot stress test (by dbus)
//	include:
//	    warm-boot-loop-.*
//
// Пакет не знает о семантике юнитов: он только выделяет записи и поля.
// Интерпретация (тест-планы, задания) выполняется в пакетах testplan и unit.
package pxu

import "fmt"

// Field - одно поле записи с номером строки, на которой начинается ключ.
type Field struct {
	Key   string
	Value string
	Line  int
}

// Record - один блок определения юнита.
// Поля хранятся в порядке появления в исходном тексте.
type Record struct {
	// Origin: имя источника (обычно путь к файлу).
	Origin string
	// Line: номер первой строки блока (с 1).
	Line   int
	Fields []Field
}

// Get возвращает значение поля по ключу.
func (r *Record) Get(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// GetAny возвращает значение первого найденного ключа из списка.
// Используется для пар переводимых и непереводимых ключей (_name / name).
func (r *Record) GetAny(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := r.Get(k); ok {
			return v, true
		}
	}
	return "", false
}

// Has проверяет наличие поля.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Position возвращает позицию блока в формате "файл:строка".
func (r *Record) Position() string {
	return fmt.Sprintf("%s:%d", r.Origin, r.Line)
}

// FieldPosition возвращает позицию поля в формате "файл:строка".
// Если поле отсутствует: позицию блока.
func (r *Record) FieldPosition(key string) string {
	for _, f := range r.Fields {
		if f.Key == key {
			return fmt.Sprintf("%s:%d", r.Origin, f.Line)
		}
	}
	return r.Position()
}
