// Package dataset собирает записи извлекателей в таблицы.
//
// Builder накапливает записи и причины пропуска, Freeze сортирует их один раз и
// возвращает неизменяемую Table. После Freeze строитель больше не принимает записей,
// поэтому частично отсортированное состояние наружу не попадает.
package dataset

import (
	"errors"
	"sort"
)

// SkipCounts - количество пропущенных записей по причинам.
type SkipCounts map[string]int

// Total возвращает общее число пропущенных записей.
func (s SkipCounts) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

// Table - замороженная таблица записей.
type Table[T any] struct {
	rows    []T
	skipped SkipCounts
}

// NewTable создает таблицу из готовых строк (например, при восстановлении с диска).
func NewTable[T any](rows []T) Table[T] {
	return Table[T]{rows: append([]T(nil), rows...)}
}

// Len возвращает число строк.
func (t Table[T]) Len() int {
	return len(t.rows)
}

// Rows возвращает копию строк.
func (t Table[T]) Rows() []T {
	return append([]T(nil), t.rows...)
}

// At возвращает строку по индексу.
func (t Table[T]) At(i int) T {
	return t.rows[i]
}

// Each вызывает fn для каждой строки по порядку, пока fn возвращает true.
func (t Table[T]) Each(fn func(i int, row T) bool) {
	for i, r := range t.rows {
		if !fn(i, r) {
			return
		}
	}
}

// Skipped возвращает копию счетчиков пропущенных записей.
func (t Table[T]) Skipped() SkipCounts {
	out := make(SkipCounts, len(t.skipped))
	for k, v := range t.skipped {
		out[k] = v
	}
	return out
}

// ErrFrozen возвращается при попытке изменить уже замороженный Builder.
var ErrFrozen = errors.New("таблица уже заморожена")

// Builder накапливает строки одной таблицы.
type Builder[T any] struct {
	rows    []T
	skipped SkipCounts
	frozen  bool
}

// NewBuilder создает пустой Builder.
func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{skipped: make(SkipCounts)}
}

// Add добавляет строки.
func (b *Builder[T]) Add(rows ...T) {
	if b.frozen {
		panic(ErrFrozen)
	}
	b.rows = append(b.rows, rows...)
}

// Skip учитывает пропущенную запись. Причина - текст ошибки.
func (b *Builder[T]) Skip(reason error) {
	if b.frozen {
		panic(ErrFrozen)
	}
	b.skipped[reason.Error()]++
}

// Len возвращает число накопленных строк.
func (b *Builder[T]) Len() int {
	return len(b.rows)
}

// Freeze сортирует строки устойчивой сортировкой по less и возвращает таблицу.
// При less == nil сохраняется порядок добавления.
func (b *Builder[T]) Freeze(less func(a, b T) bool) Table[T] {
	if b.frozen {
		panic(ErrFrozen)
	}
	b.frozen = true
	rows := b.rows
	b.rows = nil
	if less != nil {
		sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	}
	return Table[T]{rows: rows, skipped: b.skipped}
}
