// Package fuzztests houses Go fuzz harnesses for the vuejsx pipeline
// (source -> frontend -> transform -> format). Its goal is to guard against
// panics, hangs and broken span invariants on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через парсер,
// трансформацию и печать.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/frontend, internal/transform,
// internal/format, internal/testkit.

package fuzztests
