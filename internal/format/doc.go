// Package format prints the arena AST back to JavaScript/TypeScript text.
//
// Назначение: вывод файла после трансформации JSX.
// Узлы, которых не коснулась трансформация, копируются из исходника байт в байт;
// переписанные и синтезированные узлы печатаются структурно.
// Не делает: форматирования исходного кода, проверки синтаксиса или IO.
// Зависимости: internal/ast, internal/source.
package format
