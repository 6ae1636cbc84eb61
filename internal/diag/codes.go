package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Разбор исходника
	ParseInfo        Code = 1000
	ParseSyntaxError Code = 1001
	ParseMissingNode Code = 1002

	// Директивы
	DirInfo                  Code = 2000
	DirectiveNeedsExpression Code = 2001
	VModelsNotArray          Code = 2002

	// Вывод runtime-типов из TypeScript
	TypeInfo                Code = 3000
	TypeUnresolvableRef     Code = 3001
	TypeFromOtherModule     Code = 3002
	TypeUnresolvable        Code = 3003
	TypeUnsupportedIndexKey Code = 3004
	TypeUnsupportedPropKey  Code = 3005

	// Ошибки I/O и конфигурации
	IOReadFailed  Code = 4001
	IOWriteFailed Code = 4002
	ConfigInvalid Code = 4003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:              "Unknown error",
		ParseInfo:                "Parse information",
		ParseSyntaxError:         "Syntax error",
		ParseMissingNode:         "Missing syntax element",
		DirInfo:                  "Directive information",
		DirectiveNeedsExpression: "Directive requires a JSX expression",
		VModelsNotArray:          "v-models requires a two-dimensional array",
		TypeInfo:                 "Type inference information",
		TypeUnresolvableRef:      "Unresolvable type reference",
		TypeFromOtherModule:      "Type declared in another module",
		TypeUnresolvable:         "Unresolvable type",
		TypeUnsupportedIndexKey:  "Unsupported index key type",
		TypeUnsupportedPropKey:   "Unsupported prop key",
		IOReadFailed:             "I/O read error",
		IOWriteFailed:            "I/O write error",
		ConfigInvalid:            "Invalid configuration",
		ObsInfo:                  "Observability information",
		ObsTimings:               "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 5000:
		return fmt.Sprintf("VJX%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
