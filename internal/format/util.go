package format

import "vuejsx/internal/source"

func spanValid(sp source.Span) bool {
	return !sp.IsSynthetic() && sp.End >= sp.Start
}
