package frontend

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// unquote decodes a JavaScript string literal. Malformed escapes are kept
// as the escaped character.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	q := raw[0]
	if (q != '"' && q != '\'' && q != '`') || raw[len(raw)-1] != q {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 >= len(body) {
			sb.WriteByte(ch)
			continue
		}
		i++
		switch esc := body[i]; esc {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case '\n':
			// продолжение строки
		case '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case 'x':
			if r, ok := hexRune(body, i+1, 2); ok {
				sb.WriteRune(r)
				i += 2
			} else {
				sb.WriteByte(esc)
			}
		case 'u':
			if i+1 < len(body) && body[i+1] == '{' {
				end := strings.IndexByte(body[i+1:], '}')
				if end > 1 {
					if r, ok := hexRune(body, i+2, end-1); ok {
						sb.WriteRune(r)
						i += end + 1
						continue
					}
				}
				sb.WriteByte(esc)
				continue
			}
			if r, ok := hexRune(body, i+1, 4); ok {
				sb.WriteRune(r)
				i += 4
			} else {
				sb.WriteByte(esc)
			}
		default:
			sb.WriteByte(esc)
		}
	}
	return sb.String()
}

func hexRune(s string, from, n int) (rune, bool) {
	if from+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[from:from+n], 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return utf8.RuneError, err == nil
	}
	return rune(v), true
}
