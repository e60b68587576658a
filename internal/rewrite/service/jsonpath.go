package service

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractPath pulls a single value out of a JSON document using the
// dotted/indexed path grammar (items[0].token). Returns false when the path
// does not address an existing value, including out-of-range indexes; the
// caller leaves the original token in place in that case.
func ExtractPath(jsonText, path string) (string, bool) {
	result := gjson.Get(jsonText, translatePath(path))
	if !result.Exists() {
		return "", false
	}
	return result.String(), true
}

// translatePath converts name[index] array access into the dotted form the
// JSON library understands: items[0].token becomes items.0.token.
func translatePath(path string) string {
	var b strings.Builder
	b.Grow(len(path))

	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '[':
			if b.Len() > 0 {
				b.WriteByte('.')
			}
		case ']':
		default:
			b.WriteByte(path[i])
		}
	}

	return b.String()
}
