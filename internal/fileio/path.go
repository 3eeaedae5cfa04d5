package fileio

import "strings"

const quote = `"`

// NormalizePath strips one leading and one trailing double quote. Each side is
// handled on its own, so a lone leading quote is removed as well. Nothing else
// is unescaped.
func NormalizePath(path string) string {
	path = strings.TrimPrefix(path, quote)
	return strings.TrimSuffix(path, quote)
}
