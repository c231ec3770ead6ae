package normalize

import (
	"strings"

	"github.com/avigne/cpfind/internal/engine"
)

type JavaScriptNormalizer struct{}

func (n *JavaScriptNormalizer) Language() string {
	return "javascript"
}

func (n *JavaScriptNormalizer) Extensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs"}
}

func (n *JavaScriptNormalizer) Normalize(content string) []engine.SourceLine {
	strip := stripCFamily(false)
	first := true
	return scanLines(content, func(line string) string {
		if first {
			first = false
			if strings.HasPrefix(line, "#!") {
				return ""
			}
		}
		return strip(line)
	})
}
