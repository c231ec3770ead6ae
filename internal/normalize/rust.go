package normalize

import "github.com/avigne/cpfind/internal/engine"

type RustNormalizer struct{}

func (n *RustNormalizer) Language() string {
	return "rust"
}

func (n *RustNormalizer) Extensions() []string {
	return []string{".rs"}
}

// Normalize uses the C-family filter with nesting enabled: Rust block
// comments nest, and doc comments (///, //!) are line comments anyway.
func (n *RustNormalizer) Normalize(content string) []engine.SourceLine {
	return scanLines(content, stripCFamily(true))
}
