package normalize

import "github.com/avigne/cpfind/internal/engine"

type JavaNormalizer struct{}

func (n *JavaNormalizer) Language() string {
	return "java"
}

func (n *JavaNormalizer) Extensions() []string {
	return []string{".java"}
}

func (n *JavaNormalizer) Normalize(content string) []engine.SourceLine {
	return scanLines(content, stripCFamily(false))
}
