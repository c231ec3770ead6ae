package normalize

import "github.com/avigne/cpfind/internal/engine"

type CNormalizer struct{}

func (n *CNormalizer) Language() string {
	return "c"
}

func (n *CNormalizer) Extensions() []string {
	return []string{".c", ".h"}
}

func (n *CNormalizer) Normalize(content string) []engine.SourceLine {
	return scanLines(content, stripCFamily(false))
}
