package normalize

import "github.com/avigne/cpfind/internal/engine"

type CppNormalizer struct{}

func (n *CppNormalizer) Language() string {
	return "cpp"
}

// Extensions includes .h: C++ projects routinely keep class definitions in
// plain .h headers.
func (n *CppNormalizer) Extensions() []string {
	return []string{".cpp", ".cxx", ".cc", ".hpp", ".hxx", ".hh", ".h"}
}

func (n *CppNormalizer) Normalize(content string) []engine.SourceLine {
	return scanLines(content, stripCFamily(false))
}
