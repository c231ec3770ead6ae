// Package normalize turns raw source files into per-language normalized line
// streams: comments stripped, whitespace collapsed, blank lines dropped.
// Every surviving line keeps its original line number, character length and
// byte offset so matches can be reported against the file on disk.
package normalize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/avigne/cpfind/internal/engine"
)

// Normalizer produces the normalized line stream for one source language.
type Normalizer interface {
	Language() string
	Extensions() []string
	Normalize(content string) []engine.SourceLine
}

// SourceTypes lists the supported source type tags.
func SourceTypes() []string {
	return []string{"java", "cpp", "c", "rust", "javascript", "python"}
}

// ForSourceType returns the normalizer for a source type tag.
func ForSourceType(sourceType string) (Normalizer, error) {
	switch strings.ToLower(strings.TrimSpace(sourceType)) {
	case "java":
		return &JavaNormalizer{}, nil
	case "cpp":
		return &CppNormalizer{}, nil
	case "c":
		return &CNormalizer{}, nil
	case "rust":
		return &RustNormalizer{}, nil
	case "javascript":
		return &JavaScriptNormalizer{}, nil
	case "python":
		return &PythonNormalizer{}, nil
	default:
		return nil, fmt.Errorf("unsupported source type %q (expected one of %s)",
			sourceType, strings.Join(SourceTypes(), ", "))
	}
}

// scanLines walks the content line by line tracking byte offsets, applies the
// stateful strip function and collapses whitespace. Lines left empty are
// dropped; the rest keep their original numbering.
func scanLines(content string, strip func(string) string) []engine.SourceLine {
	var out []engine.SourceLine
	offset := 0
	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSuffix(raw, "\r")
		text := collapseWhitespace(strip(line))
		if text != "" {
			out = append(out, engine.SourceLine{
				Number:  i + 1,
				Text:    text,
				OrigLen: utf8.RuneCountInString(line),
				Offset:  offset,
			})
		}
		offset += len(raw) + 1
	}
	return out
}

// stripCFamily returns a stateful line filter removing // line comments and
// /* */ block comments. nested enables nested block comments (Rust).
func stripCFamily(nested bool) func(string) string {
	depth := 0
	return func(line string) string {
		var sb strings.Builder
		i := 0
		for i < len(line) {
			if depth > 0 {
				if strings.HasPrefix(line[i:], "*/") {
					depth--
					i += 2
					continue
				}
				if nested && strings.HasPrefix(line[i:], "/*") {
					depth++
					i += 2
					continue
				}
				i++
				continue
			}
			if strings.HasPrefix(line[i:], "//") {
				break
			}
			if strings.HasPrefix(line[i:], "/*") {
				depth++
				i += 2
				continue
			}
			sb.WriteByte(line[i])
			i++
		}
		return sb.String()
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
