package normalize

import (
	"strings"

	"github.com/avigne/cpfind/internal/engine"
)

type PythonNormalizer struct{}

func (n *PythonNormalizer) Language() string {
	return "python"
}

func (n *PythonNormalizer) Extensions() []string {
	return []string{".py", ".pyw"}
}

func (n *PythonNormalizer) Normalize(content string) []engine.SourceLine {
	return scanLines(content, stripPython())
}

// stripPython returns a stateful line filter removing # comments and
// statement-position docstrings (triple-quoted strings opening a line).
// Triple-quoted strings used as values are kept: only delimiters at the
// start of a line open docstring state.
func stripPython() func(string) string {
	inDoc := false
	delim := ""
	return func(line string) string {
		trimmed := strings.TrimSpace(line)
		if inDoc {
			if idx := strings.Index(trimmed, delim); idx >= 0 {
				inDoc = false
				return stripHashComment(trimmed[idx+len(delim):])
			}
			return ""
		}
		if strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, `'''`) {
			delim = trimmed[:3]
			body := trimmed[3:]
			if idx := strings.Index(body, delim); idx >= 0 {
				// Docstring opens and closes on this line.
				return stripHashComment(body[idx+len(delim):])
			}
			inDoc = true
			return ""
		}
		return stripHashComment(line)
	}
}

// stripHashComment cuts the line at the first # that sits outside single or
// double quotes.
func stripHashComment(line string) string {
	inSingle, inDouble := false, false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '#':
			if !inSingle && !inDouble {
				return line[:i]
			}
		}
	}
	return line
}
