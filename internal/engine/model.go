// Package engine detects duplicated code blocks across normalized source
// files. It fingerprints fixed-size line windows, verifies candidate matches
// by content, extends them to maximal blocks and ranks the resulting
// clusters by total duplicated size.
package engine

// SourceLine is one surviving line of a normalized source file.
type SourceLine struct {
	Number  int    // 1-based line number in the original file
	Text    string // normalized text: comments stripped, whitespace collapsed
	OrigLen int    // character count of the original line
	Offset  int    // byte offset of the line start in the original file
}

// FileLines is the normalized line stream of one source file.
type FileLines struct {
	Path  string
	Lines []SourceLine
}

// Occurrence is one concrete instance of a duplicated block. StartLine and
// EndLine are original line numbers; CharCount sums the original lengths of
// the covered lines.
type Occurrence struct {
	File      string `json:"file" yaml:"file"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
	CharCount int    `json:"char_count" yaml:"char_count"`

	start int // inclusive indexes into the file's normalized lines
	end   int
}

// Cluster groups every occurrence of one duplicated block. CharCount is the
// largest occurrence char count, since occurrences may differ in original
// whitespace while sharing normalized content.
type Cluster struct {
	LineCount   int          `json:"line_count" yaml:"line_count"`
	CharCount   int          `json:"char_count" yaml:"char_count"`
	Occurrences []Occurrence `json:"occurrences" yaml:"occurrences"`
}

// Size is the total number of duplicated lines the cluster accounts for.
func (c Cluster) Size() int {
	return c.LineCount * len(c.Occurrences)
}
