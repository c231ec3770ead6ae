// Package report renders ranked clone clusters for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/avigne/cpfind/internal/engine"
)

// Report is one completed scan, ready to render.
type Report struct {
	Root          string           `json:"root" yaml:"root"`
	SourceType    string           `json:"source_type" yaml:"source_type"`
	FilesScanned  int              `json:"files_scanned" yaml:"files_scanned"`
	MinLineCount  int              `json:"min_line_count" yaml:"min_line_count"`
	MinCharCount  int              `json:"min_char_count" yaml:"min_char_count"`
	TotalClusters int              `json:"total_clusters" yaml:"total_clusters"`
	Clusters      []engine.Cluster `json:"clusters" yaml:"clusters"`
}

// Print writes the colored console listing in ranked order.
func Print(r Report) {
	fmt.Printf("top %s result:\n", color.BlueString("%d", len(r.Clusters)))
	for _, c := range r.Clusters {
		fmt.Printf("%s lines x %s occurrences (%s chars)\n",
			color.YellowString("%d", c.LineCount),
			color.YellowString("%d", len(c.Occurrences)),
			color.YellowString("%d", c.CharCount))
		for _, occ := range c.Occurrences {
			fmt.Printf("  %s: line %s~%s\n",
				color.RedString(occ.File),
				color.MagentaString("%d", occ.StartLine),
				color.MagentaString("%d", occ.EndLine))
		}
	}
}

// WriteFile writes the report to a file, choosing the format from the
// extension: .json and .yaml/.yml marshal the report, anything else gets the
// plain text rendering.
func WriteFile(r Report, path string) error {
	var output []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		output, err = json.MarshalIndent(r, "", "  ")
	case ".yaml", ".yml":
		output, err = yaml.Marshal(r)
	default:
		output = []byte(formatText(r))
	}
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, output, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func formatText(r Report) string {
	var sb strings.Builder
	sb.WriteString("# Duplicate Code Report\n\n")
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- Root: %s\n", r.Root))
	sb.WriteString(fmt.Sprintf("- Source type: %s\n", r.SourceType))
	sb.WriteString(fmt.Sprintf("- Files scanned: %d\n", r.FilesScanned))
	sb.WriteString(fmt.Sprintf("- Thresholds: %d lines, %d chars\n", r.MinLineCount, r.MinCharCount))
	sb.WriteString(fmt.Sprintf("- Clusters: %d reported of %d found\n", len(r.Clusters), r.TotalClusters))
	sb.WriteString("\n## Clusters\n\n")
	for i, c := range r.Clusters {
		sb.WriteString(fmt.Sprintf("### Cluster %d\n\n", i+1))
		sb.WriteString(fmt.Sprintf("%d lines x %d occurrences (%d chars)\n\n", c.LineCount, len(c.Occurrences), c.CharCount))
		for _, occ := range c.Occurrences {
			sb.WriteString(fmt.Sprintf("- %s: line %d~%d\n", occ.File, occ.StartLine, occ.EndLine))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
