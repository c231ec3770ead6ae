package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/avigne/cpfind/internal/engine"
	"github.com/avigne/cpfind/internal/normalize"
	"github.com/avigne/cpfind/internal/report"
	"github.com/avigne/cpfind/internal/scanner"
)

const version = "1.0.0"

var (
	minLineCount     int
	minCharCount     int
	ignoreFolders    string
	listSourceFolder bool
	listTopResult    int
	outputFile       string
	jobs             int
	verbose          bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cpfind <root> <source-type>",
		Short: "Find copy-pasted code blocks across a source tree",
		Long: color.GreenString("cpfind") + ` scans a source tree for duplicated code blocks and reports
the largest clusters first. Supported source types: ` + strings.Join(normalize.SourceTypes(), ", ") + `.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args[0], args[1])
		},
	}

	rootCmd.Flags().IntVar(&minLineCount, "min-line-count", 6, "Minimum number of duplicated lines")
	rootCmd.Flags().IntVar(&minCharCount, "min-char-count", 80, "Minimum number of duplicated characters")
	rootCmd.Flags().StringVar(&ignoreFolders, "ignore-folders", "thirdparty,test,node_modules", "Comma-separated folder names to skip")
	rootCmd.Flags().BoolVar(&listSourceFolder, "list-source-folder", false, "List discovered source files and exit")
	rootCmd.Flags().IntVar(&listTopResult, "list-top-result", 30, "Number of top clusters to report")
	rootCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "Write results to file (.json/.yaml select format)")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Number of parallel workers (0 = all CPUs)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cpfind version %s\n", version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func runScan(root, sourceType string) error {
	normalizer, err := normalize.ForSourceType(sourceType)
	if err != nil {
		return err
	}
	if minLineCount < 1 {
		return fmt.Errorf("--min-line-count must be at least 1, got %d", minLineCount)
	}
	if minCharCount < 1 {
		return fmt.Errorf("--min-char-count must be at least 1, got %d", minCharCount)
	}
	if listTopResult < 1 {
		return fmt.Errorf("--list-top-result must be at least 1, got %d", listTopResult)
	}

	files, err := scanner.CollectFiles(scanner.Options{
		Root:          root,
		Extensions:    normalizer.Extensions(),
		IgnoreFolders: strings.Split(ignoreFolders, ","),
	})
	if err != nil {
		return err
	}

	if listSourceFolder {
		for _, file := range files {
			fmt.Println(file)
		}
		return nil
	}

	fmt.Printf("found %s source files of %s\n", color.CyanString("%d", len(files)), normalizer.Language())

	bar := newBar(len(files), "Normalizing sources")
	sources := normalize.LoadFiles(files, normalizer, jobs,
		func() { bar.Add(1) },
		func(path string, err error) {
			logWarning(fmt.Sprintf("Skipping %s: %v", path, err))
		})
	bar.Finish()

	if verbose {
		logInfo(fmt.Sprintf("Normalized %d files", len(sources)))
	}

	bar = newBar(len(sources), "Fingerprinting windows")
	result, err := engine.RunWithProgress(sources, engine.Config{
		MinLineCount: minLineCount,
		MinCharCount: minCharCount,
		TopResults:   listTopResult,
		Jobs:         jobs,
	}, func() { bar.Add(1) })
	bar.Finish()
	if err != nil {
		return err
	}

	if verbose {
		logInfo(fmt.Sprintf("Found %d clusters, reporting %d", result.TotalClusters, len(result.Clusters)))
	}

	rep := report.Report{
		Root:          root,
		SourceType:    normalizer.Language(),
		FilesScanned:  len(sources),
		MinLineCount:  minLineCount,
		MinCharCount:  minCharCount,
		TotalClusters: result.TotalClusters,
		Clusters:      result.Clusters,
	}

	if outputFile != "" {
		if err := report.WriteFile(rep, outputFile); err != nil {
			return err
		}
		logSuccess(fmt.Sprintf("Results written to %s", outputFile))
		return nil
	}

	report.Print(rep)
	return nil
}

func newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

func getCurrentTime() string {
	return time.Now().Format("15:04")
}

func logInfo(message string) {
	fmt.Printf("\033[34m[%s]\033[0m %s\n", getCurrentTime(), message)
}

func logSuccess(message string) {
	fmt.Printf("\033[32m[%s]\033[0m %s\n", getCurrentTime(), message)
}

func logWarning(message string) {
	fmt.Printf("\033[33m[%s]\033[0m %s\n", getCurrentTime(), message)
}
