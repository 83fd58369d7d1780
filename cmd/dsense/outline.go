package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dsense/internal/diagfmt"
	"dsense/internal/driver"
	"dsense/internal/project"
	"dsense/internal/source"
	"dsense/internal/symbols"
)

var (
	outlineFormat   string
	outlineScopes   bool
	outlineJobs     int
	outlineUI       string
	outlineVersions []string
)

func init() {
	outlineCmd.Flags().StringVar(&outlineFormat, "format", "", "output format (pretty|json); defaults to dsense.toml or pretty")
	outlineCmd.Flags().BoolVar(&outlineScopes, "scopes", false, "include the scope tree in pretty output")
	outlineCmd.Flags().IntVar(&outlineJobs, "jobs", 0, "max concurrent files (0 = one per CPU)")
	outlineCmd.Flags().StringVar(&outlineUI, "ui", "auto", "interactive progress (auto|on|off)")
	outlineCmd.Flags().StringSliceVar(&outlineVersions, "version", nil, "extra recognized version identifiers")
}

var outlineCmd = &cobra.Command{
	Use:   "outline <path>",
	Short: "Extract symbols from parser snapshots and print the outline",
	Long: `Outline decodes one .dast snapshot (or every snapshot under a directory),
runs the symbol-extraction pass, and prints the resulting symbol and scope
trees.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		settings, _, err := project.LoadProjectSettings(settingsStart(path, info.IsDir()))
		if err != nil {
			return err
		}
		format := strings.TrimSpace(outlineFormat)
		if format == "" {
			format = settings.Output.Format
		}
		if format == "" {
			format = "pretty"
		}
		if format != "pretty" && format != "json" {
			return fmt.Errorf("invalid --format %q (expected pretty|json)", format)
		}

		versions := settings.ActiveVersions(symbols.DefaultVersions)
		versions = append(versions, outlineVersions...)

		timings, _ := cmd.Flags().GetBool("timings")
		opts := driver.Options{
			Versions: versions,
			Timings:  timings,
		}

		var results []driver.FileResult
		if info.IsDir() {
			results, err = extractDir(cmd, path, settings, opts)
		} else {
			var result *driver.FileResult
			result, err = driver.ExtractFile(path, source.NewFileSet(), opts)
			if result != nil {
				results = []driver.FileResult{*result}
			}
		}
		if err != nil {
			return err
		}
		return printResults(cmd, results, format, timings)
	},
}

func settingsStart(path string, isDir bool) string {
	if isDir {
		return path
	}
	return filepath.Dir(path)
}

func extractDir(cmd *cobra.Command, dir string, settings *project.Settings, opts driver.Options) ([]driver.FileResult, error) {
	jobs := outlineJobs
	if jobs == 0 {
		jobs = settings.Extract.Workers
	}
	dirOpts := driver.DirOptions{Options: opts, Jobs: jobs}

	mode, err := readUIMode(outlineUI)
	if err != nil {
		return nil, err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet && shouldUseTUI(mode) {
		files, err := driver.ListSnapshotFiles(dir)
		if err != nil {
			return nil, err
		}
		_, results, err := runExtractDirWithUI(cmd.Context(), "extracting "+dir, dir, files, dirOpts)
		return results, err
	}
	_, results, err := driver.ExtractDir(cmd.Context(), dir, dirOpts)
	return results, err
}

func printResults(cmd *cobra.Command, results []driver.FileResult, format string, timings bool) error {
	colorFlag, _ := cmd.Flags().GetString("color")
	quiet, _ := cmd.Flags().GetBool("quiet")

	failures := 0
	var outlines []*diagfmt.OutlineOutput
	for i := range results {
		result := &results[i]
		if result.Err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "%s: %v\n", result.Path, result.Err)
			continue
		}
		for _, module := range result.Modules {
			switch format {
			case "json":
				outline, err := diagfmt.BuildOutline(module, result.Tree, nil, result.SourcePath)
				if err != nil {
					return err
				}
				outlines = append(outlines, outline)
			default:
				if !quiet {
					fmt.Fprintf(os.Stdout, "// %s\n", result.SourcePath)
				}
				diagfmt.Pretty(os.Stdout, module, result.Tree, nil, diagfmt.PrettyOpts{
					Color:  colorEnabled(colorFlag),
					Scopes: outlineScopes,
				})
			}
		}
		if timings && len(result.Timing.Phases) > 0 {
			fmt.Fprintf(os.Stderr, "%s: %.2f ms total\n", result.SourcePath, result.Timing.TotalMS)
		}
	}

	if format == "json" {
		if err := diagfmt.JSON(os.Stdout, outlines); err != nil {
			return err
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d snapshot(s) failed", failures)
	}
	return nil
}
