package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jacylang/jacy/internal/diagfmt"
	"github.com/jacylang/jacy/internal/driver"
	"github.com/jacylang/jacy/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.jc|directory>",
	Short: "Parse a Jacy source file or directory and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|tree)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	prettyOpts, err := buildPrettyOpts(cmd)
	if err != nil {
		return err
	}

	if !st.IsDir() {
		result, err := driver.Parse(filePath, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if result.Bag.HasErrors() || result.Bag.HasWarnings() {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts)
		}
		switch format {
		case "pretty":
			return diagfmt.FormatASTPretty(os.Stdout, result.Builder, result.FileID, result.FileSet)
		case "json":
			return diagfmt.FormatASTJSON(os.Stdout, result.Builder, result.FileID)
		case "tree":
			return diagfmt.FormatASTTree(os.Stdout, result.Builder, result.FileID, result.FileSet)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	fs, _, results, err := driver.ParseDir(cmd.Context(), filePath, maxDiagnostics, jobs)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	for _, r := range results {
		if r.Bag.HasErrors() || r.Bag.HasWarnings() {
			diagfmt.Pretty(os.Stderr, r.Bag, fs, prettyOpts)
		}
	}

	switch format {
	case "pretty", "tree":
		for idx, r := range results {
			path := astDisplayPath(fs, r)
			if !quiet {
				fmt.Fprintf(os.Stdout, "== %s ==\n", path)
			}
			if r.Builder != nil {
				var formatErr error
				if format == "pretty" {
					formatErr = diagfmt.FormatASTPretty(os.Stdout, r.Builder, r.FileID, fs)
				} else {
					formatErr = diagfmt.FormatASTTree(os.Stdout, r.Builder, r.FileID, fs)
				}
				if formatErr != nil {
					return formatErr
				}
			}
			if !quiet && idx < len(results)-1 {
				fmt.Fprintln(os.Stdout)
			}
		}
	case "json":
		output := make(map[string]*diagfmt.ASTNodeOutput, len(results))
		for _, r := range results {
			path := astDisplayPath(fs, r)
			if r.Builder == nil {
				output[path] = nil
				continue
			}
			node, err := diagfmt.BuildASTJSON(r.Builder, r.FileID)
			if err != nil {
				return err
			}
			output[path] = &node
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}

func astDisplayPath(fs *source.FileSet, r driver.ParseDirResult) string {
	if r.FileID == 0 || r.Builder == nil {
		return r.Path
	}
	astFile := r.Builder.Files.Get(r.FileID)
	if astFile == nil {
		return r.Path
	}
	file := fs.Get(astFile.Span.File)
	if file == nil {
		return r.Path
	}
	return file.FormatPath("auto", fs.BaseDir())
}
