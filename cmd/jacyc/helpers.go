package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jacylang/jacy/internal/diagfmt"
	"github.com/jacylang/jacy/internal/source"
)

func buildPrettyOpts(cmd *cobra.Command) (diagfmt.PrettyOpts, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return diagfmt.PrettyOpts{}, err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
	return diagfmt.PrettyOpts{Color: useColor, Context: 2}, nil
}

func displayPath(fs *source.FileSet, path string, fileID source.FileID) string {
	if fileID == 0 {
		return path
	}
	file := fs.Get(fileID)
	if file == nil {
		return path
	}
	return file.FormatPath("auto", fs.BaseDir())
}
