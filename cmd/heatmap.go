package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/confviz/internal/diff"
	"github.com/oakwood-commons/confviz/internal/document"
	"github.com/oakwood-commons/confviz/internal/formatter"
	"github.com/oakwood-commons/confviz/pkg/loader"
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap BASE OTHER...",
	Short: "Score each section of every other file against the base",
	Long: `Prints one row per top-level section and one column per file after the base.
A cell counts the leaf values that differ between the base section and the same section
in that file; a section missing on one side counts every leaf of the other side.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := newRunEnv(cmd); err != nil {
			return err
		}
		files, err := loader.LoadAll(args)
		if err != nil {
			return err
		}
		names := make([]string, len(files))
		docs := make([]*document.Value, len(files))
		for i, f := range files {
			names[i], docs[i] = f.Name, f.Data
		}
		out := cmd.OutOrStdout()
		formatter.RenderHeatmap(diff.BuildHeatmap(names, docs), out, formatter.HeatmapOptions{
			EnableColors: useColor(out),
		})
		return nil
	},
}
