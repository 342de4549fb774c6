package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/confviz/internal/formatter"
	"github.com/oakwood-commons/confviz/internal/workspace"
	"github.com/oakwood-commons/confviz/pkg/loader"
)

var (
	reportHTML  string
	reportTitle string
)

var reportCmd = &cobra.Command{
	Use:   "report FILES...",
	Short: "Write a Markdown or HTML summary of the files, heatmap and delta",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newRunEnv(cmd)
		if err != nil {
			return err
		}
		files, err := loader.LoadAll(args)
		if err != nil {
			return err
		}
		ws := workspace.New(files, env.workspaceOptions())
		r := formatter.Report{
			Title:    reportTitle,
			Files:    ws.Files(),
			Heatmap:  ws.Heatmap(),
			DiffText: ws.DiffText(),
			Compared: ws.Compared(),
		}

		if reportHTML == "" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), r.Markdown())
			return err
		}
		if err := os.WriteFile(reportHTML, r.HTML(), 0o644); err != nil { //nolint:gosec
			return fmt.Errorf("write report: %w", err)
		}
		env.log.Info("report written", "path", reportHTML, "files", len(files))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", reportHTML)
		return err
	},
}

func init() { //nolint:gochecknoinits
	reportCmd.Flags().StringVar(&reportHTML, "html", "", "write a standalone HTML page to this path instead of printing Markdown")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "report heading (default \"Configuration report\")")
}
