package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/confviz/internal/diff"
	"github.com/oakwood-commons/confviz/internal/formatter"
	"github.com/oakwood-commons/confviz/pkg/loader"
)

var diffCmd = &cobra.Command{
	Use:   "diff BASE OTHER",
	Short: "Print the structural delta from BASE to OTHER",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newRunEnv(cmd)
		if err != nil {
			return err
		}
		files, err := loader.LoadAll(args)
		if err != nil {
			return err
		}
		text := diff.Text(env.differ, files[0].Data, files[1].Data, env.log)
		out := cmd.OutOrStdout()
		_, err = fmt.Fprintln(out, formatter.ColorizeDiff(text, formatter.DiffOptions{
			From:    files[0].Name,
			To:      files[1].Name,
			NoColor: !useColor(out),
		}))
		return err
	},
}
