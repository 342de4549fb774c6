package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/confviz/internal/config"
)

var configDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Prints the built-in defaults merged with the user config file. Redirect the output to
$XDG_CONFIG_HOME/confviz/config.yaml to start customising.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if configDefault {
			_, err := out.Write(config.DefaultYAML())
			return err
		}
		env, err := newRunEnv(cmd)
		if err != nil {
			return err
		}
		data, err := env.cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	},
}

func init() { //nolint:gochecknoinits
	configCmd.Flags().BoolVar(&configDefault, "default", false, "print the built-in defaults only")
}
