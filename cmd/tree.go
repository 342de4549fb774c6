package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/confviz/internal/formatter"
	"github.com/oakwood-commons/confviz/internal/navigator"
	"github.com/oakwood-commons/confviz/pkg/loader"
)

var (
	treeDepth     int
	treeNoValues  bool
	treeMaxString int
	treeFormat    string
	treeDirection string
	treeSection   string
)

var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Print a file's structure as an ASCII tree or a Mermaid flowchart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newRunEnv(cmd)
		if err != nil {
			return err
		}
		file, err := loader.LoadFile(args[0])
		if err != nil {
			return err
		}

		doc, root := file.Data, file.Name
		if treeSection != "" {
			doc, err = navigator.LookupLoose(file.Data, treeSection)
			if err != nil {
				return fmt.Errorf("section %q: %w", treeSection, err)
			}
			root = treeSection
		}
		env.log.V(1).Info("rendering tree", "file", file.Path, "format", treeFormat, "root", root)

		var text string
		switch strings.ToLower(treeFormat) {
		case "tree", "":
			text = formatter.FormatTree(doc, formatter.TreeOptions{
				Root:         root,
				NoValues:     treeNoValues,
				MaxDepth:     treeDepth,
				MaxStringLen: treeMaxString,
			})
		case "mermaid":
			text = formatter.FormatMermaid(doc, root, formatter.MermaidOptions{
				Direction:    strings.ToUpper(treeDirection),
				NoValues:     treeNoValues,
				MaxDepth:     treeDepth,
				MaxStringLen: treeMaxString,
			})
		default:
			return fmt.Errorf("unknown --format %q (want tree or mermaid)", treeFormat)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(text, "\n"))
		return err
	},
}

func init() { //nolint:gochecknoinits
	f := treeCmd.Flags()
	f.IntVar(&treeDepth, "depth", 0, "limit nesting depth (0 = unlimited)")
	f.BoolVar(&treeNoValues, "no-values", false, "show keys only")
	f.IntVar(&treeMaxString, "max-string", 40, "clip leaf values to this many columns (0 = unlimited)")
	f.StringVar(&treeFormat, "format", "tree", "output format: tree|mermaid")
	f.StringVar(&treeDirection, "direction", "TD", "mermaid direction: TD|LR|BT|RL")
	f.StringVar(&treeSection, "section", "", "render only this path, e.g. shared or web.routes[0]")
}
