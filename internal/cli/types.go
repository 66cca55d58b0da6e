package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vgraph/pkg/registry"
)

// typesCommand lists the registered flavors and their types.
func (c *CLI) typesCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "types [flavor...]",
		Short: "List flavors and their node and line types",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := c.newRegistry(configPath)
			if err != nil {
				return err
			}
			flavors := args
			if len(flavors) == 0 {
				flavors = reg.Flavors()
			}
			printTypes(cmd.OutOrStdout(), reg, flavors)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "flavor file (default: $XDG_CONFIG_HOME/vgraph/flavors.toml)")
	return cmd
}

func printTypes(w io.Writer, reg *registry.Registry, flavors []string) {
	for i, f := range flavors {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, StyleTitle.Render(f))
		printKeyValue(w, "option", reg.QueryOption(f).Type)
		printKeyValue(w, "nodes", list(reg.NodeTypes(f)))
		printKeyValue(w, "lines", list(reg.LineTypes(f)))
	}
}

func list(names []string) string {
	if len(names) == 0 {
		return StyleDim.Render("(inherited)")
	}
	return strings.Join(names, ", ")
}
