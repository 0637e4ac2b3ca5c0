package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/paleta/internal/colour"
)

func newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List available extraction algorithms",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			table := NewTable([]string{"NAME", "DEFAULT", "DESCRIPTION"})
			table.SetColumnMaxWidth(2, 50)
			for _, alg := range colour.ValidAlgorithms() {
				def := ""
				if alg == colour.DefaultAlgorithm {
					def = "*"
				}
				table.AddRow([]string{string(alg), def, alg.Description()})
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())
		},
	}
}
