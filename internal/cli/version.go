package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sorakthunly/modelsafe/pkg/modelsafe"
)

const modulePath = "github.com/sorakthunly/modelsafe"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the modelsafe version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "modelsafe v%s\nmodule: %s\n", modelsafe.Version, modulePath)
			return nil
		},
	}
}
