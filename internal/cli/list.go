package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatianab/char-sheet/internal/config"
	"github.com/tatianab/char-sheet/internal/models"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved sheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			names, err := models.NewStore(cfg.SaveDir).List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no sheets in %s\n", cfg.SaveDir)
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
