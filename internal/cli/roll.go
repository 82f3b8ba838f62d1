package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tatianab/char-sheet/internal/config"
)

func newRollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roll <dice>",
		Short: "Roll dice and print the trace",
		Long: `Rolls a dice expression such as 2d6+3 or d20-1.
Writing a space before the d ("3 d8") lists every die instead of summing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			eng, err := newEngine(cfg)
			if err != nil {
				return err
			}

			expr := strings.Join(args, " ")
			if _, err := eng.Roll(expr); err != nil {
				return err
			}
			hist := eng.History()
			fmt.Fprintln(cmd.OutOrStdout(), hist[len(hist)-1])
			return nil
		},
	}
}
