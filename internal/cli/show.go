package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tatianab/char-sheet/internal/models"
	"github.com/tatianab/char-sheet/internal/stats"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the derived numbers of a saved sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, err := loadSheet(args[0])
			if err != nil {
				return err
			}
			gm, _ := cmd.Flags().GetBool("gm")
			printSheet(cmd.OutOrStdout(), sheet, gm)
			return nil
		},
	}
	cmd.Flags().Bool("gm", false, "also print the game-master view")
	return cmd
}

func printSheet(w io.Writer, sheet *models.Sheet, gm bool) {
	c := sheet.Character()
	snap := c.Snapshot()
	info := sheet.CharacterInfo

	if info.Name != "" {
		fmt.Fprintf(w, "%s, %s %s level %d\n\n", info.Name, info.Race, info.Class, info.Level.Int(1))
	}

	for _, a := range stats.Abilities {
		fmt.Fprintf(w, "%-3s %2d (%s)  save %s\n", a, snap.Scores[a], stats.FormatBonus(snap.Modifiers[a]), stats.FormatBonus(snap.Saves[a]))
	}
	fmt.Fprintf(w, "\nproficiency %s  initiative %s  passive perception %d\n\n",
		stats.FormatBonus(snap.ProficiencyBonus), stats.FormatBonus(snap.Initiative), snap.PassivePerception)

	for _, sk := range stats.Skills {
		level := ""
		if p := c.SkillProficiency(sk.Key); p != stats.None {
			level = p.String()
		}
		fmt.Fprintf(w, "%-20s %3s  %s %s\n", sk.Name, stats.FormatBonus(snap.Skills[sk.Key]), c.Scaling(sk.Key), level)
	}

	if !gm {
		return
	}
	mods := sheet.GMModifiers()
	fmt.Fprintln(w, "\nGM view")
	for _, a := range stats.Abilities {
		fmt.Fprintf(w, "%-3s %2d (%s)\n", a, sheet.DMData.Stats.Abilities[string(a)].Int(stats.DefaultScore), stats.FormatBonus(mods[a]))
	}
}
