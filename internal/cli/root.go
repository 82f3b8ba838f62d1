// Package cli holds the charsheet commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tatianab/char-sheet/internal/config"
	"github.com/tatianab/char-sheet/internal/dice"
	"github.com/tatianab/char-sheet/internal/engine"
	"github.com/tatianab/char-sheet/internal/models"
	"github.com/tatianab/char-sheet/internal/random"
	"github.com/tatianab/char-sheet/internal/tui"
)

// NewRootCmd builds the command tree. Tests build their own to capture
// output.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "charsheet",
		Short: "A character sheet and dice roller for the terminal",
		Long: `charsheet keeps a fifth-edition character sheet with Italian ability
keys (FOR DES COS INT SAG CAR), computes every derived bonus and rolls dice.

Without a subcommand it opens the interactive sheet.`,
		SilenceUsage: true,
		RunE:         runSheet,
	}
	root.Flags().String("sheet", engine.DefaultSheetName, "name of the sheet to open")

	root.AddCommand(
		newRollCmd(),
		newShowCmd(),
		newListCmd(),
		newExportCmd(),
		newImportCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().Execute()
}

func runSheet(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; logs go to a file or nowhere.
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "charsheet")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx := context.Background()
	var opts []engine.Option
	if cfg.NarrationEnabled() {
		gen, err := engine.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		defer gen.Close()
		opts = append(opts, engine.WithNarrator(engine.NewNarrator(gen)))
	}

	eng, err := newEngine(cfg, opts...)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("sheet")
	if err := eng.Open(name); err != nil {
		return err
	}
	log.Printf("opened sheet %q in %s", name, cfg.SaveDir)

	return tui.Run(eng)
}

func newEngine(cfg *config.Config, opts ...engine.Option) (*engine.Engine, error) {
	seed, err := random.Seed(cfg.DiceSeed)
	if err != nil {
		return nil, err
	}
	return engine.New(models.NewStore(cfg.SaveDir), dice.NewSource(seed), opts...), nil
}

func loadSheet(name string) (*models.Sheet, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return models.NewStore(cfg.SaveDir).Load(name)
}
