package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tatianab/char-sheet/internal/config"
	"github.com/tatianab/char-sheet/internal/models"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> [file]",
		Short: "Write a sheet as JSON in the browser save format",
		Long: `Writes a saved sheet as JSON. Without a file the name comes from the
character (<name>_dnd_sheet.json).`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, err := loadSheet(args[0])
			if err != nil {
				return err
			}
			path := sheet.FileName()
			if len(args) == 2 {
				path = args[1]
			}

			if err := writeJSON(path, sheet); err != nil {
				return fmt.Errorf("export %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", args[0], path)
			return nil
		},
	}
}

func writeJSON(path string, sheet *models.Sheet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := models.EncodeJSON(f, sheet); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file> [name]",
		Short: "Read a JSON sheet into the save directory",
		Long: `Reads a JSON sheet, including saves from the browser page, and stores it.
Without a name the file name is used.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("import %q: %w", args[0], err)
			}
			defer f.Close()
			sheet, err := models.DecodeJSON(f)
			if err != nil {
				return fmt.Errorf("import %q: %w", args[0], err)
			}

			name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			if len(args) == 2 {
				name = args[1]
			}
			if err := models.NewStore(cfg.SaveDir).Save(name, sheet); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s as %s\n", args[0], name)
			return nil
		},
	}
}
