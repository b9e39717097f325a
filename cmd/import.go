package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importFormat string

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import tasks from a bundle file",
	Long: `Import tasks from a bundle previously written by export. Records
whose ID already exists in the store are skipped, never overwritten.

The format is inferred from the file extension unless --format is given.
Pass "-" as the file to read the bundle from stdin.

Examples:
  taskkeep import tasks.json
  taskkeep import backup.yaml
  taskkeep export | taskkeep import -`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importFormat, "format", "", "bundle format (json, yaml or toml; default inferred from extension)")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	in := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	format, err := inferFormat(importFormat, path)
	if err != nil {
		return err
	}

	svc, err := getService()
	if err != nil {
		return fmt.Errorf("failed to open task store: %w", err)
	}

	res, err := svc.Import(in, format)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(res)
	}

	fmt.Printf("Imported %d task(s), skipped %d already present.\n", res.Added, res.Skipped)
	return nil
}
