package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskkeep/taskkeep/internal/ops"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tasks to a portable bundle",
	Long: `Export every task as a bundle in JSON, YAML or TOML format. The
bundle is written to stdout unless --output is given. When --output is
set and --format is not, the format is inferred from the file extension.

Examples:
  taskkeep export > tasks.json
  taskkeep export --format yaml
  taskkeep export -o backup.toml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "", "bundle format (json, yaml or toml; default json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write the bundle to this file instead of stdout")
}

// inferFormat resolves the bundle format from an explicit flag value or,
// failing that, from the file extension.
func inferFormat(flagValue, path string) (string, error) {
	if flagValue == "" && path != "" {
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		if ext != "" {
			return ops.ParseFormat(ext)
		}
	}
	return ops.ParseFormat(flagValue)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := inferFormat(exportFormat, exportOutput)
	if err != nil {
		return err
	}

	svc, err := getService()
	if err != nil {
		return fmt.Errorf("failed to open task store: %w", err)
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	count, err := svc.Export(out, format)
	if err != nil {
		return err
	}

	if exportOutput != "" {
		fmt.Fprintf(os.Stderr, "Exported %d task(s) to %s\n", count, exportOutput)
	}
	return nil
}
